package domain

import (
	"time"
)

// Profile is the public face of a user. The user id is the subject issued by the
// external auth provider; profiles are created lazily by their owners.
type Profile struct {
	UserID    string    `bson:"_id" json:"userId"`
	Username  string    `bson:"username" json:"username"`
	FullName  string    `bson:"fullName,omitempty" json:"fullName,omitempty"`
	AvatarURL string    `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DisplayName prefers the full name and falls back to the username.
func (p *Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Username
}
