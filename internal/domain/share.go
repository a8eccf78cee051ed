package domain

import (
	"time"
)

// Share grants a recipient access to a creator's plan. Recipients log achievements
// against the plan through their share.
type Share struct {
	ID          int64     `bson:"_id" json:"id"`
	PlanID      int64     `bson:"planId" json:"planId"`
	CreatorID   string    `bson:"creatorId" json:"creatorId"` // Denormalized from the plan
	RecipientID string    `bson:"recipientId" json:"recipientId"`
	SharedAt    time.Time `bson:"sharedAt" json:"sharedAt"`
}

// Involves reports whether userID is either side of the share.
func (s *Share) Involves(userID string) bool {
	return s.CreatorID == userID || s.RecipientID == userID
}
