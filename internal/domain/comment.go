package domain

import (
	"time"
)

// Comment is one entry of a plan's discussion. A nil ParentCommentID marks a top-level comment.
type Comment struct {
	ID              int64     `bson:"_id" json:"id"`
	PlanID          int64     `bson:"planId" json:"planId"`
	ParentCommentID *int64    `bson:"parentCommentId,omitempty" json:"parentCommentId"`
	Text            string    `bson:"text" json:"text"`
	UserID          string    `bson:"userId" json:"userId"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}

// IsReply reports whether the comment answers another one.
func (c *Comment) IsReply() bool {
	return c.ParentCommentID != nil
}
