package domain

import (
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating of a plan. A user reviews a plan at most once.
type Review struct {
	ID        int64     `bson:"_id" json:"id"`
	PlanID    int64     `bson:"planId" json:"planId"`
	UserID    string    `bson:"userId" json:"userId"`
	Rating    int       `bson:"rating" json:"rating"`
	Text      string    `bson:"text,omitempty" json:"text,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ReviewSummary aggregates the reviews of one plan.
type ReviewSummary struct {
	PlanID        int64   `json:"planId"`
	Count         int     `json:"count"`
	AverageRating float64 `json:"averageRating"`
}
