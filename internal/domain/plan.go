// internal/domain/plan.go
package domain

import (
	"time"
)

// Plan is a workout plan owned by its creator. Days, exercises and target sets hang off it.
type Plan struct {
	ID          int64     `bson:"_id" json:"id"`
	CreatorID   string    `bson:"creatorId" json:"creatorId"` // Subject of the creator's auth token
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	IsPublic    bool      `bson:"isPublic" json:"isPublic"` // Public plans are readable (and reviewable) by everyone
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsOwnedBy reports whether userID created the plan.
func (p *Plan) IsOwnedBy(userID string) bool {
	return p.CreatorID == userID
}

// Day is one scheduled workout (or rest day) within a plan.
// (PlanID, WeekNumber, DayName) identifies a day.
type Day struct {
	ID          int64     `bson:"_id" json:"id"`
	PlanID      int64     `bson:"planId" json:"planId"`
	WeekNumber  int       `bson:"weekNumber" json:"weekNumber"` // 1-based
	DayName     string    `bson:"dayName" json:"dayName"`       // "Monday" or a custom label
	WorkoutName string    `bson:"workoutName" json:"workoutName"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	IsRestDay   bool      `bson:"isRestDay" json:"isRestDay"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
