// internal/domain/exercise.go
package domain

import (
	"time"
)

// Exercise is a named movement within a day.
type Exercise struct {
	ID          int64       `bson:"_id" json:"id"`
	DayID       int64       `bson:"dayId" json:"dayId"`
	PlanID      int64       `bson:"planId" json:"planId"` // Denormalized for authorization checks
	Name        string      `bson:"name" json:"name"`
	Description string      `bson:"description,omitempty" json:"description,omitempty"`
	Sets        []TargetSet `bson:"sets" json:"sets"`
	CreatedAt   time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// TargetSet is the repetition/weight pair the creator expects for one set.
// Values are free-form ("12 reps", "20kg").
type TargetSet struct {
	ID                int64  `bson:"id" json:"id"`
	TargetRepetitions string `bson:"targetRepetitions" json:"targetRepetitions"`
	TargetWeight      string `bson:"targetWeight" json:"targetWeight"`
}

// FindSet returns the set with the given id, if the exercise has it.
func (e *Exercise) FindSet(setID int64) (TargetSet, bool) {
	for _, s := range e.Sets {
		if s.ID == setID {
			return s, true
		}
	}
	return TargetSet{}, false
}
