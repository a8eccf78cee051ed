package domain

import (
	"time"
)

// Achievement is a recipient's logged result for one target set on one day.
// Plan, day and exercise names and the targets are copied onto the record when it is
// logged so that listings never need to join.
type Achievement struct {
	ID                 int64     `bson:"_id" json:"id"`
	ShareID            int64     `bson:"shareId" json:"shareId"`
	PlanID             int64     `bson:"planId" json:"planId"`
	DayID              int64     `bson:"dayId" json:"dayId"`
	ExerciseID         int64     `bson:"exerciseId" json:"exerciseId"`
	SetID              int64     `bson:"setId" json:"setId"`
	RecipientID        string    `bson:"recipientId" json:"recipientId"`
	WeekNumber         int       `bson:"weekNumber" json:"weekNumber"`
	DayName            string    `bson:"dayName" json:"dayName"`
	WorkoutName        string    `bson:"workoutName" json:"workoutName"`
	PlanName           string    `bson:"planName" json:"planName"`
	ExerciseName       string    `bson:"exerciseName" json:"exerciseName"`
	TargetRepetitions  string    `bson:"targetRepetitions" json:"targetRepetitions"`
	TargetWeight       string    `bson:"targetWeight" json:"targetWeight"`
	AchievedRepetition string    `bson:"achievedRepetition" json:"achievedRepetition"`
	AchievedWeight     string    `bson:"achievedWeight" json:"achievedWeight"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
}
