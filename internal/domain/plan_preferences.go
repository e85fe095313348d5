package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanPreferences records the generation parameters a training plan was built
// from, so a plan can later be inspected or regenerated with the same inputs.
type PlanPreferences struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainingPlanID  primitive.ObjectID `bson:"trainingPlanId" json:"trainingPlanId"`
	Frequency       int                `bson:"frequency" json:"frequency"` // workouts per week
	TimeOfDay       string             `bson:"timeOfDay" json:"timeOfDay"` // 'morning', 'afternoon', 'evening'
	DurationMinutes int                `bson:"durationMinutes" json:"durationMinutes"`
	PrepMinutes     int                `bson:"prepMinutes" json:"prepMinutes"`
	CooldownMinutes int                `bson:"cooldownMinutes" json:"cooldownMinutes"`
	WorkoutTypes    []string           `bson:"workoutTypes" json:"workoutTypes"`
	DifficultyLevel string             `bson:"difficultyLevel" json:"difficultyLevel"`
	DaysOfWeek      []string           `bson:"daysOfWeek,omitempty" json:"daysOfWeek,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
