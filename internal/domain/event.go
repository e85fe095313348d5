// internal/domain/event.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventType distinguishes the generated sub-events of a workout session
// from plain calendar entries.
type EventType string

const (
	EventTypePrep     EventType = "prep"
	EventTypeWorkout  EventType = "workout"
	EventTypeCooldown EventType = "cooldown"
)

// Event represents a single calendar entry. Manually created events carry no
// TrainingPlanID; events materialized by the planner link back to their plan.
type Event struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID  `bson:"userId" json:"userId"` // Owner of the event
	TrainingPlanID  *primitive.ObjectID `bson:"trainingPlanId,omitempty" json:"trainingPlanId,omitempty"`
	Title           string              `bson:"title" json:"title"`
	Description     string              `bson:"description,omitempty" json:"description,omitempty"`
	StartTime       time.Time           `bson:"startTime" json:"startTime"`
	EndTime         time.Time           `bson:"endTime" json:"endTime"`
	EventType       EventType           `bson:"eventType,omitempty" json:"eventType,omitempty"`             // 'workout', 'prep', 'cooldown', ...
	WorkoutType     string              `bson:"workoutType,omitempty" json:"workoutType,omitempty"`         // 'cycling', 'running', ...
	DifficultyLevel string              `bson:"difficultyLevel,omitempty" json:"difficultyLevel,omitempty"` // 'easy', 'moderate', 'hard', 'expert'
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}
