package repository

import (
	"context"
	"time"

	"planner/training-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive" // For using ObjectIDs
)

// Error constants for repository layer
var (
	ErrNotFound      = RepositoryError("not found")
	ErrDuplicateKey  = RepositoryError("duplicate key")
	ErrUpdateFailed  = RepositoryError("update failed")
	ErrDeleteFailed  = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// EventRepository defines the interface for interacting with calendar events.
// GetByUserAndTimeRange is the range query the plan generator builds its
// conflict picture from.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Event, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Event, error)
	GetByUserAndTimeRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.Event, error)
	GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) error
}

// TrainingPlanRepository defines the interface for interacting with training plan data.
type TrainingPlanRepository interface {
	Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.TrainingPlan, error)
	Update(ctx context.Context, plan *domain.TrainingPlan) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PlanPreferencesRepository stores the generation parameters of a plan.
type PlanPreferencesRepository interface {
	Create(ctx context.Context, prefs *domain.PlanPreferences) (primitive.ObjectID, error)
	GetByPlanID(ctx context.Context, planID primitive.ObjectID) (*domain.PlanPreferences, error)
	DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) error
}
