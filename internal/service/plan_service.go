package service

import (
	"context"
	"errors"

	"planner/training-app/internal/domain"
	"planner/training-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound      = errors.New("training plan not found")
	ErrInvalidPlanStatus = errors.New("invalid training plan status")
)

// PlanDetail bundles a plan with its child events and, when the plan was
// generated, the preferences it was generated from.
type PlanDetail struct {
	Plan        *domain.TrainingPlan
	Events      []domain.Event
	Preferences *domain.PlanPreferences // nil for manually created plans
}

// PlanUpdate carries the optional fields of a plan update; nil means "leave
// unchanged".
type PlanUpdate struct {
	Title       *string
	Description *string
	Status      *domain.PlanStatus
}

// --- Service Interface ---
type PlanService interface {
	ListPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.TrainingPlan, error)
	GetPlan(ctx context.Context, userID, planID primitive.ObjectID) (*PlanDetail, error)
	UpdatePlan(ctx context.Context, userID, planID primitive.ObjectID, update PlanUpdate) (*domain.TrainingPlan, error)
	DeletePlan(ctx context.Context, userID, planID primitive.ObjectID) error
}

// --- Service Implementation ---

// planService implements the PlanService interface.
type planService struct {
	planRepo  repository.TrainingPlanRepository
	eventRepo repository.EventRepository
	prefsRepo repository.PlanPreferencesRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	planRepo repository.TrainingPlanRepository,
	eventRepo repository.EventRepository,
	prefsRepo repository.PlanPreferencesRepository,
) PlanService {
	return &planService{
		planRepo:  planRepo,
		eventRepo: eventRepo,
		prefsRepo: prefsRepo,
	}
}

// ListPlans returns all plans owned by the user, newest first.
func (s *planService) ListPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.TrainingPlan, error) {
	return s.planRepo.GetByUserID(ctx, userID)
}

// getOwnedPlan loads a plan and verifies ownership.
func (s *planService) getOwnedPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if err := authorizeOwner(plan.UserID, userID); err != nil {
		return nil, err
	}
	return plan, nil
}

// GetPlan returns an owned plan with its events and generation preferences.
func (s *planService) GetPlan(ctx context.Context, userID, planID primitive.ObjectID) (*PlanDetail, error) {
	plan, err := s.getOwnedPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepo.GetByPlanID(ctx, planID)
	if err != nil {
		return nil, err
	}

	prefs, err := s.prefsRepo.GetByPlanID(ctx, planID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	return &PlanDetail{Plan: plan, Events: events, Preferences: prefs}, nil
}

// UpdatePlan applies the provided fields to an owned plan.
func (s *planService) UpdatePlan(ctx context.Context, userID, planID primitive.ObjectID, update PlanUpdate) (*domain.TrainingPlan, error) {
	plan, err := s.getOwnedPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		plan.Title = *update.Title
	}
	if update.Description != nil {
		plan.Description = *update.Description
	}
	if update.Status != nil {
		if !update.Status.IsValid() {
			return nil, ErrInvalidPlanStatus
		}
		plan.Status = *update.Status
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// DeletePlan removes an owned plan together with its generated events and
// preferences. The three deletes are not atomic; a failure partway can leave
// the plan gone with events still present, which a retry cleans up.
func (s *planService) DeletePlan(ctx context.Context, userID, planID primitive.ObjectID) error {
	if _, err := s.getOwnedPlan(ctx, userID, planID); err != nil {
		return err
	}

	if err := s.planRepo.Delete(ctx, planID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	if err := s.eventRepo.DeleteByPlanID(ctx, planID); err != nil {
		return err
	}
	return s.prefsRepo.DeleteByPlanID(ctx, planID)
}
