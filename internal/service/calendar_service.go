package service

import (
	"context"
	"errors"
	"time"

	"planner/training-app/internal/domain"
	"planner/training-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrEventNotFound     = errors.New("event not found")
	ErrInvalidEventTimes = errors.New("event end time must be after start time")
)

// EventInput carries the caller-editable fields of a calendar event.
type EventInput struct {
	Title           string
	Description     string
	StartTime       time.Time
	EndTime         time.Time
	EventType       domain.EventType
	WorkoutType     string
	DifficultyLevel string
}

// --- Service Interface ---
type CalendarService interface {
	CreateEvent(ctx context.Context, userID primitive.ObjectID, input EventInput) (*domain.Event, error)
	GetEvent(ctx context.Context, userID, eventID primitive.ObjectID) (*domain.Event, error)
	ListEvents(ctx context.Context, userID primitive.ObjectID, start, end *time.Time) ([]domain.Event, error)
	UpdateEvent(ctx context.Context, userID, eventID primitive.ObjectID, input EventInput) (*domain.Event, error)
	DeleteEvent(ctx context.Context, userID, eventID primitive.ObjectID) error
}

// --- Service Implementation ---

// calendarService implements the CalendarService interface.
type calendarService struct {
	eventRepo repository.EventRepository
}

// NewCalendarService creates a new instance of calendarService.
func NewCalendarService(eventRepo repository.EventRepository) CalendarService {
	return &calendarService{eventRepo: eventRepo}
}

// CreateEvent persists a manual calendar event for the user.
func (s *calendarService) CreateEvent(ctx context.Context, userID primitive.ObjectID, input EventInput) (*domain.Event, error) {
	if input.Title == "" {
		return nil, errors.New("event title is required")
	}
	if !input.EndTime.After(input.StartTime) {
		return nil, ErrInvalidEventTimes
	}

	event := &domain.Event{
		UserID:          userID,
		Title:           input.Title,
		Description:     input.Description,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		EventType:       input.EventType,
		WorkoutType:     input.WorkoutType,
		DifficultyLevel: input.DifficultyLevel,
		// Manual events carry no TrainingPlanID
	}

	eventID, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, err
	}
	event.ID = eventID
	return event, nil
}

// GetEvent loads an event and verifies the requester owns it.
func (s *calendarService) GetEvent(ctx context.Context, userID, eventID primitive.ObjectID) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if err := authorizeOwner(event.UserID, userID); err != nil {
		return nil, err
	}
	return event, nil
}

// ListEvents returns the user's events, optionally restricted to a time
// range. Both bounds must be set for the range query to apply.
func (s *calendarService) ListEvents(ctx context.Context, userID primitive.ObjectID, start, end *time.Time) ([]domain.Event, error) {
	if start != nil && end != nil {
		return s.eventRepo.GetByUserAndTimeRange(ctx, userID, *start, *end)
	}
	return s.eventRepo.GetByUserID(ctx, userID)
}

// UpdateEvent overwrites the editable fields of an owned event.
func (s *calendarService) UpdateEvent(ctx context.Context, userID, eventID primitive.ObjectID, input EventInput) (*domain.Event, error) {
	event, err := s.GetEvent(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	if !input.EndTime.After(input.StartTime) {
		return nil, ErrInvalidEventTimes
	}

	event.Title = input.Title
	event.Description = input.Description
	event.StartTime = input.StartTime
	event.EndTime = input.EndTime
	event.EventType = input.EventType
	event.WorkoutType = input.WorkoutType
	event.DifficultyLevel = input.DifficultyLevel

	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// DeleteEvent removes an owned event.
func (s *calendarService) DeleteEvent(ctx context.Context, userID, eventID primitive.ObjectID) error {
	// Ownership check requires the load; delete-by-filter would hide the
	// not-found/forbidden distinction.
	if _, err := s.GetEvent(ctx, userID, eventID); err != nil {
		return err
	}
	err := s.eventRepo.Delete(ctx, eventID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrEventNotFound
	}
	return err
}
