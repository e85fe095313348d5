package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"planner/training-app/internal/domain"
	"planner/training-app/internal/planner"
	"planner/training-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	// ErrInvalidPlanRequest marks semantic validation failures of a
	// generation request. Wrapped with a detail message at each check site.
	ErrInvalidPlanRequest = errors.New("invalid plan request")
)

// PlanRequest is one plan-generation request. The transport layer has
// already checked the shape; this layer checks the semantics.
type PlanRequest struct {
	StartDate       time.Time
	EndDate         time.Time
	Frequency       int    // workouts per week
	TimeOfDay       string // 'morning', 'afternoon', 'evening'
	DurationMinutes int
	PrepMinutes     int
	CooldownMinutes int
	WorkoutTypes    []string
	DifficultyLevel string
	DaysOfWeek      []string
}

// PlanGenerationResult is what a successful generation reports back.
type PlanGenerationResult struct {
	Plan        *domain.TrainingPlan
	Events      []domain.Event
	IgnoredDays []string // unrecognized day-of-week names from the request
	Message     string
}

// --- Service Interface ---
type PlannerService interface {
	GeneratePlan(ctx context.Context, userID primitive.ObjectID, req PlanRequest) (*PlanGenerationResult, error)
}

// --- Service Implementation ---

// plannerService implements the PlannerService interface. It composes the
// planner package's slot finder and day filter with the repositories: create
// the plan record, discover free slots against the user's calendar, then
// materialize prep/workout/cooldown events into those slots.
type plannerService struct {
	planRepo  repository.TrainingPlanRepository
	eventRepo repository.EventRepository
	prefsRepo repository.PlanPreferencesRepository
	buckets   []planner.Bucket
}

// NewPlannerService creates a new instance of plannerService using the
// standard time-of-day bucket table.
func NewPlannerService(
	planRepo repository.TrainingPlanRepository,
	eventRepo repository.EventRepository,
	prefsRepo repository.PlanPreferencesRepository,
) PlannerService {
	return &plannerService{
		planRepo:  planRepo,
		eventRepo: eventRepo,
		prefsRepo: prefsRepo,
		buckets:   planner.DefaultBuckets,
	}
}

// GeneratePlan runs one generation request end to end, sequentially:
// validate, create the plan record, query existing events, find free slots,
// filter by weekday, materialize events. Writes are individual and
// immediate; a failure partway leaves the earlier writes in place (an
// accepted limitation — there is no compensating rollback). Two concurrent
// generations for the same user can also both pass the conflict check
// against the same snapshot and book overlapping slots; callers that care
// must serialize.
func (s *plannerService) GeneratePlan(ctx context.Context, userID primitive.ObjectID, req PlanRequest) (*PlanGenerationResult, error) {
	bucket, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	// 1. The plan record must exist before any child event: events link back
	// to its assigned ID.
	plan := &domain.TrainingPlan{
		UserID:    userID,
		Title:     "Training Plan - " + req.StartDate.Format("2006-01-02"),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    domain.PlanStatusActive,
	}
	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, wrapGeneration(err)
	}
	plan.ID = planID

	// Record the generation parameters alongside the plan.
	prefs := &domain.PlanPreferences{
		TrainingPlanID:  planID,
		Frequency:       req.Frequency,
		TimeOfDay:       req.TimeOfDay,
		DurationMinutes: req.DurationMinutes,
		PrepMinutes:     req.PrepMinutes,
		CooldownMinutes: req.CooldownMinutes,
		WorkoutTypes:    req.WorkoutTypes,
		DifficultyLevel: req.DifficultyLevel,
		DaysOfWeek:      req.DaysOfWeek,
	}
	if _, err := s.prefsRepo.Create(ctx, prefs); err != nil {
		return nil, wrapGeneration(err)
	}

	// 2. Existing events in the window form the conflict picture. The window
	// dates are midnight instants but the last date is inclusive, so the
	// query runs to the end of that day.
	queryEnd := time.Date(req.EndDate.Year(), req.EndDate.Month(), req.EndDate.Day(), 0, 0, 0, 0, req.EndDate.Location()).AddDate(0, 0, 1)
	existingEvents, err := s.eventRepo.GetByUserAndTimeRange(ctx, userID, req.StartDate, queryEnd)
	if err != nil {
		return nil, wrapGeneration(err)
	}
	existing := make([]planner.Interval, len(existingEvents))
	for i, ev := range existingEvents {
		existing[i] = planner.Interval{Start: ev.StartTime, End: ev.EndTime}
	}

	// 3. A slot must hold the whole session: prep + workout + cooldown.
	totalDuration := time.Duration(req.PrepMinutes+req.DurationMinutes+req.CooldownMinutes) * time.Minute
	slots, err := planner.FindAvailableSlots(existing, req.StartDate, req.EndDate, totalDuration, []planner.Bucket{bucket})
	if err != nil {
		return nil, wrapGeneration(err)
	}

	// 4. Weekday preference.
	slots, ignoredDays := planner.FilterByWeekday(slots, req.DaysOfWeek)

	// 5. Materialize events into the first slots. Fewer slots than requested
	// is not an error; the summary reports the real count.
	events, selected, err := s.materializeEvents(ctx, plan, slots, req, userID)
	if err != nil {
		return nil, wrapGeneration(err)
	}

	return &PlanGenerationResult{
		Plan:        plan,
		Events:      events,
		IgnoredDays: ignoredDays,
		Message:     fmt.Sprintf("Created %d workout sessions with %d total events", selected, len(events)),
	}, nil
}

// validate checks the semantic constraints of a request and resolves its
// time-of-day bucket.
func (s *plannerService) validate(req PlanRequest) (planner.Bucket, error) {
	switch {
	case req.Frequency <= 0:
		return planner.Bucket{}, fmt.Errorf("%w: frequency must be positive, got %d", ErrInvalidPlanRequest, req.Frequency)
	case req.DurationMinutes <= 0:
		return planner.Bucket{}, fmt.Errorf("%w: workout duration must be positive, got %d", ErrInvalidPlanRequest, req.DurationMinutes)
	case req.PrepMinutes < 0 || req.CooldownMinutes < 0:
		return planner.Bucket{}, fmt.Errorf("%w: prep and cooldown minutes cannot be negative", ErrInvalidPlanRequest)
	case len(req.WorkoutTypes) == 0:
		return planner.Bucket{}, fmt.Errorf("%w: at least one workout type is required", ErrInvalidPlanRequest)
	}

	bucket, ok := s.bucketByName(req.TimeOfDay)
	if !ok {
		return planner.Bucket{}, fmt.Errorf("%w: unknown time of day %q", ErrInvalidPlanRequest, req.TimeOfDay)
	}
	return bucket, nil
}

func (s *plannerService) bucketByName(name string) (planner.Bucket, bool) {
	for _, b := range s.buckets {
		if b.Name == strings.ToLower(name) {
			return b, true
		}
	}
	return planner.Bucket{}, false
}

// materializeEvents turns the first req.Frequency slots into persisted
// prep/workout/cooldown events linked to the plan. Workout types are
// assigned round-robin across the selected slots. Each event is written
// individually and immediately; on failure the events already written stay.
// Returns all created events in creation order and the number of slots used.
func (s *plannerService) materializeEvents(ctx context.Context, plan *domain.TrainingPlan, slots []planner.Slot, req PlanRequest, userID primitive.ObjectID) ([]domain.Event, int, error) {
	selected := req.Frequency
	if len(slots) < selected {
		selected = len(slots)
	}

	var created []domain.Event
	for i := 0; i < selected; i++ {
		slot := slots[i]
		workoutType := req.WorkoutTypes[i%len(req.WorkoutTypes)]

		cursor := slot.Start
		if req.PrepMinutes > 0 {
			prepEnd := cursor.Add(time.Duration(req.PrepMinutes) * time.Minute)
			event, err := s.createPlanEvent(ctx, plan, userID, domain.EventTypePrep, workoutType, req.DifficultyLevel, cursor, prepEnd)
			if err != nil {
				return created, i, err
			}
			created = append(created, *event)
			cursor = prepEnd
		}

		workoutEnd := cursor.Add(time.Duration(req.DurationMinutes) * time.Minute)
		event, err := s.createPlanEvent(ctx, plan, userID, domain.EventTypeWorkout, workoutType, req.DifficultyLevel, cursor, workoutEnd)
		if err != nil {
			return created, i, err
		}
		created = append(created, *event)
		cursor = workoutEnd

		if req.CooldownMinutes > 0 {
			cooldownEnd := cursor.Add(time.Duration(req.CooldownMinutes) * time.Minute)
			event, err := s.createPlanEvent(ctx, plan, userID, domain.EventTypeCooldown, workoutType, req.DifficultyLevel, cursor, cooldownEnd)
			if err != nil {
				return created, i, err
			}
			created = append(created, *event)
		}
	}
	return created, selected, nil
}

// createPlanEvent persists one generated event linked to the plan.
func (s *plannerService) createPlanEvent(ctx context.Context, plan *domain.TrainingPlan, userID primitive.ObjectID, eventType domain.EventType, workoutType, difficulty string, start, end time.Time) (*domain.Event, error) {
	event := &domain.Event{
		UserID:          userID,
		TrainingPlanID:  &plan.ID,
		Title:           eventTitle(eventType, workoutType),
		Description:     "Part of " + plan.Title,
		StartTime:       start,
		EndTime:         end,
		EventType:       eventType,
		WorkoutType:     workoutType,
		DifficultyLevel: difficulty,
	}
	eventID, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, err
	}
	event.ID = eventID
	return event, nil
}

// eventTitle builds a readable title like "Cycling workout" or
// "Warm-up (strength training)".
func eventTitle(eventType domain.EventType, workoutType string) string {
	readable := strings.ReplaceAll(workoutType, "_", " ")
	switch eventType {
	case domain.EventTypePrep:
		return fmt.Sprintf("Warm-up (%s)", readable)
	case domain.EventTypeCooldown:
		return fmt.Sprintf("Cooldown (%s)", readable)
	default:
		if readable == "" {
			return "Workout"
		}
		return strings.ToUpper(readable[:1]) + readable[1:] + " workout"
	}
}

// wrapGeneration surfaces any mid-generation failure as the single
// "plan generation failed" condition, keeping the cause for errors.Is.
func wrapGeneration(err error) error {
	return fmt.Errorf("plan generation failed: %w", err)
}
