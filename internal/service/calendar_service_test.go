package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"planner/training-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedEvent(repo *fakeEventRepo, userID primitive.ObjectID, startHour int) domain.Event {
	ev := domain.Event{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Title:     "seeded",
		StartTime: time.Date(2025, time.June, 2, startHour, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, time.June, 2, startHour+1, 0, 0, 0, time.UTC),
	}
	repo.events = append(repo.events, ev)
	return ev
}

func TestCalendarService_OwnershipEnforced(t *testing.T) {
	eventRepo := newFakeEventRepo()
	svc := NewCalendarService(eventRepo)

	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()
	ev := seedEvent(eventRepo, owner, 9)

	if _, err := svc.GetEvent(context.Background(), intruder, ev.ID); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("get: expected ErrAccessDenied, got %v", err)
	}
	if err := svc.DeleteEvent(context.Background(), intruder, ev.ID); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("delete: expected ErrAccessDenied, got %v", err)
	}
	if _, err := svc.GetEvent(context.Background(), owner, ev.ID); err != nil {
		t.Errorf("owner access should succeed, got %v", err)
	}
}

func TestCalendarService_CreateRejectsInvertedTimes(t *testing.T) {
	svc := NewCalendarService(newFakeEventRepo())

	_, err := svc.CreateEvent(context.Background(), primitive.NewObjectID(), EventInput{
		Title:     "backwards",
		StartTime: time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrInvalidEventTimes) {
		t.Errorf("expected ErrInvalidEventTimes, got %v", err)
	}
}

func TestCalendarService_ListWithRange(t *testing.T) {
	eventRepo := newFakeEventRepo()
	svc := NewCalendarService(eventRepo)

	userID := primitive.NewObjectID()
	seedEvent(eventRepo, userID, 7)
	seedEvent(eventRepo, userID, 15)
	seedEvent(eventRepo, primitive.NewObjectID(), 7) // someone else's

	start := time.Date(2025, time.June, 2, 6, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC)
	events, err := svc.ListEvents(context.Background(), userID, &start, &end)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(events) != 1 || events[0].StartTime.Hour() != 7 {
		t.Errorf("expected only the 07:00 event in range, got %d events", len(events))
	}

	all, err := svc.ListEvents(context.Background(), userID, nil, nil)
	if err != nil {
		t.Fatalf("ListEvents (no range) failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected both of the user's events, got %d", len(all))
	}
}

func TestPlanService_DeleteCascades(t *testing.T) {
	planRepo := newFakePlanRepo()
	eventRepo := newFakeEventRepo()
	prefsRepo := newFakePrefsRepo()
	plannerSvc := NewPlannerService(planRepo, eventRepo, prefsRepo)
	planSvc := NewPlanService(planRepo, eventRepo, prefsRepo)

	userID := primitive.NewObjectID()
	result, err := plannerSvc.GeneratePlan(context.Background(), userID, baseRequest())
	if err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}

	if err := planSvc.DeletePlan(context.Background(), userID, result.Plan.ID); err != nil {
		t.Fatalf("DeletePlan failed: %v", err)
	}
	if len(eventRepo.events) != 0 {
		t.Errorf("expected generated events to be deleted with the plan, got %d left", len(eventRepo.events))
	}
	if _, err := prefsRepo.GetByPlanID(context.Background(), result.Plan.ID); err == nil {
		t.Errorf("expected preferences to be deleted with the plan")
	}
}

func TestPlanService_GetPlanIncludesEventsAndPreferences(t *testing.T) {
	planRepo := newFakePlanRepo()
	eventRepo := newFakeEventRepo()
	prefsRepo := newFakePrefsRepo()
	plannerSvc := NewPlannerService(planRepo, eventRepo, prefsRepo)
	planSvc := NewPlanService(planRepo, eventRepo, prefsRepo)

	userID := primitive.NewObjectID()
	result, err := plannerSvc.GeneratePlan(context.Background(), userID, baseRequest())
	if err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}

	detail, err := planSvc.GetPlan(context.Background(), userID, result.Plan.ID)
	if err != nil {
		t.Fatalf("GetPlan failed: %v", err)
	}
	if len(detail.Events) != len(result.Events) {
		t.Errorf("expected %d events on the plan, got %d", len(result.Events), len(detail.Events))
	}
	if detail.Preferences == nil {
		t.Errorf("expected generation preferences on the plan")
	}

	// Another user cannot read it.
	if _, err := planSvc.GetPlan(context.Background(), primitive.NewObjectID(), result.Plan.ID); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied for foreign plan, got %v", err)
	}
}
