package service

import (
	"context"
	"errors"
	"time"

	"planner/training-app/internal/domain"
	"planner/training-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. They mimic the mongo implementations' observable
// behavior: assigned ObjectIDs, repository.ErrNotFound, immediate individual
// writes.

type fakePlanRepo struct {
	plans   map[primitive.ObjectID]*domain.TrainingPlan
	failing bool
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[primitive.ObjectID]*domain.TrainingPlan)}
}

func (r *fakePlanRepo) Create(_ context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error) {
	if r.failing {
		return primitive.NilObjectID, errors.New("plan insert refused")
	}
	plan.ID = primitive.NewObjectID()
	stored := *plan
	r.plans[plan.ID] = &stored
	return plan.ID, nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *plan
	return &copied, nil
}

func (r *fakePlanRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.TrainingPlan, error) {
	var out []domain.TrainingPlan
	for _, plan := range r.plans {
		if plan.UserID == userID {
			out = append(out, *plan)
		}
	}
	return out, nil
}

func (r *fakePlanRepo) Update(_ context.Context, plan *domain.TrainingPlan) error {
	if _, ok := r.plans[plan.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *plan
	r.plans[plan.ID] = &stored
	return nil
}

func (r *fakePlanRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.plans, id)
	return nil
}

type fakeEventRepo struct {
	events []domain.Event
	// failAfter refuses the Nth create (0-indexed); -1 never fails.
	failAfter int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{failAfter: -1}
}

func (r *fakeEventRepo) Create(_ context.Context, event *domain.Event) (primitive.ObjectID, error) {
	if r.failAfter >= 0 && len(r.events) >= r.failAfter {
		return primitive.NilObjectID, errors.New("event insert refused")
	}
	event.ID = primitive.NewObjectID()
	r.events = append(r.events, *event)
	return event.ID, nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Event, error) {
	for _, ev := range r.events {
		if ev.ID == id {
			copied := ev
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeEventRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.Event, error) {
	var out []domain.Event
	for _, ev := range r.events {
		if ev.UserID == userID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) GetByUserAndTimeRange(_ context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.Event, error) {
	var out []domain.Event
	for _, ev := range r.events {
		if ev.UserID == userID && ev.StartTime.Before(end) && ev.EndTime.After(start) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) GetByPlanID(_ context.Context, planID primitive.ObjectID) ([]domain.Event, error) {
	var out []domain.Event
	for _, ev := range r.events {
		if ev.TrainingPlanID != nil && *ev.TrainingPlanID == planID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) Update(_ context.Context, event *domain.Event) error {
	for i, ev := range r.events {
		if ev.ID == event.ID {
			r.events[i] = *event
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeEventRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, ev := range r.events {
		if ev.ID == id {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeEventRepo) DeleteByPlanID(_ context.Context, planID primitive.ObjectID) error {
	var kept []domain.Event
	for _, ev := range r.events {
		if ev.TrainingPlanID == nil || *ev.TrainingPlanID != planID {
			kept = append(kept, ev)
		}
	}
	r.events = kept
	return nil
}

type fakePrefsRepo struct {
	prefs map[primitive.ObjectID]*domain.PlanPreferences // keyed by plan ID
}

func newFakePrefsRepo() *fakePrefsRepo {
	return &fakePrefsRepo{prefs: make(map[primitive.ObjectID]*domain.PlanPreferences)}
}

func (r *fakePrefsRepo) Create(_ context.Context, prefs *domain.PlanPreferences) (primitive.ObjectID, error) {
	prefs.ID = primitive.NewObjectID()
	stored := *prefs
	r.prefs[prefs.TrainingPlanID] = &stored
	return prefs.ID, nil
}

func (r *fakePrefsRepo) GetByPlanID(_ context.Context, planID primitive.ObjectID) (*domain.PlanPreferences, error) {
	prefs, ok := r.prefs[planID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *prefs
	return &copied, nil
}

func (r *fakePrefsRepo) DeleteByPlanID(_ context.Context, planID primitive.ObjectID) error {
	delete(r.prefs, planID)
	return nil
}
