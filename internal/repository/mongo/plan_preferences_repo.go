package mongo

import (
	"context"
	"errors"
	"time"

	"planner/training-app/internal/domain"
	"planner/training-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const planPreferencesCollectionName = "plan_preferences"

// mongoPlanPreferencesRepository implements repository.PlanPreferencesRepository
type mongoPlanPreferencesRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanPreferencesRepository creates a new PlanPreferences repository.
func NewMongoPlanPreferencesRepository(db *mongo.Database) repository.PlanPreferencesRepository {
	return &mongoPlanPreferencesRepository{
		collection: db.Collection(planPreferencesCollectionName),
	}
}

// Create inserts the generation parameters record for a plan.
func (r *mongoPlanPreferencesRepository) Create(ctx context.Context, prefs *domain.PlanPreferences) (primitive.ObjectID, error) {
	if prefs.TrainingPlanID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("preferences require trainingPlanId")
	}
	prefs.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	prefs.CreatedAt = now
	prefs.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, prefs)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted preferences ID")
	}
	return insertedID, nil
}

// GetByPlanID retrieves the preferences attached to a plan. One record per plan.
func (r *mongoPlanPreferencesRepository) GetByPlanID(ctx context.Context, planID primitive.ObjectID) (*domain.PlanPreferences, error) {
	var prefs domain.PlanPreferences
	err := r.collection.FindOne(ctx, bson.M{"trainingPlanId": planID}).Decode(&prefs)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &prefs, nil
}

// DeleteByPlanID removes the preferences for a plan. Missing preferences are
// not an error; manually created plans never had any.
func (r *mongoPlanPreferencesRepository) DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"trainingPlanId": planID})
	return err
}

// EnsurePlanPreferencesIndexes creates necessary indexes. Call during startup.
func EnsurePlanPreferencesIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainingPlanId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
