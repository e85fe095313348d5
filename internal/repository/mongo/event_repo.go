// internal/repository/mongo/event_repo.go
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

const eventCollectionName = "events"

// mongoEventRepository implements repository.EventRepository
type mongoEventRepository struct {
	collection *mongo.Collection
}

// NewMongoEventRepository creates a new Event repository.
func NewMongoEventRepository(db *mongo.Database) repository.EventRepository {
	return &mongoEventRepository{
		collection: db.Collection(eventCollectionName),
	}
}

// Create inserts a new event.
func (r *mongoEventRepository) Create(ctx context.Context, event *domain.Event) (primitive.ObjectID, error) {
	if event.UserID == primitive.NilObjectID || event.Title == "" {
		return primitive.NilObjectID, errors.New("event requires userId and title")
	}
	if !event.EndTime.After(event.StartTime) {
		return primitive.NilObjectID, errors.New("event endTime must be after startTime")
	}

	event.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted event ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single event by its ID.
func (r *mongoEventRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Event, error) {
	var event domain.Event
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// GetByUserID retrieves all events owned by a user, earliest first.
func (r *mongoEventRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Event, error) {
	return r.findMany(ctx, bson.M{"userId": userID})
}

// GetByUserAndTimeRange retrieves a user's events overlapping [start, end].
// This is the range query the plan generator uses to detect conflicts, so the
// filter matches any event that intersects the window, not just events fully
// contained in it.
func (r *mongoEventRepository) GetByUserAndTimeRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.Event, error) {
	filter := bson.M{
		"userId":    userID,
		"startTime": bson.M{"$lt": end},
		"endTime":   bson.M{"$gt": start},
	}
	return r.findMany(ctx, filter)
}

// GetByPlanID retrieves all events linked to a training plan.
func (r *mongoEventRepository) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Event, error) {
	return r.findMany(ctx, bson.M{"trainingPlanId": planID})
}

func (r *mongoEventRepository) findMany(ctx context.Context, filter bson.M) ([]domain.Event, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []domain.Event
	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	// Return empty slice if no events found (not an error)
	return events, nil
}

// Update overwrites the mutable fields of an event.
func (r *mongoEventRepository) Update(ctx context.Context, event *domain.Event) error {
	if event.ID == primitive.NilObjectID {
		return errors.New("event ID is required for update")
	}
	if !event.EndTime.After(event.StartTime) {
		return errors.New("event endTime must be after startTime")
	}

	filter := bson.M{"_id": event.ID}
	// UserID and TrainingPlanID are not updatable through this path.
	updateDoc := bson.M{
		"$set": bson.M{
			"title":           event.Title,
			"description":     event.Description,
			"startTime":       event.StartTime,
			"endTime":         event.EndTime,
			"eventType":       event.EventType,
			"workoutType":     event.WorkoutType,
			"difficultyLevel": event.DifficultyLevel,
			"updatedAt":       time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a single event.
func (r *mongoEventRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByPlanID removes every event linked to a training plan. Deleting a
// plan with no events is not an error.
func (r *mongoEventRepository) DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"trainingPlanId": planID})
	return err
}

// EnsureEventIndexes creates necessary indexes. Call during startup.
func EnsureEventIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Compound index for the range query: a user's events in a window
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "trainingPlanId", Value: 1}},
			Options: options.Index().SetSparse(true), // manual events carry no plan ID
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
