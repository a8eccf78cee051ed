package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/prpradhan13/myBuddy-sub000/internal/domain"
	"github.com/prpradhan13/myBuddy-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	exerciseCollectionName = "exercises"
	setSequenceName        = "sets"
)

// mongoExerciseRepository implements repository.ExerciseRepository.
// Target sets are embedded in the exercise document.
type mongoExerciseRepository struct {
	collection *mongo.Collection
	ids        *sequence
	setIDs     *sequence
}

// NewMongoExerciseRepository creates a new Exercise repository.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
		ids:        newSequence(db, exerciseCollectionName),
		setIDs:     newSequence(db, setSequenceName),
	}
}

// Create inserts a new exercise, giving each target set its own id.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (int64, error) {
	if exercise.DayID == 0 || exercise.PlanID == 0 || exercise.Name == "" {
		return 0, errors.New("exercise requires dayId, planId and name")
	}
	id, err := r.ids.Next(ctx)
	if err != nil {
		return 0, err
	}
	for i := range exercise.Sets {
		setID, err := r.setIDs.Next(ctx)
		if err != nil {
			return 0, err
		}
		exercise.Sets[i].ID = setID
	}
	if exercise.Sets == nil {
		exercise.Sets = []domain.TargetSet{}
	}
	exercise.ID = id
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, exercise); err != nil {
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a single exercise by its ID.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// ListByDay retrieves the exercises of a day in creation order.
func (r *mongoExerciseRepository) ListByDay(ctx context.Context, dayID int64) ([]domain.Exercise, error) {
	return r.find(ctx, bson.M{"dayId": dayID})
}

// ListByPlan retrieves every exercise of a plan in creation order.
func (r *mongoExerciseRepository) ListByPlan(ctx context.Context, planID int64) ([]domain.Exercise, error) {
	return r.find(ctx, bson.M{"planId": planID})
}

func (r *mongoExerciseRepository) find(ctx context.Context, filter bson.M) ([]domain.Exercise, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(creationOrder))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	exercises := []domain.Exercise{}
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// DeleteByPlan removes every exercise of a plan.
func (r *mongoExerciseRepository) DeleteByPlan(ctx context.Context, planID int64) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"planId": planID})
	return err
}

// EnsureExerciseIndexes creates necessary indexes. Call during startup.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "dayId", Value: 1}}},
		{Keys: bson.D{{Key: "planId", Value: 1}}},
	})
}
