// internal/repository/mongo/day_repo.go
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

const dayCollectionName = "days"

// mongoDayRepository implements repository.DayRepository
type mongoDayRepository struct {
	collection *mongo.Collection
	ids        *sequence
}

// NewMongoDayRepository creates a new Day repository.
func NewMongoDayRepository(db *mongo.Database) repository.DayRepository {
	return &mongoDayRepository{
		collection: db.Collection(dayCollectionName),
		ids:        newSequence(db, dayCollectionName),
	}
}

// Create inserts a new day. The unique (planId, weekNumber, dayName) index rejects repeats.
func (r *mongoDayRepository) Create(ctx context.Context, day *domain.Day) (int64, error) {
	if day.PlanID == 0 || day.WeekNumber < 1 || day.DayName == "" {
		return 0, errors.New("day requires planId, a positive weekNumber and dayName")
	}
	id, err := r.ids.Next(ctx)
	if err != nil {
		return 0, err
	}
	day.ID = id
	now := time.Now().UTC()
	day.CreatedAt = now
	day.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, day); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return 0, repository.ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a single day by its ID.
func (r *mongoDayRepository) GetByID(ctx context.Context, id int64) (*domain.Day, error) {
	var day domain.Day
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&day)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &day, nil
}

// ListByPlan retrieves the days of a plan ordered by week, then creation.
func (r *mongoDayRepository) ListByPlan(ctx context.Context, planID int64) ([]domain.Day, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "weekNumber", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"planId": planID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	days := []domain.Day{}
	if err = cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// DeleteByPlan removes every day of a plan.
func (r *mongoDayRepository) DeleteByPlan(ctx context.Context, planID int64) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"planId": planID})
	return err
}

// EnsureDayIndexes creates necessary indexes. Call during startup.
func EnsureDayIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "planId", Value: 1}, {Key: "weekNumber", Value: 1}, {Key: "dayName", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}
