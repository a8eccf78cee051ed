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

const reviewCollectionName = "reviews"

// mongoReviewRepository implements repository.ReviewRepository
type mongoReviewRepository struct {
	collection *mongo.Collection
	ids        *sequence
}

// NewMongoReviewRepository creates a new Review repository backed by MongoDB.
func NewMongoReviewRepository(db *mongo.Database) repository.ReviewRepository {
	return &mongoReviewRepository{
		collection: db.Collection(reviewCollectionName),
		ids:        newSequence(db, reviewCollectionName),
	}
}

// Create inserts a review. The unique (planId, userId) index rejects a second review.
func (r *mongoReviewRepository) Create(ctx context.Context, review *domain.Review) (int64, error) {
	if review.PlanID == 0 || review.UserID == "" {
		return 0, errors.New("review requires planId and userId")
	}
	id, err := r.ids.Next(ctx)
	if err != nil {
		return 0, err
	}
	review.ID = id
	now := time.Now().UTC()
	review.CreatedAt = now
	review.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return 0, repository.ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

// ListByPlan retrieves the reviews of a plan, newest first.
func (r *mongoReviewRepository) ListByPlan(ctx context.Context, planID int64) ([]domain.Review, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"planId": planID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := []domain.Review{}
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// Summary counts the reviews of a plan and averages their ratings on the server.
func (r *mongoReviewRepository) Summary(ctx context.Context, planID int64) (*domain.ReviewSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"planId": planID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$planId",
			"count":   bson.M{"$sum": 1},
			"average": bson.M{"$avg": "$rating"},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	summary := &domain.ReviewSummary{PlanID: planID}
	if cursor.Next(ctx) {
		var row struct {
			Count   int     `bson:"count"`
			Average float64 `bson:"average"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		summary.Count = row.Count
		summary.AverageRating = row.Average
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *mongoReviewRepository) DeleteByPlan(ctx context.Context, planID int64) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"planId": planID})
	return err
}

// EnsureReviewIndexes creates necessary indexes. Call during startup.
func EnsureReviewIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "planId", Value: 1}, {Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}
