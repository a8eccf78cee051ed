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

const achievementCollectionName = "achievements"

// mongoAchievementRepository implements repository.AchievementRepository
type mongoAchievementRepository struct {
	collection *mongo.Collection
	ids        *sequence
}

// NewMongoAchievementRepository creates a new Achievement repository backed by MongoDB.
func NewMongoAchievementRepository(db *mongo.Database) repository.AchievementRepository {
	return &mongoAchievementRepository{
		collection: db.Collection(achievementCollectionName),
		ids:        newSequence(db, achievementCollectionName),
	}
}

// Create inserts a logged achievement.
func (r *mongoAchievementRepository) Create(ctx context.Context, achievement *domain.Achievement) (int64, error) {
	if achievement.ShareID == 0 || achievement.SetID == 0 || achievement.RecipientID == "" {
		return 0, errors.New("achievement requires shareId, setId and recipientId")
	}
	id, err := r.ids.Next(ctx)
	if err != nil {
		return 0, err
	}
	achievement.ID = id
	achievement.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, achievement); err != nil {
		return 0, err
	}
	return id, nil
}

// ListByShare retrieves all achievements of a share in logging order.
func (r *mongoAchievementRepository) ListByShare(ctx context.Context, shareID int64) ([]domain.Achievement, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"shareId": shareID}, options.Find().SetSort(creationOrder))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	achievements := []domain.Achievement{}
	if err = cursor.All(ctx, &achievements); err != nil {
		return nil, err
	}
	return achievements, nil
}

// DeleteByShare removes every achievement of a share.
func (r *mongoAchievementRepository) DeleteByShare(ctx context.Context, shareID int64) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"shareId": shareID})
	return err
}

// EnsureAchievementIndexes creates necessary indexes. Call during startup.
func EnsureAchievementIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "shareId", Value: 1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "recipientId", Value: 1}}},
	})
}


