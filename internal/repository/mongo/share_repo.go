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

const shareCollectionName = "shares"

// mongoShareRepository implements repository.ShareRepository
type mongoShareRepository struct {
	collection *mongo.Collection
	ids        *sequence
}

// NewMongoShareRepository creates a new Share repository backed by MongoDB.
func NewMongoShareRepository(db *mongo.Database) repository.ShareRepository {
	return &mongoShareRepository{
		collection: db.Collection(shareCollectionName),
		ids:        newSequence(db, shareCollectionName),
	}
}

// Create inserts a new share. A recipient holds at most one share per plan.
func (r *mongoShareRepository) Create(ctx context.Context, share *domain.Share) (int64, error) {
	if share.PlanID == 0 || share.CreatorID == "" || share.RecipientID == "" {
		return 0, errors.New("share requires planId, creatorId and recipientId")
	}
	id, err := r.ids.Next(ctx)
	if err != nil {
		return 0, err
	}
	share.ID = id
	share.SharedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, share); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return 0, repository.ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a share by its ID.
func (r *mongoShareRepository) GetByID(ctx context.Context, id int64) (*domain.Share, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByPlanAndRecipient retrieves the recipient's share of a plan.
func (r *mongoShareRepository) GetByPlanAndRecipient(ctx context.Context, planID int64, recipientID string) (*domain.Share, error) {
	return r.findOne(ctx, bson.M{"planId": planID, "recipientId": recipientID})
}

func (r *mongoShareRepository) findOne(ctx context.Context, filter bson.M) (*domain.Share, error) {
	var share domain.Share
	err := r.collection.FindOne(ctx, filter).Decode(&share)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &share, nil
}

// ListByPlan retrieves the shares of a plan in creation order.
func (r *mongoShareRepository) ListByPlan(ctx context.Context, planID int64) ([]domain.Share, error) {
	return r.find(ctx, bson.M{"planId": planID})
}

// ListByRecipient retrieves the shares a user received in creation order.
func (r *mongoShareRepository) ListByRecipient(ctx context.Context, recipientID string) ([]domain.Share, error) {
	return r.find(ctx, bson.M{"recipientId": recipientID})
}

func (r *mongoShareRepository) find(ctx context.Context, filter bson.M) ([]domain.Share, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(creationOrder))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	shares := []domain.Share{}
	if err = cursor.All(ctx, &shares); err != nil {
		return nil, err
	}
	return shares, nil
}

// Delete removes a share.
func (r *mongoShareRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureShareIndexes creates necessary indexes. Call during startup.
func EnsureShareIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "planId", Value: 1}, {Key: "recipientId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "recipientId", Value: 1}}},
	})
}
