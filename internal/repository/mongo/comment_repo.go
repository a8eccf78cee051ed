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

const commentCollectionName = "comments"

// mongoCommentRepository implements repository.CommentRepository
type mongoCommentRepository struct {
	collection *mongo.Collection
	ids        *sequence
}

// NewMongoCommentRepository creates a new Comment repository backed by MongoDB.
func NewMongoCommentRepository(db *mongo.Database) repository.CommentRepository {
	return &mongoCommentRepository{
		collection: db.Collection(commentCollectionName),
		ids:        newSequence(db, commentCollectionName),
	}
}

// Create inserts a new comment or reply.
func (r *mongoCommentRepository) Create(ctx context.Context, comment *domain.Comment) (int64, error) {
	if comment.PlanID == 0 || comment.UserID == "" || comment.Text == "" {
		return 0, errors.New("comment requires planId, userId and text")
	}
	id, err := r.ids.Next(ctx)
	if err != nil {
		return 0, err
	}
	comment.ID = id
	comment.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, comment); err != nil {
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a comment by its ID.
func (r *mongoCommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// ListByPlan retrieves the whole discussion of a plan, flat, in creation order.
func (r *mongoCommentRepository) ListByPlan(ctx context.Context, planID int64) ([]domain.Comment, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"planId": planID}, options.Find().SetSort(creationOrder))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []domain.Comment{}
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// Delete removes a single comment. Its replies stay and become orphans.
func (r *mongoCommentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByPlan removes the whole discussion of a plan.
func (r *mongoCommentRepository) DeleteByPlan(ctx context.Context, planID int64) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"planId": planID})
	return err
}

// EnsureCommentIndexes creates necessary indexes. Call during startup.
func EnsureCommentIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "planId", Value: 1}, {Key: "_id", Value: 1}}},
	})
}
