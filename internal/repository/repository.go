package repository

import (
	"context" // Standard for request-scoped deadlines, cancellation signals, etc.

	"github.com/prpradhan13/myBuddy-sub000/internal/domain"
)

// Error constants for the repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate record")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ProfileRepository stores public user profiles keyed by the auth subject.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, userID string) (*domain.Profile, error)
	// GetByIDs returns the profiles that exist; unknown ids are skipped.
	GetByIDs(ctx context.Context, userIDs []string) ([]domain.Profile, error)
}

// PlanRepository defines the interface for interacting with workout plans.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Plan, error)
	ListByCreator(ctx context.Context, creatorID string) ([]domain.Plan, error)
	ListPublic(ctx context.Context) ([]domain.Plan, error)
	Update(ctx context.Context, plan *domain.Plan) error
	Delete(ctx context.Context, id int64, creatorID string) error // Ensure creator owns the plan
}

// DayRepository defines the interface for the days of a plan.
type DayRepository interface {
	// Create returns ErrDuplicate when the plan already has the (week, day) pair.
	Create(ctx context.Context, day *domain.Day) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Day, error)
	// ListByPlan orders days by week number, then by creation.
	ListByPlan(ctx context.Context, planID int64) ([]domain.Day, error)
	DeleteByPlan(ctx context.Context, planID int64) error
}

// ExerciseRepository defines the interface for the exercises of a day.
type ExerciseRepository interface {
	// Create assigns ids to the exercise and to each of its target sets.
	Create(ctx context.Context, exercise *domain.Exercise) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Exercise, error)
	ListByDay(ctx context.Context, dayID int64) ([]domain.Exercise, error)
	ListByPlan(ctx context.Context, planID int64) ([]domain.Exercise, error)
	DeleteByPlan(ctx context.Context, planID int64) error
}

// ShareRepository defines the interface for plan shares.
type ShareRepository interface {
	// Create returns ErrDuplicate when the recipient already has the plan.
	Create(ctx context.Context, share *domain.Share) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Share, error)
	GetByPlanAndRecipient(ctx context.Context, planID int64, recipientID string) (*domain.Share, error)
	ListByPlan(ctx context.Context, planID int64) ([]domain.Share, error)
	ListByRecipient(ctx context.Context, recipientID string) ([]domain.Share, error)
	Delete(ctx context.Context, id int64) error
}

// AchievementRepository defines the interface for logged achievements.
type AchievementRepository interface {
	Create(ctx context.Context, achievement *domain.Achievement) (int64, error)
	// ListByShare returns all achievements of a share in logging order.
	ListByShare(ctx context.Context, shareID int64) ([]domain.Achievement, error)
	DeleteByShare(ctx context.Context, shareID int64) error
}

// CommentRepository defines the interface for plan comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	// ListByPlan returns all comments of a plan in creation order.
	ListByPlan(ctx context.Context, planID int64) ([]domain.Comment, error)
	Delete(ctx context.Context, id int64) error
	DeleteByPlan(ctx context.Context, planID int64) error
}

// ReviewRepository defines the interface for plan reviews.
type ReviewRepository interface {
	// Create returns ErrDuplicate when the user already reviewed the plan.
	Create(ctx context.Context, review *domain.Review) (int64, error)
	ListByPlan(ctx context.Context, planID int64) ([]domain.Review, error)
	Summary(ctx context.Context, planID int64) (*domain.ReviewSummary, error)
	DeleteByPlan(ctx context.Context, planID int64) error
}
