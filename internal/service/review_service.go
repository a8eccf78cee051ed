package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prpradhan13/myBuddy-sub000/internal/domain"
	"github.com/prpradhan13/myBuddy-sub000/internal/repository"
)

var (
	ErrInvalidRating = fmt.Errorf("%w: rating must be between %d and %d", ErrValidation, domain.MinRating, domain.MaxRating)
	ErrReviewExists  = errors.New("plan already reviewed by this user")
	ErrReviewOwnPlan = errors.New("creators cannot review their own plan")
)

type ReviewService interface {
	AddReview(ctx context.Context, userID string, planID int64, rating int, text string) (*domain.Review, error)
	ListReviews(ctx context.Context, userID string, planID int64) ([]domain.Review, error)
	Summary(ctx context.Context, userID string, planID int64) (*domain.ReviewSummary, error)
}

type reviewService struct {
	access     planAccess
	reviewRepo repository.ReviewRepository
}

func NewReviewService(
	planRepo repository.PlanRepository,
	shareRepo repository.ShareRepository,
	reviewRepo repository.ReviewRepository,
) ReviewService {
	return &reviewService{
		access:     planAccess{planRepo: planRepo, shareRepo: shareRepo},
		reviewRepo: reviewRepo,
	}
}

func (s *reviewService) AddReview(ctx context.Context, userID string, planID int64, rating int, text string) (*domain.Review, error) {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return nil, ErrInvalidRating
	}

	plan, err := s.access.readable(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	if plan.IsOwnedBy(userID) {
		return nil, ErrReviewOwnPlan
	}

	review := &domain.Review{
		PlanID: planID,
		UserID: userID,
		Rating: rating,
		Text:   strings.TrimSpace(text),
	}
	if _, err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrReviewExists
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListReviews(ctx context.Context, userID string, planID int64) ([]domain.Review, error) {
	if _, err := s.access.readable(ctx, userID, planID); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByPlan(ctx, planID)
}

func (s *reviewService) Summary(ctx context.Context, userID string, planID int64) (*domain.ReviewSummary, error) {
	if _, err := s.access.readable(ctx, userID, planID); err != nil {
		return nil, err
	}
	return s.reviewRepo.Summary(ctx, planID)
}
