package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prpradhan13/myBuddy-sub000/internal/domain"
	"github.com/prpradhan13/myBuddy-sub000/internal/repository"

	log "github.com/sirupsen/logrus"
)

var (
	ErrShareNotFound     = errors.New("share not found")
	ErrShareAccessDenied = errors.New("access denied to this share")
	ErrShareExists       = errors.New("plan is already shared with this user")
	ErrShareWithSelf     = errors.New("cannot share a plan with yourself")
)

type ShareService interface {
	SharePlan(ctx context.Context, creatorID string, planID int64, recipientID string) (*domain.Share, error)
	ListPlanShares(ctx context.Context, creatorID string, planID int64) ([]domain.Share, error)
	ListReceivedShares(ctx context.Context, recipientID string) ([]domain.Share, error)
	// RevokeShare deletes the share together with the achievements logged through it.
	RevokeShare(ctx context.Context, creatorID string, shareID int64) error
}

type shareService struct {
	access          planAccess
	shareRepo       repository.ShareRepository
	achievementRepo repository.AchievementRepository
}

func NewShareService(
	planRepo repository.PlanRepository,
	shareRepo repository.ShareRepository,
	achievementRepo repository.AchievementRepository,
) ShareService {
	return &shareService{
		access:          planAccess{planRepo: planRepo, shareRepo: shareRepo},
		shareRepo:       shareRepo,
		achievementRepo: achievementRepo,
	}
}

func (s *shareService) SharePlan(ctx context.Context, creatorID string, planID int64, recipientID string) (*domain.Share, error) {
	recipientID = strings.TrimSpace(recipientID)
	if recipientID == "" {
		return nil, fmt.Errorf("%w: recipient ID is required", ErrValidation)
	}
	if recipientID == creatorID {
		return nil, ErrShareWithSelf
	}

	plan, err := s.access.owned(ctx, creatorID, planID)
	if err != nil {
		return nil, err
	}

	share := &domain.Share{
		PlanID:      plan.ID,
		CreatorID:   plan.CreatorID,
		RecipientID: recipientID,
	}
	if _, err := s.shareRepo.Create(ctx, share); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrShareExists
		}
		return nil, err
	}
	log.Debugf("plan %d shared with %s (share %d)", plan.ID, recipientID, share.ID)
	return share, nil
}

func (s *shareService) ListPlanShares(ctx context.Context, creatorID string, planID int64) ([]domain.Share, error) {
	if _, err := s.access.owned(ctx, creatorID, planID); err != nil {
		return nil, err
	}
	return s.shareRepo.ListByPlan(ctx, planID)
}

func (s *shareService) ListReceivedShares(ctx context.Context, recipientID string) ([]domain.Share, error) {
	if recipientID == "" {
		return nil, fmt.Errorf("%w: user ID is required", ErrValidation)
	}
	return s.shareRepo.ListByRecipient(ctx, recipientID)
}

func (s *shareService) RevokeShare(ctx context.Context, creatorID string, shareID int64) error {
	share, err := loadShare(ctx, s.shareRepo, shareID)
	if err != nil {
		return err
	}
	if share.CreatorID != creatorID {
		return ErrShareAccessDenied
	}

	if err := s.achievementRepo.DeleteByShare(ctx, share.ID); err != nil {
		return fmt.Errorf("delete achievements of share %d: %w", share.ID, err)
	}
	if err := s.shareRepo.Delete(ctx, share.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrShareNotFound
		}
		return err
	}
	log.Infof("share %d of plan %d revoked by %s", share.ID, share.PlanID, creatorID)
	return nil
}

func loadShare(ctx context.Context, shareRepo repository.ShareRepository, shareID int64) (*domain.Share, error) {
	if shareID <= 0 {
		return nil, ErrShareNotFound
	}
	share, err := shareRepo.GetByID(ctx, shareID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrShareNotFound
		}
		return nil, err
	}
	return share, nil
}
