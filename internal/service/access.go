package service

import (
	"context"
	"errors"

	"github.com/prpradhan13/myBuddy-sub000/internal/domain"
	"github.com/prpradhan13/myBuddy-sub000/internal/repository"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrPlanNotFound     = errors.New("plan not found")
	ErrPlanAccessDenied = errors.New("access denied to this plan")
)

// planAccess answers who may read or change a plan. Shared by every service that hangs
// data off a plan.
type planAccess struct {
	planRepo  repository.PlanRepository
	shareRepo repository.ShareRepository
}

func (a planAccess) load(ctx context.Context, planID int64) (*domain.Plan, error) {
	if planID <= 0 {
		return nil, ErrPlanNotFound
	}
	plan, err := a.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// owned returns the plan if userID created it.
func (a planAccess) owned(ctx context.Context, userID string, planID int64) (*domain.Plan, error) {
	plan, err := a.load(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !plan.IsOwnedBy(userID) {
		return nil, ErrPlanAccessDenied
	}
	return plan, nil
}

// readable returns the plan if userID created it, received it through a share, or the plan is public.
func (a planAccess) readable(ctx context.Context, userID string, planID int64) (*domain.Plan, error) {
	plan, err := a.load(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.IsOwnedBy(userID) || plan.IsPublic {
		return plan, nil
	}
	_, err = a.shareRepo.GetByPlanAndRecipient(ctx, planID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanAccessDenied
		}
		return nil, err
	}
	return plan, nil
}
