package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareService_SharePlan(t *testing.T) {
	env := newTestEnv(t)
	s := env.seedPlan(t)
	ctx := context.Background()

	_, err := env.shares.SharePlan(ctx, creator, s.plan.ID, recipient)
	assert.ErrorIs(t, err, ErrShareExists)

	_, err = env.shares.SharePlan(ctx, creator, s.plan.ID, creator)
	assert.ErrorIs(t, err, ErrShareWithSelf)

	_, err = env.shares.SharePlan(ctx, creator, s.plan.ID, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.shares.SharePlan(ctx, recipient, s.plan.ID, stranger)
	assert.ErrorIs(t, err, ErrPlanAccessDenied)

	second, err := env.shares.SharePlan(ctx, creator, s.plan.ID, stranger)
	require.NoError(t, err)
	assert.Equal(t, creator, second.CreatorID)

	shares, err := env.shares.ListPlanShares(ctx, creator, s.plan.ID)
	require.NoError(t, err)
	assert.Len(t, shares, 2)

	_, err = env.shares.ListPlanShares(ctx, recipient, s.plan.ID)
	assert.ErrorIs(t, err, ErrPlanAccessDenied)

	received, err := env.shares.ListReceivedShares(ctx, stranger)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, s.plan.ID, received[0].PlanID)
}

func TestShareService_Revoke(t *testing.T) {
	env := newTestEnv(t)
	s := env.seedPlan(t)
	ctx := context.Background()

	_, err := env.achievements.LogAchievement(ctx, recipient, s.share.ID, LogAchievementInput{
		ExerciseID: s.squat.ID, SetID: s.squat.Sets[0].ID, AchievedWeight: "20kg",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, env.shares.RevokeShare(ctx, recipient, s.share.ID), ErrShareAccessDenied)
	assert.ErrorIs(t, env.shares.RevokeShare(ctx, creator, 9999), ErrShareNotFound)

	require.NoError(t, env.shares.RevokeShare(ctx, creator, s.share.ID))

	_, err = env.plans.GetPlanDetail(ctx, recipient, s.plan.ID)
	assert.ErrorIs(t, err, ErrPlanAccessDenied, "revoked recipients lose access")

	achieved, err := env.repos.Achievements.ListByShare(ctx, s.share.ID)
	require.NoError(t, err)
	assert.Empty(t, achieved)
}
