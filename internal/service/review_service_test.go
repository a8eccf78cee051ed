package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewService(t *testing.T) {
	env := newTestEnv(t)
	s := env.seedPlan(t)
	ctx := context.Background()

	for _, rating := range []int{0, 6, -1} {
		_, err := env.reviews.AddReview(ctx, recipient, s.plan.ID, rating, "")
		assert.ErrorIs(t, err, ErrInvalidRating)
		assert.ErrorIs(t, err, ErrValidation)
	}

	_, err := env.reviews.AddReview(ctx, creator, s.plan.ID, 5, "my own")
	assert.ErrorIs(t, err, ErrReviewOwnPlan)

	_, err = env.reviews.AddReview(ctx, stranger, s.plan.ID, 5, "")
	assert.ErrorIs(t, err, ErrPlanAccessDenied)

	review, err := env.reviews.AddReview(ctx, recipient, s.plan.ID, 4, " solid plan ")
	require.NoError(t, err)
	assert.Equal(t, "solid plan", review.Text)

	_, err = env.reviews.AddReview(ctx, recipient, s.plan.ID, 2, "")
	assert.ErrorIs(t, err, ErrReviewExists)

	_, err = env.plans.UpdatePlan(ctx, creator, s.plan.ID, s.plan.Name, "", true)
	require.NoError(t, err)
	_, err = env.reviews.AddReview(ctx, stranger, s.plan.ID, 1, "")
	require.NoError(t, err)

	summary, err := env.reviews.Summary(ctx, creator, s.plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.InDelta(t, 2.5, summary.AverageRating, 0.001)

	reviews, err := env.reviews.ListReviews(ctx, stranger, s.plan.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestProfileService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.profiles.GetProfile(ctx, creator)
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, err = env.profiles.UpsertProfile(ctx, creator, "a b", "", "")
	assert.ErrorIs(t, err, ErrValidation)

	p, err := env.profiles.UpsertProfile(ctx, creator, "coach", "", "")
	require.NoError(t, err)
	assert.Equal(t, "coach", p.DisplayName())

	p, err = env.profiles.UpsertProfile(ctx, creator, "coach", "Coach Carter", "https://img.test/a.png")
	require.NoError(t, err)
	assert.Equal(t, "Coach Carter", p.DisplayName())

	_, err = env.profiles.UpsertProfile(ctx, recipient, "coach", "", "")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	got, err := env.profiles.GetProfile(ctx, creator)
	require.NoError(t, err)
	assert.Equal(t, "https://img.test/a.png", got.AvatarURL)
}
