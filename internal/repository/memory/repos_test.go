package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/prpradhan13/myBuddy-sub000/internal/domain"
	"github.com/prpradhan13/myBuddy-sub000/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := New().Plans

	id1, err := repo.Create(ctx, &domain.Plan{CreatorID: "u1", Name: "A", IsPublic: true})
	require.NoError(t, err)
	id2, err := repo.Create(ctx, &domain.Plan{CreatorID: "u1", Name: "B"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Plan{CreatorID: "u2", Name: "C", IsPublic: true})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	_, err = repo.Create(ctx, &domain.Plan{CreatorID: "u1"})
	assert.Error(t, err)

	mine, err := repo.ListByCreator(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, id2, mine[0].ID, "newest first")

	public, err := repo.ListPublic(ctx)
	require.NoError(t, err)
	assert.Len(t, public, 2)

	plan, err := repo.GetByID(ctx, id2)
	require.NoError(t, err)
	plan.Name = "B2"
	require.NoError(t, repo.Update(ctx, plan))
	plan, err = repo.GetByID(ctx, id2)
	require.NoError(t, err)
	assert.Equal(t, "B2", plan.Name)

	assert.ErrorIs(t, repo.Update(ctx, &domain.Plan{ID: 999, Name: "x"}), repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, id2, "u2"), repository.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, id2, "u1"))
	_, err = repo.GetByID(ctx, id2)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlanRepo_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := New().Plans
	id, err := repo.Create(ctx, &domain.Plan{CreatorID: "u1", Name: "A"})
	require.NoError(t, err)

	p, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	p.Name = "mutated"

	again, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "A", again.Name)
}

func TestDayRepo_DuplicateAndOrder(t *testing.T) {
	ctx := context.Background()
	repo := New().Days

	_, err := repo.Create(ctx, &domain.Day{PlanID: 1, WeekNumber: 2, DayName: "Monday"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Day{PlanID: 1, WeekNumber: 1, DayName: "Tuesday"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Day{PlanID: 1, WeekNumber: 1, DayName: "Monday"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.Day{PlanID: 1, WeekNumber: 2, DayName: "Monday"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
	_, err = repo.Create(ctx, &domain.Day{PlanID: 1, WeekNumber: 0, DayName: "Monday"})
	assert.Error(t, err)

	days, err := repo.ListByPlan(ctx, 1)
	require.NoError(t, err)
	got := make([]string, 0, len(days))
	for _, d := range days {
		got = append(got, fmt.Sprintf("%d-%s", d.WeekNumber, d.DayName))
	}
	assert.Equal(t, []string{"1-Tuesday", "1-Monday", "2-Monday"}, got)

	require.NoError(t, repo.DeleteByPlan(ctx, 1))
	days, err = repo.ListByPlan(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestExerciseRepo_AssignsSetIDs(t *testing.T) {
	ctx := context.Background()
	repo := New().Exercises

	ex := &domain.Exercise{DayID: 1, PlanID: 1, Name: "Squat", Sets: []domain.TargetSet{
		{TargetRepetitions: "12", TargetWeight: "20kg"},
		{TargetRepetitions: "10", TargetWeight: "25kg"},
	}}
	id, err := repo.Create(ctx, ex)
	require.NoError(t, err)
	require.Len(t, ex.Sets, 2)
	assert.NotZero(t, ex.Sets[0].ID)
	assert.NotEqual(t, ex.Sets[0].ID, ex.Sets[1].ID)

	stored, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	set, ok := stored.FindSet(ex.Sets[1].ID)
	require.True(t, ok)
	assert.Equal(t, "25kg", set.TargetWeight)

	stored.Sets[0].TargetWeight = "mutated"
	again, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "20kg", again.Sets[0].TargetWeight)

	byDay, err := repo.ListByDay(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byDay, 1)
}

func TestShareRepo(t *testing.T) {
	ctx := context.Background()
	repo := New().Shares

	id, err := repo.Create(ctx, &domain.Share{PlanID: 1, CreatorID: "c", RecipientID: "r"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Share{PlanID: 1, CreatorID: "c", RecipientID: "r"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	s, err := repo.GetByPlanAndRecipient(ctx, 1, "r")
	require.NoError(t, err)
	assert.Equal(t, id, s.ID)
	_, err = repo.GetByPlanAndRecipient(ctx, 1, "other")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	received, err := repo.ListByRecipient(ctx, "r")
	require.NoError(t, err)
	assert.Len(t, received, 1)

	require.NoError(t, repo.Delete(ctx, id))
	assert.ErrorIs(t, repo.Delete(ctx, id), repository.ErrNotFound)
}

func TestReviewRepo_Summary(t *testing.T) {
	ctx := context.Background()
	repo := New().Reviews

	summary, err := repo.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Count)
	assert.Zero(t, summary.AverageRating)

	_, err = repo.Create(ctx, &domain.Review{PlanID: 1, UserID: "a", Rating: 5})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Review{PlanID: 1, UserID: "b", Rating: 2})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Review{PlanID: 1, UserID: "a", Rating: 1})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	summary, err = repo.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.InDelta(t, 3.5, summary.AverageRating, 0.0001)

	reviews, err := repo.ListByPlan(ctx, 1)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "b", reviews[0].UserID, "newest first")
}

func TestProfileRepo_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := New().Profiles

	require.NoError(t, repo.Upsert(ctx, &domain.Profile{UserID: "u1", Username: "anna"}))
	first, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, &domain.Profile{UserID: "u1", Username: "anna", FullName: "Anna K"}))
	second, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Anna K", second.FullName)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)

	assert.ErrorIs(t, repo.Upsert(ctx, &domain.Profile{UserID: "u2", Username: "anna"}), repository.ErrDuplicate)

	profiles, err := repo.GetByIDs(ctx, []string{"u1", "missing", "u1"})
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "u1", profiles[0].UserID)
}

func TestCommentRepo_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	repo := New().Comments

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Create(ctx, &domain.Comment{PlanID: 1, UserID: "u", Text: fmt.Sprintf("c%d", i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	comments, err := repo.ListByPlan(ctx, 1)
	require.NoError(t, err)
	require.Len(t, comments, 50)
	seen := make(map[int64]bool)
	for _, c := range comments {
		assert.False(t, seen[c.ID], "duplicate id %d", c.ID)
		seen[c.ID] = true
	}
}

func TestCommentAndReviewRepos_DeleteByPlan(t *testing.T) {
	ctx := context.Background()
	repos := New()
	for _, planID := range []int64{1, 2} {
		_, err := repos.Comments.Create(ctx, &domain.Comment{PlanID: planID, UserID: "u", Text: "hi"})
		require.NoError(t, err)
		_, err = repos.Reviews.Create(ctx, &domain.Review{PlanID: planID, UserID: "u", Rating: 3})
		require.NoError(t, err)
	}

	require.NoError(t, repos.Comments.DeleteByPlan(ctx, 1))
	require.NoError(t, repos.Reviews.DeleteByPlan(ctx, 1))
	// deleting an empty plan is not an error
	require.NoError(t, repos.Comments.DeleteByPlan(ctx, 1))

	comments, err := repos.Comments.ListByPlan(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, comments)
	comments, err = repos.Comments.ListByPlan(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	reviews, err := repos.Reviews.ListByPlan(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, reviews)
	reviews, err = repos.Reviews.ListByPlan(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}
