package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/prpradhan13/myBuddy-sub000/internal/domain"
	"github.com/prpradhan13/myBuddy-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRoutes(t *testing.T) {
	s := newTestServer(t)
	plan, exercise, _ := s.seed(t)

	rr := s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/plans/%d", plan.ID), "alex", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	detail := decode[service.PlanDetail](t, rr)
	require.Len(t, detail.Days, 1)
	require.Len(t, detail.Days[0].Exercises, 1)
	assert.Equal(t, exercise.ID, detail.Days[0].Exercises[0].ID)
	assert.NotZero(t, detail.Days[0].Exercises[0].Sets[0].ID)

	rr = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/plans/%d", plan.ID), "stranger", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = s.do(t, http.MethodGet, "/api/v1/plans/abc", "coach", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(t, http.MethodGet, "/api/v1/plans/999", "coach", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	bodyContains(t, rr, "plan not found")

	rr = s.do(t, http.MethodPost, "/api/v1/plans", "coach", gin.H{"description": "no name"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	bodyContains(t, rr, "Validation error")

	rr = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/plans/%d/days", plan.ID), "coach",
		gin.H{"weekNumber": 1, "dayName": "Monday"})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/plans/%d/days", plan.ID), "coach",
		gin.H{"weekNumber": 0, "dayName": "Tuesday"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(t, http.MethodPut, fmt.Sprintf("/api/v1/plans/%d", plan.ID), "coach", gin.H{"name": "Strength 102", "isPublic": true})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decode[domain.Plan](t, rr).IsPublic)

	rr = s.do(t, http.MethodGet, "/api/v1/plans/public", "stranger", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]domain.Plan](t, rr), 1)

	rr = s.do(t, http.MethodGet, "/api/v1/plans", "stranger", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/plans/%d", plan.ID), "alex", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr = s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/plans/%d", plan.ID), "coach", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestAchievementRoutes(t *testing.T) {
	s := newTestServer(t)
	_, exercise, share := s.seed(t)
	base := fmt.Sprintf("/api/v1/shares/%d/achievements", share.ID)

	log := gin.H{"exerciseId": exercise.ID, "setId": exercise.Sets[0].ID, "achievedRepetition": "10", "achievedWeight": "20kg"}
	rr := s.do(t, http.MethodPost, base, "coach", log)
	assert.Equal(t, http.StatusForbidden, rr.Code, "only the recipient logs")

	rr = s.do(t, http.MethodPost, base, "alex", log)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	rec := decode[domain.Achievement](t, rr)
	assert.Equal(t, "Squat", rec.ExerciseName)
	assert.Equal(t, "12 reps", rec.TargetRepetitions)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.CounterAchievements))

	rr = s.do(t, http.MethodPost, base, "alex", gin.H{"exerciseId": exercise.ID, "setId": 999, "achievedRepetition": "1"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(t, http.MethodGet, base, "alex", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	ov := decode[service.AchievementOverview](t, rr)
	assert.Equal(t, 1, ov.SelectedWeek)
	assert.Equal(t, []int{1}, ov.Weeks)
	assert.Equal(t, []string{"Monday"}, ov.Days)
	assert.Equal(t, 5, ov.PageSize)
	require.Len(t, ov.Groups, 1)
	assert.Equal(t, "Legs", ov.Groups[0].WorkoutName)

	rr = s.do(t, http.MethodGet, base+"?week=2", "coach", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[service.AchievementOverview](t, rr).Groups)

	rr = s.do(t, http.MethodGet, base+"?page=3", "alex", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	ov = decode[service.AchievementOverview](t, rr)
	assert.Empty(t, ov.Groups)
	assert.Equal(t, 1, ov.TotalPages)

	for _, q := range []string{"?week=x", "?page=0", "?pageSize=-1", "?page=1.5"} {
		rr = s.do(t, http.MethodGet, base+q, "alex", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code, q)
	}

	rr = s.do(t, http.MethodGet, base, "stranger", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = s.do(t, http.MethodPost, base+"/export", "alex", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestShareRoutes(t *testing.T) {
	s := newTestServer(t)
	plan, _, share := s.seed(t)

	rr := s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/plans/%d/shares", plan.ID), "coach", gin.H{"recipientId": "alex"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	rr = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/plans/%d/shares", plan.ID), "coach", gin.H{"recipientId": "coach"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(t, http.MethodGet, "/api/v1/shares/received", "alex", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	received := decode[[]domain.Share](t, rr)
	require.Len(t, received, 1)
	assert.Equal(t, share.ID, received[0].ID)

	rr = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/plans/%d/shares", plan.ID), "alex", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/shares/%d", share.ID), "coach", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/shares/%d", share.ID), "coach", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCommentRoutes(t *testing.T) {
	s := newTestServer(t)
	plan, _, _ := s.seed(t)
	base := fmt.Sprintf("/api/v1/plans/%d/comments", plan.ID)

	rr := s.do(t, http.MethodPut, "/api/v1/me/profile", "coach", gin.H{"username": "coach", "fullName": "Coach Carter"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = s.do(t, http.MethodPost, base, "coach", gin.H{"text": "Welcome"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	root := decode[domain.Comment](t, rr)
	assert.Nil(t, root.ParentCommentID)
	bodyContains(t, rr, `"parentCommentId":null`)

	rr = s.do(t, http.MethodPost, base, "alex", gin.H{"text": "Thanks", "parentCommentId": root.ID})
	require.Equal(t, http.StatusCreated, rr.Code)
	reply := decode[domain.Comment](t, rr)

	rr = s.do(t, http.MethodPost, base, "alex", gin.H{"text": "lost", "parentCommentId": 999})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(t, http.MethodPost, base, "stranger", gin.H{"text": "hi"})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = s.do(t, http.MethodGet, base, "alex", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	threads := decode[[]service.ThreadNode](t, rr)
	require.Len(t, threads, 1)
	assert.Equal(t, "Coach Carter", threads[0].Author.DisplayName)
	require.Len(t, threads[0].Replies, 1)
	assert.Equal(t, reply.ID, threads[0].Replies[0].ID)

	rr = s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/comments/%d", root.ID), "alex", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr = s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/comments/%d", root.ID), "coach", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// the orphaned reply is now a root
	rr = s.do(t, http.MethodGet, base, "alex", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	threads = decode[[]service.ThreadNode](t, rr)
	require.Len(t, threads, 1)
	assert.Equal(t, reply.ID, threads[0].ID)
}

func TestReviewAndProfileRoutes(t *testing.T) {
	s := newTestServer(t)
	plan, _, _ := s.seed(t)
	base := fmt.Sprintf("/api/v1/plans/%d/reviews", plan.ID)

	rr := s.do(t, http.MethodPost, base, "alex", gin.H{"rating": 9})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr = s.do(t, http.MethodPost, base, "coach", gin.H{"rating": 5})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr = s.do(t, http.MethodPost, base, "alex", gin.H{"rating": 4, "text": "good"})
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = s.do(t, http.MethodPost, base, "alex", gin.H{"rating": 3})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = s.do(t, http.MethodGet, base, "coach", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	reviews := decode[ReviewsResponse](t, rr)
	assert.Equal(t, 1, reviews.Summary.Count)
	assert.InDelta(t, 4.0, reviews.Summary.AverageRating, 0.001)
	assert.Len(t, reviews.Reviews, 1)

	rr = s.do(t, http.MethodGet, "/api/v1/me/profile", "alex", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	rr = s.do(t, http.MethodPut, "/api/v1/me/profile", "alex", gin.H{"username": "alex", "avatarUrl": "not a url"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr = s.do(t, http.MethodPut, "/api/v1/me/profile", "alex", gin.H{"username": "alex"})
	require.Equal(t, http.StatusOK, rr.Code)
	rr = s.do(t, http.MethodPut, "/api/v1/me/profile", "coach", gin.H{"username": "alex"})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = s.do(t, http.MethodGet, "/api/v1/profiles/alex", "coach", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "alex", decode[domain.Profile](t, rr).Username)
}
