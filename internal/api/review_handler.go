package api

import (
	"net/http"

	"github.com/prpradhan13/myBuddy-sub000/internal/domain"
	"github.com/prpradhan13/myBuddy-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

type CreateReviewRequest struct {
	Rating int    `json:"rating" binding:"required"`
	Text   string `json:"text" binding:"max=2000"`
}

// ReviewsResponse lists a plan's reviews, newest first, with their summary.
type ReviewsResponse struct {
	Summary *domain.ReviewSummary `json:"summary"`
	Reviews []domain.Review       `json:"reviews"`
}

// AddReview godoc
// @Summary Rate a plan from 1 to 5
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path int true "Plan ID"
// @Param review body CreateReviewRequest true "Review"
// @Success 201 {object} domain.Review
// @Failure 409 {object} gin.H "Already reviewed"
// @Router /plans/{planId}/reviews [post]
func (h *ReviewHandler) AddReview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	planID, ok := idParam(c, "planId")
	if !ok {
		return
	}
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	review, err := h.reviewService.AddReview(c.Request.Context(), userID, planID, req.Rating, req.Text)
	if err != nil {
		handleServiceError(c, err, "Failed to add review.")
		return
	}
	c.JSON(http.StatusCreated, review)
}

// GetReviews godoc
// @Summary Reviews of a plan with count and average rating
// @Tags Reviews
// @Produce json
// @Security BearerAuth
// @Param planId path int true "Plan ID"
// @Success 200 {object} ReviewsResponse
// @Router /plans/{planId}/reviews [get]
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	planID, ok := idParam(c, "planId")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	reviews, err := h.reviewService.ListReviews(ctx, userID, planID)
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve reviews.")
		return
	}
	summary, err := h.reviewService.Summary(ctx, userID, planID)
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve reviews.")
		return
	}
	c.JSON(http.StatusOK, ReviewsResponse{Summary: summary, Reviews: reviews})
}
