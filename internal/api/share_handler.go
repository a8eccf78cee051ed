package api

import (
	"net/http"

	"github.com/prpradhan13/myBuddy-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// ShareHandler serves plan shares and the achievements recipients log through them.
type ShareHandler struct {
	shareService       service.ShareService
	achievementService service.AchievementService
}

func NewShareHandler(shareService service.ShareService, achievementService service.AchievementService) *ShareHandler {
	return &ShareHandler{
		shareService:       shareService,
		achievementService: achievementService,
	}
}

type CreateShareRequest struct {
	RecipientID string `json:"recipientId" binding:"required"`
}

type LogAchievementRequest struct {
	ExerciseID         int64  `json:"exerciseId" binding:"required,min=1"`
	SetID              int64  `json:"setId" binding:"required,min=1"`
	AchievedRepetition string `json:"achievedRepetition" binding:"max=40"`
	AchievedWeight     string `json:"achievedWeight" binding:"max=40"`
}

// SharePlan godoc
// @Summary Share a plan with another user
// @Tags Shares
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path int true "Plan ID"
// @Param share body CreateShareRequest true "Recipient"
// @Success 201 {object} domain.Share
// @Failure 409 {object} gin.H "Already shared with this user"
// @Router /plans/{planId}/shares [post]
func (h *ShareHandler) SharePlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	planID, ok := idParam(c, "planId")
	if !ok {
		return
	}
	var req CreateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	share, err := h.shareService.SharePlan(c.Request.Context(), userID, planID, req.RecipientID)
	if err != nil {
		handleServiceError(c, err, "Failed to share plan.")
		return
	}
	c.JSON(http.StatusCreated, share)
}

// ListPlanShares godoc
// @Summary List who a plan is shared with
// @Tags Shares
// @Produce json
// @Security BearerAuth
// @Param planId path int true "Plan ID"
// @Success 200 {array} domain.Share
// @Router /plans/{planId}/shares [get]
func (h *ShareHandler) ListPlanShares(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	planID, ok := idParam(c, "planId")
	if !ok {
		return
	}
	shares, err := h.shareService.ListPlanShares(c.Request.Context(), userID, planID)
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve shares.")
		return
	}
	c.JSON(http.StatusOK, shares)
}

// ListReceivedShares godoc
// @Summary List the plans shared with the authenticated user
// @Tags Shares
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Share
// @Router /shares/received [get]
func (h *ShareHandler) ListReceivedShares(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	shares, err := h.shareService.ListReceivedShares(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve shares.")
		return
	}
	c.JSON(http.StatusOK, shares)
}

// RevokeShare godoc
// @Summary Revoke a share and drop its achievements
// @Tags Shares
// @Security BearerAuth
// @Param shareId path int true "Share ID"
// @Success 204
// @Router /shares/{shareId} [delete]
func (h *ShareHandler) RevokeShare(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	shareID, ok := idParam(c, "shareId")
	if !ok {
		return
	}
	if err := h.shareService.RevokeShare(c.Request.Context(), userID, shareID); err != nil {
		handleServiceError(c, err, "Failed to revoke share.")
		return
	}
	c.Status(http.StatusNoContent)
}

// LogAchievement godoc
// @Summary Log what was achieved for one target set
// @Tags Achievements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shareId path int true "Share ID"
// @Param achievement body LogAchievementRequest true "Achieved values"
// @Success 201 {object} domain.Achievement
// @Failure 403 {object} gin.H "Not the recipient of the share"
// @Router /shares/{shareId}/achievements [post]
func (h *ShareHandler) LogAchievement(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	shareID, ok := idParam(c, "shareId")
	if !ok {
		return
	}
	var req LogAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	rec, err := h.achievementService.LogAchievement(c.Request.Context(), userID, shareID, service.LogAchievementInput{
		ExerciseID:         req.ExerciseID,
		SetID:              req.SetID,
		AchievedRepetition: req.AchievedRepetition,
		AchievedWeight:     req.AchievedWeight,
	})
	if err != nil {
		handleServiceError(c, err, "Failed to log achievement.")
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// GetAchievements godoc
// @Summary Achievements of a share grouped by week and day
// @Description Without a week parameter week 1 is selected. Pages past the end are empty.
// @Tags Achievements
// @Produce json
// @Security BearerAuth
// @Param shareId path int true "Share ID"
// @Param week query int false "Week number (default 1)"
// @Param day query string false "Day name (default: all days of the week)"
// @Param page query int false "1-based page (default 1)"
// @Param pageSize query int false "Groups per page"
// @Success 200 {object} service.AchievementOverview
// @Failure 400 {object} gin.H "Invalid query parameter"
// @Router /shares/{shareId}/achievements [get]
func (h *ShareHandler) GetAchievements(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	shareID, ok := idParam(c, "shareId")
	if !ok {
		return
	}

	q := service.OverviewQuery{Day: c.Query("day")}
	if q.Week, ok = intQuery(c, "week", 0); !ok {
		return
	}
	if q.Page, ok = intQuery(c, "page", 1); !ok {
		return
	}
	if q.PageSize, ok = intQuery(c, "pageSize", 0); !ok {
		return
	}
	if q.Week < 0 || q.Page < 1 || q.PageSize < 0 {
		abortWithError(c, http.StatusBadRequest, "week, page and pageSize must be positive.")
		return
	}

	overview, err := h.achievementService.Overview(c.Request.Context(), userID, shareID, q)
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve achievements.")
		return
	}
	c.JSON(http.StatusOK, overview)
}

// ExportAchievements godoc
// @Summary Export the achievements of a share as a JSON report
// @Tags Achievements
// @Produce json
// @Security BearerAuth
// @Param shareId path int true "Share ID"
// @Success 201 {object} service.ExportResult
// @Failure 503 {object} gin.H "Object storage not configured"
// @Router /shares/{shareId}/achievements/export [post]
func (h *ShareHandler) ExportAchievements(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	shareID, ok := idParam(c, "shareId")
	if !ok {
		return
	}
	res, err := h.achievementService.Export(c.Request.Context(), userID, shareID)
	if err != nil {
		handleServiceError(c, err, "Failed to export achievements.")
		return
	}
	c.JSON(http.StatusCreated, res)
}
