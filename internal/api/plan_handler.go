package api

import (
	"net/http"

	"github.com/prpradhan13/myBuddy-sub000/internal/domain"
	"github.com/prpradhan13/myBuddy-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// PlanHandler serves plans, their days and exercises.
type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs for API (Data Transfer Objects) ---

// PlanRequest defines the expected JSON for creating or updating a plan.
type PlanRequest struct {
	Name        string `json:"name" binding:"required,max=120"`
	Description string `json:"description" binding:"max=2000"`
	IsPublic    bool   `json:"isPublic"`
}

type CreateDayRequest struct {
	WeekNumber  int    `json:"weekNumber" binding:"required,min=1"`
	DayName     string `json:"dayName" binding:"required,max=40"`
	WorkoutName string `json:"workoutName" binding:"max=120"`
	Description string `json:"description" binding:"max=2000"`
	IsRestDay   bool   `json:"isRestDay"`
}

type TargetSetRequest struct {
	TargetRepetitions string `json:"targetRepetitions" binding:"max=40"`
	TargetWeight      string `json:"targetWeight" binding:"max=40"`
}

type CreateExerciseRequest struct {
	Name        string             `json:"name" binding:"required,max=120"`
	Description string             `json:"description" binding:"max=2000"`
	Sets        []TargetSetRequest `json:"sets" binding:"max=50,dive"`
}

// --- Handler Methods ---

// CreatePlan godoc
// @Summary Create a workout plan
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body PlanRequest true "Plan details"
// @Success 201 {object} domain.Plan
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), userID, req.Name, req.Description, req.IsPublic)
	if err != nil {
		handleServiceError(c, err, "Failed to create plan.")
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// ListMyPlans godoc
// @Summary List the plans created by the authenticated user
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Plan
// @Router /plans [get]
func (h *PlanHandler) ListMyPlans(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	plans, err := h.planService.ListMyPlans(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve plans.")
		return
	}
	if plans == nil {
		plans = []domain.Plan{}
	}
	c.JSON(http.StatusOK, plans)
}

// ListPublicPlans godoc
// @Summary List public plans
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Plan
// @Router /plans/public [get]
func (h *PlanHandler) ListPublicPlans(c *gin.Context) {
	plans, err := h.planService.ListPublicPlans(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve plans.")
		return
	}
	if plans == nil {
		plans = []domain.Plan{}
	}
	c.JSON(http.StatusOK, plans)
}

// GetPlan godoc
// @Summary Get a plan with its days and exercises
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path int true "Plan ID"
// @Success 200 {object} service.PlanDetail
// @Failure 403 {object} gin.H "Forbidden"
// @Failure 404 {object} gin.H "Plan not found"
// @Router /plans/{planId} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	planID, ok := idParam(c, "planId")
	if !ok {
		return
	}
	detail, err := h.planService.GetPlanDetail(c.Request.Context(), userID, planID)
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve plan.")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdatePlan godoc
// @Summary Update a plan
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path int true "Plan ID"
// @Param plan body PlanRequest true "Plan details"
// @Success 200 {object} domain.Plan
// @Router /plans/{planId} [put]
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	planID, ok := idParam(c, "planId")
	if !ok {
		return
	}
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	plan, err := h.planService.UpdatePlan(c.Request.Context(), userID, planID, req.Name, req.Description, req.IsPublic)
	if err != nil {
		handleServiceError(c, err, "Failed to update plan.")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// DeletePlan godoc
// @Summary Delete a plan with its days, exercises, shares and achievements
// @Tags Plans
// @Security BearerAuth
// @Param planId path int true "Plan ID"
// @Success 204
// @Router /plans/{planId} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	planID, ok := idParam(c, "planId")
	if !ok {
		return
	}
	if err := h.planService.DeletePlan(c.Request.Context(), userID, planID); err != nil {
		handleServiceError(c, err, "Failed to delete plan.")
		return
	}
	c.Status(http.StatusNoContent)
}

// AddDay godoc
// @Summary Add a day to a plan
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path int true "Plan ID"
// @Param day body CreateDayRequest true "Day details"
// @Success 201 {object} domain.Day
// @Failure 409 {object} gin.H "Day already exists in that week"
// @Router /plans/{planId}/days [post]
func (h *PlanHandler) AddDay(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	planID, ok := idParam(c, "planId")
	if !ok {
		return
	}
	var req CreateDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	day, err := h.planService.AddDay(c.Request.Context(), userID, planID, service.DayInput{
		WeekNumber:  req.WeekNumber,
		DayName:     req.DayName,
		WorkoutName: req.WorkoutName,
		Description: req.Description,
		IsRestDay:   req.IsRestDay,
	})
	if err != nil {
		handleServiceError(c, err, "Failed to add day.")
		return
	}
	c.JSON(http.StatusCreated, day)
}

// ListDays godoc
// @Summary List the days of a plan
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path int true "Plan ID"
// @Success 200 {array} domain.Day
// @Router /plans/{planId}/days [get]
func (h *PlanHandler) ListDays(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	planID, ok := idParam(c, "planId")
	if !ok {
		return
	}
	days, err := h.planService.ListDays(c.Request.Context(), userID, planID)
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve days.")
		return
	}
	c.JSON(http.StatusOK, days)
}

// AddExercise godoc
// @Summary Add an exercise with target sets to a day
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param dayId path int true "Day ID"
// @Param exercise body CreateExerciseRequest true "Exercise details"
// @Success 201 {object} domain.Exercise
// @Router /days/{dayId}/exercises [post]
func (h *PlanHandler) AddExercise(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	dayID, ok := idParam(c, "dayId")
	if !ok {
		return
	}
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	sets := make([]domain.TargetSet, 0, len(req.Sets))
	for _, s := range req.Sets {
		sets = append(sets, domain.TargetSet{TargetRepetitions: s.TargetRepetitions, TargetWeight: s.TargetWeight})
	}
	exercise, err := h.planService.AddExercise(c.Request.Context(), userID, dayID, req.Name, req.Description, sets)
	if err != nil {
		handleServiceError(c, err, "Failed to add exercise.")
		return
	}
	c.JSON(http.StatusCreated, exercise)
}

// ListExercises godoc
// @Summary List the exercises of a day
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param dayId path int true "Day ID"
// @Success 200 {array} domain.Exercise
// @Router /days/{dayId}/exercises [get]
func (h *PlanHandler) ListExercises(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	dayID, ok := idParam(c, "dayId")
	if !ok {
		return
	}
	exercises, err := h.planService.ListExercises(c.Request.Context(), userID, dayID)
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve exercises.")
		return
	}
	c.JSON(http.StatusOK, exercises)
}
