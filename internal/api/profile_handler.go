package api

import (
	"net/http"

	"github.com/prpradhan13/myBuddy-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type UpdateProfileRequest struct {
	Username  string `json:"username" binding:"required"`
	FullName  string `json:"fullName" binding:"max=120"`
	AvatarURL string `json:"avatarUrl" binding:"omitempty,url"`
}

// GetMyProfile godoc
// @Summary Get the authenticated user's profile
// @Tags Profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Profile
// @Failure 404 {object} gin.H "No profile yet"
// @Router /me/profile [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve profile.")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateMyProfile godoc
// @Summary Create or update the authenticated user's profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body UpdateProfileRequest true "Profile"
// @Success 200 {object} domain.Profile
// @Failure 409 {object} gin.H "Username taken"
// @Router /me/profile [put]
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	profile, err := h.profileService.UpsertProfile(c.Request.Context(), userID, req.Username, req.FullName, req.AvatarURL)
	if err != nil {
		handleServiceError(c, err, "Failed to save profile.")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetProfile godoc
// @Summary Get a user's public profile
// @Tags Profiles
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} domain.Profile
// @Router /profiles/{userId} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfile(c.Request.Context(), c.Param("userId"))
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve profile.")
		return
	}
	c.JSON(http.StatusOK, profile)
}
