package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/prpradhan13/myBuddy-sub000/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// handleServiceError answers with the status matching a service error. Unexpected errors
// are logged and answered with fallback.
func handleServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrShareWithSelf),
		errors.Is(err, service.ErrSetNotFound),
		errors.Is(err, service.ErrParentCommentNotFound):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPlanAccessDenied),
		errors.Is(err, service.ErrShareAccessDenied),
		errors.Is(err, service.ErrNotShareRecipient),
		errors.Is(err, service.ErrCommentAccessDenied),
		errors.Is(err, service.ErrReviewOwnPlan):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrDayNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrShareNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrProfileNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDayExists),
		errors.Is(err, service.ErrShareExists),
		errors.Is(err, service.ErrReviewExists),
		errors.Is(err, service.ErrUsernameTaken):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrExportUnavailable):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	default:
		log.Errorf("%s %s: %s", c.Request.Method, c.FullPath(), err)
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// idParam parses a positive int64 path parameter. It answers 400 and reports false otherwise.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name+" format.")
		return 0, false
	}
	return id, true
}

// intQuery parses an optional integer query parameter, returning def when it is absent.
func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name+" query parameter.")
		return 0, false
	}
	return v, true
}

// currentUser reads the authenticated user id, answering 401 when it is missing.
func currentUser(c *gin.Context) (string, bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return "", false
	}
	return userID, true
}
