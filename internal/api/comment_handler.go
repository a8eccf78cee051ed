package api

import (
	"net/http"

	"github.com/prpradhan13/myBuddy-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentRequest adds a comment, or a reply when parentCommentId is set.
type CreateCommentRequest struct {
	Text            string `json:"text" binding:"required"`
	ParentCommentID *int64 `json:"parentCommentId" binding:"omitempty,min=1"`
}

// AddComment godoc
// @Summary Comment on a plan or reply to a comment
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path int true "Plan ID"
// @Param comment body CreateCommentRequest true "Comment"
// @Success 201 {object} domain.Comment
// @Failure 400 {object} gin.H "Invalid input or unknown parent comment"
// @Router /plans/{planId}/comments [post]
func (h *CommentHandler) AddComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	planID, ok := idParam(c, "planId")
	if !ok {
		return
	}
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	comment, err := h.commentService.AddComment(c.Request.Context(), userID, planID, req.Text, req.ParentCommentID)
	if err != nil {
		handleServiceError(c, err, "Failed to add comment.")
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// GetComments godoc
// @Summary The discussion of a plan as reply threads
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param planId path int true "Plan ID"
// @Success 200 {array} service.ThreadNode
// @Router /plans/{planId}/comments [get]
func (h *CommentHandler) GetComments(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	planID, ok := idParam(c, "planId")
	if !ok {
		return
	}
	threads, err := h.commentService.GetThread(c.Request.Context(), userID, planID)
	if err != nil {
		handleServiceError(c, err, "Failed to retrieve comments.")
		return
	}
	c.JSON(http.StatusOK, threads)
}

// DeleteComment godoc
// @Summary Delete a comment; its replies become top-level comments
// @Tags Comments
// @Security BearerAuth
// @Param commentId path int true "Comment ID"
// @Success 204
// @Router /comments/{commentId} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	commentID, ok := idParam(c, "commentId")
	if !ok {
		return
	}
	if err := h.commentService.DeleteComment(c.Request.Context(), userID, commentID); err != nil {
		handleServiceError(c, err, "Failed to delete comment.")
		return
	}
	c.Status(http.StatusNoContent)
}
