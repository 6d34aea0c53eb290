package api

import (
	"net/http"
	"youclone/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type CommentRequest struct {
	Text string `json:"text"`
}

// ListComments handles GET /comments/:id. Unknown videos yield [].
func (h *CommentHandler) ListComments(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id", service.ErrVideoNotFound)
	if !ok {
		return
	}

	comments, err := h.commentService.ListComments(c.Request.Context(), videoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapCommentsToResponse(comments))
}

// CreateComment handles POST /comments/:id.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id", service.ErrVideoNotFound)
	if !ok {
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	authorID, ok := mustUserID(c)
	if !ok {
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), authorID, videoID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapCommentToResponse(comment))
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id", service.ErrCommentNotFound)
	if !ok {
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), callerID, commentID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapCommentToResponse(comment))
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id", service.ErrCommentNotFound)
	if !ok {
		return
	}
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), callerID, commentID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Deleted"})
}
