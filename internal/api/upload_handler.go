package api

import (
	"net/http"
	"time"
	"youclone/internal/service"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	uploadService service.UploadService
}

func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

type PresignUploadRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType" binding:"required,notblank"`
	Kind        string `json:"kind" binding:"omitempty,oneof=video thumbnail"`
}

type PresignUploadResponse struct {
	UploadURL string    `json:"uploadUrl"`
	ObjectKey string    `json:"objectKey"` // Pass back as mediaKey on POST /videos
	ExpiresAt time.Time `json:"expiresAt"`
}

// PresignUpload returns a URL the client can PUT the file to directly.
func (h *UploadHandler) PresignUpload(c *gin.Context) {
	var req PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	ticket, err := h.uploadService.PresignUpload(c.Request.Context(), userID, service.PresignUploadInput{
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Kind:        service.UploadKind(req.Kind),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, PresignUploadResponse{
		UploadURL: ticket.UploadURL,
		ObjectKey: ticket.ObjectKey,
		ExpiresAt: ticket.ExpiresAt,
	})
}
