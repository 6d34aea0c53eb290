package api

import (
	"context"
	"fmt"
	"net/http"
	"youclone/internal/domain"
	"youclone/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VideoHandler struct {
	videoService service.VideoService
}

func NewVideoHandler(videoService service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// --- DTOs ---

type CreateVideoRequest struct {
	Title        string  `json:"title" binding:"required,notblank"`
	MediaURL     string  `json:"mediaUrl" binding:"required,notblank"`
	MediaKey     string  `json:"mediaKey"` // Object key from POST /uploads/presign
	ThumbnailURL string  `json:"thumbnailUrl"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	ChannelID    *string `json:"channelId"`
}

// UpdateVideoRequest lists the only fields an update may touch.
type UpdateVideoRequest struct {
	Title        *string `json:"title"`
	ThumbnailURL *string `json:"thumbnailUrl"`
	MediaURL     *string `json:"mediaUrl"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	ChannelID    *string `json:"channelId"`
}

// --- Handler Methods ---

func (h *VideoHandler) CreateVideo(c *gin.Context) {
	var req CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	uploaderID, ok := mustUserID(c)
	if !ok {
		return
	}
	channelID, err := parseOptionalID(req.ChannelID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid channelId format")
		return
	}

	video, err := h.videoService.CreateVideo(c.Request.Context(), service.CreateVideoInput{
		UploaderID:   uploaderID,
		Title:        req.Title,
		MediaURL:     req.MediaURL,
		MediaKey:     req.MediaKey,
		ThumbnailURL: req.ThumbnailURL,
		Description:  req.Description,
		Category:     req.Category,
		ChannelID:    channelID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapVideoToResponse(video, nil, nil))
}

func (h *VideoHandler) GetVideo(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id", service.ErrVideoNotFound)
	if !ok {
		return
	}

	details, err := h.videoService.GetVideo(c.Request.Context(), videoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapVideoDetailToResponse(details))
}

// ListVideos handles GET /videos?q=&category=.
func (h *VideoHandler) ListVideos(c *gin.Context) {
	videos, err := h.videoService.ListVideos(c.Request.Context(), c.Query("q"), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapVideoDetailsToResponse(videos))
}

func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id", service.ErrVideoNotFound)
	if !ok {
		return
	}
	var req UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	update := domain.VideoUpdate{
		Title:        req.Title,
		ThumbnailURL: req.ThumbnailURL,
		MediaURL:     req.MediaURL,
		Description:  req.Description,
		Category:     req.Category,
	}
	if req.ChannelID != nil {
		// An empty channelId detaches the video from its channel
		channelID, err := parseOptionalID(req.ChannelID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid channelId %q", *req.ChannelID))
			return
		}
		update.ChannelID = channelID
		update.ClearChannel = channelID == nil
	}

	video, err := h.videoService.UpdateVideo(c.Request.Context(), callerID, videoID, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapVideoToResponse(video, nil, nil))
}

func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id", service.ErrVideoNotFound)
	if !ok {
		return
	}
	callerID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.videoService.DeleteVideo(c.Request.Context(), callerID, videoID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Video deleted"})
}

func (h *VideoHandler) IncrementView(c *gin.Context) {
	h.counter(c, h.videoService.IncrementView)
}

func (h *VideoHandler) LikeVideo(c *gin.Context) {
	h.counter(c, h.videoService.LikeVideo)
}

func (h *VideoHandler) DislikeVideo(c *gin.Context) {
	h.counter(c, h.videoService.DislikeVideo)
}

func (h *VideoHandler) counter(c *gin.Context, bump func(ctx context.Context, id primitive.ObjectID) (*domain.Video, error)) {
	videoID, ok := parseIDParam(c, "id", service.ErrVideoNotFound)
	if !ok {
		return
	}

	video, err := bump(c.Request.Context(), videoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapVideoToResponse(video, nil, nil))
}
