package api

import (
	"net/http"
	"youclone/internal/service"

	"github.com/gin-gonic/gin"
)

type ChannelHandler struct {
	channelService service.ChannelService
}

func NewChannelHandler(channelService service.ChannelService) *ChannelHandler {
	return &ChannelHandler{channelService: channelService}
}

type CreateChannelRequest struct {
	ChannelName string `json:"channelName" binding:"required,notblank"`
	Description string `json:"description"`
	BannerURL   string `json:"bannerUrl"`
}

// CreateChannel creates a channel owned by the caller. The owner always comes
// from the token; any owner in the body is ignored.
func (h *ChannelHandler) CreateChannel(c *gin.Context) {
	var req CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	ownerID, ok := mustUserID(c)
	if !ok {
		return
	}

	channel, profile, err := h.channelService.CreateChannel(c.Request.Context(), service.CreateChannelInput{
		OwnerID:     ownerID,
		ChannelName: req.ChannelName,
		Description: req.Description,
		BannerURL:   req.BannerURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateChannelResponse{
		Channel: MapChannelDetailsToResponse(channel),
		User:    MapUserChannelsToResponse(profile),
	})
}

func (h *ChannelHandler) GetChannel(c *gin.Context) {
	channelID, ok := parseIDParam(c, "id", service.ErrChannelNotFound)
	if !ok {
		return
	}

	channel, err := h.channelService.GetChannel(c.Request.Context(), channelID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapChannelDetailsToResponse(channel))
}

func (h *ChannelHandler) ListChannels(c *gin.Context) {
	channels, err := h.channelService.ListChannels(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapChannelsToResponse(channels))
}
