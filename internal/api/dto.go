package api

import (
	"time"
	"youclone/internal/domain"
	"youclone/internal/service"
)

// --- Response DTOs ---
// Password hashes and storage keys never leave the service through these.

// OwnerResponse is the expanded form of a user reference.
type OwnerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfileResponse is a user with its channels as full documents.
type ProfileResponse struct {
	UserResponse
	Channels []ChannelResponse `json:"channels"`
}

// ChannelSummary is the short channel form listed under a user.
type ChannelSummary struct {
	ID          string `json:"id"`
	ChannelName string `json:"channelName"`
	BannerURL   string `json:"bannerUrl"`
}

// UserChannelsResponse is returned alongside a newly created channel.
type UserChannelsResponse struct {
	UserResponse
	Channels []ChannelSummary `json:"channels"`
}

type ChannelResponse struct {
	ID              string         `json:"id"`
	ChannelName     string         `json:"channelName"`
	OwnerID         string         `json:"ownerId"`
	Owner           *OwnerResponse `json:"owner,omitempty"`
	Description     string         `json:"description"`
	BannerURL       string         `json:"bannerUrl"`
	SubscriberCount int64          `json:"subscriberCount"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// ChannelDetailResponse is a channel with its videos.
type ChannelDetailResponse struct {
	ChannelResponse
	Videos []VideoResponse `json:"videos"`
}

type CreateChannelResponse struct {
	Channel ChannelDetailResponse `json:"channel"`
	User    UserChannelsResponse  `json:"user"`
}

// ChannelRef is the expanded form of a video's channel reference.
type ChannelRef struct {
	ID          string `json:"id"`
	ChannelName string `json:"channelName"`
}

type VideoResponse struct {
	ID           string         `json:"id"`
	VideoID      string         `json:"videoId"`
	Title        string         `json:"title"`
	ThumbnailURL string         `json:"thumbnailUrl"`
	MediaURL     string         `json:"mediaUrl"`
	PlaybackURL  string         `json:"playbackUrl,omitempty"`
	Description  string         `json:"description"`
	Category     string         `json:"category"`
	ChannelID    *string        `json:"channelId,omitempty"`
	Channel      *ChannelRef    `json:"channel,omitempty"`
	UploaderID   string         `json:"uploaderId"`
	Uploader     *OwnerResponse `json:"uploader,omitempty"`
	ViewCount    int64          `json:"viewCount"`
	LikeCount    int64          `json:"likeCount"`
	DislikeCount int64          `json:"dislikeCount"`
	UploadedAt   time.Time      `json:"uploadedAt"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// VideoDetailResponse is the single-video view, with the ids of its comments.
type VideoDetailResponse struct {
	VideoResponse
	Comments []string `json:"comments"`
}

type CommentResponse struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	VideoID   string         `json:"videoId"`
	AuthorID  string         `json:"authorId"`
	Author    *OwnerResponse `json:"author,omitempty"`
	PostedAt  time.Time      `json:"postedAt"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// --- Mappers ---

// MapOwnerToResponse returns nil for an unresolved reference.
func MapOwnerToResponse(user *domain.User) *OwnerResponse {
	if user == nil {
		return nil
	}
	return &OwnerResponse{ID: user.ID.Hex(), Username: user.Username, Avatar: user.AvatarURL}
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        user.ID.Hex(),
		Username:  user.Username,
		Email:     user.Email,
		Avatar:    user.AvatarURL,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func MapProfileToResponse(profile *service.UserProfile) ProfileResponse {
	resp := ProfileResponse{
		UserResponse: MapUserToResponse(&profile.User),
		Channels:     make([]ChannelResponse, len(profile.Channels)),
	}
	for i := range profile.Channels {
		resp.Channels[i] = MapChannelToResponse(&profile.Channels[i], nil)
	}
	return resp
}

func MapUserChannelsToResponse(profile *service.UserProfile) UserChannelsResponse {
	resp := UserChannelsResponse{
		UserResponse: MapUserToResponse(&profile.User),
		Channels:     make([]ChannelSummary, len(profile.Channels)),
	}
	for i, ch := range profile.Channels {
		resp.Channels[i] = ChannelSummary{ID: ch.ID.Hex(), ChannelName: ch.ChannelName, BannerURL: ch.BannerURL}
	}
	return resp
}

func MapChannelToResponse(channel *domain.Channel, owner *domain.User) ChannelResponse {
	return ChannelResponse{
		ID:              channel.ID.Hex(),
		ChannelName:     channel.ChannelName,
		OwnerID:         channel.OwnerID.Hex(),
		Owner:           MapOwnerToResponse(owner),
		Description:     channel.Description,
		BannerURL:       channel.BannerURL,
		SubscriberCount: channel.SubscriberCount,
		CreatedAt:       channel.CreatedAt,
		UpdatedAt:       channel.UpdatedAt,
	}
}

func MapChannelDetailsToResponse(details *service.ChannelDetails) ChannelDetailResponse {
	return ChannelDetailResponse{
		ChannelResponse: MapChannelToResponse(&details.Channel, details.Owner),
		Videos:          MapVideoDetailsToResponse(details.Videos),
	}
}

func MapChannelsToResponse(channels []service.ChannelDetails) []ChannelResponse {
	resp := make([]ChannelResponse, len(channels))
	for i := range channels {
		resp[i] = MapChannelToResponse(&channels[i].Channel, channels[i].Owner)
	}
	return resp
}

// MapVideoToResponse converts a video; uploader and channel are expanded when given.
func MapVideoToResponse(video *domain.Video, uploader *domain.User, channel *domain.Channel) VideoResponse {
	resp := VideoResponse{
		ID:           video.ID.Hex(),
		VideoID:      video.VideoID,
		Title:        video.Title,
		ThumbnailURL: video.ThumbnailURL,
		MediaURL:     video.MediaURL,
		Description:  video.Description,
		Category:     video.Category,
		UploaderID:   video.UploaderID.Hex(),
		Uploader:     MapOwnerToResponse(uploader),
		ViewCount:    video.ViewCount,
		LikeCount:    video.LikeCount,
		DislikeCount: video.DislikeCount,
		UploadedAt:   video.UploadedAt,
		CreatedAt:    video.CreatedAt,
		UpdatedAt:    video.UpdatedAt,
	}
	if video.ChannelID != nil {
		channelID := video.ChannelID.Hex()
		resp.ChannelID = &channelID
	}
	if channel != nil {
		resp.Channel = &ChannelRef{ID: channel.ID.Hex(), ChannelName: channel.ChannelName}
	}
	return resp
}

func MapVideoDetailsToResponse(videos []service.VideoDetails) []VideoResponse {
	resp := make([]VideoResponse, len(videos))
	for i := range videos {
		resp[i] = MapVideoToResponse(&videos[i].Video, videos[i].Uploader, videos[i].Channel)
	}
	return resp
}

func MapVideoDetailToResponse(details *service.VideoDetails) VideoDetailResponse {
	resp := VideoDetailResponse{
		VideoResponse: MapVideoToResponse(&details.Video, details.Uploader, details.Channel),
		Comments:      make([]string, len(details.CommentIDs)),
	}
	resp.PlaybackURL = details.PlaybackURL
	for i, id := range details.CommentIDs {
		resp.Comments[i] = id.Hex()
	}
	return resp
}

func MapCommentToResponse(details *service.CommentDetails) CommentResponse {
	c := details.Comment
	return CommentResponse{
		ID:        c.ID.Hex(),
		Text:      c.Text,
		VideoID:   c.VideoID.Hex(),
		AuthorID:  c.AuthorID.Hex(),
		Author:    MapOwnerToResponse(details.Author),
		PostedAt:  c.PostedAt,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func MapCommentsToResponse(comments []service.CommentDetails) []CommentResponse {
	resp := make([]CommentResponse, len(comments))
	for i := range comments {
		resp[i] = MapCommentToResponse(&comments[i])
	}
	return resp
}
