package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultCategory is assigned to videos created without a category.
const DefaultCategory = "General"

// VideoCounter names one of the monotonic per-video counters.
type VideoCounter string

const (
	CounterViews    VideoCounter = "viewCount"
	CounterLikes    VideoCounter = "likeCount"
	CounterDislikes VideoCounter = "dislikeCount"
)

// Video is an uploaded video's metadata. The media itself lives at MediaURL
// (optionally in our object storage under MediaKey).
type Video struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	VideoID      string              `bson:"videoId" json:"videoId"` // Short external id, unique
	Title        string              `bson:"title" json:"title"`
	ThumbnailURL string              `bson:"thumbnailUrl" json:"thumbnailUrl"`
	MediaURL     string              `bson:"mediaUrl" json:"mediaUrl"`
	MediaKey     string              `bson:"mediaKey,omitempty" json:"-"`
	Description  string              `bson:"description" json:"description"`
	Category     string              `bson:"category" json:"category"`
	ChannelID    *primitive.ObjectID `bson:"channel,omitempty" json:"channel,omitempty"`
	UploaderID   primitive.ObjectID  `bson:"uploader" json:"uploader"`
	ViewCount    int64               `bson:"viewCount" json:"viewCount"`
	LikeCount    int64               `bson:"likeCount" json:"likeCount"`
	DislikeCount int64               `bson:"dislikeCount" json:"dislikeCount"`
	UploadedAt   time.Time           `bson:"uploadedAt" json:"uploadedAt"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// IsUploadedBy reports whether userID uploaded the video.
func (v *Video) IsUploadedBy(userID primitive.ObjectID) bool {
	return v.UploaderID == userID
}

// VideoFilter narrows ListVideos. Empty fields match everything.
type VideoFilter struct {
	TitleQuery string // Case-insensitive substring of Title
	Category   string // Exact match
}

// VideoUpdate carries the fields an owner may overwrite. Nil means unchanged.
type VideoUpdate struct {
	Title        *string
	ThumbnailURL *string
	MediaURL     *string
	Description  *string
	Category     *string
	ChannelID    *primitive.ObjectID
	ClearChannel bool // Detach from the channel; ignored when ChannelID is set
}

// Apply merges the update onto v.
func (u VideoUpdate) Apply(v *Video) {
	if u.Title != nil {
		v.Title = *u.Title
	}
	if u.ThumbnailURL != nil {
		v.ThumbnailURL = *u.ThumbnailURL
	}
	if u.MediaURL != nil {
		v.MediaURL = *u.MediaURL
	}
	if u.Description != nil {
		v.Description = *u.Description
	}
	if u.Category != nil {
		v.Category = *u.Category
	}
	if u.ChannelID != nil {
		id := *u.ChannelID
		v.ChannelID = &id
	} else if u.ClearChannel {
		v.ChannelID = nil
	}
}
