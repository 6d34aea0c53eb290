package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Channel is a named collection of videos owned by a single User.
// (OwnerID, ChannelName) is unique.
type Channel struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChannelName     string             `bson:"channelName" json:"channelName"`
	OwnerID         primitive.ObjectID `bson:"owner" json:"owner"` // Immutable after creation
	Description     string             `bson:"description" json:"description"`
	BannerURL       string             `bson:"bannerUrl" json:"bannerUrl"`
	SubscriberCount int64              `bson:"subscriberCount" json:"subscriberCount"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsOwnedBy reports whether userID owns the channel.
func (c *Channel) IsOwnedBy(userID primitive.ObjectID) bool {
	return c.OwnerID == userID
}
