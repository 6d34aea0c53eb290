package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a piece of text posted by a user under a video.
// Only its author may edit or delete it.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text      string             `bson:"text" json:"text"`
	AuthorID  primitive.ObjectID `bson:"authorId" json:"authorId"`
	VideoID   primitive.ObjectID `bson:"videoId" json:"videoId"`
	PostedAt  time.Time          `bson:"postedAt" json:"postedAt"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsAuthoredBy reports whether userID wrote the comment.
func (c *Comment) IsAuthoredBy(userID primitive.ObjectID) bool {
	return c.AuthorID == userID
}
