package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account. A user owns zero or more Channels;
// the list is derived from channels.owner rather than stored here.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"` // Unique, trimmed
	Email        string             `bson:"email" json:"email"`       // Unique, trimmed, lower-cased
	PasswordHash string             `bson:"passwordHash" json:"-"`    // Never expose this via JSON
	AvatarURL    string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
