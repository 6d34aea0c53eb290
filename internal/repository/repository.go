package repository

import (
	"context"
	"youclone/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	// GetByLogin matches the email when the login contains "@", else the username.
	GetByLogin(ctx context.Context, emailOrUsername string) (*domain.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error)
}

// ChannelRepository defines the interface for interacting with channel data.
type ChannelRepository interface {
	// Create returns ErrDuplicate when the owner already has a channel with that name.
	Create(ctx context.Context, channel *domain.Channel) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Channel, error)
	GetByOwnerAndName(ctx context.Context, ownerID primitive.ObjectID, channelName string) (*domain.Channel, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Channel, error)
	List(ctx context.Context) ([]domain.Channel, error)                                        // Newest first
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Channel, error) // Oldest first
}

// VideoRepository defines the interface for interacting with video data.
type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error)
	List(ctx context.Context, filter domain.VideoFilter) ([]domain.Video, error)                 // Newest upload first
	ListByChannel(ctx context.Context, channelID primitive.ObjectID) ([]domain.Video, error) // Oldest upload first
	Update(ctx context.Context, id primitive.ObjectID, update domain.VideoUpdate) (*domain.Video, error)
	// Increment atomically adds 1 to counter and returns the updated video.
	Increment(ctx context.Context, id primitive.ObjectID, counter domain.VideoCounter) (*domain.Video, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CommentRepository defines the interface for interacting with comment data.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error)
	ListByVideo(ctx context.Context, videoID primitive.ObjectID) ([]domain.Comment, error) // Newest first
	UpdateText(ctx context.Context, id primitive.ObjectID, text string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByVideo(ctx context.Context, videoID primitive.ObjectID) (int64, error)
}

// Repositories bundles one implementation of every repository.
type Repositories struct {
	Users    UserRepository
	Channels ChannelRepository
	Videos   VideoRepository
	Comments CommentRepository
}
