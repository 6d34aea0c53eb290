package service

import (
	"context"
	"errors"
	"youclone/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService exposes read access to user profiles.
type UserService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*UserProfile, error)
}

type userService struct {
	userRepo    repository.UserRepository
	channelRepo repository.ChannelRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository, channelRepo repository.ChannelRepository) UserService {
	return &userService{userRepo: userRepo, channelRepo: channelRepo}
}

// GetProfile returns the user (without password hash) and the channels it owns.
func (s *userService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*UserProfile, error) {
	return loadProfile(ctx, s.userRepo, s.channelRepo, userID)
}

func loadProfile(ctx context.Context, userRepo repository.UserRepository, channelRepo repository.ChannelRepository, userID primitive.ObjectID) (*UserProfile, error) {
	user, err := userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""

	channels, err := channelRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserProfile{User: *user, Channels: channels}, nil
}
