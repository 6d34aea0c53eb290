package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"youclone/internal/domain"
	"youclone/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateChannelInput carries the fields of a new channel. OwnerID comes from
// the verified credential, never from the request body.
type CreateChannelInput struct {
	OwnerID     primitive.ObjectID
	ChannelName string
	Description string
	BannerURL   string
}

// ChannelService manages channels and their link to owners and videos.
type ChannelService interface {
	CreateChannel(ctx context.Context, in CreateChannelInput) (*ChannelDetails, *UserProfile, error)
	GetChannel(ctx context.Context, channelID primitive.ObjectID) (*ChannelDetails, error)
	ListChannels(ctx context.Context) ([]ChannelDetails, error)
}

type channelService struct {
	channelRepo repository.ChannelRepository
	videoRepo   repository.VideoRepository
	userRepo    repository.UserRepository
	expand      expander
}

// NewChannelService creates a new instance of channelService.
func NewChannelService(
	channelRepo repository.ChannelRepository,
	videoRepo repository.VideoRepository,
	userRepo repository.UserRepository,
) ChannelService {
	return &channelService{
		channelRepo: channelRepo,
		videoRepo:   videoRepo,
		userRepo:    userRepo,
		expand:      expander{userRepo: userRepo, channelRepo: channelRepo},
	}
}

// CreateChannel persists a new channel for the caller and returns it together
// with the caller's refreshed profile.
func (s *channelService) CreateChannel(ctx context.Context, in CreateChannelInput) (*ChannelDetails, *UserProfile, error) {
	// 1. Validate input
	if in.OwnerID == primitive.NilObjectID {
		return nil, nil, ErrUnauthorized
	}
	name := strings.TrimSpace(in.ChannelName)
	if name == "" {
		return nil, nil, fmt.Errorf("%w: channel name required", ErrValidation)
	}

	// 2. Fast duplicate check; the unique index is the real guarantee
	_, err := s.channelRepo.GetByOwnerAndName(ctx, in.OwnerID, name)
	if err == nil {
		return nil, nil, ErrChannelExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, err
	}

	// 3. Persist. The owner's channel list is derived from channels.owner,
	// so this single insert is the whole link.
	channel := &domain.Channel{
		ChannelName: name,
		OwnerID:     in.OwnerID,
		Description: strings.TrimSpace(in.Description),
		BannerURL:   strings.TrimSpace(in.BannerURL),
	}
	if _, err := s.channelRepo.Create(ctx, channel); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, nil, ErrChannelExists
		}
		return nil, nil, err
	}

	// 4. Build the response views
	profile, err := loadProfile(ctx, s.userRepo, s.channelRepo, in.OwnerID)
	if err != nil {
		return nil, nil, err
	}
	owner := profile.User
	return &ChannelDetails{Channel: *channel, Owner: &owner, Videos: []VideoDetails{}}, profile, nil
}

// GetChannel returns a channel with its owner and its videos (uploader expanded).
func (s *channelService) GetChannel(ctx context.Context, channelID primitive.ObjectID) (*ChannelDetails, error) {
	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	details, err := s.expand.channelDetails(ctx, []domain.Channel{*channel})
	if err != nil {
		return nil, err
	}

	videos, err := s.videoRepo.ListByChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	details[0].Videos, err = s.expand.videoDetails(ctx, videos)
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// ListChannels returns every channel newest first with owners expanded.
func (s *channelService) ListChannels(ctx context.Context) ([]ChannelDetails, error) {
	channels, err := s.channelRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.expand.channelDetails(ctx, channels)
}
