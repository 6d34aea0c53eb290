package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"youclone/internal/domain"
	"youclone/internal/repository"
	"youclone/internal/storage"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const videoIDLength = 10

// CategoryAll disables category filtering in ListVideos (case-insensitive).
const CategoryAll = "all"

// CreateVideoInput carries the metadata of a new video.
type CreateVideoInput struct {
	UploaderID   primitive.ObjectID
	Title        string
	MediaURL     string
	MediaKey     string
	ThumbnailURL string
	Description  string
	Category     string
	ChannelID    *primitive.ObjectID
}

// VideoService manages videos, their counters and their comment cleanup.
type VideoService interface {
	CreateVideo(ctx context.Context, in CreateVideoInput) (*domain.Video, error)
	GetVideo(ctx context.Context, videoID primitive.ObjectID) (*VideoDetails, error)
	UpdateVideo(ctx context.Context, callerID, videoID primitive.ObjectID, update domain.VideoUpdate) (*domain.Video, error)
	DeleteVideo(ctx context.Context, callerID, videoID primitive.ObjectID) error
	ListVideos(ctx context.Context, query, category string) ([]VideoDetails, error)
	IncrementView(ctx context.Context, videoID primitive.ObjectID) (*domain.Video, error)
	LikeVideo(ctx context.Context, videoID primitive.ObjectID) (*domain.Video, error)
	DislikeVideo(ctx context.Context, videoID primitive.ObjectID) (*domain.Video, error)
}

type videoService struct {
	videoRepo   repository.VideoRepository
	channelRepo repository.ChannelRepository
	commentRepo repository.CommentRepository
	fileStorage storage.FileStorage // Optional
	expand      expander
	log         logrus.FieldLogger
	newVideoID  func() (string, error)
}

// NewVideoService creates a new instance of videoService. fileStorage may be
// nil, in which case stored media objects are never removed.
func NewVideoService(
	videoRepo repository.VideoRepository,
	channelRepo repository.ChannelRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	fileStorage storage.FileStorage,
	log logrus.FieldLogger,
) VideoService {
	return &videoService{
		videoRepo:   videoRepo,
		channelRepo: channelRepo,
		commentRepo: commentRepo,
		fileStorage: fileStorage,
		expand:      expander{userRepo: userRepo, channelRepo: channelRepo},
		log:         log.WithField("component", "video_service"),
		newVideoID: func() (string, error) {
			return gonanoid.New(videoIDLength)
		},
	}
}

// CreateVideo validates and stores a new video for the uploader.
func (s *videoService) CreateVideo(ctx context.Context, in CreateVideoInput) (*domain.Video, error) {
	// 1. Validate input
	if in.UploaderID == primitive.NilObjectID {
		return nil, ErrUnauthorized
	}
	title := strings.TrimSpace(in.Title)
	mediaURL := strings.TrimSpace(in.MediaURL)
	if title == "" || mediaURL == "" {
		return nil, fmt.Errorf("%w: title and mediaUrl required", ErrValidation)
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = domain.DefaultCategory
	}
	mediaKey := strings.TrimSpace(in.MediaKey)
	if mediaKey != "" && !OwnsObjectKey(in.UploaderID, mediaKey) {
		return nil, fmt.Errorf("%w: mediaKey is not one of your uploads", ErrForbidden)
	}

	// 2. The target channel must be one of the uploader's
	if in.ChannelID != nil {
		if err := s.checkChannelOwner(ctx, *in.ChannelID, in.UploaderID); err != nil {
			return nil, err
		}
	}

	// 3. Short external id; a collision surfaces as a store uniqueness failure
	shortID, err := s.newVideoID()
	if err != nil {
		return nil, fmt.Errorf("generate video id: %w", err)
	}

	// 4. Persist. Channel.videos is derived from videos.channel.
	video := &domain.Video{
		VideoID:      shortID,
		Title:        title,
		ThumbnailURL: strings.TrimSpace(in.ThumbnailURL),
		MediaURL:     mediaURL,
		MediaKey:     mediaKey,
		Description:  strings.TrimSpace(in.Description),
		Category:     category,
		ChannelID:    in.ChannelID,
		UploaderID:   in.UploaderID,
	}
	if _, err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// GetVideo returns a video with uploader and channel expanded.
func (s *videoService) GetVideo(ctx context.Context, videoID primitive.ObjectID) (*VideoDetails, error) {
	video, err := s.loadVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	details, err := s.expand.videoDetails(ctx, []domain.Video{*video})
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByVideo(ctx, video.ID)
	if err != nil {
		return nil, err
	}
	// ListByVideo is newest first
	details[0].CommentIDs = make([]primitive.ObjectID, len(comments))
	for i := range comments {
		details[0].CommentIDs[len(comments)-1-i] = comments[i].ID
	}

	if video.MediaKey != "" && s.fileStorage != nil {
		playbackURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, video.MediaKey, storage.DefaultPresignedURLExpiry)
		if err != nil {
			s.log.WithError(err).WithField("object_key", video.MediaKey).Warn("Failed to presign playback URL")
		} else {
			details[0].PlaybackURL = playbackURL
		}
	}
	return &details[0], nil
}

// UpdateVideo merges the provided fields onto a video owned by callerID.
func (s *videoService) UpdateVideo(ctx context.Context, callerID, videoID primitive.ObjectID, update domain.VideoUpdate) (*domain.Video, error) {
	video, err := s.loadVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !video.IsUploadedBy(callerID) {
		return nil, ErrForbidden
	}

	// Required-at-creation fields stay required
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		update.Title = &title
	}
	if update.MediaURL != nil {
		mediaURL := strings.TrimSpace(*update.MediaURL)
		if mediaURL == "" {
			return nil, fmt.Errorf("%w: mediaUrl cannot be empty", ErrValidation)
		}
		update.MediaURL = &mediaURL
	}
	if update.ChannelID != nil {
		if err := s.checkChannelOwner(ctx, *update.ChannelID, callerID); err != nil {
			return nil, err
		}
	}

	updated, err := s.videoRepo.Update(ctx, videoID, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return updated, nil
}

// DeleteVideo removes a video owned by callerID, then best-effort removes its
// comments and stored media. Cleanup failures are logged, never returned.
func (s *videoService) DeleteVideo(ctx context.Context, callerID, videoID primitive.ObjectID) error {
	video, err := s.loadVideo(ctx, videoID)
	if err != nil {
		return err
	}
	if !video.IsUploadedBy(callerID) {
		return ErrForbidden
	}

	if err := s.videoRepo.Delete(ctx, videoID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	entry := s.log.WithField("video_id", videoID.Hex())
	deleted, err := s.commentRepo.DeleteByVideo(ctx, videoID)
	if err != nil {
		entry.WithError(err).Warn("Failed to delete comments of deleted video")
	} else if deleted > 0 {
		entry.WithField("comments", deleted).Debug("Deleted comments of deleted video")
	}

	if video.MediaKey != "" && s.fileStorage != nil {
		if err := s.fileStorage.DeleteObject(ctx, video.MediaKey); err != nil {
			entry.WithError(err).WithField("object_key", video.MediaKey).Warn("Failed to delete media object of deleted video")
		}
	}
	return nil
}

// ListVideos filters by case-insensitive title substring and exact category.
func (s *videoService) ListVideos(ctx context.Context, query, category string) ([]VideoDetails, error) {
	filter := domain.VideoFilter{TitleQuery: strings.TrimSpace(query)}
	if c := strings.TrimSpace(category); c != "" && !strings.EqualFold(c, CategoryAll) {
		filter.Category = c
	}

	videos, err := s.videoRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.expand.videoDetails(ctx, videos)
}

// IncrementView adds one view.
func (s *videoService) IncrementView(ctx context.Context, videoID primitive.ObjectID) (*domain.Video, error) {
	return s.increment(ctx, videoID, domain.CounterViews)
}

// LikeVideo adds one like. Counters are raw event counts, not unique voters.
func (s *videoService) LikeVideo(ctx context.Context, videoID primitive.ObjectID) (*domain.Video, error) {
	return s.increment(ctx, videoID, domain.CounterLikes)
}

// DislikeVideo adds one dislike.
func (s *videoService) DislikeVideo(ctx context.Context, videoID primitive.ObjectID) (*domain.Video, error) {
	return s.increment(ctx, videoID, domain.CounterDislikes)
}

func (s *videoService) increment(ctx context.Context, videoID primitive.ObjectID, counter domain.VideoCounter) (*domain.Video, error) {
	video, err := s.videoRepo.Increment(ctx, videoID, counter)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return video, nil
}

func (s *videoService) loadVideo(ctx context.Context, videoID primitive.ObjectID) (*domain.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return video, nil
}

func (s *videoService) checkChannelOwner(ctx context.Context, channelID, userID primitive.ObjectID) error {
	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrChannelNotFound
		}
		return err
	}
	if !channel.IsOwnedBy(userID) {
		return fmt.Errorf("%w: channel belongs to another user", ErrForbidden)
	}
	return nil
}
