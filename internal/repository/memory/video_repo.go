package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"youclone/internal/domain"
	"youclone/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type videoRepository struct {
	t *table[domain.Video]
}

// NewVideoRepository creates an empty in-memory repository.VideoRepository.
func NewVideoRepository() repository.VideoRepository {
	return &videoRepository{t: newTable[domain.Video]()}
}

func (r *videoRepository) Create(_ context.Context, video *domain.Video) (primitive.ObjectID, error) {
	if video.VideoID == "" || video.Title == "" || video.UploaderID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("video id, title and uploader are required")
	}

	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	for _, existing := range r.t.rows {
		if existing.val.VideoID == video.VideoID {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}

	video.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if video.UploadedAt.IsZero() {
		video.UploadedAt = now
	}
	video.CreatedAt = now
	video.UpdatedAt = now
	r.t.insert(video.ID, copyVideo(*video))
	return video.ID, nil
}

func (r *videoRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Video, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	existing, ok := r.t.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	video := copyVideo(existing.val)
	return &video, nil
}

func (r *videoRepository) List(_ context.Context, filter domain.VideoFilter) ([]domain.Video, error) {
	query := strings.ToLower(filter.TitleQuery)
	return r.selectVideos(func(v *domain.Video) bool {
		if query != "" && !strings.Contains(strings.ToLower(v.Title), query) {
			return false
		}
		if filter.Category != "" && v.Category != filter.Category {
			return false
		}
		return true
	}, true), nil
}

func (r *videoRepository) ListByChannel(_ context.Context, channelID primitive.ObjectID) ([]domain.Video, error) {
	return r.selectVideos(func(v *domain.Video) bool {
		return v.ChannelID != nil && *v.ChannelID == channelID
	}, false), nil
}

func (r *videoRepository) Update(_ context.Context, id primitive.ObjectID, update domain.VideoUpdate) (*domain.Video, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	existing, ok := r.t.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	update.Apply(&existing.val)
	existing.val.UpdatedAt = time.Now().UTC()

	video := copyVideo(existing.val)
	return &video, nil
}

func (r *videoRepository) Increment(_ context.Context, id primitive.ObjectID, counter domain.VideoCounter) (*domain.Video, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	existing, ok := r.t.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	switch counter {
	case domain.CounterViews:
		existing.val.ViewCount++
	case domain.CounterLikes:
		existing.val.LikeCount++
	case domain.CounterDislikes:
		existing.val.DislikeCount++
	default:
		return nil, fmt.Errorf("unknown video counter %q", counter)
	}

	video := copyVideo(existing.val)
	return &video, nil
}

func (r *videoRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	if _, ok := r.t.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.t.rows, id)
	return nil
}

func (r *videoRepository) selectVideos(match func(*domain.Video) bool, newestFirst bool) []domain.Video {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	videos := r.t.selectSorted(match, func(v *domain.Video) time.Time { return v.UploadedAt }, newestFirst)
	for i := range videos {
		videos[i] = copyVideo(videos[i])
	}
	return videos
}

// copyVideo detaches the ChannelID pointer from the stored row.
func copyVideo(v domain.Video) domain.Video {
	if v.ChannelID != nil {
		id := *v.ChannelID
		v.ChannelID = &id
	}
	return v
}
