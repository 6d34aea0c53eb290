package memory

import (
	"context"
	"errors"
	"time"
	"youclone/internal/domain"
	"youclone/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type commentRepository struct {
	t *table[domain.Comment]
}

// NewCommentRepository creates an empty in-memory repository.CommentRepository.
func NewCommentRepository() repository.CommentRepository {
	return &commentRepository{t: newTable[domain.Comment]()}
}

func (r *commentRepository) Create(_ context.Context, comment *domain.Comment) (primitive.ObjectID, error) {
	if comment.Text == "" || comment.AuthorID == primitive.NilObjectID || comment.VideoID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("comment text, author and video are required")
	}

	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	comment.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if comment.PostedAt.IsZero() {
		comment.PostedAt = now
	}
	comment.CreatedAt = now
	comment.UpdatedAt = now
	r.t.insert(comment.ID, *comment)
	return comment.ID, nil
}

func (r *commentRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Comment, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	existing, ok := r.t.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	comment := existing.val
	return &comment, nil
}

func (r *commentRepository) ListByVideo(_ context.Context, videoID primitive.ObjectID) ([]domain.Comment, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	return r.t.selectSorted(func(c *domain.Comment) bool {
		return c.VideoID == videoID
	}, func(c *domain.Comment) time.Time { return c.CreatedAt }, true), nil
}

func (r *commentRepository) UpdateText(_ context.Context, id primitive.ObjectID, text string) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	existing, ok := r.t.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	existing.val.Text = text
	existing.val.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *commentRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	if _, ok := r.t.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.t.rows, id)
	return nil
}

func (r *commentRepository) DeleteByVideo(_ context.Context, videoID primitive.ObjectID) (int64, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	var deleted int64
	for id, existing := range r.t.rows {
		if existing.val.VideoID == videoID {
			delete(r.t.rows, id)
			deleted++
		}
	}
	return deleted, nil
}
