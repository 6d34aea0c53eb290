package memory

import (
	"context"
	"errors"
	"time"
	"youclone/internal/domain"
	"youclone/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type channelRepository struct {
	t *table[domain.Channel]
}

// NewChannelRepository creates an empty in-memory repository.ChannelRepository.
func NewChannelRepository() repository.ChannelRepository {
	return &channelRepository{t: newTable[domain.Channel]()}
}

func (r *channelRepository) Create(_ context.Context, channel *domain.Channel) (primitive.ObjectID, error) {
	if channel.ChannelName == "" || channel.OwnerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("channel name and owner are required")
	}

	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	for _, existing := range r.t.rows {
		if existing.val.OwnerID == channel.OwnerID && existing.val.ChannelName == channel.ChannelName {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}

	channel.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	channel.CreatedAt = now
	channel.UpdatedAt = now
	r.t.insert(channel.ID, *channel)
	return channel.ID, nil
}

func (r *channelRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Channel, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	existing, ok := r.t.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	channel := existing.val
	return &channel, nil
}

func (r *channelRepository) GetByOwnerAndName(_ context.Context, ownerID primitive.ObjectID, channelName string) (*domain.Channel, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	for _, existing := range r.t.rows {
		if existing.val.OwnerID == ownerID && existing.val.ChannelName == channelName {
			channel := existing.val
			return &channel, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *channelRepository) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Channel, error) {
	wanted := idSet(ids)
	return r.selectChannels(func(c *domain.Channel) bool {
		_, ok := wanted[c.ID]
		return ok
	}, false), nil
}

func (r *channelRepository) List(_ context.Context) ([]domain.Channel, error) {
	return r.selectChannels(func(*domain.Channel) bool { return true }, true), nil
}

func (r *channelRepository) ListByOwner(_ context.Context, ownerID primitive.ObjectID) ([]domain.Channel, error) {
	return r.selectChannels(func(c *domain.Channel) bool { return c.OwnerID == ownerID }, false), nil
}

func (r *channelRepository) selectChannels(match func(*domain.Channel) bool, newestFirst bool) []domain.Channel {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	return r.t.selectSorted(match, func(c *domain.Channel) time.Time { return c.CreatedAt }, newestFirst)
}
