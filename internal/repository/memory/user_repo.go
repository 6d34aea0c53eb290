package memory

import (
	"context"
	"errors"
	"strings"
	"time"
	"youclone/internal/domain"
	"youclone/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userRepository struct {
	t *table[domain.User]
}

// NewUserRepository creates an empty in-memory repository.UserRepository.
func NewUserRepository() repository.UserRepository {
	return &userRepository{t: newTable[domain.User]()}
}

func (r *userRepository) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	if user.Username == "" || user.Email == "" || user.PasswordHash == "" {
		return primitive.NilObjectID, errors.New("username, email and password hash are required")
	}

	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	// Same constraints as the unique indexes on email and username
	for _, existing := range r.t.rows {
		if existing.val.Email == user.Email || existing.val.Username == user.Username {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}

	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.t.insert(user.ID, *user)
	return user.ID, nil
}

func (r *userRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	existing, ok := r.t.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user := existing.val
	return &user, nil
}

func (r *userRepository) GetByLogin(_ context.Context, emailOrUsername string) (*domain.User, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	byEmail := strings.Contains(emailOrUsername, "@")
	for _, existing := range r.t.rows {
		if (byEmail && existing.val.Email == emailOrUsername) || (!byEmail && existing.val.Username == emailOrUsername) {
			user := existing.val
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	for _, existing := range r.t.rows {
		if existing.val.Email == email || existing.val.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepository) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	wanted := idSet(ids)

	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	return r.t.selectSorted(func(u *domain.User) bool {
		_, ok := wanted[u.ID]
		return ok
	}, func(u *domain.User) time.Time { return u.CreatedAt }, false), nil
}
