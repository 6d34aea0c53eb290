// Package memory provides process-local implementations of the repository
// interfaces. They back the "memory" database driver used for local
// development and tests; data is lost on restart.
package memory

import (
	"sort"
	"sync"
	"time"
	"youclone/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewRepositories returns a fresh, empty set of in-memory repositories.
func NewRepositories() repository.Repositories {
	return repository.Repositories{
		Users:    NewUserRepository(),
		Channels: NewChannelRepository(),
		Videos:   NewVideoRepository(),
		Comments: NewCommentRepository(),
	}
}

type row[T any] struct {
	seq int64
	val T
}

// table is a mutex-guarded id -> document map that remembers insertion order.
type table[T any] struct {
	mu   sync.RWMutex
	rows map[primitive.ObjectID]*row[T]
	seq  int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[primitive.ObjectID]*row[T])}
}

// insert must be called with mu held for writing.
func (t *table[T]) insert(id primitive.ObjectID, val T) {
	t.seq++
	t.rows[id] = &row[T]{seq: t.seq, val: val}
}

// selectSorted must be called with mu held. It returns copies of the matching
// rows ordered by key, ties broken by insertion order.
func (t *table[T]) selectSorted(match func(*T) bool, key func(*T) time.Time, desc bool) []T {
	matched := make([]*row[T], 0, len(t.rows))
	for _, r := range t.rows {
		if match(&r.val) {
			matched = append(matched, r)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		ki, kj := key(&matched[i].val), key(&matched[j].val)
		if !ki.Equal(kj) {
			if desc {
				return ki.After(kj)
			}
			return ki.Before(kj)
		}
		if desc {
			return matched[i].seq > matched[j].seq
		}
		return matched[i].seq < matched[j].seq
	})

	out := make([]T, len(matched))
	for i, r := range matched {
		out[i] = r.val
	}
	return out
}

func idSet(ids []primitive.ObjectID) map[primitive.ObjectID]struct{} {
	set := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
