package saved

import (
	"context"
	"errors"
	"sync"

	"github.com/jimezsa/jobhunt/internal/api"
	"github.com/jimezsa/jobhunt/internal/models"
	"github.com/jimezsa/jobhunt/internal/store"
)

// LocalBackend keeps saved ids in the local store, for use without an account.
type LocalBackend struct {
	store store.Store
	mu    sync.Mutex
}

func NewLocalBackend(s store.Store) *LocalBackend {
	return &LocalBackend{store: s}
}

func (b *LocalBackend) SavedIDs(ctx context.Context) ([]models.ID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.read(ctx)
}

func (b *LocalBackend) Save(ctx context.Context, id models.ID) (api.SaveResult, error) {
	return b.mutate(ctx, func(ids []models.ID) []models.ID {
		for _, existing := range ids {
			if existing == id {
				return ids
			}
		}
		return append(ids, id)
	})
}

func (b *LocalBackend) Unsave(ctx context.Context, id models.ID) (api.SaveResult, error) {
	return b.mutate(ctx, func(ids []models.ID) []models.ID {
		out := ids[:0]
		for _, existing := range ids {
			if existing != id {
				out = append(out, existing)
			}
		}
		return out
	})
}

func (b *LocalBackend) mutate(ctx context.Context, edit func([]models.ID) []models.ID) (api.SaveResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ids, err := b.read(ctx)
	if err != nil {
		return api.SaveResult{}, err
	}
	ids = edit(ids)
	if err := store.SetJSON(ctx, b.store, store.KeySavedJobs, ids); err != nil {
		return api.SaveResult{}, err
	}
	return api.SaveResult{OK: true, SavedIDs: ids, HasSavedIDs: true}, nil
}

func (b *LocalBackend) read(ctx context.Context) ([]models.ID, error) {
	var ids []models.ID
	err := store.GetJSON(ctx, b.store, store.KeySavedJobs, &ids)
	if errors.Is(err, store.ErrNotFound) {
		return []models.ID{}, nil
	}
	if err != nil {
		return nil, err
	}
	return ids, nil
}
