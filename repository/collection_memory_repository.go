package repository

import (
	"context"
	"sync"

	"github.com/spotclip/spotclip/domain"
)

// collectionMemoryRepository keeps collections in process memory. An ordered
// id slice backs All so iteration order is stable across reads (first-insert
// first), which the favorites projection relies on.
type collectionMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.Collection
	order []string
}

func NewCollectionMemoryRepository() domain.CollectionRepository {
	return &collectionMemoryRepository{
		items: make(map[string]*domain.Collection),
	}
}

func (r *collectionMemoryRepository) GetByID(ctx context.Context, id string) (*domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	collection, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("Collection not found")
	}
	return cloneCollection(collection), nil
}

func (r *collectionMemoryRepository) Upsert(ctx context.Context, collection *domain.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[collection.ID]; !exists {
		r.order = append(r.order, collection.ID)
	}
	r.items[collection.ID] = cloneCollection(collection)
	return nil
}

func (r *collectionMemoryRepository) All(ctx context.Context) ([]*domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	collections := make([]*domain.Collection, 0, len(r.order))
	for _, id := range r.order {
		collections = append(collections, cloneCollection(r.items[id]))
	}
	return collections, nil
}

// cloneCollection copies the collection and its places slice so callers can
// mutate their view without racing other readers. Field updates in the
// mutation protocol replace pointers rather than writing through them, so a
// per-place shallow copy is sufficient.
func cloneCollection(collection *domain.Collection) *domain.Collection {
	clone := *collection
	clone.Places = make([]domain.Place, len(collection.Places))
	copy(clone.Places, collection.Places)
	return &clone
}
