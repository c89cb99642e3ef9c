package usecase

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spotclip/spotclip/domain"
)

// CollectionUsecase implements the collection mutation protocol. Operations
// that read-then-write one collection (save, patch, delete) are serialized
// per collection id; reads across collections take no locks and see a
// point-in-time snapshot.
type CollectionUsecase struct {
	repo    domain.CollectionRepository
	timeout time.Duration
	now     func() time.Time

	// collection id -> *sync.Mutex; entries live for the process lifetime.
	locks sync.Map
}

func NewCollectionUsecase(repo domain.CollectionRepository, timeout time.Duration) *CollectionUsecase {
	return &CollectionUsecase{
		repo:    repo,
		timeout: timeout,
		now:     time.Now,
	}
}

func (uc *CollectionUsecase) lock(id string) func() {
	value, _ := uc.locks.LoadOrStore(id, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// SavePlaces creates the collection on first use of an id (name required) and
// appends on every call after that (name optional, overwrites when supplied).
// Input places are normalized before they are stored.
func (uc *CollectionUsecase) SavePlaces(ctx context.Context, id string, request *domain.SavePlacesRequest) (*domain.Collection, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if request == nil || request.Places == nil {
		return nil, false, domain.NewValidationError("places[] is required")
	}

	unlock := uc.lock(id)
	defer unlock()

	existing, err := uc.repo.GetByID(ctx, id)
	switch {
	case domain.IsNotFound(err):
		if strings.TrimSpace(request.Name) == "" {
			return nil, false, domain.NewValidationError("name is required to create a collection")
		}
		now := uc.now()
		collection := &domain.Collection{
			ID:        id,
			Name:      request.Name,
			Places:    normalizePlaces(request.Places, now),
			CreatedAt: now.UTC(),
		}
		if err := uc.repo.Upsert(ctx, collection); err != nil {
			return nil, false, err
		}
		return collection, true, nil
	case err != nil:
		return nil, false, err
	}

	existing.Places = append(existing.Places, normalizePlaces(request.Places, uc.now())...)
	if strings.TrimSpace(request.Name) != "" {
		existing.Name = request.Name
	}
	if err := uc.repo.Upsert(ctx, existing); err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// PatchPlace applies a partial update to one place. The tag constraints fail
// the whole patch; fields absent from the payload stay untouched.
func (uc *CollectionUsecase) PatchPlace(ctx context.Context, collectionID, placeID string, patch *domain.PlacePatch) (*domain.Collection, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if patch == nil {
		patch = &domain.PlacePatch{}
	}

	unlock := uc.lock(collectionID)
	defer unlock()

	collection, err := uc.repo.GetByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	idx := findPlace(collection, placeID)
	if idx < 0 {
		return nil, domain.NewNotFoundError("Place not found")
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	place := &collection.Places[idx]
	if patch.IsFavorite != nil {
		place.IsFavorite = *patch.IsFavorite
	}
	if patch.IsVisited != nil {
		place.IsVisited = *patch.IsVisited
	}
	if patch.NoteSet {
		place.Note = domain.NormalizeNote(patch.Note)
	}
	if patch.TagsSet {
		place.Tags = slices.Clone(patch.Tags)
	}

	if err := uc.repo.Upsert(ctx, collection); err != nil {
		return nil, err
	}
	return collection, nil
}

// DeletePlace removes one place, preserving the relative order of the rest.
// An unchanged length after filtering is the not-found signal.
func (uc *CollectionUsecase) DeletePlace(ctx context.Context, collectionID, placeID string) (*domain.Collection, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	unlock := uc.lock(collectionID)
	defer unlock()

	collection, err := uc.repo.GetByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	kept := make([]domain.Place, 0, len(collection.Places))
	for _, place := range collection.Places {
		if place.ID != placeID {
			kept = append(kept, place)
		}
	}
	if len(kept) == len(collection.Places) {
		return nil, domain.NewNotFoundError("Place not found")
	}
	collection.Places = kept

	if err := uc.repo.Upsert(ctx, collection); err != nil {
		return nil, err
	}
	return collection, nil
}

// List returns every collection, newest first.
func (uc *CollectionUsecase) List(ctx context.Context) ([]*domain.Collection, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	collections, err := uc.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(collections, func(i, j int) bool {
		return collections[i].CreatedAt.After(collections[j].CreatedAt)
	})
	return collections, nil
}

func (uc *CollectionUsecase) Get(ctx context.Context, id string) (*domain.Collection, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	return uc.repo.GetByID(ctx, id)
}

// Favorites scans every collection in store iteration order and projects the
// favorited places, annotated with their owning collection.
func (uc *CollectionUsecase) Favorites(ctx context.Context) ([]domain.FavoriteItem, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	collections, err := uc.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	favorites := make([]domain.FavoriteItem, 0)
	for _, collection := range collections {
		for _, place := range collection.Places {
			if place.IsFavorite {
				favorites = append(favorites, domain.FavoriteItem{
					Place:          place,
					CollectionID:   collection.ID,
					CollectionName: collection.Name,
				})
			}
		}
	}
	return favorites, nil
}

func findPlace(collection *domain.Collection, placeID string) int {
	for i := range collection.Places {
		if collection.Places[i].ID == placeID {
			return i
		}
	}
	return -1
}

func normalizePlaces(places []domain.Place, now time.Time) []domain.Place {
	normalized := make([]domain.Place, len(places))
	copy(normalized, places)
	for i := range normalized {
		domain.NormalizePlace(&normalized[i], now)
	}
	return normalized
}
