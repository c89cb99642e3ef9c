package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Collection is a named, ordered group of places owned by one caller-supplied
// id. Places keep insertion order; saves append, never replace.
type Collection struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Places    []Place   `bson:"places" json:"places"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// FavoriteItem is the read-only favorites projection: a favorited place
// annotated with its owning collection. Recomputed on every read.
type FavoriteItem struct {
	Place          `bson:",inline"`
	CollectionID   string `json:"collectionId"`
	CollectionName string `json:"collectionName"`
}

// SavePlacesRequest is the create-or-append payload. Places stays nil when
// the field is structurally absent, which is a validation failure; an empty
// array is allowed.
type SavePlacesRequest struct {
	Name   string  `json:"name"`
	Places []Place `json:"places"`
}

// PlacePatch is a partial place update. Each field applies only when it was
// present in the payload; boolean fields with a wrong JSON type are ignored
// rather than rejected, matching presence-based patch semantics.
type PlacePatch struct {
	IsFavorite *bool
	IsVisited  *bool
	Note       *string
	NoteSet    bool
	Tags       []string
	TagsSet    bool
}

func (p *PlacePatch) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if value, ok := raw["isFavorite"]; ok {
		var flag bool
		if err := json.Unmarshal(value, &flag); err == nil {
			p.IsFavorite = &flag
		}
	}
	if value, ok := raw["isVisited"]; ok {
		var flag bool
		if err := json.Unmarshal(value, &flag); err == nil {
			p.IsVisited = &flag
		}
	}
	if value, ok := raw["note"]; ok {
		var note *string
		if err := json.Unmarshal(value, &note); err == nil {
			p.NoteSet = true
			p.Note = note
		}
	}
	if value, ok := raw["tags"]; ok {
		var tags []string
		if err := json.Unmarshal(value, &tags); err != nil {
			return NewValidationError("tags must be an array of strings")
		}
		p.TagsSet = true
		p.Tags = tags
	}
	return nil
}

// Validate enforces the tag constraints: at most MaxPlaceTags entries, every
// entry from the allowed vocabulary, no duplicates. A violation fails the
// whole patch.
func (p *PlacePatch) Validate() error {
	if !p.TagsSet {
		return nil
	}
	if len(p.Tags) > MaxPlaceTags {
		return NewValidationError("a place can have at most %d tags", MaxPlaceTags)
	}
	seen := make(map[string]struct{}, len(p.Tags))
	for _, tag := range p.Tags {
		if !IsAllowedTag(tag) {
			return NewValidationError("unknown tag %q", tag)
		}
		if _, dup := seen[tag]; dup {
			return NewValidationError("duplicate tag %q", tag)
		}
		seen[tag] = struct{}{}
	}
	return nil
}

// CollectionRepository is the persistence abstraction for collections: a
// key-value mapping with stable value iteration. GetByID returns a not-found
// error for unknown ids.
type CollectionRepository interface {
	GetByID(ctx context.Context, id string) (*Collection, error)
	Upsert(ctx context.Context, collection *Collection) error
	All(ctx context.Context) ([]*Collection, error)
}

// CollectionManager is the mutation protocol consumed by the controllers.
type CollectionManager interface {
	SavePlaces(ctx context.Context, id string, request *SavePlacesRequest) (collection *Collection, created bool, err error)
	PatchPlace(ctx context.Context, collectionID, placeID string, patch *PlacePatch) (*Collection, error)
	DeletePlace(ctx context.Context, collectionID, placeID string) (*Collection, error)
	List(ctx context.Context) ([]*Collection, error)
	Get(ctx context.Context, id string) (*Collection, error)
	Favorites(ctx context.Context) ([]FavoriteItem, error)
}
