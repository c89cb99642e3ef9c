package bootstrap

import (
	"context"
	"time"

	"github.com/spotclip/spotclip/domain"
)

// Demo collections for dev/demo mode, inserted at startup when
// SEED_DEMO_DATA=true. Fixed ids keep the seed idempotent: a demo collection
// is added only when its id is absent, and user data is never touched.

const (
	demoSeattleID   = "demo-seattle"
	demoManhattanID = "demo-manhattan"
)

func SeedDemoData(ctx context.Context, store domain.CollectionRepository) error {
	for _, build := range []func() *domain.Collection{buildSeattleCollection, buildManhattanCollection} {
		collection := build()
		if _, err := store.GetByID(ctx, collection.ID); err == nil {
			continue
		} else if !domain.IsNotFound(err) {
			return err
		}
		if err := store.Upsert(ctx, collection); err != nil {
			return err
		}
	}
	return nil
}

type demoPlaceOpts struct {
	note       string
	isFavorite bool
	isVisited  bool
}

func demoPlace(id, name, city string, tags []string, opts demoPlaceOpts) domain.Place {
	now := time.Now().UTC()
	place := domain.Place{
		ID:         id,
		Name:       name,
		CityGuess:  city,
		Confidence: 0.95,
		Evidence:   domain.FrameEvidence(0),
		IsFavorite: opts.isFavorite,
		IsVisited:  opts.isVisited,
		CreatedAt:  &now,
		Tags:       tags,
	}
	if opts.note != "" {
		note := opts.note
		place.Note = &note
	}
	return place
}

func buildSeattleCollection() *domain.Collection {
	return &domain.Collection{
		ID:        demoSeattleID,
		Name:      "Seattle",
		CreatedAt: time.Now().UTC(),
		Places: []domain.Place{
			demoPlace("demo-seattle-1", "Pike Place Market", "Seattle", []string{"viewpoint", "restaurant"}, demoPlaceOpts{
				note:       "Must-see for first-time visitors. Great food and flowers.",
				isFavorite: true,
				isVisited:  true,
			}),
			demoPlace("demo-seattle-2", "Space Needle", "Seattle", []string{"viewpoint", "activity location"}, demoPlaceOpts{
				note:       "Iconic tower with observation deck.",
				isFavorite: true,
			}),
			demoPlace("demo-seattle-3", "Museum of Pop Culture", "Seattle", []string{"activity location"}, demoPlaceOpts{
				isVisited: true,
			}),
			demoPlace("demo-seattle-4", "Starbucks Reserve Roastery", "Seattle", []string{"coffee", "cafe/bakery"}, demoPlaceOpts{
				note: "Largest Starbucks in the world.",
			}),
		},
	}
}

func buildManhattanCollection() *domain.Collection {
	return &domain.Collection{
		ID:        demoManhattanID,
		Name:      "Manhattan",
		CreatedAt: time.Now().UTC(),
		Places: []domain.Place{
			demoPlace("demo-manhattan-1", "Central Park", "New York", []string{"viewpoint", "activity location"}, demoPlaceOpts{
				note:       "Perfect for a long walk or picnic.",
				isFavorite: true,
				isVisited:  true,
			}),
			demoPlace("demo-manhattan-2", "Empire State Building", "New York", []string{"viewpoint"}, demoPlaceOpts{
				isFavorite: true,
			}),
			demoPlace("demo-manhattan-3", "Times Square", "New York", []string{"viewpoint", "activity location"}, demoPlaceOpts{
				note:      "Overwhelming but worth seeing once.",
				isVisited: true,
			}),
			demoPlace("demo-manhattan-4", "The High Line", "New York", []string{"viewpoint", "activity location"}, demoPlaceOpts{}),
			demoPlace("demo-manhattan-5", "Katz's Delicatessen", "New York", []string{"restaurant"}, demoPlaceOpts{
				note:      "Classic pastrami. Cash preferred.",
				isVisited: true,
			}),
		},
	}
}
