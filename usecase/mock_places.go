package usecase

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/spotclip/spotclip/domain"
)

// Canned catalog used when real extraction is unavailable (video or mixed
// uploads).
var mockPlaceCatalog = []domain.Place{
	{
		Name:       "Café de Flore",
		CityGuess:  "Paris",
		Confidence: 0.92,
		Evidence:   domain.FrameEvidence(0),
	},
	{
		Name:       "Shibuya Crossing",
		CityGuess:  "Tokyo",
		Confidence: 0.87,
		Evidence:   domain.FrameEvidence(3),
	},
	{
		Name:       "Taquería Orinoco",
		CityGuess:  "Mexico City",
		Confidence: 0.78,
		Evidence:   domain.AudioEvidence(14),
	},
	{
		Name:       "Pike Place Market",
		CityGuess:  "Seattle",
		Confidence: 0.95,
		Evidence:   domain.FrameEvidence(7),
	},
}

// MockPlaces returns 2-4 catalog places, sampled without repetition, each
// with a fresh id.
func MockPlaces() []domain.Place {
	count := 2 + rand.Intn(3)
	places := make([]domain.Place, 0, count)
	for _, idx := range rand.Perm(len(mockPlaceCatalog))[:count] {
		place := mockPlaceCatalog[idx]
		place.ID = uuid.NewString()
		places = append(places, place)
	}
	return places
}
