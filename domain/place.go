package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

const (
	EvidenceSourceFrame = "frame"
	EvidenceSourceAudio = "audio"
)

const (
	DefaultCityGuess  = "Unknown"
	DefaultConfidence = 0.5
	MaxPlaceTags      = 3
)

// AllowedTags is the closed tag vocabulary. Tags outside this set are
// rejected on patch and discarded by tag inference.
var AllowedTags = []string{
	"cafe/bakery",
	"food truck",
	"coffee",
	"bar",
	"club",
	"activity location",
	"viewpoint",
	"restaurant",
}

var allowedTagSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(AllowedTags))
	for _, tag := range AllowedTags {
		set[tag] = struct{}{}
	}
	return set
}()

func IsAllowedTag(tag string) bool {
	_, ok := allowedTagSet[tag]
	return ok
}

// Evidence records where a place was found: the index of an image frame in
// the submitted batch, or a timestamp in the clip audio. The Source
// discriminant selects which variant is live; only that variant's payload
// field appears on the wire.
type Evidence struct {
	Source           string  `bson:"source"`
	FrameIndex       int     `bson:"frame_index,omitempty"`
	TimestampSeconds float64 `bson:"timestamp_s,omitempty"`
}

func FrameEvidence(index int) Evidence {
	if index < 0 {
		index = 0
	}
	return Evidence{Source: EvidenceSourceFrame, FrameIndex: index}
}

func AudioEvidence(seconds float64) Evidence {
	if seconds < 0 {
		seconds = 0
	}
	return Evidence{Source: EvidenceSourceAudio, TimestampSeconds: seconds}
}

func (e Evidence) MarshalJSON() ([]byte, error) {
	switch e.Source {
	case EvidenceSourceFrame, "":
		return json.Marshal(struct {
			Source string `json:"source"`
			Index  int    `json:"index"`
		}{Source: EvidenceSourceFrame, Index: e.FrameIndex})
	case EvidenceSourceAudio:
		return json.Marshal(struct {
			Source           string  `json:"source"`
			TimestampSeconds float64 `json:"timestamp_s"`
		}{Source: EvidenceSourceAudio, TimestampSeconds: e.TimestampSeconds})
	default:
		return nil, fmt.Errorf("unknown evidence source %q", e.Source)
	}
}

func (e *Evidence) UnmarshalJSON(data []byte) error {
	var raw struct {
		Source           string  `json:"source"`
		Index            int     `json:"index"`
		TimestampSeconds float64 `json:"timestamp_s"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Source {
	case EvidenceSourceAudio:
		*e = AudioEvidence(raw.TimestampSeconds)
	default:
		*e = FrameEvidence(raw.Index)
	}
	return nil
}

// Place is a candidate or saved point of interest. IsFavorite, IsVisited,
// CreatedAt, Tags and Note only carry meaning once the place is stored in a
// collection; CreatedAt stays nil until then.
type Place struct {
	ID         string     `bson:"_id" json:"id"`
	Name       string     `bson:"name" json:"name"`
	CityGuess  string     `bson:"city_guess" json:"city_guess"`
	Confidence float64    `bson:"confidence" json:"confidence"`
	Evidence   Evidence   `bson:"evidence" json:"evidence"`
	IsFavorite bool       `bson:"is_favorite" json:"isFavorite"`
	IsVisited  bool       `bson:"is_visited" json:"isVisited"`
	CreatedAt  *time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
	Tags       []string   `bson:"tags,omitempty" json:"tags,omitempty"`
	Note       *string    `bson:"note,omitempty" json:"note,omitempty"`
}

// ClampConfidence forces a confidence score into [0,1].
func ClampConfidence(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

// FoldKey normalizes a display string into a case-insensitive comparison key.
func FoldKey(value string) string {
	return cases.Fold().String(strings.TrimSpace(value))
}

// NormalizeNote maps empty and whitespace-only notes to absence.
func NormalizeNote(note *string) *string {
	if note == nil {
		return nil
	}
	if strings.TrimSpace(*note) == "" {
		return nil
	}
	return note
}

// NormalizePlace fills the fields a place acquires when it is first stored in
// a collection. Fields that are already populated are left untouched, so
// normalizing twice is a no-op.
func NormalizePlace(place *Place, now time.Time) {
	if place.ID == "" {
		place.ID = uuid.NewString()
	}
	if strings.TrimSpace(place.CityGuess) == "" {
		place.CityGuess = DefaultCityGuess
	}
	place.Confidence = ClampConfidence(place.Confidence)
	if place.Evidence.Source == "" {
		place.Evidence = FrameEvidence(place.Evidence.FrameIndex)
	}
	if place.CreatedAt == nil {
		createdAt := now.UTC()
		place.CreatedAt = &createdAt
	}
	place.Note = NormalizeNote(place.Note)
}
