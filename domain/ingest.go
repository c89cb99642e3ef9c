package domain

import "context"

// MediaFile is one uploaded attachment from the multipart ingest request.
type MediaFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// IngestResult is the ingest response envelope. Error carries the vision
// pipeline's advisory failure message; it never turns the request into a
// failure.
type IngestResult struct {
	ClipID string  `json:"clip_id"`
	Places []Place `json:"places"`
	Error  string  `json:"error,omitempty"`
}

// ExtractionResult is the vision pipeline output: a cleaned candidate list
// plus an optional non-fatal error string.
type ExtractionResult struct {
	Places []Place
	Err    string
}

// PlaceExtractor turns a batch of image attachments into place candidates.
type PlaceExtractor interface {
	ExtractPlaces(ctx context.Context, images []MediaFile) ExtractionResult
}

// TagSuggester infers 0-3 allowed tags for a place name. It never fails; an
// unusable model response yields an empty list.
type TagSuggester interface {
	SuggestTags(ctx context.Context, name, city string) []string
}

// ClipIngester routes one ingest request to the vision pipeline or the mock
// generator and assembles the response envelope.
type ClipIngester interface {
	Ingest(ctx context.Context, clipURL string, media []MediaFile) (*IngestResult, error)
}
