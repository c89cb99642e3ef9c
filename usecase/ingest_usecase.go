package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"github.com/spotclip/spotclip/domain"
)

var supportedImageMIMEs = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
	"image/heic": {},
	"image/heif": {},
}

// IngestUsecase decides mock-vs-vision per upload batch and assembles the
// ingest envelope. Any non-image attachment (video, or an image/video mix)
// sends the whole batch down the mock path.
type IngestUsecase struct {
	extractor  domain.PlaceExtractor
	mockPlaces func() []domain.Place
	logger     *slog.Logger
	timeout    time.Duration
}

func NewIngestUsecase(extractor domain.PlaceExtractor, logger *slog.Logger, timeout time.Duration) *IngestUsecase {
	return &IngestUsecase{
		extractor:  extractor,
		mockPlaces: MockPlaces,
		logger:     logger,
		timeout:    timeout,
	}
}

func (uc *IngestUsecase) Ingest(ctx context.Context, clipURL string, media []domain.MediaFile) (*domain.IngestResult, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if strings.TrimSpace(clipURL) == "" {
		return nil, domain.NewValidationError("tiktok_url is required")
	}
	if len(media) == 0 {
		return nil, domain.NewValidationError("At least one media file is required")
	}

	result := &domain.IngestResult{ClipID: uuid.NewString()}
	if allSupportedImages(media) {
		extraction := uc.extractor.ExtractPlaces(ctx, media)
		result.Places = extraction.Places
		result.Error = extraction.Err
	} else {
		uc.logger.Debug("non-image media in batch, using mock places", "files", len(media))
		result.Places = uc.mockPlaces()
	}
	return result, nil
}

func allSupportedImages(media []domain.MediaFile) bool {
	for _, file := range media {
		if !isSupportedImage(file) {
			return false
		}
	}
	return true
}

// isSupportedImage trusts the declared content type when it names an image;
// otherwise it sniffs the payload.
func isSupportedImage(file domain.MediaFile) bool {
	mime := strings.ToLower(strings.TrimSpace(file.ContentType))
	if !strings.HasPrefix(mime, "image/") {
		kind, err := filetype.Match(file.Data)
		if err != nil {
			return false
		}
		mime = kind.MIME.Value
	}
	_, ok := supportedImageMIMEs[mime]
	return ok
}
