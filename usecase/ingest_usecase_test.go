package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotclip/spotclip/domain"
)

type fakeExtractor struct {
	result domain.ExtractionResult
	called bool
}

func (f *fakeExtractor) ExtractPlaces(ctx context.Context, images []domain.MediaFile) domain.ExtractionResult {
	f.called = true
	return f.result
}

// Minimal real file headers so MIME sniffing has something to chew on.
var (
	pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00}
	mp4Bytes = []byte{0x00, 0x00, 0x00, 0x18, 0x66, 0x74, 0x79, 0x70, 0x6D, 0x70, 0x34, 0x32}
)

func TestIngestRequiresClipURL(t *testing.T) {
	uc := NewIngestUsecase(&fakeExtractor{}, discardLogger(), time.Second)

	_, err := uc.Ingest(context.Background(), "   ", []domain.MediaFile{{ContentType: "image/png", Data: pngBytes}})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestIngestRequiresMedia(t *testing.T) {
	uc := NewIngestUsecase(&fakeExtractor{}, discardLogger(), time.Second)

	_, err := uc.Ingest(context.Background(), "https://tiktok.com/@user/video/123", nil)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestIngestImageBatchUsesVision(t *testing.T) {
	extractor := &fakeExtractor{result: domain.ExtractionResult{
		Places: []domain.Place{{ID: "p1", Name: "Shibuya Crossing", Evidence: domain.FrameEvidence(0)}},
	}}
	uc := NewIngestUsecase(extractor, discardLogger(), time.Second)

	result, err := uc.Ingest(context.Background(), "https://tiktok.com/@user/video/123", []domain.MediaFile{
		{Name: "a.png", ContentType: "image/png", Data: pngBytes},
		{Name: "b.jpg", ContentType: "image/jpeg", Data: []byte{0xFF, 0xD8}},
	})
	require.NoError(t, err)
	assert.True(t, extractor.called)
	assert.NotEmpty(t, result.ClipID)
	require.Len(t, result.Places, 1)
	assert.Equal(t, "Shibuya Crossing", result.Places[0].Name)
}

func TestIngestPassesExtractionErrorThrough(t *testing.T) {
	extractor := &fakeExtractor{result: domain.ExtractionResult{
		Places: []domain.Place{},
		Err:    "OPENAI_API_KEY is not set",
	}}
	uc := NewIngestUsecase(extractor, discardLogger(), time.Second)

	result, err := uc.Ingest(context.Background(), "https://tiktok.com/@user/video/123", []domain.MediaFile{
		{Name: "a.png", ContentType: "image/png", Data: pngBytes},
	})
	require.NoError(t, err)
	assert.Equal(t, "OPENAI_API_KEY is not set", result.Error)
	assert.Empty(t, result.Places)
}

func TestIngestVideoUsesMockPlaces(t *testing.T) {
	extractor := &fakeExtractor{}
	uc := NewIngestUsecase(extractor, discardLogger(), time.Second)

	result, err := uc.Ingest(context.Background(), "https://tiktok.com/@user/video/123", []domain.MediaFile{
		{Name: "clip.mp4", ContentType: "video/mp4", Data: mp4Bytes},
	})
	require.NoError(t, err)
	assert.False(t, extractor.called)
	assert.Empty(t, result.Error)
	require.GreaterOrEqual(t, len(result.Places), 2)
	require.LessOrEqual(t, len(result.Places), 4)
	for _, place := range result.Places {
		assert.NotEmpty(t, place.ID)
		assert.GreaterOrEqual(t, place.Confidence, 0.0)
		assert.LessOrEqual(t, place.Confidence, 1.0)
	}
}

func TestIngestMixedBatchUsesMockPlaces(t *testing.T) {
	extractor := &fakeExtractor{}
	uc := NewIngestUsecase(extractor, discardLogger(), time.Second)

	result, err := uc.Ingest(context.Background(), "https://tiktok.com/@user/video/123", []domain.MediaFile{
		{Name: "a.png", ContentType: "image/png", Data: pngBytes},
		{Name: "clip.mp4", ContentType: "video/mp4", Data: mp4Bytes},
	})
	require.NoError(t, err)
	assert.False(t, extractor.called)
	assert.NotEmpty(t, result.Places)
}

func TestIsSupportedImageSniffsWhenDeclaredTypeMissing(t *testing.T) {
	assert.True(t, isSupportedImage(domain.MediaFile{ContentType: "", Data: pngBytes}))
	assert.True(t, isSupportedImage(domain.MediaFile{ContentType: "application/octet-stream", Data: pngBytes}))
	assert.False(t, isSupportedImage(domain.MediaFile{ContentType: "", Data: mp4Bytes}))
	assert.False(t, isSupportedImage(domain.MediaFile{ContentType: "video/mp4", Data: mp4Bytes}))
	assert.True(t, isSupportedImage(domain.MediaFile{ContentType: "image/heic", Data: nil}))
}
