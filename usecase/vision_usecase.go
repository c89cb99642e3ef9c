package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spotclip/spotclip/domain"
	"github.com/spotclip/spotclip/llm"
)

const visionSystemPrompt = `You are a place-extraction assistant. You receive one or more images from a social-media clip. Identify every real, specific, named place visible or referenced in the images (restaurants, cafés, bars, landmarks, parks, shops, etc.).

Return ONLY valid JSON - no markdown fences, no commentary:
{
  "places": [
    {
      "name": "<place name>",
      "city_guess": "<city or region>",
      "confidence": <0-1>,
      "evidence": { "source": "frame", "index": <0-based image index> }
    }
  ]
}

Rules:
- "name" must be the specific name of a real place (e.g. "Blue Bottle Coffee", "Colosseum").
- Do NOT include generic descriptions like "a restaurant", "the beach", "a coffee shop".
- "city_guess" is your best guess at the city or region.
- "confidence" reflects how sure you are (0 = guess, 1 = certain).
- "index" is the 0-based index of the image where you found the evidence.
- If you find no real places, return { "places": [] }.`

// Non-specific descriptors that disqualify a candidate name. Matched
// case-insensitively, bare or with an "a "/"the " article.
var genericPhrases = []string{
	"restaurant", "cafe", "coffee shop", "bar", "beach", "park",
	"hotel", "shop", "store", "market", "street", "building",
	"a place", "unknown", "n/a",
}

type visionClient interface {
	CompleteVision(ctx context.Context, systemPrompt, userPrompt string, images []llm.ImagePart) (string, error)
}

// VisionUsecase converts a batch of image attachments into cleaned place
// candidates via one multimodal model call. The client is built on first use
// and cached, so a missing API key fails only requests that reach the model.
type VisionUsecase struct {
	cfg     llm.Config
	logger  *slog.Logger
	timeout time.Duration

	clientOnce sync.Once
	client     visionClient
	clientErr  error
	newClient  func(cfg llm.Config) visionClient
}

func NewVisionUsecase(cfg llm.Config, logger *slog.Logger, timeout time.Duration) *VisionUsecase {
	return &VisionUsecase{
		cfg:     cfg,
		logger:  logger,
		timeout: timeout,
		newClient: func(cfg llm.Config) visionClient {
			return llm.NewClient(cfg)
		},
	}
}

func (uc *VisionUsecase) getClient() (visionClient, error) {
	uc.clientOnce.Do(func() {
		if strings.TrimSpace(uc.cfg.APIKey) == "" {
			uc.clientErr = errors.New("OPENAI_API_KEY is not set")
			return
		}
		uc.client = uc.newClient(uc.cfg)
	})
	return uc.client, uc.clientErr
}

type rawVisionEvidence struct {
	Source string `json:"source"`
	Index  *int   `json:"index"`
}

type rawVisionPlace struct {
	Name       string             `json:"name"`
	CityGuess  *string            `json:"city_guess"`
	Confidence *float64           `json:"confidence"`
	Evidence   *rawVisionEvidence `json:"evidence"`
}

// ExtractPlaces never fails the request: every failure mode degrades to an
// empty candidate list with an advisory error string.
func (uc *VisionUsecase) ExtractPlaces(ctx context.Context, images []domain.MediaFile) domain.ExtractionResult {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	client, err := uc.getClient()
	if err != nil {
		uc.logger.Warn("vision client unavailable", "error", err)
		return degraded(err.Error())
	}

	parts := make([]llm.ImagePart, 0, len(images))
	for _, image := range images {
		parts = append(parts, llm.ImagePart{
			MIME: imageMIME(image.ContentType),
			Data: image.Data,
		})
	}
	userPrompt := fmt.Sprintf("I have %d image(s) from a social-media clip. Extract all real place names.", len(images))

	uc.logger.Debug("sending images to vision model", "count", len(images))
	raw, err := client.CompleteVision(ctx, visionSystemPrompt, userPrompt, parts)
	if err != nil {
		uc.logger.Warn("vision extraction failed", "error", err)
		return degraded(err.Error())
	}

	var parsed struct {
		Places []rawVisionPlace `json:"places"`
	}
	if err := llm.DecodeModelJSON(raw, &parsed); err != nil {
		uc.logger.Warn("vision response was not valid JSON", "error", err)
		return degraded(fmt.Sprintf("parse vision response: %v", err))
	}
	if parsed.Places == nil {
		uc.logger.Warn("vision response had unexpected shape, returning empty")
		return degraded("")
	}

	places := sanitizeCandidates(parsed.Places)
	uc.logger.Info("vision extraction complete", "candidates", len(parsed.Places), "places", len(places))
	return domain.ExtractionResult{Places: places}
}

// sanitizeCandidates trims names, drops generic phrases, dedupes by folded
// name (first occurrence wins) and fills defaults for the survivors.
func sanitizeCandidates(candidates []rawVisionPlace) []domain.Place {
	seen := make(map[string]struct{}, len(candidates))
	places := make([]domain.Place, 0, len(candidates))
	for _, candidate := range candidates {
		name := strings.TrimSpace(candidate.Name)
		if isGenericName(name) {
			continue
		}
		key := domain.FoldKey(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		confidence := domain.DefaultConfidence
		if candidate.Confidence != nil {
			confidence = domain.ClampConfidence(*candidate.Confidence)
		}
		city := domain.DefaultCityGuess
		if candidate.CityGuess != nil && strings.TrimSpace(*candidate.CityGuess) != "" {
			city = strings.TrimSpace(*candidate.CityGuess)
		}
		index := 0
		if candidate.Evidence != nil && candidate.Evidence.Index != nil {
			index = *candidate.Evidence.Index
		}

		places = append(places, domain.Place{
			ID:         uuid.NewString(),
			Name:       name,
			CityGuess:  city,
			Confidence: confidence,
			Evidence:   domain.FrameEvidence(index),
		})
	}
	return places
}

func isGenericName(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	if len([]rune(lower)) < 2 {
		return true
	}
	for _, phrase := range genericPhrases {
		if lower == phrase || lower == "a "+phrase || lower == "the "+phrase {
			return true
		}
	}
	return false
}

func imageMIME(contentType string) string {
	mime := strings.ToLower(strings.TrimSpace(contentType))
	if strings.HasPrefix(mime, "image/") {
		return mime
	}
	return "image/jpeg"
}

func degraded(message string) domain.ExtractionResult {
	return domain.ExtractionResult{Places: []domain.Place{}, Err: message}
}
