package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/spotclip/spotclip/domain"
	"github.com/spotclip/spotclip/llm"
)

type tagClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// TaggingUsecase infers 0-3 allowed tags for a place from model general
// knowledge. It shares the vision pipeline's lazy-client pattern and its
// degradation contract: any failure yields an empty list, never an error.
type TaggingUsecase struct {
	cfg     llm.Config
	logger  *slog.Logger
	timeout time.Duration

	clientOnce sync.Once
	client     tagClient
	clientErr  error
	newClient  func(cfg llm.Config) tagClient
}

func NewTaggingUsecase(cfg llm.Config, logger *slog.Logger, timeout time.Duration) *TaggingUsecase {
	return &TaggingUsecase{
		cfg:     cfg,
		logger:  logger,
		timeout: timeout,
		newClient: func(cfg llm.Config) tagClient {
			return llm.NewClient(cfg)
		},
	}
}

func (uc *TaggingUsecase) getClient() (tagClient, error) {
	uc.clientOnce.Do(func() {
		if strings.TrimSpace(uc.cfg.APIKey) == "" {
			uc.clientErr = errors.New("OPENAI_API_KEY is not set")
			return
		}
		uc.client = uc.newClient(uc.cfg)
	})
	return uc.client, uc.clientErr
}

func (uc *TaggingUsecase) SuggestTags(ctx context.Context, name, city string) []string {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	client, err := uc.getClient()
	if err != nil {
		uc.logger.Warn("tagging client unavailable", "error", err)
		return []string{}
	}
	content, err := client.Complete(ctx, buildTagPrompt(name, city))
	if err != nil {
		uc.logger.Warn("tag inference failed", "place", name, "error", err)
		return []string{}
	}
	return parseTagResponse(content)
}

func buildTagPrompt(name, city string) string {
	cityPart := ""
	if trimmed := strings.TrimSpace(city); trimmed != "" {
		cityPart = " in or near " + trimmed
	}
	return fmt.Sprintf(
		"Given the place name %q%s, choose 1 to 3 categories that best fit. Use ONLY these exact strings (comma-separated): %s. If uncertain, return fewer (even 0). No other text, no explanation.",
		name, cityPart, strings.Join(domain.AllowedTags, ", "),
	)
}

// parseTagResponse keeps only allowed tags, preserving first-seen order,
// deduplicated, at most three.
func parseTagResponse(content string) []string {
	tags := make([]string, 0, domain.MaxPlaceTags)
	for _, token := range strings.Split(content, ",") {
		tag := strings.ToLower(strings.TrimSpace(token))
		if !domain.IsAllowedTag(tag) || slices.Contains(tags, tag) {
			continue
		}
		tags = append(tags, tag)
		if len(tags) == domain.MaxPlaceTags {
			break
		}
	}
	return tags
}
