package route

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spotclip/spotclip/api/controller"
	"github.com/spotclip/spotclip/bootstrap"
	"github.com/spotclip/spotclip/llm"
	"github.com/spotclip/spotclip/usecase"
)

func NewClipRouter(env *bootstrap.Env, logger *slog.Logger, group *gin.RouterGroup) {
	// The ingest path waits on the vision model, so its budget comes from the
	// model timeout rather than the store context timeout.
	modelTimeout := time.Duration(env.ModelTimeoutSeconds) * time.Second

	vision := usecase.NewVisionUsecase(llm.Config{
		APIKey:         env.OpenAIAPIKey,
		BaseURL:        env.OpenAIBaseURL,
		Model:          env.VisionModel,
		MaxTokens:      1024,
		TimeoutSeconds: env.ModelTimeoutSeconds,
	}, logger, modelTimeout)

	ingest := usecase.NewIngestUsecase(vision, logger, modelTimeout)
	ctrl := &controller.ClipController{Ingester: ingest}

	group.POST("/clips/ingest", ctrl.Ingest)
}
