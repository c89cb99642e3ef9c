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

func NewTagRouter(env *bootstrap.Env, logger *slog.Logger, group *gin.RouterGroup) {
	modelTimeout := time.Duration(env.ModelTimeoutSeconds) * time.Second

	tagging := usecase.NewTaggingUsecase(llm.Config{
		APIKey:         env.OpenAIAPIKey,
		BaseURL:        env.OpenAIBaseURL,
		Model:          env.TaggingModel,
		MaxTokens:      80,
		TimeoutSeconds: env.ModelTimeoutSeconds,
	}, logger, modelTimeout)

	ctrl := &controller.TagController{Suggester: tagging}

	group.POST("/places/tags", ctrl.Suggest)
}
