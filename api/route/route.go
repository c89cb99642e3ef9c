package route

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spotclip/spotclip/bootstrap"
	"github.com/spotclip/spotclip/domain"
)

func Setup(env *bootstrap.Env, logger *slog.Logger, timeout time.Duration, store domain.CollectionRepository, engine *gin.Engine) {
	publicRouter := engine.Group("")

	NewHealthRouter(publicRouter)
	NewClipRouter(env, logger, publicRouter)
	NewTagRouter(env, logger, publicRouter)
	NewCollectionRouter(timeout, store, publicRouter)
}
