package route

import (
	"github.com/gin-gonic/gin"

	"github.com/spotclip/spotclip/api/controller"
)

func NewHealthRouter(group *gin.RouterGroup) {
	ctrl := &controller.HealthController{}
	group.GET("/health", ctrl.Check)
}
