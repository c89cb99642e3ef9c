package route

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spotclip/spotclip/api/controller"
	"github.com/spotclip/spotclip/domain"
	"github.com/spotclip/spotclip/usecase"
)

func NewCollectionRouter(timeout time.Duration, store domain.CollectionRepository, group *gin.RouterGroup) {
	uc := usecase.NewCollectionUsecase(store, timeout)
	ctrl := &controller.CollectionController{Manager: uc}

	collectionGroup := group.Group("/collections")
	{
		collectionGroup.GET("", ctrl.List)
		collectionGroup.GET("/:id", ctrl.Get)
		collectionGroup.POST("/:id/places", ctrl.SavePlaces)
		collectionGroup.PATCH("/:id/places/:placeId", ctrl.PatchPlace)
		collectionGroup.DELETE("/:id/places/:placeId", ctrl.DeletePlace)
	}

	group.GET("/favorites", ctrl.Favorites)
}
