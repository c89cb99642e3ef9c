package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spotclip/spotclip/domain"
)

type SavePlacesResponse struct {
	Collection *domain.Collection `json:"collection"`
}

type CollectionsListResponse struct {
	Collections []*domain.Collection `json:"collections"`
}

type FavoritesResponse struct {
	Favorites []domain.FavoriteItem `json:"favorites"`
}

type CollectionController struct {
	Manager domain.CollectionManager
}

// SavePlaces creates or appends; 201 on first creation, 200 on append.
func (cc *CollectionController) SavePlaces(ctx *gin.Context) {
	var request domain.SavePlacesRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorMessage{Error: err.Error()})
		return
	}
	collection, created, err := cc.Manager.SavePlaces(ctx.Request.Context(), ctx.Param("id"), &request)
	if err != nil {
		respondError(ctx, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ctx.JSON(status, SavePlacesResponse{Collection: collection})
}

func (cc *CollectionController) Get(ctx *gin.Context) {
	collection, err := cc.Manager.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, collection)
}

func (cc *CollectionController) List(ctx *gin.Context) {
	collections, err := cc.Manager.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, CollectionsListResponse{Collections: collections})
}

func (cc *CollectionController) PatchPlace(ctx *gin.Context) {
	var patch domain.PlacePatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorMessage{Error: err.Error()})
		return
	}
	collection, err := cc.Manager.PatchPlace(ctx.Request.Context(), ctx.Param("id"), ctx.Param("placeId"), &patch)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, collection)
}

func (cc *CollectionController) DeletePlace(ctx *gin.Context) {
	collection, err := cc.Manager.DeletePlace(ctx.Request.Context(), ctx.Param("id"), ctx.Param("placeId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, collection)
}

func (cc *CollectionController) Favorites(ctx *gin.Context) {
	favorites, err := cc.Manager.Favorites(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, FavoritesResponse{Favorites: favorites})
}
