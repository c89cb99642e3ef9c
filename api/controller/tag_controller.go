package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spotclip/spotclip/domain"
)

type TagSuggestionRequest struct {
	Name string `json:"name" binding:"required"`
	City string `json:"city"`
}

type TagSuggestionResponse struct {
	Tags []string `json:"tags"`
}

// TagController serves tag suggestions for the place edit flow. Inference
// failures surface as an empty tag list, never as a request failure.
type TagController struct {
	Suggester domain.TagSuggester
}

func (tc *TagController) Suggest(ctx *gin.Context) {
	var request TagSuggestionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorMessage{Error: "name is required"})
		return
	}
	tags := tc.Suggester.SuggestTags(ctx.Request.Context(), request.Name, request.City)
	ctx.JSON(http.StatusOK, TagSuggestionResponse{Tags: tags})
}
