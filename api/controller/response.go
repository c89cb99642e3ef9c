package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spotclip/spotclip/domain"
)

// ErrorMessage is the wire shape for every error response.
type ErrorMessage struct {
	Error string `json:"error"`
}

// respondError maps a domain error kind to a status code. Anything untyped is
// an internal failure and keeps its detail out of the response.
func respondError(ctx *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		ctx.JSON(http.StatusBadRequest, ErrorMessage{Error: err.Error()})
	case domain.IsNotFound(err):
		ctx.JSON(http.StatusNotFound, ErrorMessage{Error: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, ErrorMessage{Error: "internal error"})
	}
}
