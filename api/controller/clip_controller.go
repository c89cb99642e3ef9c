package controller

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spotclip/spotclip/domain"
)

const maxMediaFiles = 10

type ClipController struct {
	Ingester domain.ClipIngester
}

func (cc *ClipController) Ingest(ctx *gin.Context) {
	clipURL := ctx.PostForm("tiktok_url")

	var media []domain.MediaFile
	form, err := ctx.MultipartForm()
	if err == nil && form != nil {
		headers := form.File["media"]
		if len(headers) > maxMediaFiles {
			ctx.JSON(http.StatusBadRequest, ErrorMessage{Error: "at most 10 media files are allowed"})
			return
		}
		for _, header := range headers {
			file, err := header.Open()
			if err != nil {
				ctx.JSON(http.StatusBadRequest, ErrorMessage{Error: "could not read media upload"})
				return
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				ctx.JSON(http.StatusBadRequest, ErrorMessage{Error: "could not read media upload"})
				return
			}
			media = append(media, domain.MediaFile{
				Name:        header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Data:        data,
			})
		}
	}

	result, err := cc.Ingester.Ingest(ctx.Request.Context(), clipURL, media)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
