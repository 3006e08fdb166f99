package main

import (
	"context"
	"io"
	"net/http"

	"article-hand/providers"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxUploadBytes = 10 << 20

type imageUploader interface {
	Upload(ctx context.Context, in providers.ImageUpload) (providers.UploadResult, error)
}

func setupUploadRoutes(router *gin.Engine, images imageUploader, dev bool, log *zap.Logger) {
	rg := router.Group("/uploads")

	// POST - Bild hochladen (multipart "file", optional "preset")
	rg.POST("/images", func(c *gin.Context) {
		header, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing file"})
			return
		}
		if header.Size > maxUploadBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"success": false, "message": "File too large"})
			return
		}
		f, err := header.Open()
		if err != nil {
			respondError(c, err, dev, log)
			return
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
		if err != nil {
			respondError(c, err, dev, log)
			return
		}

		res, err := images.Upload(c.Request.Context(), providers.ImageUpload{
			Filename: header.Filename,
			Data:     data,
			Preset:   c.PostForm("preset"),
		})
		if err != nil {
			respondError(c, err, dev, log)
			return
		}
		c.JSON(http.StatusOK, res)
	})
}
