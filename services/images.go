package services

import (
	"context"

	"go.uber.org/zap"

	"article-hand/providers"
)

// ImageService reicht Uploads an den konfigurierten Provider weiter und zählt sie.
type ImageService struct {
	Provider providers.ImageProvider
	Logger   *zap.Logger
}

func NewImageService(provider providers.ImageProvider, logger *zap.Logger) *ImageService {
	return &ImageService{Provider: provider, Logger: logger}
}

func (s *ImageService) Upload(ctx context.Context, in providers.ImageUpload) (providers.UploadResult, error) {
	preset := providers.PresetFor(in.Preset).Name
	res, err := s.Provider.Upload(ctx, in)
	if err != nil {
		imageUploads.WithLabelValues(preset, "error").Inc()
		s.Logger.Error("Image upload failed",
			zap.String("provider", s.Provider.Name()), zap.String("preset", preset), zap.Error(err))
		return res, err
	}
	imageUploads.WithLabelValues(preset, "ok").Inc()
	return res, nil
}
