package s3image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"path"
	"strings"

	"article-hand/providers"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	thumbnailSize = 300
	jpegQuality   = 85
)

// ObjectUploader legt Bytes unter einem Key ab und liefert den öffentlichen Link.
type ObjectUploader interface {
	UploadFile(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Uploader verarbeitet Bilder mit imaging und legt sie im S3-Bucket ab.
type Uploader struct {
	Bucket ObjectUploader
	Logger *zap.Logger
	NewID  func() string
}

// NewUploader erstellt einen neuen S3-Bild-Uploader.
func NewUploader(bucket ObjectUploader, logger *zap.Logger) *Uploader {
	return &Uploader{Bucket: bucket, Logger: logger, NewID: uuid.NewString}
}

func (u *Uploader) Name() string { return "s3" }

// Upload skaliert bzw. schneidet das Bild gemäß Preset zu, erzeugt ein Vorschaubild
// und lädt beide als JPEG hoch.
func (u *Uploader) Upload(ctx context.Context, in providers.ImageUpload) (providers.UploadResult, error) {
	preset := providers.PresetFor(in.Preset)
	log := u.Logger.With(zap.String("preset", preset.Name), zap.String("filename", in.Filename))

	src, err := imaging.Decode(bytes.NewReader(in.Data), imaging.AutoOrientation(true))
	if err != nil {
		return providers.UploadResult{}, fmt.Errorf("%w: %v", providers.ErrInvalidImage, err)
	}

	out := resize(src, preset)
	mainBytes, err := encodeJPEG(out)
	if err != nil {
		return providers.UploadResult{}, err
	}
	thumbBytes, err := encodeJPEG(imaging.Thumbnail(src, thumbnailSize, thumbnailSize, imaging.Lanczos))
	if err != nil {
		return providers.UploadResult{}, err
	}

	publicID := path.Join(preset.Folder, u.NewID())
	url, err := u.Bucket.UploadFile(ctx, publicID+".jpg", "image/jpeg", mainBytes)
	if err != nil {
		log.Error("Image upload failed", zap.Error(err))
		return providers.UploadResult{}, fmt.Errorf("%w: %v", providers.ErrUpstream, err)
	}
	thumbURL, err := u.Bucket.UploadFile(ctx, publicID+"_thumb.jpg", "image/jpeg", thumbBytes)
	if err != nil {
		log.Error("Thumbnail upload failed", zap.Error(err))
		return providers.UploadResult{}, fmt.Errorf("%w: %v", providers.ErrUpstream, err)
	}

	bounds := out.Bounds()
	log.Info("Image uploaded", zap.String("public_id", publicID), zap.Int("bytes", len(mainBytes)))
	return providers.UploadResult{
		URL:      url,
		PublicID: publicID,
		Variants: map[string]string{"original": url, "thumbnail": thumbURL},
		Metadata: providers.ImageMetadata{
			Width:          bounds.Dx(),
			Height:         bounds.Dy(),
			Format:         "jpeg",
			OriginalFormat: originalFormat(in.Filename),
			Bytes:          len(mainBytes),
			Preset:         preset.Name,
		},
	}, nil
}

func resize(src image.Image, p providers.Preset) image.Image {
	if p.Crop {
		return imaging.Fill(src, p.Width, p.Height, imaging.Center, imaging.Lanczos)
	}
	if src.Bounds().Dx() > p.Width {
		return imaging.Resize(src, p.Width, 0, imaging.Lanczos)
	}
	return src
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func originalFormat(filename string) string {
	f, err := imaging.FormatFromFilename(filename)
	if err != nil {
		return ""
	}
	return strings.ToLower(f.String())
}
