package providers

import (
	"context"
	"errors"
)

var (
	// ErrUpstream: der Speicher-Dienst hat den Upload abgelehnt oder war nicht erreichbar.
	ErrUpstream = errors.New("image upstream failed")
	// ErrInvalidImage: die hochgeladenen Bytes sind kein lesbares Bild.
	ErrInvalidImage = errors.New("invalid image")
)

// ImageProvider ist das Interface, das jeder Bild-Upload-Dienst implementieren muss.
type ImageProvider interface {
	// Upload verarbeitet das Bild gemäß Preset und legt es samt Varianten ab.
	Upload(ctx context.Context, in ImageUpload) (UploadResult, error)

	// Name gibt den eindeutigen Namen des Providers zurück (z.B. "s3").
	Name() string
}

type ImageUpload struct {
	Filename string
	Data     []byte
	Preset   string
}

type UploadResult struct {
	URL      string            `json:"url"`
	PublicID string            `json:"publicId"`
	Variants map[string]string `json:"variants"`
	Metadata ImageMetadata     `json:"metadata"`
}

type ImageMetadata struct {
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	Format         string `json:"format"`
	OriginalFormat string `json:"originalFormat,omitempty"`
	Bytes          int    `json:"bytes"`
	Preset         string `json:"preset"`
}

// Preset legt Zielgröße, Zuschnitt und Ablageordner fest. Height 0 heißt:
// nur auf Width begrenzen, Seitenverhältnis bleibt.
type Preset struct {
	Name   string
	Width  int
	Height int
	Crop   bool
	Folder string
}

const DefaultPreset = "general"

var presets = map[string]Preset{
	"hero":       {Name: "hero", Width: 1920, Height: 1080, Crop: true, Folder: "articles/hero"},
	"article":    {Name: "article", Width: 1200, Height: 800, Crop: true, Folder: "articles/content"},
	"ingredient": {Name: "ingredient", Width: 400, Height: 400, Crop: true, Folder: "articles/ingredients"},
	"thumbnail":  {Name: "thumbnail", Width: 300, Height: 300, Crop: true, Folder: "articles/thumbnails"},
	"general":    {Name: "general", Width: 1600, Folder: "articles/general"},
}

// PresetFor liefert das Preset zum Namen; Unbekanntes fällt auf "general" zurück.
func PresetFor(name string) Preset {
	if p, ok := presets[name]; ok {
		return p
	}
	return presets[DefaultPreset]
}
