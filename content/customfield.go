package content

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// ResponsiveSettingsField ist der Name des Legacy-CustomFields mit den Bildeinstellungen.
const ResponsiveSettingsField = "responsiveSettings"

// ResponsiveSettingsVersion ist die aktuelle Schema-Version von ResponsiveSettings.
const ResponsiveSettingsVersion = 1

var customFieldDecodeFailures = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "content_custom_field_decode_failures_total",
		Help: "Custom field values that could not be decoded and fell back to defaults.",
	},
	[]string{"field"},
)

func init() {
	prometheus.MustRegister(customFieldDecodeFailures)
}

// ViewportSettings beschreibt die Darstellung eines Bildes für eine Bildschirmgröße.
type ViewportSettings struct {
	Width     string `json:"width"`
	Height    string `json:"height"`
	ObjectFit string `json:"objectFit"`
	Alignment string `json:"alignment"`
}

// ResponsiveSettings ist die versionierte Layout-Konfiguration eines image Blocks.
type ResponsiveSettings struct {
	Version int              `json:"version"`
	Desktop ViewportSettings `json:"desktop"`
	Tablet  ViewportSettings `json:"tablet"`
	Mobile  ViewportSettings `json:"mobile"`
}

// DefaultResponsiveSettings liefert die dokumentierten Standardwerte.
func DefaultResponsiveSettings() ResponsiveSettings {
	return ResponsiveSettings{
		Version: ResponsiveSettingsVersion,
		Desktop: ViewportSettings{Width: "100%", Height: "auto", ObjectFit: "cover", Alignment: "center"},
		Tablet:  ViewportSettings{Width: "100%", Height: "auto", ObjectFit: "cover", Alignment: "center"},
		Mobile:  ViewportSettings{Width: "100%", Height: "auto", ObjectFit: "cover", Alignment: "center"},
	}
}

// EncodeResponsiveSettings serialisiert die Einstellungen in ein CustomField.
func EncodeResponsiveSettings(s ResponsiveSettings) (CustomField, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return CustomField{}, fmt.Errorf("encode responsive settings: %w", err)
	}
	return CustomField{Name: ResponsiveSettingsField, Value: string(raw)}, nil
}

// DecodeResponsiveSettings liest die Einstellungen aus einem JSON-String. Leere, kaputte
// oder zu neue Dokumente ergeben die Standardwerte; Fehler werden nur geloggt.
func DecodeResponsiveSettings(value string, log *zap.Logger) ResponsiveSettings {
	s, err := parseResponsiveSettings(value)
	if err != nil {
		if log != nil {
			log.Warn("Falling back to default responsive settings", zap.Error(err))
		}
		customFieldDecodeFailures.WithLabelValues(ResponsiveSettingsField).Inc()
		return DefaultResponsiveSettings()
	}
	return s
}

func parseResponsiveSettings(value string) (ResponsiveSettings, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == "null" {
		return ResponsiveSettings{}, fmt.Errorf("empty responsive settings")
	}
	var s ResponsiveSettings
	if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
		return ResponsiveSettings{}, fmt.Errorf("parse responsive settings: %w", err)
	}
	if s.Version > ResponsiveSettingsVersion {
		return ResponsiveSettings{}, fmt.Errorf("unsupported responsive settings version %d", s.Version)
	}
	return s, nil
}

// CustomFieldValue sucht ein CustomField per Name. Der erste Treffer gewinnt.
func CustomFieldValue(fields []CustomField, name string) (string, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}
