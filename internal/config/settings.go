package config

import (
	"encoding/json"
	"os"

	"github.com/MarvinIG/projectrube/internal/logger"
	"github.com/MarvinIG/projectrube/internal/noise"

	"go.uber.org/zap"
)

// DefaultPath is where the terrain settings document lives next to the
// executable.
const DefaultPath = "settings.json"

// Settings is the user-editable view and noise configuration, persisted
// as a simple key-value JSON document.
type Settings struct {
	ViewWidth int           `json:"view_width"`
	Layers    []noise.Layer `json:"layers"`
}

// Default returns the built-in settings used whenever nothing valid is
// persisted.
func Default() Settings {
	return Settings{
		ViewWidth: 8,
		Layers:    noise.DefaultLayers(),
	}
}

// Load reads settings from path. Malformed or missing files recover
// silently to the defaults; the caller never sees an error.
func Load(path string) Settings {
	logger.Init()

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Log.Debug("No persisted settings, using defaults", zap.String("path", path))
		return Default()
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		logger.Log.Debug("Could not parse settings, using defaults",
			zap.String("path", path), zap.Error(err))
		return Default()
	}
	s.Validate()
	return s
}

// Save writes the settings as pretty JSON. Best effort: a failed write
// is logged, not surfaced.
func (s Settings) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		logger.Log.Error("Could not save settings", zap.String("path", path), zap.Error(err))
		return err
	}
	return nil
}

// Validate clamps nonsensical values back to the defaults instead of
// erroring.
func (s *Settings) Validate() {
	def := Default()
	if s.ViewWidth < 1 {
		s.ViewWidth = def.ViewWidth
	}
	if len(s.Layers) == 0 {
		s.Layers = def.Layers
	}
	for i := range s.Layers {
		if s.Layers[i].Frequency < 0 {
			s.Layers[i].Frequency = 0
		}
	}
}
