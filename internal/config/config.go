// Package config loads the user settings file, filling anything missing
// from the embedded defaults.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Color is an RGBA colour with channels in [0, 1].
type Color [4]float32

type Settings struct {
	Window      WindowSettings      `yaml:"window"`
	Simulation  SimulationSettings  `yaml:"simulation"`
	Ambient     AmbientSettings     `yaml:"ambient"`
	Aura        AuraSettings        `yaml:"aura"`
	Avatar      AvatarSettings      `yaml:"avatar"`
	Composition CompositionSettings `yaml:"composition"`
	Logging     LoggingSettings     `yaml:"logging"`
	Telemetry   TelemetrySettings   `yaml:"telemetry"`
}

type WindowSettings struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

type SimulationSettings struct {
	Seed uint64 `yaml:"seed"` // 0 = time based
}

type AmbientSettings struct {
	Count           int     `yaml:"count"`
	ScatterRadius   float32 `yaml:"scatter_radius"`
	ScatterForce    float32 `yaml:"scatter_force"`
	DragCoefficient float32 `yaml:"drag_coefficient"`
	DecayRate       float32 `yaml:"decay_rate"`
	SpawnY          float32 `yaml:"spawn_y"`
}

type AuraSettings struct {
	Count             int     `yaml:"count"`
	InteractionRadius float32 `yaml:"interaction_radius"`
	InteractionForce  float32 `yaml:"interaction_force"`
	DecayRate         float32 `yaml:"decay_rate"`
	SpawnRadius       float32 `yaml:"spawn_radius"`
}

type AvatarSettings struct {
	Amplitude   float32 `yaml:"amplitude"`
	AngularRate float32 `yaml:"angular_rate"`
	GlowScale   float32 `yaml:"glow_scale"`
}

type CompositionSettings struct {
	Background       Color   `yaml:"background,flow"`
	AmbientColor     Color   `yaml:"ambient_color,flow"`
	AmbientPointSize float32 `yaml:"ambient_point_size"`
	AuraColor        Color   `yaml:"aura_color,flow"`
	AuraPointSize    float32 `yaml:"aura_point_size"`
	GlowColor        Color   `yaml:"glow_color,flow"`
	AvatarColor      Color   `yaml:"avatar_color,flow"`
	Vignette         bool    `yaml:"vignette"`
	VignetteStrength float32 `yaml:"vignette_strength"`
}

type LoggingSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type TelemetrySettings struct {
	StatsInterval float64 `yaml:"stats_interval"` // seconds between frame statistics
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Settings {
	s := &Settings{}
	if err := yaml.Unmarshal(defaultsYAML, s); err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return s
}

// DefaultsYAML returns the embedded defaults file verbatim.
func DefaultsYAML() []byte {
	return bytes.Clone(defaultsYAML)
}

// GetSettingsPath returns $XDG_CONFIG_HOME/lumen/settings.yaml, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func GetSettingsPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configHome, "lumen", "settings.yaml"), nil
}

// Load reads the settings at path, or at GetSettingsPath when path is empty.
// A missing file is created with the defaults. A malformed file, unknown keys
// and out-of-range values are logged and never fatal.
func Load(path string, logger *zap.Logger) (*Settings, error) {
	if path == "" {
		p, err := GetSettingsPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve settings path: %w", err)
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("Creating default settings file", zap.String("path", path))
			if err := WriteDefaults(path); err != nil {
				logger.Warn("Failed to create default settings file", zap.Error(err))
			}
			return Defaults(), nil
		}
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	settings, err := Parse(data, logger)
	if err != nil {
		logger.Warn("Invalid settings file, using defaults", zap.String("path", path), zap.Error(err))
		return Defaults(), nil
	}
	return settings, nil
}

// Parse decodes data over the defaults and validates the result.
func Parse(data []byte, logger *zap.Logger) (*Settings, error) {
	settings := Defaults()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	// Check for unrecognised keys
	strict := yaml.NewDecoder(bytes.NewReader(data))
	strict.KnownFields(true)
	if err := strict.Decode(&Settings{}); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("Unrecognised setting in settings file", zap.Error(err))
	}

	for _, verr := range settings.Validate() {
		logger.Warn("Invalid setting, using default", zap.Error(verr))
	}
	return settings, nil
}

// WriteDefaults writes the embedded defaults to path, creating its directory.
func WriteDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, defaultsYAML, 0644)
}

// Marshal encodes s as YAML.
func (s *Settings) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
