package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaults(t *testing.T) {
	s := Defaults()

	assert.Equal(t, 1280, s.Window.Width)
	assert.Equal(t, 720, s.Window.Height)
	assert.Equal(t, "Lumen Social", s.Window.Title)
	assert.True(t, s.Window.VSync)
	assert.Equal(t, 900, s.Ambient.Count)
	assert.Equal(t, 220, s.Aura.Count)
	assert.Equal(t, float32(0.3), s.Aura.DecayRate)
	assert.Equal(t, Color{0.04, 0.05, 0.07, 1}, s.Composition.Background)
	assert.Empty(t, s.Validate(), "embedded defaults must be valid")
}

func TestLoadCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	s, err := Load(path, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultsYAML(), data)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
ambient:
  count: 100
composition:
  vignette: false
logging:
  level: debug
`), 0644))

	s, err := Load(path, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 100, s.Ambient.Count)
	assert.False(t, s.Composition.Vignette)
	assert.Equal(t, "debug", s.Logging.Level)
	// Untouched keys keep their defaults.
	assert.Equal(t, float32(0.15), s.Ambient.ScatterRadius)
	assert.Equal(t, 220, s.Aura.Count)
}

func TestInvalidValuesAreReplaced(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	s, err := Parse([]byte(`
ambient:
  count: -3
composition:
  glow_color: [2, 0, 0, 1]
  vignette_strength: 1.5
logging:
  format: xml
`), zap.New(core))
	require.NoError(t, err)

	d := Defaults()
	assert.Equal(t, d.Ambient.Count, s.Ambient.Count)
	assert.Equal(t, d.Composition.GlowColor, s.Composition.GlowColor)
	assert.Equal(t, d.Composition.VignetteStrength, s.Composition.VignetteStrength)
	assert.Equal(t, d.Logging.Format, s.Logging.Format)

	assert.Equal(t, 4, logs.FilterMessage("Invalid setting, using default").Len())
}

func TestValidateReportsKeys(t *testing.T) {
	s := Defaults()
	s.Aura.SpawnRadius = 0
	s.Telemetry.StatsInterval = -1

	errs := s.Validate()
	require.Len(t, errs, 2)

	var keys []string
	for _, err := range errs {
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		keys = append(keys, verr.Key)
	}
	assert.Equal(t, []string{"aura.spawn_radius", "telemetry.stats_interval"}, keys)
	assert.Equal(t, float32(0.08), s.Aura.SpawnRadius)
	assert.Equal(t, float64(5), s.Telemetry.StatsInterval)
}

func TestMalformedFileFallsBackToDefaults(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ambient: [unclosed"), 0644))

	s, err := Load(path, zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
	assert.Equal(t, 1, logs.FilterMessage("Invalid settings file, using defaults").Len())
}

func TestUnknownKeyIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	s, err := Parse([]byte("ambient:\n  count: 12\n  sparkle: 3\n"), zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, 12, s.Ambient.Count)

	entries := logs.FilterMessage("Unrecognised setting in settings file").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["error"], "sparkle")
}

func TestEmptyFileUsesDefaults(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s, err := Parse(nil, zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
	assert.Zero(t, logs.Len())
}

func TestGetSettingsPathHonoursXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := GetSettingsPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "lumen", "settings.yaml"), path)
}

func TestMarshalIsLoadable(t *testing.T) {
	s := Defaults()
	s.Ambient.Count = 321
	s.Composition.AuraColor = Color{0.5, 0.5, 0.5, 0.5}

	data, err := s.Marshal()
	require.NoError(t, err)

	back, err := Parse(data, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, s, back)
}

func TestConversions(t *testing.T) {
	s := Defaults()
	s.Ambient.Count = 10
	s.Aura.Count = 5
	s.Avatar.GlowScale = 1.2

	assert.Equal(t, 10, s.AmbientParams().Count)
	assert.Equal(t, float32(-1.2), s.AmbientParams().SpawnY)
	assert.Equal(t, float32(0.0012), s.AuraParams().InteractionForce)
	assert.Equal(t, float32(0.035), s.AvatarParams().Amplitude)

	dc := s.DrawConfig()
	assert.Equal(t, 10, dc.AmbientCount)
	assert.Equal(t, 5, dc.AuraCount)
	assert.Equal(t, float32(1.2), dc.GlowScale)
	assert.Equal(t, mgl32.Vec4{1, 0.55, 0.2, 0.35}, dc.AuraColor)
	assert.True(t, dc.Vignette)
}
