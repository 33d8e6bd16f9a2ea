package config

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/lumensocial/lumen/internal/aura"
	"github.com/lumensocial/lumen/internal/avatar"
	"github.com/lumensocial/lumen/internal/draw"
	"github.com/lumensocial/lumen/internal/field"
)

// ValidationError describes a setting that was out of range and has been
// replaced by its default.
type ValidationError struct {
	Key     string
	Value   any
	Default any
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s=%v %s, using %v", e.Key, e.Value, e.Reason, e.Default)
}

type validator struct {
	errs []error
}

func (v *validator) positiveInt(key string, val *int, def int) {
	if *val <= 0 {
		v.errs = append(v.errs, &ValidationError{Key: key, Value: *val, Default: def, Reason: "must be positive"})
		*val = def
	}
}

func (v *validator) positive(key string, val *float32, def float32) {
	if *val <= 0 {
		v.errs = append(v.errs, &ValidationError{Key: key, Value: *val, Default: def, Reason: "must be positive"})
		*val = def
	}
}

func (v *validator) unit(key string, val *float32, def float32) {
	if *val < 0 || *val > 1 {
		v.errs = append(v.errs, &ValidationError{Key: key, Value: *val, Default: def, Reason: "must be between 0.0 and 1.0"})
		*val = def
	}
}

func (v *validator) color(key string, val *Color, def Color) {
	for i := range val {
		if val[i] < 0 || val[i] > 1 {
			v.errs = append(v.errs, &ValidationError{Key: key, Value: *val, Default: def, Reason: "channels must be between 0.0 and 1.0"})
			*val = def
			return
		}
	}
}

func (v *validator) oneOf(key string, val *string, def string, allowed ...string) {
	for _, a := range allowed {
		if *val == a {
			return
		}
	}
	v.errs = append(v.errs, &ValidationError{Key: key, Value: *val, Default: def, Reason: fmt.Sprintf("must be one of %v", allowed)})
	*val = def
}

// Validate replaces every out-of-range value with its default and returns
// one error per replacement.
func (s *Settings) Validate() []error {
	d := Defaults()
	v := &validator{}

	v.positiveInt("window.width", &s.Window.Width, d.Window.Width)
	v.positiveInt("window.height", &s.Window.Height, d.Window.Height)

	v.positiveInt("ambient.count", &s.Ambient.Count, d.Ambient.Count)
	v.positive("ambient.scatter_radius", &s.Ambient.ScatterRadius, d.Ambient.ScatterRadius)
	v.positive("ambient.decay_rate", &s.Ambient.DecayRate, d.Ambient.DecayRate)

	v.positiveInt("aura.count", &s.Aura.Count, d.Aura.Count)
	v.positive("aura.interaction_radius", &s.Aura.InteractionRadius, d.Aura.InteractionRadius)
	v.positive("aura.decay_rate", &s.Aura.DecayRate, d.Aura.DecayRate)
	v.positive("aura.spawn_radius", &s.Aura.SpawnRadius, d.Aura.SpawnRadius)

	v.positive("avatar.angular_rate", &s.Avatar.AngularRate, d.Avatar.AngularRate)
	v.positive("avatar.glow_scale", &s.Avatar.GlowScale, d.Avatar.GlowScale)

	v.color("composition.background", &s.Composition.Background, d.Composition.Background)
	v.color("composition.ambient_color", &s.Composition.AmbientColor, d.Composition.AmbientColor)
	v.color("composition.aura_color", &s.Composition.AuraColor, d.Composition.AuraColor)
	v.color("composition.glow_color", &s.Composition.GlowColor, d.Composition.GlowColor)
	v.color("composition.avatar_color", &s.Composition.AvatarColor, d.Composition.AvatarColor)
	v.positive("composition.ambient_point_size", &s.Composition.AmbientPointSize, d.Composition.AmbientPointSize)
	v.positive("composition.aura_point_size", &s.Composition.AuraPointSize, d.Composition.AuraPointSize)
	v.unit("composition.vignette_strength", &s.Composition.VignetteStrength, d.Composition.VignetteStrength)

	v.oneOf("logging.level", &s.Logging.Level, d.Logging.Level, "debug", "info", "warn", "error")
	v.oneOf("logging.format", &s.Logging.Format, d.Logging.Format, "console", "json")

	if s.Telemetry.StatsInterval < 0 {
		v.errs = append(v.errs, &ValidationError{
			Key: "telemetry.stats_interval", Value: s.Telemetry.StatsInterval,
			Default: d.Telemetry.StatsInterval, Reason: "must not be negative",
		})
		s.Telemetry.StatsInterval = d.Telemetry.StatsInterval
	}

	return v.errs
}

func (s *Settings) AmbientParams() field.Params {
	return field.Params{
		Count:           s.Ambient.Count,
		ScatterRadius:   s.Ambient.ScatterRadius,
		ScatterForce:    s.Ambient.ScatterForce,
		DragCoefficient: s.Ambient.DragCoefficient,
		DecayRate:       s.Ambient.DecayRate,
		SpawnY:          s.Ambient.SpawnY,
	}
}

func (s *Settings) AuraParams() aura.Params {
	return aura.Params{
		Count:             s.Aura.Count,
		InteractionRadius: s.Aura.InteractionRadius,
		InteractionForce:  s.Aura.InteractionForce,
		DecayRate:         s.Aura.DecayRate,
		SpawnRadius:       s.Aura.SpawnRadius,
	}
}

func (s *Settings) AvatarParams() avatar.Params {
	return avatar.Params{
		Amplitude:   s.Avatar.Amplitude,
		AngularRate: s.Avatar.AngularRate,
		GlowScale:   s.Avatar.GlowScale,
	}
}

func (s *Settings) DrawConfig() draw.Config {
	c := s.Composition
	return draw.Config{
		AmbientCount:     s.Ambient.Count,
		AuraCount:        s.Aura.Count,
		Background:       mgl32.Vec4(c.Background),
		AmbientColor:     mgl32.Vec4(c.AmbientColor),
		AmbientPointSize: c.AmbientPointSize,
		AuraColor:        mgl32.Vec4(c.AuraColor),
		AuraPointSize:    c.AuraPointSize,
		GlowColor:        mgl32.Vec4(c.GlowColor),
		GlowScale:        s.Avatar.GlowScale,
		AvatarColor:      mgl32.Vec4(c.AvatarColor),
		Vignette:         c.Vignette,
		VignetteStrength: c.VignetteStrength,
	}
}
