package avatar

import (
	"math"

	"github.com/lumensocial/lumen/internal/models"
)

type Params struct {
	Amplitude   float32
	AngularRate float32
	GlowScale   float32
}

func DefaultParams() Params {
	return Params{
		Amplitude:   0.035,
		AngularRate: 1,
		GlowScale:   1.06,
	}
}

// Motion is the idle "breathing" bob of the avatar. The phase is never
// wrapped; sin handles the periodicity.
type Motion struct {
	params Params
	state  models.AvatarState
}

func NewMotion(params Params) *Motion {
	return &Motion{params: params}
}

// Update advances the phase by dt and returns the new vertical offset.
func (m *Motion) Update(dt float32) float32 {
	m.state.Phase += dt
	m.state.OffsetY = m.OffsetAt(m.state.Phase)
	return m.state.OffsetY
}

// OffsetAt is the offset the avatar has at the given phase.
func (m *Motion) OffsetAt(phase float32) float32 {
	return float32(math.Sin(float64(phase*m.params.AngularRate))) * m.params.Amplitude
}

// Period is the phase distance after which the offset repeats.
func (m *Motion) Period() float32 {
	return 2 * math.Pi / m.params.AngularRate
}

func (m *Motion) Offset() float32 {
	return m.state.OffsetY
}

func (m *Motion) State() models.AvatarState {
	return m.state
}

func (m *Motion) Params() Params {
	return m.params
}
