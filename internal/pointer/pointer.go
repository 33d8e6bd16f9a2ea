package pointer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lumensocial/lumen/internal/models"
)

// Sampler converts raw surface coordinates into a PointerSignal and
// remembers the last position so it can report per-frame displacement.
type Sampler struct {
	last    mgl32.Vec2
	sampled bool
}

func New() *Sampler {
	return &Sampler{}
}

// Sample normalizes a pixel position into NDC. Y is flipped so that up is
// positive. The first call reports zero displacement.
func (s *Sampler) Sample(raw models.RawPointer) models.PointerSignal {
	width := float32(max(raw.Width, 1))
	height := float32(max(raw.Height, 1))

	pos := mgl32.Vec2{
		float32(raw.X)/width*2 - 1,
		1 - float32(raw.Y)/height*2,
	}

	var delta mgl32.Vec2
	if s.sampled {
		delta = pos.Sub(s.last)
	}
	s.last = pos
	s.sampled = true

	return models.PointerSignal{
		Pos:    pos,
		Delta:  delta,
		Active: raw.ButtonHeld,
	}
}

// Reset forgets the previous position, so the next sample has no displacement.
func (s *Sampler) Reset() {
	s.last = mgl32.Vec2{}
	s.sampled = false
}
