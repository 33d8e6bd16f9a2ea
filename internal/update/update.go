package update

import (
	"github.com/lumensocial/lumen/internal/aura"
	"github.com/lumensocial/lumen/internal/avatar"
	"github.com/lumensocial/lumen/internal/field"
	"github.com/lumensocial/lumen/internal/models"
	"github.com/lumensocial/lumen/internal/pointer"
)

// StepResult summarises one simulation step.
type StepResult struct {
	Pointer         models.PointerSignal
	AmbientRespawns int
	AuraRespawns    int
	AvatarOffset    float32
	Time            float32
}

// Simulation owns every piece of per-frame state and advances it in a fixed
// order: pointer, ambient field, aura, avatar.
type Simulation struct {
	sampler *pointer.Sampler
	ambient *field.Field
	aura    *aura.Field
	motion  *avatar.Motion
	time    float32
}

func New(ambient *field.Field, aura *aura.Field, motion *avatar.Motion) *Simulation {
	return &Simulation{
		sampler: pointer.New(),
		ambient: ambient,
		aura:    aura,
		motion:  motion,
	}
}

// Step runs the update phase of one frame. The aura sees the avatar offset
// from before this frame's avatar update; packing afterwards uses the new one.
func (s *Simulation) Step(dt float32, raw models.RawPointer) StepResult {
	signal := s.sampler.Sample(raw)

	ambientRespawns := s.ambient.Update(dt, signal)
	auraRespawns := s.aura.Update(dt, signal, s.motion.Offset())
	offset := s.motion.Update(dt)
	s.time += dt

	return StepResult{
		Pointer:         signal,
		AmbientRespawns: ambientRespawns,
		AuraRespawns:    auraRespawns,
		AvatarOffset:    offset,
		Time:            s.time,
	}
}

// PackedLen is the number of floats Pack writes.
func (s *Simulation) PackedLen() int {
	return 2 * (s.ambient.Len() + s.aura.Len())
}

// Pack writes the ambient pairs followed by the aura pairs (in world space)
// into dst and returns the written prefix. dst is grown if it is too short.
func (s *Simulation) Pack(dst []float32) []float32 {
	n := s.PackedLen()
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]

	offset := s.ambient.PackInto(dst, 0)
	s.aura.PackInto(dst, offset, s.motion.Offset())
	return dst
}

func (s *Simulation) Ambient() *field.Field {
	return s.ambient
}

func (s *Simulation) Aura() *aura.Field {
	return s.aura
}

func (s *Simulation) Motion() *avatar.Motion {
	return s.motion
}

// Time is the accumulated dt since the simulation started.
func (s *Simulation) Time() float32 {
	return s.time
}
