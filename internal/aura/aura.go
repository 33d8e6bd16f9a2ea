// Package aura evolves the particle population orbiting the avatar.
// Particles are stored relative to the avatar anchor.
package aura

import (
	"math"

	"github.com/lumensocial/lumen/internal/models"
	"github.com/lumensocial/lumen/internal/spawn"
)

const distanceEpsilon = 0.0001

type Params struct {
	Count             int
	InteractionRadius float32
	InteractionForce  float32
	DecayRate         float32
	SpawnRadius       float32
}

func DefaultParams() Params {
	return Params{
		Count:             220,
		InteractionRadius: 0.20,
		InteractionForce:  0.0012,
		DecayRate:         0.3,
		SpawnRadius:       0.08,
	}
}

type Field struct {
	params    Params
	particles []models.AuraParticle
	spawner   *spawn.Spawner
}

func New(params Params, seed uint64) *Field {
	f := &Field{
		params:    params,
		particles: make([]models.AuraParticle, params.Count),
		spawner:   spawn.New(seed),
	}
	for i := range f.particles {
		f.particles[i] = f.spawner.SpawnAura(params.SpawnRadius)
	}
	return f
}

// NewWithParticles starts from a caller supplied population; params.Count
// is replaced by len(initial).
func NewWithParticles(params Params, seed uint64, initial []models.AuraParticle) *Field {
	params.Count = len(initial)
	f := &Field{
		params:    params,
		particles: make([]models.AuraParticle, len(initial)),
		spawner:   spawn.New(seed),
	}
	copy(f.particles, initial)
	return f
}

// Update advances the aura by one frame. anchorY is the avatar offset used to
// place each particle in world space when testing it against the pointer.
// It returns the number of particles respawned at the anchor.
func (f *Field) Update(dt float32, ptr models.PointerSignal, anchorY float32) int {
	r := f.params.InteractionRadius
	r2 := r * r
	px, py := ptr.Pos.X(), ptr.Pos.Y()

	respawned := 0
	for i := range f.particles {
		p := &f.particles[i]

		if ptr.Active {
			dx := p.X - px
			dy := p.Y + anchorY - py
			d2 := dx*dx + dy*dy
			if d2 < r2 {
				d := float32(math.Sqrt(float64(d2))) + distanceEpsilon
				k := (1 - d/r) * f.params.InteractionForce
				p.VX += dx / d * k
				p.VY += dy / d * k
			}
		}

		p.X += p.VX
		p.Y += p.VY

		p.Life -= dt * f.params.DecayRate
		if p.Life <= 0 {
			*p = f.spawner.SpawnAura(f.params.SpawnRadius)
			respawned++
		}
	}
	return respawned
}

// PackInto writes world-space (x, y) pairs in index order, adding offsetY to
// every y, and returns the offset just past the last value written.
func (f *Field) PackInto(dst []float32, offset int, offsetY float32) int {
	for _, p := range f.particles {
		dst[offset] = p.X
		dst[offset+1] = p.Y + offsetY
		offset += 2
	}
	return offset
}

func (f *Field) Len() int {
	return len(f.particles)
}

// Particle returns a copy of particle i in anchor-relative coordinates.
func (f *Field) Particle(i int) models.AuraParticle {
	return f.particles[i]
}

func (f *Field) Params() Params {
	return f.params
}
