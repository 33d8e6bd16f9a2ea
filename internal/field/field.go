// Package field evolves the ambient particle population that fills the
// background. The population size never changes after construction.
package field

import (
	"math"

	"github.com/lumensocial/lumen/internal/models"
	"github.com/lumensocial/lumen/internal/spawn"
)

// DistanceEpsilon keeps the repulsion direction finite when a particle sits
// on the pointer.
const DistanceEpsilon = 0.0001

type Params struct {
	Count           int
	ScatterRadius   float32
	ScatterForce    float32
	DragCoefficient float32
	DecayRate       float32
	SpawnY          float32
}

func DefaultParams() Params {
	return Params{
		Count:           900,
		ScatterRadius:   0.15,
		ScatterForce:    0.0025,
		DragCoefficient: 0.01,
		DecayRate:       0.04,
		SpawnY:          -1.2,
	}
}

type Field struct {
	params    Params
	particles []models.Particle
	spawner   *spawn.Spawner
}

// New creates params.Count particles scattered over the surface.
func New(params Params, seed uint64) *Field {
	f := &Field{
		params:    params,
		particles: make([]models.Particle, params.Count),
		spawner:   spawn.New(seed),
	}
	for i := range f.particles {
		f.particles[i] = f.spawner.SpawnAmbient()
	}
	return f
}

// NewWithParticles starts from a caller supplied population. The count in
// params is replaced by len(initial).
func NewWithParticles(params Params, seed uint64, initial []models.Particle) *Field {
	params.Count = len(initial)
	f := &Field{
		params:    params,
		particles: make([]models.Particle, len(initial)),
		spawner:   spawn.New(seed),
	}
	copy(f.particles, initial)
	return f
}

// Update advances every particle by one frame and returns how many expired
// and were respawned.
func (f *Field) Update(dt float32, ptr models.PointerSignal) int {
	r := f.params.ScatterRadius
	r2 := r * r
	px, py := ptr.Pos.X(), ptr.Pos.Y()
	dragX := ptr.Delta.X() * f.params.DragCoefficient
	dragY := ptr.Delta.Y() * f.params.DragCoefficient

	respawned := 0
	for i := range f.particles {
		p := &f.particles[i]
		p.X += p.VX
		p.Y += p.VY

		if ptr.Active {
			dx := p.X - px
			dy := p.Y - py
			d2 := dx*dx + dy*dy
			if d2 < r2 {
				d := float32(math.Sqrt(float64(d2))) + DistanceEpsilon
				k := (1 - d/r) * f.params.ScatterForce
				p.VX += dx/d*k + dragX
				p.VY += dy/d*k + dragY
			}
		}

		p.Life -= dt * f.params.DecayRate
		if p.Life <= 0 {
			f.spawner.RespawnAmbient(p, f.params.SpawnY)
			respawned++
		}
	}
	return respawned
}

// PackInto writes (x, y) pairs in index order starting at dst[offset] and
// returns the offset just past the last value written. dst must have room
// for 2*Len() floats from offset.
func (f *Field) PackInto(dst []float32, offset int) int {
	for _, p := range f.particles {
		dst[offset] = p.X
		dst[offset+1] = p.Y
		offset += 2
	}
	return offset
}

func (f *Field) Len() int {
	return len(f.particles)
}

// Particle returns a copy of particle i.
func (f *Field) Particle(i int) models.Particle {
	return f.particles[i]
}

func (f *Field) Params() Params {
	return f.params
}

// MeanLife is the average remaining life across the population.
func (f *Field) MeanLife() float32 {
	if len(f.particles) == 0 {
		return 0
	}
	var sum float32
	for _, p := range f.particles {
		sum += p.Life
	}
	return sum / float32(len(f.particles))
}
