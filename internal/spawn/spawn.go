package spawn

import (
	"math"
	"math/rand/v2"

	"github.com/lumensocial/lumen/internal/models"
)

// Velocity ranges, in NDC units per frame.
const (
	ambientVXMin  = -0.0003
	ambientVXSpan = 0.000666
	ambientVYMin  = 0.0002
	ambientVYSpan = 0.000833

	auraVMin  = -0.0008
	auraVSpan = 0.0016667
)

// Spawner draws every random quantity a field needs from one seeded source,
// so two spawners with the same seed produce the same populations.
type Spawner struct {
	rng *rand.Rand
}

func New(seed uint64) *Spawner {
	return &Spawner{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *Spawner) uniform(lo, hi float32) float32 {
	return lo + s.rng.Float32()*(hi-lo)
}

// SpawnAmbient returns a particle anywhere on the surface with a slow
// upward drift and full life.
func (s *Spawner) SpawnAmbient() models.Particle {
	return models.Particle{
		X:    s.uniform(-1, 1),
		Y:    s.uniform(-1, 1),
		VX:   ambientVXMin + s.rng.Float32()*ambientVXSpan,
		VY:   ambientVYMin + s.rng.Float32()*ambientVYSpan,
		Life: 1,
	}
}

// RespawnAmbient moves p to a random X on the spawn line and restores its
// life. Velocity is carried over from the expired particle.
func (s *Spawner) RespawnAmbient(p *models.Particle, spawnY float32) {
	p.X = s.uniform(-1, 1)
	p.Y = spawnY
	p.Life = 1
}

// Disk samples a point with a uniform angle in [0, 2π) and a uniform
// radius in [0, radius].
func (s *Spawner) Disk(radius float32) (float32, float32) {
	angle := s.rng.Float64() * 2 * math.Pi
	r := s.rng.Float32() * radius
	return float32(math.Cos(angle)) * r, float32(math.Sin(angle)) * r
}

// SpawnAura returns a fresh aura particle near the anchor. Position,
// velocity and life are all reset.
func (s *Spawner) SpawnAura(radius float32) models.AuraParticle {
	x, y := s.Disk(radius)
	return models.AuraParticle{
		X:    x,
		Y:    y,
		VX:   auraVMin + s.rng.Float32()*auraVSpan,
		VY:   auraVMin + s.rng.Float32()*auraVSpan,
		Life: 1,
	}
}
