package field

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumensocial/lumen/internal/models"
)

var idle = models.PointerSignal{}

func TestPopulationSizeNeverChanges(t *testing.T) {
	f := New(DefaultParams(), 42)
	require.Equal(t, 900, f.Len())

	ptr := models.PointerSignal{Pos: mgl32.Vec2{0, 0}, Delta: mgl32.Vec2{0.01, 0}, Active: true}
	for range 2000 {
		f.Update(0.5, ptr)
		require.Equal(t, 900, f.Len())
	}
}

func TestLifeStaysInBounds(t *testing.T) {
	f := New(DefaultParams(), 7)
	for range 500 {
		f.Update(0.3, idle)
		for i := range f.Len() {
			life := f.Particle(i).Life
			require.Greater(t, life, float32(0))
			require.LessOrEqual(t, life, float32(1))
		}
	}
}

func TestRespawnPlacesParticleOnSpawnLine(t *testing.T) {
	params := DefaultParams()
	params.DecayRate = 1
	initial := []models.Particle{
		{X: 0.3, Y: 0.4, VX: 0.001, VY: -0.002, Life: 0.05},
	}
	f := NewWithParticles(params, 1, initial)

	n := f.Update(0.1, idle)
	require.Equal(t, 1, n)

	p := f.Particle(0)
	assert.Equal(t, params.SpawnY, p.Y)
	assert.GreaterOrEqual(t, p.X, float32(-1))
	assert.LessOrEqual(t, p.X, float32(1))
	assert.Equal(t, float32(1), p.Life)
	// Velocity survives the respawn.
	assert.Equal(t, float32(0.001), p.VX)
	assert.Equal(t, float32(-0.002), p.VY)
}

func TestInactivePointerLeavesVelocityAlone(t *testing.T) {
	f := New(DefaultParams(), 3)
	before := make([]models.Particle, f.Len())
	for i := range before {
		before[i] = f.Particle(i)
	}

	ptr := models.PointerSignal{Pos: mgl32.Vec2{0, 0}, Delta: mgl32.Vec2{0.2, 0.2}, Active: false}
	f.Update(0.016, ptr)

	for i := range before {
		p := f.Particle(i)
		assert.Equal(t, before[i].VX, p.VX, "particle %d", i)
		assert.Equal(t, before[i].VY, p.VY, "particle %d", i)
	}
}

// Four still particles decaying at 2.5/s with dt=0.1 lose exactly a quarter
// of their life per step, so they expire on steps 4 and 8.
func TestDeterministicDecayTable(t *testing.T) {
	params := DefaultParams()
	params.DecayRate = 2.5

	initial := []models.Particle{
		{X: -0.5, Y: -0.5, Life: 1},
		{X: 0.5, Y: -0.5, Life: 1},
		{X: -0.5, Y: 0.5, Life: 1},
		{X: 0.5, Y: 0.5, Life: 1},
	}
	f := NewWithParticles(params, 99, initial)

	expected := []struct {
		life      float32
		respawned int
	}{
		{0.75, 0},
		{0.5, 0},
		{0.25, 0},
		{1, 4},
		{0.75, 0},
		{0.5, 0},
		{0.25, 0},
		{1, 4},
		{0.75, 0},
		{0.5, 0},
	}

	for step, want := range expected {
		n := f.Update(0.1, idle)
		require.Equal(t, want.respawned, n, "step %d", step+1)

		for i := range f.Len() {
			p := f.Particle(i)
			assert.InDelta(t, want.life, p.Life, 1e-6, "step %d particle %d", step+1, i)
			if step < 3 {
				assert.Equal(t, initial[i].X, p.X)
				assert.Equal(t, initial[i].Y, p.Y)
			} else {
				assert.Equal(t, params.SpawnY, p.Y)
			}
			assert.Zero(t, p.VX)
			assert.Zero(t, p.VY)
		}
	}
}

func TestScatterMatchesClosedForm(t *testing.T) {
	params := DefaultParams()
	r := params.ScatterRadius
	initial := []models.Particle{
		{X: r / 2, Y: 0, Life: 1},
	}
	f := NewWithParticles(params, 5, initial)

	delta := mgl32.Vec2{0.02, -0.01}
	f.Update(0.016, models.PointerSignal{Pos: mgl32.Vec2{0, 0}, Delta: delta, Active: true})

	d := float64(r)/2 + DistanceEpsilon
	k := (1 - d/float64(r)) * float64(params.ScatterForce)
	wantVX := float64(r)/2/d*k + float64(delta.X())*float64(params.DragCoefficient)
	wantVY := float64(delta.Y()) * float64(params.DragCoefficient)

	p := f.Particle(0)
	assert.InDelta(t, wantVX, float64(p.VX), 1e-7)
	assert.InDelta(t, wantVY, float64(p.VY), 1e-7)
	assert.Greater(t, p.VX, float32(0), "particle is pushed away from the pointer")
}

func TestScatterHasHardCutoff(t *testing.T) {
	params := DefaultParams()
	initial := []models.Particle{
		{X: params.ScatterRadius * 1.01, Y: 0, Life: 1},
		{X: 0, Y: -params.ScatterRadius * 2, Life: 1},
	}
	f := NewWithParticles(params, 5, initial)
	f.Update(0.016, models.PointerSignal{Delta: mgl32.Vec2{0.5, 0.5}, Active: true})

	for i := range f.Len() {
		assert.Zero(t, f.Particle(i).VX)
		assert.Zero(t, f.Particle(i).VY)
	}
}

func TestParticleOnPointerStaysFinite(t *testing.T) {
	f := NewWithParticles(DefaultParams(), 5, []models.Particle{{Life: 1}})
	f.Update(0.016, models.PointerSignal{Active: true})

	p := f.Particle(0)
	assert.False(t, math.IsNaN(float64(p.VX)) || math.IsInf(float64(p.VX), 0))
	assert.False(t, math.IsNaN(float64(p.VY)) || math.IsInf(float64(p.VY), 0))
}

func TestUpdateIntegratesVelocity(t *testing.T) {
	initial := []models.Particle{{X: 0.1, Y: 0.2, VX: 0.01, VY: -0.02, Life: 1}}
	f := NewWithParticles(DefaultParams(), 5, initial)
	f.Update(0.016, idle)

	p := f.Particle(0)
	assert.InDelta(t, 0.11, p.X, 1e-6)
	assert.InDelta(t, 0.18, p.Y, 1e-6)
}

func TestPackIntoKeepsIndexOrder(t *testing.T) {
	initial := []models.Particle{
		{X: 0.1, Y: 0.2, Life: 1},
		{X: 0.3, Y: 0.4, Life: 1},
		{X: 0.5, Y: 0.6, Life: 1},
	}
	f := NewWithParticles(DefaultParams(), 5, initial)

	dst := make([]float32, 10)
	next := f.PackInto(dst, 2)

	assert.Equal(t, 8, next)
	assert.Equal(t, []float32{0, 0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0, 0}, dst)
}

func TestSameSeedSameField(t *testing.T) {
	a := New(DefaultParams(), 1234)
	b := New(DefaultParams(), 1234)
	c := New(DefaultParams(), 4321)
	assert.NotEqual(t, a.Particle(0), c.Particle(0))

	for range 300 {
		a.Update(0.1, idle)
		b.Update(0.1, idle)
	}

	for i := range a.Len() {
		require.Equal(t, a.Particle(i), b.Particle(i))
	}
}

func TestInitialPopulationIsOnSurface(t *testing.T) {
	f := New(DefaultParams(), 77)
	for i := range f.Len() {
		p := f.Particle(i)
		require.GreaterOrEqual(t, p.X, float32(-1))
		require.LessOrEqual(t, p.X, float32(1))
		require.GreaterOrEqual(t, p.Y, float32(-1))
		require.LessOrEqual(t, p.Y, float32(1))
		require.Equal(t, float32(1), p.Life)
		require.Greater(t, p.VY, float32(0), "ambient particles drift upward")
	}
	assert.InDelta(t, 1, f.MeanLife(), 1e-6)
}
