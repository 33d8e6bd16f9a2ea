package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lumensocial/lumen/internal/config"
	"github.com/lumensocial/lumen/internal/draw"
	"github.com/lumensocial/lumen/internal/gpu"
	"github.com/lumensocial/lumen/internal/models"
)

type fakeSurface struct {
	limit    int
	polls    int
	presents int
	width    int
	height   int
	pointer  models.RawPointer
}

func (f *fakeSurface) PollAndIsRunning() bool {
	f.polls++
	return f.presents < f.limit
}

func (f *fakeSurface) ElapsedSinceLastFrame() float32 {
	if f.presents == 0 {
		return 0
	}
	return 1.0 / 60.0
}

func (f *fakeSurface) Pointer() models.RawPointer {
	return f.pointer
}

func (f *fakeSurface) FramebufferSize() (int, int) {
	return f.width, f.height
}

func (f *fakeSurface) Present() {
	f.presents++
}

func TestRunFramesStopsOnQuit(t *testing.T) {
	s := config.Defaults()
	rec := gpu.NewRecorder()
	pipeline, err := draw.New(rec, zap.NewNop(), s.DrawConfig())
	require.NoError(t, err)
	setupUploads := rec.Count(gpu.OpUpload)

	surf := &fakeSurface{
		limit:   12,
		width:   640,
		height:  480,
		pointer: models.RawPointer{X: 320, Y: 240, Width: 640, Height: 480, ButtonHeld: true},
	}
	sim := newSimulation(s, 3)

	frames := runFrames(surf, sim, pipeline, newFrameReporter(0.05))

	assert.Equal(t, 12, frames)
	assert.Equal(t, 12, surf.presents)
	assert.Equal(t, 13, surf.polls, "quit is checked once more before exiting")
	assert.Equal(t, 12, rec.Count(gpu.OpUpload)-setupUploads)
	assert.Equal(t, 12, rec.Count(gpu.OpClear))
	assert.Equal(t, 12*5, rec.Count(gpu.OpDraw))
	assert.Equal(t, 1, rec.Count(gpu.OpViewport))
	assert.InDelta(t, 11.0/60.0, sim.Time(), 1e-5)
}

func TestRunFramesUploadsPackedState(t *testing.T) {
	s := config.Defaults()
	s.Ambient.Count = 3
	s.Aura.Count = 2

	rec := gpu.NewRecorder()
	pipeline, err := draw.New(rec, zap.NewNop(), s.DrawConfig())
	require.NoError(t, err)

	sim := newSimulation(s, 9)
	runFrames(&fakeSurface{limit: 1, width: 10, height: 10}, sim, pipeline, newFrameReporter(0))

	buf := pipeline.Passes(draw.Frame{})[0].Buffer
	assert.Equal(t, sim.Pack(nil), rec.Contents(buf))
}

func TestRunFramesQuitBeforeFirstFrame(t *testing.T) {
	rec := gpu.NewRecorder()
	pipeline, err := draw.New(rec, zap.NewNop(), config.Defaults().DrawConfig())
	require.NoError(t, err)

	frames := runFrames(&fakeSurface{limit: 0}, newSimulation(config.Defaults(), 1), pipeline, newFrameReporter(0))
	assert.Zero(t, frames)
	assert.Zero(t, rec.Count(gpu.OpDraw))
}

func withObservedLogger(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger
	logger = zap.New(core)
	t.Cleanup(func() { logger = prev })
	return logs
}

func TestDisabledStatsCollectNothing(t *testing.T) {
	logs := withObservedLogger(t)
	sim := newSimulation(config.Defaults(), 1)
	reporter := newFrameReporter(0)

	for range 10000 {
		reporter.observe(1.0/60.0, sim)
	}
	assert.Zero(t, reporter.pending())
	assert.Zero(t, logs.FilterMessage("Frame statistics").Len())

	reporter = newFrameReporter(-1)
	reporter.observe(1, sim)
	assert.Zero(t, reporter.pending())
}

func TestStatsResetEachInterval(t *testing.T) {
	logs := withObservedLogger(t)
	sim := newSimulation(config.Defaults(), 1)
	reporter := newFrameReporter(0.5)

	for range 1000 {
		reporter.observe(0.1, sim)
		require.Less(t, reporter.pending(), 6)
	}
	reports := logs.FilterMessage("Frame statistics").All()
	assert.GreaterOrEqual(t, len(reports), 150)
	assert.EqualValues(t, 5, reports[0].ContextMap()["frames"])
}

func TestRunFramesWithStatsDisabled(t *testing.T) {
	rec := gpu.NewRecorder()
	pipeline, err := draw.New(rec, zap.NewNop(), config.Defaults().DrawConfig())
	require.NoError(t, err)

	reporter := newFrameReporter(0)
	frames := runFrames(&fakeSurface{limit: 500, width: 10, height: 10}, newSimulation(config.Defaults(), 1), pipeline, reporter)
	assert.Equal(t, 500, frames)
	assert.Zero(t, reporter.pending())
}
