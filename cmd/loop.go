package cmd

import (
	"go.uber.org/zap"

	"github.com/lumensocial/lumen/internal/draw"
	"github.com/lumensocial/lumen/internal/models"
	"github.com/lumensocial/lumen/internal/telemetry"
	"github.com/lumensocial/lumen/internal/update"
)

// frameSurface is the part of the presentation surface the frame loop needs.
type frameSurface interface {
	PollAndIsRunning() bool
	ElapsedSinceLastFrame() float32
	Pointer() models.RawPointer
	FramebufferSize() (int, int)
	Present()
}

// frameReporter logs frame statistics at debug level once per interval.
// A non-positive interval disables it and nothing is collected.
type frameReporter struct {
	interval float64
	stats    *telemetry.FrameStats
}

func newFrameReporter(interval float64) *frameReporter {
	r := &frameReporter{interval: interval}
	if interval > 0 {
		r.stats = telemetry.NewFrameStats()
	}
	return r
}

func (r *frameReporter) observe(dt float32, sim *update.Simulation) {
	if r.stats == nil {
		return
	}
	r.stats.Add(dt)
	if r.stats.Elapsed() < r.interval {
		return
	}

	sum := r.stats.Summary()
	logger.Debug("Frame statistics",
		zap.Int("frames", sum.Frames),
		zap.Float64("fps", sum.FPS),
		zap.Float64("dt_mean", sum.Mean),
		zap.Float64("dt_stddev", sum.StdDev),
		zap.Float64("dt_min", sum.Min),
		zap.Float64("dt_max", sum.Max),
		zap.Float32("ambient_mean_life", sim.Ambient().MeanLife()),
	)
	r.stats.Reset()
}

// pending is the number of frames collected since the last report.
func (r *frameReporter) pending() int {
	if r.stats == nil {
		return 0
	}
	return r.stats.Len()
}

// runFrames drives the simulation and composition until the surface asks to
// quit. A quit request is only checked between frames. It returns the number
// of frames presented.
func runFrames(surf frameSurface, sim *update.Simulation, pipeline *draw.Pipeline, reporter *frameReporter) int {
	packed := make([]float32, sim.PackedLen())
	frames := 0

	for surf.PollAndIsRunning() {
		dt := surf.ElapsedSinceLastFrame()

		res := sim.Step(dt, surf.Pointer())
		packed = sim.Pack(packed)
		pipeline.Upload(packed)

		width, height := surf.FramebufferSize()
		pipeline.Render(draw.Frame{
			Time:         res.Time,
			AvatarOffset: res.AvatarOffset,
			Width:        width,
			Height:       height,
		})
		surf.Present()
		frames++

		reporter.observe(dt, sim)
	}

	return frames
}
