package telemetry

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FrameStats collects frame durations over a reporting window.
type FrameStats struct {
	samples []float64
	elapsed float64
}

// Summary describes the frame durations of one window, in seconds.
type Summary struct {
	Frames int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	FPS    float64
}

func NewFrameStats() *FrameStats {
	return &FrameStats{samples: make([]float64, 0, 512)}
}

// Add records one frame duration.
func (s *FrameStats) Add(dt float32) {
	s.samples = append(s.samples, float64(dt))
	s.elapsed += float64(dt)
}

// Elapsed is the sum of recorded durations since the last reset.
func (s *FrameStats) Elapsed() float64 {
	return s.elapsed
}

func (s *FrameStats) Len() int {
	return len(s.samples)
}

// Summary computes statistics over the current window.
func (s *FrameStats) Summary() Summary {
	if len(s.samples) == 0 {
		return Summary{}
	}
	mean, std := stat.MeanStdDev(s.samples, nil)
	sum := Summary{
		Frames: len(s.samples),
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(s.samples),
		Max:    floats.Max(s.samples),
	}
	if s.elapsed > 0 {
		sum.FPS = float64(len(s.samples)) / s.elapsed
	}
	return sum
}

// Reset starts a new window.
func (s *FrameStats) Reset() {
	s.samples = s.samples[:0]
	s.elapsed = 0
}
