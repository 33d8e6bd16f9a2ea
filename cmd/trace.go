package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lumensocial/lumen/internal/draw"
	"github.com/lumensocial/lumen/internal/gpu"
	"github.com/lumensocial/lumen/internal/models"
	"github.com/lumensocial/lumen/internal/telemetry"
)

type traceOptions struct {
	frames   int
	dt       float32
	pointerX float64
	pointerY float64
	active   bool
	out      string
}

var traceOpts traceOptions

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Run the simulation without a window and print one CSV row per frame",
	RunE:  traceSimulation,
}

func init() {
	rootCmd.AddCommand(traceCmd)

	traceCmd.Flags().IntVarP(&traceOpts.frames, "frames", "n", 600, "number of frames to simulate")
	traceCmd.Flags().Float32Var(&traceOpts.dt, "dt", 1.0/60.0, "seconds per frame")
	traceCmd.Flags().Float64Var(&traceOpts.pointerX, "pointer-x", -1, "pointer x in window pixels (negative = window centre)")
	traceCmd.Flags().Float64Var(&traceOpts.pointerY, "pointer-y", -1, "pointer y in window pixels (negative = window centre)")
	traceCmd.Flags().BoolVar(&traceOpts.active, "active", false, "hold the primary button for the whole trace")
	traceCmd.Flags().StringVarP(&traceOpts.out, "out", "o", "", "write CSV to this file instead of stdout")
}

func traceSimulation(cmd *cobra.Command, args []string) error {
	if traceOpts.frames <= 0 {
		return fmt.Errorf("--frames must be positive, got %d", traceOpts.frames)
	}
	if traceOpts.dt <= 0 {
		return fmt.Errorf("--dt must be positive, got %v", traceOpts.dt)
	}

	var out io.Writer = cmd.OutOrStdout()
	if traceOpts.out != "" {
		f, err := os.Create(traceOpts.out)
		if err != nil {
			return fmt.Errorf("failed to create trace file: %w", err)
		}
		defer f.Close()
		out = f
	}

	return runTrace(out, traceOpts, resolveSeed(settings))
}

func runTrace(out io.Writer, opts traceOptions, seed uint64) error {
	rec := gpu.NewRecorder()
	pipeline, err := draw.New(rec, logger, settings.DrawConfig())
	if err != nil {
		return err
	}

	sim := newSimulation(settings, seed)
	writer := telemetry.NewTraceWriter(out)

	width, height := settings.Window.Width, settings.Window.Height
	raw := models.RawPointer{
		X:          opts.pointerX,
		Y:          opts.pointerY,
		Width:      width,
		Height:     height,
		ButtonHeld: opts.active,
	}
	if raw.X < 0 {
		raw.X = float64(width) / 2
	}
	if raw.Y < 0 {
		raw.Y = float64(height) / 2
	}

	packed := make([]float32, sim.PackedLen())
	for frame := range opts.frames {
		rec.Reset()

		res := sim.Step(opts.dt, raw)
		packed = sim.Pack(packed)
		pipeline.Upload(packed)
		pipeline.Render(draw.Frame{
			Time:         res.Time,
			AvatarOffset: res.AvatarOffset,
			Width:        width,
			Height:       height,
		})

		if n := len(rec.Rejected); n > 0 {
			logger.Warn("Skipped uploads outside buffer bounds", zap.Int("frame", frame), zap.Int("uploads", n))
		}

		err := writer.Write(telemetry.TraceRecord{
			Frame:           frame,
			Time:            res.Time,
			DT:              opts.dt,
			PointerX:        res.Pointer.Pos.X(),
			PointerY:        res.Pointer.Pos.Y(),
			PointerActive:   res.Pointer.Active,
			AvatarOffset:    res.AvatarOffset,
			AmbientRespawns: res.AmbientRespawns,
			AuraRespawns:    res.AuraRespawns,
			AmbientMeanLife: sim.Ambient().MeanLife(),
			DrawCalls:       rec.Count(gpu.OpDraw),
		})
		if err != nil {
			return err
		}
	}

	logger.Info("Trace complete", zap.Int("frames", opts.frames), zap.Float32("time", sim.Time()))
	return nil
}
