package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lumensocial/lumen/internal/draw"
	"github.com/lumensocial/lumen/internal/opengl"
	"github.com/lumensocial/lumen/pkg/surface"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the window and run the particle field",
	RunE:  Run,
}

func init() {
	rootCmd.AddCommand(runCmd)
	// glfw and the GL context are bound to the main thread.
	runtime.LockOSThread()
}

func Run(cmd *cobra.Command, args []string) error {
	window, err := surface.New(surface.Options{
		Width:  settings.Window.Width,
		Height: settings.Window.Height,
		Title:  settings.Window.Title,
		VSync:  settings.Window.VSync,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer window.Shutdown()

	dev, err := opengl.New(logger)
	if err != nil {
		return err
	}
	defer dev.Release()

	pipeline, err := draw.New(dev, logger, settings.DrawConfig())
	if err != nil {
		return err
	}

	sim := newSimulation(settings, resolveSeed(settings))

	logger.Info("Entering frame loop")
	frames := runFrames(window, sim, pipeline, newFrameReporter(settings.Telemetry.StatsInterval))
	logger.Info("Quit requested, shutting down",
		zap.Int("frames", frames),
		zap.Float32("time", sim.Time()),
	)
	return nil
}
