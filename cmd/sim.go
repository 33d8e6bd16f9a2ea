package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lumensocial/lumen/internal/aura"
	"github.com/lumensocial/lumen/internal/avatar"
	"github.com/lumensocial/lumen/internal/config"
	"github.com/lumensocial/lumen/internal/field"
	"github.com/lumensocial/lumen/internal/update"
)

var seedFlag uint64

func addSimulationFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().Uint64Var(&seedFlag, "seed", 0, "RNG seed (0 = use settings, then time based)")
}

// resolveSeed prefers the flag, then the settings file, then the clock.
func resolveSeed(s *config.Settings) uint64 {
	if seedFlag != 0 {
		return seedFlag
	}
	if s.Simulation.Seed != 0 {
		return s.Simulation.Seed
	}
	return uint64(time.Now().UnixNano())
}

func newSimulation(s *config.Settings, seed uint64) *update.Simulation {
	logger.Info("Creating simulation",
		zap.Uint64("seed", seed),
		zap.Int("ambient", s.Ambient.Count),
		zap.Int("aura", s.Aura.Count),
	)
	return update.New(
		field.New(s.AmbientParams(), seed),
		aura.New(s.AuraParams(), seed+1),
		avatar.NewMotion(s.AvatarParams()),
	)
}
