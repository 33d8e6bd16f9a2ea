package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lumensocial/lumen/internal/config"
	"github.com/lumensocial/lumen/internal/logging"
)

var (
	cfgFile  string
	settings *config.Settings
	logger   = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "lumen",
	Short:         "Ambient particle field around an animated avatar",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          Run,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		bootstrap := logging.New(logging.Config{Level: "info", Format: "console"})

		s, err := config.Load(cfgFile, bootstrap)
		if err != nil {
			return err
		}
		settings = s
		logger = logging.New(logging.Config{Level: s.Logging.Level, Format: s.Logging.Format})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "settings file (default $XDG_CONFIG_HOME/lumen/settings.yaml)")
	addSimulationFlags(rootCmd)
}

// Execute runs the command line. Any returned error has already been
// reported and should end the process with exit code 1.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		if settings != nil {
			logger.Error("Command failed", zap.Error(err))
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	_ = logging.Sync(logger)
	return err
}
