package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumensocial/lumen/internal/config"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Overwrite the settings file with the defaults",
	RunE:  resetSettings,
	// Skip loading the file this command overwrites.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func resetSettings(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		p, err := config.GetSettingsPath()
		if err != nil {
			return fmt.Errorf("failed to get settings path: %w", err)
		}
		path = p
	}

	if err := config.WriteDefaults(path); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Reset settings:", path)
	return nil
}
