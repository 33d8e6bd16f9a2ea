package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumensocial/lumen/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Print the effective settings",
	RunE:  printSettings,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}

func printSettings(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		p, err := config.GetSettingsPath()
		if err != nil {
			return err
		}
		path = p
	}

	data, err := settings.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", path, data)
	return nil
}
