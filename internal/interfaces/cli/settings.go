package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSettingsCommand creates the settings command
func NewSettingsCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Show the effective settings",
		Long: `Print the settings in effect after the settings file, SPF_* environment
variables and command-line flags have been applied, in the TOML format of
the settings file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := container.Container.Settings.Encode()
			if err != nil {
				return fmt.Errorf("failed to encode settings: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
