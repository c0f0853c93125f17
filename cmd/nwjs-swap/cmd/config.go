package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/nwjs-swap/internal/config"
)

// errSettingsExist is returned when config init would overwrite a settings file.
var errSettingsExist = errors.New("settings file already exists, use --force to overwrite")

var (
	// force lets config init overwrite an existing file.
	force bool

	// configCmd groups settings commands.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage the settings file",
	}

	// configInitCmd writes the default settings.
	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with the default values",
		Long: `Writes the default settings to the --config path, or to the nwjs-swap folder in the
user configuration directory when no path is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := configPath
			if path == "" {
				path = config.DefaultPath()
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s: %w", path, errSettingsExist)
			}

			if err := config.Save(path, config.Default()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Settings written to", path)

			return err
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing settings file")
	configCmd.AddCommand(configInitCmd)
}
