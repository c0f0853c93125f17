package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/nwjs-swap/internal/version"
)

var (
	// configPath to the settings YAML file; empty means search.
	configPath string
	// gamePath is the game folder to update.
	gamePath string
	// nwjsVersion overrides the runtime version from settings.
	nwjsVersion string
	// nwjsPath is a local NW.js folder to install instead of downloading.
	nwjsPath string
	// noSDK selects the normal build.
	noSDK bool
	// executableName overrides the executable name from settings.
	executableName string
	// noBackup skips the backup.
	noBackup bool
	// verbose enables debug logging.
	verbose bool
	// interactive forces the guided prompts.
	interactive bool

	// rootCmd replaces the NW.js runtime of an RPG Maker MV game.
	rootCmd = &cobra.Command{
		Use:   "nwjs-swap",
		Short: "Replace the NW.js runtime of an RPG Maker MV game",
		Long: `Replaces the bundled NW.js runtime of a packaged RPG Maker MV game with a newer build.

The game's package.json, www folder and index.html are kept. Everything else in the
game folder is replaced by the runtime, the runtime executable is renamed and files
the game does not need are removed.

Without --game-path the tool asks for everything interactively when run in a terminal.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return runSwap(ctx, cmd)
		},
	}
)

// Execute runs the nwjs-swap CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln(failureStyle.Render("Failed: " + err.Error()))
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to settings file")
	rootCmd.PersistentFlags().StringVar(&nwjsVersion, "nwjs-version", "", "NW.js version to download (default from settings, v0.49.2)")
	rootCmd.PersistentFlags().BoolVar(&noSDK, "no-sdk", false, "use the normal build instead of the SDK build")

	rootCmd.Flags().StringVarP(&gamePath, "game-path", "g", "", "path to the RPG Maker MV game folder")
	rootCmd.Flags().StringVar(&nwjsPath, "nwjs-path", "", "existing NW.js folder to install instead of downloading")
	rootCmd.Flags().StringVarP(&executableName, "executable-name", "n", "", "name for the game executable (default from settings, Game)")
	rootCmd.Flags().BoolVar(&noBackup, "no-backup", false, "skip creating a backup")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "ask for settings interactively")

	rootCmd.AddCommand(urlCmd, configCmd)
}
