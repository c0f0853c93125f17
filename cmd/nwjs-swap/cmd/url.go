package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/oshokin/nwjs-swap/internal/config"
	"github.com/oshokin/nwjs-swap/internal/platform"
	"github.com/oshokin/nwjs-swap/internal/service/fetcher"
)

var (
	// targetOS overrides the operating system the URL is built for.
	targetOS string
	// targetMachine overrides the machine name the URL is built for.
	targetMachine string

	// urlCmd prints the runtime download URL without downloading.
	urlCmd = &cobra.Command{
		Use:   "url",
		Short: "Print the NW.js download URL",
		Long: `Prints the URL the runtime would be downloaded from, using the same settings and flags
as a swap. Use --os and --arch to build the URL for another machine.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load(configPath)
			if err != nil {
				return err
			}

			release := fetcher.Release{
				Version:  settings.Runtime.Version,
				SDK:      settings.Runtime.SDK && !noSDK,
				Platform: platform.For(targetOS, targetMachine),
			}

			version, changed, err := versionFlag(cmd)
			if err != nil {
				return err
			}

			if changed {
				release.Version = version
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), fetcher.DownloadURL(settings.Runtime.BaseURL, release))

			return err
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	urlCmd.Flags().StringVar(&targetOS, "os", runtime.GOOS, "operating system: windows, darwin or linux")
	urlCmd.Flags().StringVar(&targetMachine, "arch", platform.MachineFromGOARCH(runtime.GOARCH),
		"machine name: AMD64, x86_64, arm64, i386 or x86")
}
