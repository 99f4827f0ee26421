// Magichome-ctl is a command line controller for Magic Home LED devices.
//
// It speaks the LEDENET binary protocol over TCP to query and control
// Wi-Fi RGB(W) LED strip controllers: power, color, and device status.
// Known devices can be saved under friendly names in a local registry.
//
// Usage:
//
//	magichome-ctl [command] [flags]
//
// Running without arguments launches the interactive controller.
// See 'magichome-ctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tikitko/magichome/internal/logging"
	"github.com/tikitko/magichome/internal/version"
)

func main() {
	logging.InitializeFromEnv()
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "magichome-ctl",
	Short: "Magic Home LED Controller Utility",
	Long: `A command line controller for Magic Home Wi-Fi LED devices.

Queries and controls LEDENET-protocol RGB(W) LED strip controllers:
power on/off, static colors, and live device status. Devices can be
saved under friendly names for quick access.

If no command is specified, the interactive controller will launch
automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the interactive controller when no
		// subcommand is provided
		return runInteractive(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("magichome-ctl %s (commit: %s)\n", version.Version, version.Commit)
	},
}
