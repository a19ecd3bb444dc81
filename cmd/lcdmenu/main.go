// Lcdmenu drives a menu on a SparkFun serial character LCD.
//
// It reads a YAML menu definition, renders the selected parameter on the
// two-row display, and services navigation input from the keyboard and an
// optional WebSocket remote-control endpoint. A built-in simulator renders
// a virtual LCD in the terminal for development without hardware.
//
// Usage:
//
//	lcdmenu [command] [flags]
//
// Running without arguments launches the simulator.
// See 'lcdmenu --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mewp/lcdmenu/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lcdmenu",
	Short: "Serial LCD Menu Controller",
	Long: `A menu controller for SparkFun serial-enabled character LCDs.

Defines a flat menu of adjustable parameters, navigates among them, and
repaints the display only when content actually changed, with an
inactivity-triggered backlight-off mode.

If no command is specified, the simulator will launch automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the simulator when no subcommand provided
		return runSimulate(cmd, args)
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
		fmt.Printf("lcdmenu %s (commit: %s)\n", version.Version, version.Commit)
	},
}
