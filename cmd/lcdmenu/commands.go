package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mewp/lcdmenu/internal/config"
	"github.com/mewp/lcdmenu/internal/logging"
	"github.com/mewp/lcdmenu/internal/simulator"
)

// Command flags
var (
	configPath string
	serialPort string
	serialBaud int
	logLevel   string
	forceInit  bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (defaults to the platform config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when unset")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(initCmd)
}

// runCmd drives a real display over the serial port
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Drive the menu on real hardware over the serial port",
	Long: `Open the configured serial port and run the menu control loop.

Keyboard controls: arrow keys or n/p navigate, +/- adjust the selected
parameter, s puts the display to sleep, q quits. When the remote section
of the config is enabled, a WebSocket command endpoint is started as a
second input source.`,
	Example: `  # Run with the default config file
  lcdmenu run

  # Override the port and baud rate from the config
  lcdmenu run --port /dev/ttyACM0 --baud 9600`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&serialPort, "port", "", "Serial port device (overrides config)")
	runCmd.Flags().IntVar(&serialBaud, "baud", 0, "Baud rate (overrides config)")
}

// simulateCmd runs the virtual LCD
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the menu against a virtual LCD in the terminal",
	Long: `Render a virtual two-row LCD in the terminal and drive the same
controller the hardware build uses. Useful for editing a menu definition
without a display attached.`,
	RunE: runSimulate,
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return err
	}
	defer logging.Sync()

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}
	return simulator.Run(cfg)
}

// initCmd writes a starter configuration file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file with an example menu",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		defaultPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		path = defaultPath
	}

	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	}

	if err := config.Save(config.Default(), path); err != nil {
		return err
	}
	fmt.Printf("Wrote starter config to %s\n", path)
	fmt.Println("Edit the menu section, then try 'lcdmenu simulate'")
	return nil
}
