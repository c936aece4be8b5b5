// mio plays microgame saves in the terminal, locally or over SSH.
//
// Usage:
//
//	mio list                 - List saves in the library
//	mio inspect <save>       - Show the decoded objects and rules of a save
//	mio import <file>...     - Store saves in the database
//	mio run <save>           - Simulate a save without a terminal
//	mio play [save]          - Play a save, or pick one from a menu
//	mio serve                - Start the SSH server and the event stream
//	mio results [save]       - Show recorded plays
//	mio trace <file>         - Print a recorded frame trace
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.mio/config.yaml)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mio-arcade/internal/config"
	"github.com/vovakirdan/mio-arcade/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string

	// cfg is loaded once before any command runs.
	cfg config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mio",
	Short: "Play microgame saves in your terminal",
	Long: `mio decodes microgame save files and plays them in the terminal.

Available commands:
  list     - Show the saves in the library
  inspect  - Decode a save and print its objects and rules
  import   - Store saves in the database
  run      - Simulate a save headlessly
  play     - Play a save, or pick one from a menu
  serve    - Start the SSH server and the event stream
  results  - View recorded plays
  trace    - Read back a frame trace

Examples:
  mio list
  mio play ./games/jump.bin
  mio run jump --seed 42 --trace jump.jsonl.zst
  mio serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		cfg = loaded
		if flagLogLevel != "" {
			cfg.Log.Level = flagLogLevel
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(traceCmd)
}

// newLogger returns a stderr logger at the configured level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	logger.SetLevel(cfg.LogLevel())
	return logger
}

// openStore opens the results database. Commands that can run without it
// get nil and a warning.
func openStore(required bool) (*storage.Store, error) {
	store, err := storage.Open(config.ExpandPath(cfg.Storage.DBPath))
	if err != nil {
		if required {
			return nil, err
		}
		newLogger("mio").Warn("could not open database", "error", err)
		return nil, nil
	}
	return store, nil
}
