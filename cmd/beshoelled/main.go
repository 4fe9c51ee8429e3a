// beshoelled is a match-3 tile game for the terminal.
//
// Usage:
//
//	beshoelled play              - Play an untimed game
//	beshoelled play --timed      - Play against the clock
//	beshoelled scores            - Show high scores and recent history
//	beshoelled config            - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.beshoelled, ./configs)
//	--seed <value>      - Set RNG seed for reproducible boards
//	--db <path>         - Override the scores database path
//	--store <kind>      - High-score backend: sqlite or file
//	--log-file <path>   - Log destination while playing
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/beshoelled/internal/config"
	"github.com/vovakirdan/beshoelled/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagStore    string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "beshoelled",
	Short: "Beshoelled - match three in your terminal",
	Long: `Beshoelled is a tile-matching game. Swap two neighbouring pieces to
line up three or more of the same colour; matched pieces vanish, the rest
fall and new ones drop in from the top. The game ends when no swap can
make a match, or, in timed play, when the clock runs out.

Available commands:
  play     - Play a game
  scores   - View high scores and game history
  config   - Print the effective configuration

Examples:
  beshoelled play
  beshoelled play --timed --difficulty hard
  beshoelled scores --mode timed
  beshoelled config > ~/.beshoelled/config.yaml`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "High-score backend: sqlite or file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.beshoelled/beshoelled.log", "Log file used while playing")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the configuration and applies the command line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagStore != "" {
		cfg.Storage.Backend = flagStore
	}
	return cfg, cfg.Validate()
}

// newLogger builds the command logger on w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "beshoelled",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openLogFile opens the play log for appending. The alternate screen
// owns the terminal, so logs never go to stderr while a game runs.
func openLogFile(path string) (*os.File, error) {
	path, err := storage.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}
