package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/beshoelled/internal/config"
	"github.com/vovakirdan/beshoelled/internal/core"
	"github.com/vovakirdan/beshoelled/internal/platform/tui"
	"github.com/vovakirdan/beshoelled/internal/storage"
)

var (
	flagTimed      bool
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of Beshoelled.

Controls:
  Arrows/hjkl   - Move the cursor
  Space/Enter   - Select the piece under the cursor
  Mouse click   - Select a piece, or press New Game / New Timed Game
  N             - New game
  T             - New timed game
  ?             - Full help
  Ctrl+S        - Save a screenshot
  Q/Ctrl+C      - Quit

Difficulty options (timed games only):
  easy   - 45 seconds, 2 seconds back per piece
  normal - 30 seconds, 1 second back per piece
  hard   - 20 seconds, 1 second back per piece

Examples:
  beshoelled play
  beshoelled play --timed
  beshoelled play --timed --difficulty easy
  beshoelled play --seed 42 --store file`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagTimed, "timed", false, "Start with a timed game")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Timed difficulty preset: easy, normal, hard")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := config.ApplyPreset(&cfg, flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var logOut io.Writer = io.Discard
	if logFile, logErr := openLogFile(flagLogFile); logErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", logErr)
	} else {
		defer logFile.Close()
		logOut = logFile
	}
	logger := newLogger(logOut)

	rt := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	rt.LogicRate = cfg.Ticks.LogicRate
	rt.RenderRate = cfg.Ticks.RenderRate
	rt.Seed = flagSeed

	// Play without persistence if the store cannot be opened
	backend, err := storage.OpenBackend(cfg.Storage.Backend, cfg.Storage.DBPath, cfg.Storage.ScoresFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open high scores: %v\n", err)
		logger.Warn("playing without persistence", "error", err)
	}

	logger.Info("starting", "timed", flagTimed, "backend", cfg.Storage.Backend, "seed", flagSeed)
	runErr := tui.Run(tui.Options{
		Session: cfg.Session(),
		Runtime: rt,
		Timed:   flagTimed,
		Store:   backend,
		Logger:  logger,
	})

	// Close store before potential exit
	if backend != nil {
		//nolint:errcheck // Best-effort close on exit
		backend.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
