package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/beshoelled/internal/platform/tui"
	"github.com/vovakirdan/beshoelled/internal/session"
	"github.com/vovakirdan/beshoelled/internal/storage"
)

var (
	flagMode      string
	flagScoresTUI bool
	flagClear     bool
	flagRecent    int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the high score and the top 10 games of each mode, followed
by the most recently finished games.

The game history is kept in the sqlite store only; with --store file just
the two high scores are shown.

Examples:
  beshoelled scores
  beshoelled scores --mode timed
  beshoelled scores --recent 10
  beshoelled scores --tui
  beshoelled scores --clear --mode untimed`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagMode, "mode", "", "Only show one mode: untimed or timed")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse the history in an interactive table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the history and high score of the selected modes")
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 5, "How many of the last games to list (0 hides the section)")
}

// scoreModes expands the --mode flag into the modes to show.
func scoreModes(mode string) ([]string, error) {
	switch mode {
	case "":
		return []string{storage.ModeUntimed, storage.ModeTimed}, nil
	case storage.ModeUntimed, storage.ModeTimed:
		return []string{mode}, nil
	default:
		return nil, fmt.Errorf("unknown mode %q (want untimed or timed)", mode)
	}
}

func highScoreOf(high session.HighScores, mode string) int {
	if mode == storage.ModeTimed {
		return high.Timed
	}
	return high.Untimed
}

func runScores(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	modes, err := scoreModes(flagMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Storage.Backend == storage.BackendFile {
		printFileScores(cfg.Storage.ScoresFile, modes)
		return
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClear:
		for _, mode := range modes {
			if err := store.ClearScores(mode); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Cleared %s scores.\n", mode)
		}
	case flagScoresTUI:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, modes[0], width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
	default:
		printStoreScores(store, modes)
	}
}

func printStoreScores(store *storage.Store, modes []string) {
	high, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving high scores: %v\n", err)
		os.Exit(1)
	}

	for i, mode := range modes {
		if i > 0 {
			fmt.Println()
		}

		scores, err := store.TopScores(mode, 10)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("High Scores - %s\n", mode)
		fmt.Println()
		if len(scores) == 0 {
			fmt.Println("No games recorded yet.")
		} else {
			// Print header
			fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "Rank", "Score", "Moves", "Date")
			fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "----", "-----", "-----", "----")

			for rank, entry := range scores {
				dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
				fmt.Printf("  %-4d  %-10d  %-6d  %s\n", rank+1, entry.Score, entry.Moves, dateStr)
			}
		}

		fmt.Println()
		fmt.Printf("Best: %d\n", highScoreOf(high, mode))
	}

	if flagRecent <= 0 {
		return
	}
	recent, err := store.RecentGames(flagRecent)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving recent games: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
	writeRecentGames(os.Stdout, recent, modes)
}

// writeRecentGames lists games newest first, keeping only the given modes.
func writeRecentGames(w io.Writer, games []storage.GameRecord, modes []string) {
	fmt.Fprintln(w, "Recent games")
	fmt.Fprintln(w)

	shown := 0
	for _, g := range games {
		if !slices.Contains(modes, g.Mode) {
			continue
		}
		if shown == 0 {
			fmt.Fprintf(w, "  %-8s  %-10s  %-6s  %s\n", "Mode", "Score", "Moves", "Date")
			fmt.Fprintf(w, "  %-8s  %-10s  %-6s  %s\n", "----", "-----", "-----", "----")
		}
		fmt.Fprintf(w, "  %-8s  %-10d  %-6d  %s\n", g.Mode, g.Score, g.Moves, g.CreatedAt.Format("2006-01-02 15:04"))
		shown++
	}
	if shown == 0 {
		fmt.Fprintln(w, "No games recorded yet.")
	}
}

func printFileScores(path string, modes []string) {
	fs, err := storage.NewFileStore(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagClear {
		if err := fs.Save(session.HighScores{}); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	high, err := fs.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", fs.Path(), err)
		os.Exit(1)
	}
	for _, mode := range modes {
		fmt.Printf("Best %s: %d\n", mode, highScoreOf(high, mode))
	}
}
