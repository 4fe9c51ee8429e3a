package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/beshoelled/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreHighScoresEmpty(t *testing.T) {
	store := openTestStore(t)

	high, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if high != (session.HighScores{}) {
		t.Errorf("Expected zero high scores on a fresh database, got %+v", high)
	}
}

func TestStoreHighScoresRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if err := store.Save(session.HighScores{Untimed: 140, Timed: 62}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := store.Save(session.HighScores{Untimed: 150, Timed: 62}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	store.Close()

	// Reopen to make sure the values were persisted.
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	want := session.HighScores{Untimed: 150, Timed: 62}
	if high != want {
		t.Errorf("Load() = %+v, want %+v", high, want)
	}
}

func TestStoreRecordAndTopScores(t *testing.T) {
	store := openTestStore(t)

	for _, g := range []struct {
		mode  string
		score int
	}{
		{ModeUntimed, 100},
		{ModeUntimed, 50},
		{ModeUntimed, 200},
		{ModeTimed, 500},
	} {
		if _, err := store.RecordGame(g.mode, g.score, g.score/10); err != nil {
			t.Fatalf("RecordGame() failed: %v", err)
		}
	}

	scores, err := store.TopScores(ModeUntimed, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Moves != 20 {
		t.Errorf("Expected 20 moves for the best game, got %d", scores[0].Moves)
	}
	if scores[0].Mode != ModeUntimed {
		t.Errorf("Expected mode %q, got %q", ModeUntimed, scores[0].Mode)
	}

	timed, err := store.TopScores(ModeTimed, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(timed) != 1 {
		t.Errorf("Expected 1 timed score, got %d", len(timed))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.RecordGame(ModeTimed, (i+1)*100, i) //nolint:errcheck
	}

	scores, err := store.TopScores(ModeTimed, 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreRecentGames(t *testing.T) {
	store := openTestStore(t)

	store.RecordGame(ModeUntimed, 10, 1) //nolint:errcheck
	store.RecordGame(ModeTimed, 20, 2)   //nolint:errcheck
	store.RecordGame(ModeUntimed, 30, 3) //nolint:errcheck

	games, err := store.RecentGames(2)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("Expected 2 games, got %d", len(games))
	}
	if games[0].Score != 30 || games[1].Score != 20 {
		t.Errorf("Expected newest first, got %v", games)
	}
	if games[0].CreatedAt.IsZero() {
		t.Error("Expected created_at to be parsed")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats(ModeTimed)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.BestScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.RecordGame(ModeTimed, 100, 4)   //nolint:errcheck
	store.RecordGame(ModeTimed, 300, 6)   //nolint:errcheck
	store.RecordGame(ModeUntimed, 999, 1) //nolint:errcheck

	stats, err := store.Stats(ModeTimed)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("Expected 2 games, got %d", stats.GamesCount)
	}
	if stats.BestScore != 300 {
		t.Errorf("Expected best score 300, got %d", stats.BestScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("Expected average 200, got %v", stats.AvgScore)
	}
	if stats.TotalMoves != 10 {
		t.Errorf("Expected 10 moves, got %d", stats.TotalMoves)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.RecordGame(ModeUntimed, 100, 1) //nolint:errcheck
	store.RecordGame(ModeUntimed, 200, 2) //nolint:errcheck
	store.RecordGame(ModeTimed, 300, 3)   //nolint:errcheck
	if err := store.Save(session.HighScores{Untimed: 200, Timed: 300}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	if err := store.ClearScores(ModeUntimed); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	untimed, _ := store.TopScores(ModeUntimed, 10)
	if len(untimed) != 0 {
		t.Errorf("Expected 0 untimed scores after clear, got %d", len(untimed))
	}

	timed, _ := store.TopScores(ModeTimed, 10)
	if len(timed) != 1 {
		t.Errorf("Timed scores should not be affected by clearing untimed")
	}

	high, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if high.Untimed != 0 || high.Timed != 300 {
		t.Errorf("Expected only the untimed high score cleared, got %+v", high)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestModeOf(t *testing.T) {
	if ModeOf(true) != ModeTimed || ModeOf(false) != ModeUntimed {
		t.Errorf("ModeOf mapping wrong: %q %q", ModeOf(true), ModeOf(false))
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"~/.beshoelled/scores.db", filepath.Join(home, ".beshoelled", "scores.db")},
		{"/var/lib/scores.db", "/var/lib/scores.db"},
		{"scores.db", "scores.db"},
		{"", ""},
	}
	for _, tt := range tests {
		got, err := ExpandHome(tt.in)
		if err != nil {
			t.Errorf("ExpandHome(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExpandHomeWithoutHome(t *testing.T) {
	t.Setenv("HOME", "")

	if _, err := ExpandHome("~/scores.db"); err == nil {
		t.Error("ExpandHome should fail when the home directory is unknown")
	}
	if got, err := ExpandHome("/abs/scores.db"); err != nil || got != "/abs/scores.db" {
		t.Errorf("absolute paths need no home: %q, %v", got, err)
	}
}
