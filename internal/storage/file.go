package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vovakirdan/beshoelled/internal/session"
)

// FileStore keeps the high scores as "<untimed>,<timed>" in a text file.
type FileStore struct {
	path string
}

var _ session.HighScoreStore = (*FileStore)(nil)

// NewFileStore returns a store backed by the file at path. The file is
// created on the first Save.
func NewFileStore(path string) (*FileStore, error) {
	path, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the last non-empty line of the file. A missing file means
// nothing has been saved yet and reads as zero scores.
func (f *FileStore) Load() (session.HighScores, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return session.HighScores{}, nil
	}
	if err != nil {
		return session.HighScores{}, fmt.Errorf("storage: cannot read %s: %w", f.path, err)
	}

	var last string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			last = line
		}
	}
	if last == "" {
		return session.HighScores{}, nil
	}

	high, err := parseHighScores(last)
	if err != nil {
		return session.HighScores{}, fmt.Errorf("storage: %s: %w", f.path, err)
	}
	return high, nil
}

func parseHighScores(line string) (session.HighScores, error) {
	a, b, ok := strings.Cut(line, ",")
	if !ok {
		return session.HighScores{}, fmt.Errorf("malformed high scores %q", line)
	}

	untimed, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil || untimed < 0 {
		return session.HighScores{}, fmt.Errorf("malformed untimed high score %q", a)
	}
	timed, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil || timed < 0 {
		return session.HighScores{}, fmt.Errorf("malformed timed high score %q", b)
	}
	return session.HighScores{Untimed: untimed, Timed: timed}, nil
}

// Save replaces the file contents through a temporary file and a rename.
func (f *FileStore) Save(high session.HighScores) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".highscores-*")
	if err != nil {
		return fmt.Errorf("storage: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if _, err := fmt.Fprintf(tmp, "%d,%d\n", high.Untimed, high.Timed); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: cannot write high scores: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: cannot write high scores: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("storage: cannot replace %s: %w", f.path, err)
	}
	return nil
}

// Close is a no-op; FileStore holds no open handles.
func (f *FileStore) Close() error {
	return nil
}
