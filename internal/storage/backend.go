package storage

import (
	"fmt"

	"github.com/vovakirdan/beshoelled/internal/session"
)

// Backend kinds accepted by OpenBackend.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Backend is a high-score store that must be closed when play ends.
type Backend interface {
	session.HighScoreStore
	Close() error
}

// GameRecorder is implemented by backends that keep a game history.
type GameRecorder interface {
	RecordGame(mode string, score, moves int) (int64, error)
}

// OpenBackend opens the high-score backend of the given kind.
// An empty kind selects sqlite.
func OpenBackend(kind, dbPath, filePath string) (Backend, error) {
	switch kind {
	case "", BackendSQLite:
		store, err := Open(dbPath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendFile:
		store, err := NewFileStore(filePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q (want %s or %s)", kind, BackendSQLite, BackendFile)
	}
}
