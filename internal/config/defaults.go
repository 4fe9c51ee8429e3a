package config

import (
	_ "embed"

	"github.com/vovakirdan/beshoelled/internal/match3"
	"github.com/vovakirdan/beshoelled/internal/session"
)

//go:embed defaults/beshoelled.yaml
var defaultYAML []byte

// Default returns the shipped configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Width:          session.DefaultWidth,
			Height:         session.DefaultHeight,
			Colors:         match3.PaletteSize,
			SetupMaxPasses: match3.DefaultMaxSetupPasses,
		},
		Timed: TimedConfig{
			TimeAllowed:      session.DefaultTimeAllowed,
			TimeGainPerPiece: session.DefaultTimeGainPerPiece,
		},
		Ticks: TickConfig{
			LogicRate:  8,
			RenderRate: 45,
		},
		Storage: StorageConfig{
			Backend:    "sqlite",
			DBPath:     "~/.beshoelled/scores.db",
			ScoresFile: "~/.beshoelled/high_scores.txt",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
