// Package config provides YAML-based game configuration loading,
// validation and difficulty presets.
package config

import (
	"fmt"

	"github.com/vovakirdan/beshoelled/internal/match3"
	"github.com/vovakirdan/beshoelled/internal/session"
)

// Config is the complete game configuration.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Timed   TimedConfig   `yaml:"timed"`
	Ticks   TickConfig    `yaml:"ticks"`
	Storage StorageConfig `yaml:"storage"`
}

// BoardConfig defines the grid shape and palette.
type BoardConfig struct {
	Width          int `yaml:"width"`
	Height         int `yaml:"height"`
	Colors         int `yaml:"colors"`
	SetupMaxPasses int `yaml:"setup_max_passes"`
}

// TimedConfig defines the countdown rules of timed play.
type TimedConfig struct {
	TimeAllowed      int `yaml:"time_allowed"`        // seconds at the start
	TimeGainPerPiece int `yaml:"time_gain_per_piece"` // seconds per removed piece
}

// TickConfig defines the host callback rates, in ticks per second.
// The countdown is not configurable; it ticks once per second.
type TickConfig struct {
	LogicRate  int `yaml:"logic_rate"`
	RenderRate int `yaml:"render_rate"`
}

// StorageConfig selects and locates the high-score backend.
type StorageConfig struct {
	Backend    string `yaml:"backend"` // "sqlite" or "file"
	DBPath     string `yaml:"db_path"`
	ScoresFile string `yaml:"scores_file"`
}

// Validate reports the first setting the game cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Board.Width < match3.MinSize || c.Board.Height < match3.MinSize:
		return fmt.Errorf("config: board %dx%d is smaller than %dx%d",
			c.Board.Width, c.Board.Height, match3.MinSize, match3.MinSize)
	case c.Board.Colors < match3.MinColors || c.Board.Colors > match3.PaletteSize:
		return fmt.Errorf("config: colors must be in [%d,%d], got %d",
			match3.MinColors, match3.PaletteSize, c.Board.Colors)
	case c.Board.SetupMaxPasses < 0:
		return fmt.Errorf("config: setup_max_passes must not be negative, got %d", c.Board.SetupMaxPasses)
	case c.Timed.TimeAllowed < 0 || c.Timed.TimeGainPerPiece < 0:
		return fmt.Errorf("config: timed values must not be negative")
	case c.Ticks.LogicRate <= 0 || c.Ticks.RenderRate <= 0:
		return fmt.Errorf("config: tick rates must be positive, got logic=%d render=%d",
			c.Ticks.LogicRate, c.Ticks.RenderRate)
	}

	switch c.Storage.Backend {
	case "", "sqlite", "file":
	default:
		return fmt.Errorf("config: unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}

// Session converts the configuration into session settings.
func (c Config) Session() session.Config {
	return session.Config{
		Width:            c.Board.Width,
		Height:           c.Board.Height,
		Colors:           c.Board.Colors,
		TimeAllowed:      c.Timed.TimeAllowed,
		TimeGainPerPiece: c.Timed.TimeGainPerPiece,
		MaxSetupPasses:   c.Board.SetupMaxPasses,
	}
}
