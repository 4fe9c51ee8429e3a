package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level for timed play.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the known presets from easiest to hardest.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParsePreset resolves a preset name, case-insensitively.
func ParsePreset(name string) (DifficultyPreset, error) {
	preset := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	for _, p := range Presets {
		if p == preset {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
}

// TimedForPreset returns the countdown rules of a preset.
func TimedForPreset(preset DifficultyPreset) (TimedConfig, error) {
	switch preset {
	case DifficultyEasy:
		return TimedConfig{TimeAllowed: 45, TimeGainPerPiece: 2}, nil
	case DifficultyNormal:
		return TimedConfig{TimeAllowed: 30, TimeGainPerPiece: 1}, nil
	case DifficultyHard:
		return TimedConfig{TimeAllowed: 20, TimeGainPerPiece: 1}, nil
	default:
		return TimedConfig{}, fmt.Errorf("config: unknown difficulty %q", preset)
	}
}

// ApplyPreset replaces the timed rules of cfg with those of the named preset.
// An empty name leaves cfg unchanged. The board and palette are never touched.
func ApplyPreset(cfg *Config, name string) error {
	if name == "" {
		return nil
	}
	preset, err := ParsePreset(name)
	if err != nil {
		return err
	}
	timed, err := TimedForPreset(preset)
	if err != nil {
		return err
	}
	cfg.Timed = timed
	return nil
}
