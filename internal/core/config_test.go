package core

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ScreenW != 80 || cfg.ScreenH != 24 {
		t.Errorf("default screen = %dx%d, expected 80x24", cfg.ScreenW, cfg.ScreenH)
	}
	if cfg.LogicRate <= 0 || cfg.RenderRate <= 0 {
		t.Errorf("default rates must be positive, got %d and %d", cfg.LogicRate, cfg.RenderRate)
	}
	if cfg.Seed != 0 {
		t.Errorf("default seed = %d, expected 0 (time based)", cfg.Seed)
	}
}
