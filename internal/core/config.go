package core

// RuntimeConfig contains the host settings that are not game rules.
type RuntimeConfig struct {
	ScreenW    int   // Screen width in characters
	ScreenH    int   // Screen height in characters
	LogicRate  int   // Resolve steps per second
	RenderRate int   // Frames per second
	Seed       int64 // RNG seed for deterministic boards
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		LogicRate:  8,
		RenderRate: 45,
		Seed:       0, // 0 means use current time in platform layer
	}
}
