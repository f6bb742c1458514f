package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The platform fills it from CLI flags and the terminal size.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Simulation ticks per second (default 60)
	Seed     int64  // RNG seed for deterministic gameplay
	Profile  string // Key of the persisted profile to load and update
}

// DefaultProfile is the profile key used when none is given.
const DefaultProfile = "local"

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		Profile:  DefaultProfile,
	}
}
