package config

import (
	_ "embed"
)

//go:embed defaults/waterdrop.yaml
var defaultWaterdropYAML []byte

// MinSpawnIntervalMs is the floor every tier accelerates towards.
const MinSpawnIntervalMs = 350

// DefaultConfig returns the built-in waterdrop configuration.
func DefaultConfig() Config {
	return Config{
		Difficulty: DifficultyTable{
			Default: LevelNormal,
			Easy: RoundConfig{
				DurationSeconds:        40,
				InitialSpawnIntervalMs: 800,
				MinSpawnIntervalMs:     MinSpawnIntervalMs,
				WinThreshold:           80,
			},
			Normal: RoundConfig{
				DurationSeconds:        30,
				InitialSpawnIntervalMs: 600,
				MinSpawnIntervalMs:     MinSpawnIntervalMs,
				WinThreshold:           100,
			},
			Hard: RoundConfig{
				DurationSeconds:        20,
				InitialSpawnIntervalMs: 450,
				MinSpawnIntervalMs:     MinSpawnIntervalMs,
				WinThreshold:           120,
			},
		},
		Spawn: SpawnConfig{
			PollutedChance: 0.25,
			DecrementMs:    6,
			MinSpeed:       80,
			MaxSpeed:       140,
			StartY:         -40,
			SideMargin:     10,
			DropSize:       34,
		},
		Motion: MotionConfig{
			TickMs: 16,
		},
		Field: FieldConfig{
			Width:  640,
			Height: 480,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultWaterdropYAML
}
