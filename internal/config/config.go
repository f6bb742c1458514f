// Package config provides YAML-based game configuration loading and
// the difficulty table for the waterdrop game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config contains all configuration for the waterdrop game.
type Config struct {
	Difficulty DifficultyTable `yaml:"difficulty"`
	Spawn      SpawnConfig     `yaml:"spawn"`
	Motion     MotionConfig    `yaml:"motion"`
	Field      FieldConfig     `yaml:"field"`
}

// RoundConfig holds the parameters of one round. It is chosen by difficulty
// level and never changes while a round is running.
type RoundConfig struct {
	DurationSeconds        int `yaml:"duration_seconds"`
	InitialSpawnIntervalMs int `yaml:"initial_spawn_interval_ms"`
	MinSpawnIntervalMs     int `yaml:"min_spawn_interval_ms"`
	WinThreshold           int `yaml:"win_threshold"`
}

// Duration returns the round length.
func (r RoundConfig) Duration() time.Duration {
	return time.Duration(r.DurationSeconds) * time.Second
}

// InitialSpawnInterval returns the delay between the first two spawns.
func (r RoundConfig) InitialSpawnInterval() time.Duration {
	return time.Duration(r.InitialSpawnIntervalMs) * time.Millisecond
}

// MinSpawnInterval returns the floor the spawn interval accelerates towards.
func (r RoundConfig) MinSpawnInterval() time.Duration {
	return time.Duration(r.MinSpawnIntervalMs) * time.Millisecond
}

// SpawnConfig defines how drops are created.
type SpawnConfig struct {
	PollutedChance float64 `yaml:"polluted_chance"` // Probability a drop is polluted
	DecrementMs    int     `yaml:"decrement_ms"`    // Interval shrink after every spawn
	MinSpeed       float64 `yaml:"min_speed"`       // Units per second
	MaxSpeed       float64 `yaml:"max_speed"`       // Units per second
	StartY         float64 `yaml:"start_y"`         // Drops start above the visible area
	SideMargin     float64 `yaml:"side_margin"`     // Gap kept to the left and right walls
	DropSize       float64 `yaml:"drop_size"`       // Width and height of a drop hitbox
}

// Decrement returns the spawn interval decrement.
func (s SpawnConfig) Decrement() time.Duration {
	return time.Duration(s.DecrementMs) * time.Millisecond
}

// MotionConfig defines the animation cadence for falling drops.
type MotionConfig struct {
	TickMs int `yaml:"tick_ms"`
}

// Tick returns the motion step interval.
func (m MotionConfig) Tick() time.Duration {
	return time.Duration(m.TickMs) * time.Millisecond
}

// FieldConfig defines the play area size in field units.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Validate reports the first setting that would break a round.
func (c Config) Validate() error {
	if _, ok := c.Difficulty.levels()[c.Difficulty.Default]; !ok && c.Difficulty.Default != "" {
		return fmt.Errorf("%w: unknown default level %q", ErrInvalidConfig, c.Difficulty.Default)
	}
	for _, level := range Levels() {
		rc := c.Difficulty.Round(level)
		switch {
		case rc.DurationSeconds <= 0:
			return fmt.Errorf("%w: %s duration_seconds must be positive", ErrInvalidConfig, level)
		case rc.InitialSpawnIntervalMs <= 0:
			return fmt.Errorf("%w: %s initial_spawn_interval_ms must be positive", ErrInvalidConfig, level)
		case rc.MinSpawnIntervalMs <= 0:
			return fmt.Errorf("%w: %s min_spawn_interval_ms must be positive", ErrInvalidConfig, level)
		case rc.MinSpawnIntervalMs > rc.InitialSpawnIntervalMs:
			return fmt.Errorf("%w: %s min_spawn_interval_ms exceeds the initial interval", ErrInvalidConfig, level)
		case rc.WinThreshold <= 0:
			return fmt.Errorf("%w: %s win_threshold must be positive", ErrInvalidConfig, level)
		}
	}
	if c.Spawn.PollutedChance < 0 || c.Spawn.PollutedChance > 1 {
		return fmt.Errorf("%w: polluted_chance must be within [0, 1]", ErrInvalidConfig)
	}
	if c.Spawn.DecrementMs < 0 {
		return fmt.Errorf("%w: decrement_ms must not be negative", ErrInvalidConfig)
	}
	if c.Spawn.MinSpeed <= 0 || c.Spawn.MaxSpeed < c.Spawn.MinSpeed {
		return fmt.Errorf("%w: speed range [%v, %v] is invalid", ErrInvalidConfig, c.Spawn.MinSpeed, c.Spawn.MaxSpeed)
	}
	if c.Spawn.DropSize <= 0 {
		return fmt.Errorf("%w: drop_size must be positive", ErrInvalidConfig)
	}
	if c.Motion.TickMs <= 0 {
		return fmt.Errorf("%w: tick_ms must be positive", ErrInvalidConfig)
	}
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		return fmt.Errorf("%w: field size must be positive", ErrInvalidConfig)
	}
	return nil
}
