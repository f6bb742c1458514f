// Package game implements a round of the water drop game: the state machine
// that spawns drops, moves them, resolves catches and floor collisions, and
// turns the finished round into stats and badges.
package game

import (
	"time"

	"github.com/vovakirdan/waterdrop/internal/config"
	"github.com/vovakirdan/waterdrop/internal/milestone"
)

// Phase is the lifecycle stage of a round.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseEnded
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Cue names a sound effect.
type Cue string

const (
	CueClean    Cue = "clean"
	CuePolluted Cue = "polluted"
	CueWin      Cue = "win"
	CueBadge    Cue = "badge"
)

// State is a read-only snapshot of the round.
type State struct {
	Phase            Phase
	Level            config.Level
	Score            int
	TimeRemaining    int // Seconds
	CleanCaught      int
	PollutedCaught   int
	MissedDrops      int
	CurrentStreak    int
	BestStreak       int
	TimeToFirstClean float64 // Seconds since start; valid when HasFirstClean
	HasFirstClean    bool
	SpawnInterval    time.Duration
	Elapsed          time.Duration // Running time, pauses excluded
	Milestones       []int         // Thresholds already announced this round
	Goal             milestone.Goal
	HighScore        int
	Muted            bool
}

// Summary describes a finished round.
type Summary struct {
	Level            config.Level
	Score            int
	CleanCaught      int
	PollutedCaught   int
	MissedDrops      int
	BestStreak       int
	TimeToFirstClean float64
	HasFirstClean    bool
	Duration         time.Duration
	Won              bool
	NewHighScore     bool
	Unlocked         []string // Badge IDs unlocked by this round, in catalog order
}
