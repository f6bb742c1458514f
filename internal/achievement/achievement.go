// Package achievement evaluates end-of-round badges against a fixed catalog.
package achievement

import (
	"github.com/vovakirdan/waterdrop/internal/core"
	"github.com/vovakirdan/waterdrop/internal/profile"
)

// Badge identifiers. They are persisted, so they must never change.
const (
	Score100   = "score100"
	Score200   = "score200"
	Streak10   = "streak10"
	NoPollute  = "noPollute"
	SpeedStart = "speedstart"
	FiveGames  = "fiveGames"
)

// MaxToasts is how many newly unlocked badges are announced after a round.
const MaxToasts = 2

// Metrics describes a finished round together with the all-time totals
// that already include it.
type Metrics struct {
	FinalScore       int
	CleanCaught      int
	PollutedCaught   int
	BestStreak       int
	TimeToFirstClean float64 // Seconds; only meaningful when HasFirstClean
	HasFirstClean    bool
	Stats            profile.Stats
}

// Badge is a catalog entry.
type Badge struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Color       core.Color
	Check       func(Metrics) bool
}

var catalog = []Badge{
	{
		ID:          Score100,
		Title:       "Clean Water Hero",
		Description: "Score 100+ in a game.",
		Icon:        "★",
		Color:       core.ColorGreen,
		Check:       func(m Metrics) bool { return m.FinalScore >= 100 },
	},
	{
		ID:          Score200,
		Title:       "Flow Master",
		Description: "Score 200+ in a game.",
		Icon:        "◆",
		Color:       core.ColorSky,
		Check:       func(m Metrics) bool { return m.FinalScore >= 200 },
	},
	{
		ID:          Streak10,
		Title:       "Precision Catcher",
		Description: "10 clean catches in a row.",
		Icon:        "⧗",
		Color:       core.ColorPurple,
		Check:       func(m Metrics) bool { return m.BestStreak >= 10 },
	},
	{
		ID:          NoPollute,
		Title:       "Crystal Hands",
		Description: "Finish with 0 polluted clicks.",
		Icon:        "✓",
		Color:       core.ColorBrightGreen,
		Check:       func(m Metrics) bool { return m.PollutedCaught == 0 && m.CleanCaught > 0 },
	},
	{
		ID:          SpeedStart,
		Title:       "Quick Start",
		Description: "First clean within 3 seconds.",
		Icon:        "⚡",
		Color:       core.ColorOrange,
		Check:       func(m Metrics) bool { return m.HasFirstClean && m.TimeToFirstClean <= 3.0 },
	},
	{
		ID:          FiveGames,
		Title:       "Steady Stream",
		Description: "Play 5 total games.",
		Icon:        "∞",
		Color:       core.ColorSlate,
		Check:       func(m Metrics) bool { return m.Stats.TotalGames >= 5 },
	},
}

// Catalog returns the badges in catalog order. The slice is a copy.
func Catalog() []Badge {
	out := make([]Badge, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a badge by ID.
func Lookup(id string) (Badge, bool) {
	for _, b := range catalog {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

// Evaluate returns, in catalog order, the badges whose condition holds for m
// and which are not yet in unlocked. It does not modify unlocked.
func Evaluate(m Metrics, unlocked map[string]bool) []Badge {
	var earned []Badge
	for _, b := range catalog {
		if unlocked[b.ID] {
			continue
		}
		if b.Check(m) {
			earned = append(earned, b)
		}
	}
	return earned
}

// Toasts trims a list of new unlocks to the ones worth announcing.
func Toasts(earned []Badge) []Badge {
	if len(earned) > MaxToasts {
		return earned[:MaxToasts]
	}
	return earned
}

// ToastText is the announcement for a newly unlocked badge.
func ToastText(b Badge) string {
	return "🏅 " + b.Title + " unlocked!"
}
