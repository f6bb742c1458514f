// Package profile holds the player's persisted data: high score, aggregate
// statistics, unlocked badges and the mute flag.
package profile

import (
	"maps"
	"sync"
)

// Stats aggregates every completed round of a profile.
type Stats struct {
	TotalGames      int `json:"totalGames"`
	TotalClean      int `json:"totalClean"`
	TotalPolluted   int `json:"totalPolluted"`
	BestCleanStreak int `json:"bestCleanStreak"`
}

// Profile is the durable state of one player on one device.
type Profile struct {
	HighScore    int
	Stats        Stats
	Achievements map[string]bool // Unlocked badge IDs
	Muted        bool
}

// Default returns an empty profile.
func Default() Profile {
	return Profile{Achievements: make(map[string]bool)}
}

// Sanitize replaces impossible values with defaults so that a damaged
// store never produces negative counters.
func (p *Profile) Sanitize() {
	p.HighScore = max(0, p.HighScore)
	p.Stats.TotalGames = max(0, p.Stats.TotalGames)
	p.Stats.TotalClean = max(0, p.Stats.TotalClean)
	p.Stats.TotalPolluted = max(0, p.Stats.TotalPolluted)
	p.Stats.BestCleanStreak = max(0, p.Stats.BestCleanStreak)
	if p.Achievements == nil {
		p.Achievements = make(map[string]bool)
	}
	maps.DeleteFunc(p.Achievements, func(_ string, unlocked bool) bool { return !unlocked })
}

// Clone returns a deep copy of p.
func (p Profile) Clone() Profile {
	c := p
	c.Achievements = make(map[string]bool, len(p.Achievements))
	maps.Copy(c.Achievements, p.Achievements)
	return c
}

// Unlocked reports whether the badge with the given ID is unlocked.
func (p Profile) Unlocked(id string) bool {
	return p.Achievements[id]
}

// Store loads and saves a profile.
//
// Load must fall back to defaults when data is missing or corrupt; an error
// is only returned when the backing storage itself fails.
//
// Update applies fn to the currently stored profile and saves the result
// atomically, so writers that share a profile merge instead of overwriting
// each other. It returns the profile as saved.
type Store interface {
	Load() (Profile, error)
	Save(Profile) error
	Update(fn func(*Profile)) (Profile, error)
}

// MemoryStore keeps a profile in memory. It is used by tests and by
// sessions that opt out of persistence.
type MemoryStore struct {
	mu    sync.Mutex
	p     Profile
	saves int
}

// NewMemoryStore returns a store holding a copy of p.
func NewMemoryStore(p Profile) *MemoryStore {
	p = p.Clone()
	p.Sanitize()
	return &MemoryStore{p: p}
}

// Load returns a copy of the stored profile.
func (m *MemoryStore) Load() (Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.p.Clone(), nil
}

// Save replaces the stored profile with a copy of p.
func (m *MemoryStore) Save(p Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.p = p.Clone()
	m.saves++
	return nil
}

// Update applies fn to the stored profile under the store lock.
func (m *MemoryStore) Update(fn func(*Profile)) (Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.p.Clone()
	fn(&p)
	p.Sanitize()
	m.p = p
	m.saves++
	return p.Clone(), nil
}

// Saves returns how many times Save or Update was called.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
