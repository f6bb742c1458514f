// Package spawn decides when new drops appear and what they look like.
package spawn

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/waterdrop/internal/config"
	"github.com/vovakirdan/waterdrop/internal/drop"
	"github.com/vovakirdan/waterdrop/internal/schedule"
)

// Spec carries the sampled parameters of a drop about to be created.
type Spec struct {
	Kind  drop.Kind
	X     float64
	Y     float64
	Speed float64
}

// Spawner samples drops and runs the accelerating spawn chain for one round.
type Spawner struct {
	cfg      config.SpawnConfig
	width    float64
	rng      *rand.Rand
	interval time.Duration
	floor    time.Duration
	timer    *schedule.Timer
}

// New creates a spawner for a field of the given width.
func New(cfg config.SpawnConfig, width float64, seed int64) *Spawner {
	return &Spawner{
		cfg:   cfg,
		width: width,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Reset reseeds the RNG and sets the cadence for a new round.
func (s *Spawner) Reset(seed int64, initial, floor time.Duration) {
	s.Stop()
	s.rng = rand.New(rand.NewSource(seed))
	s.interval = initial
	s.floor = floor
}

// Interval returns the delay that will be used before the next spawn.
func (s *Spawner) Interval() time.Duration {
	return s.interval
}

// Sample draws the kind and motion parameters of one drop.
func (s *Spawner) Sample() Spec {
	kind := drop.Clean
	if s.rng.Float64() < s.cfg.PollutedChance {
		kind = drop.Polluted
	}

	lo := s.cfg.SideMargin
	hi := max(lo, s.width-s.cfg.DropSize-s.cfg.SideMargin)

	return Spec{
		Kind:  kind,
		X:     uniform(s.rng, lo, hi),
		Y:     s.cfg.StartY,
		Speed: uniform(s.rng, s.cfg.MinSpeed, s.cfg.MaxSpeed),
	}
}

// Start spawns one drop right away, then keeps spawning on sched. Every step
// waits the current interval and then shortens it by the configured
// decrement, never going below the floor. The chain runs until Stop.
func (s *Spawner) Start(sched *schedule.Scheduler, emit func(Spec)) {
	s.Stop()

	var step func()
	step = func() {
		emit(s.Sample())
		s.timer = sched.After(s.interval, step)
		s.interval = max(s.floor, s.interval-s.cfg.Decrement())
	}
	step()
}

// Stop cancels the pending spawn, if any.
func (s *Spawner) Stop() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Running reports whether a spawn is scheduled.
func (s *Spawner) Running() bool {
	return s.timer != nil && !s.timer.Stopped()
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
