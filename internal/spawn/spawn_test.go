package spawn

import (
	"testing"
	"time"

	"github.com/vovakirdan/waterdrop/internal/config"
	"github.com/vovakirdan/waterdrop/internal/drop"
	"github.com/vovakirdan/waterdrop/internal/schedule"
)

func newSpawner(seed int64) *Spawner {
	cfg := config.DefaultConfig()
	return New(cfg.Spawn, float64(cfg.Field.Width), seed)
}

func TestSampleBounds(t *testing.T) {
	s := newSpawner(42)
	cfg := config.DefaultConfig().Spawn
	maxX := 640 - cfg.DropSize - cfg.SideMargin

	polluted := 0
	const n = 4000
	for i := 0; i < n; i++ {
		spec := s.Sample()
		if spec.X < cfg.SideMargin || spec.X > maxX {
			t.Fatalf("X = %v outside [%v, %v]", spec.X, cfg.SideMargin, maxX)
		}
		if spec.Speed < 80 || spec.Speed > 140 {
			t.Fatalf("Speed = %v outside [80, 140]", spec.Speed)
		}
		if spec.Y != cfg.StartY {
			t.Fatalf("Y = %v, want %v", spec.Y, cfg.StartY)
		}
		if spec.Kind == drop.Polluted {
			polluted++
		}
	}

	ratio := float64(polluted) / n
	if ratio < 0.2 || ratio > 0.3 {
		t.Errorf("polluted ratio = %.3f, want about 0.25", ratio)
	}
}

func TestSampleNarrowField(t *testing.T) {
	cfg := config.DefaultConfig().Spawn
	s := New(cfg, 20, 1)

	for i := 0; i < 10; i++ {
		if x := s.Sample().X; x != cfg.SideMargin {
			t.Fatalf("X = %v on a narrow field, want %v", x, cfg.SideMargin)
		}
	}
}

func TestSampleDeterministic(t *testing.T) {
	a := newSpawner(7)
	b := newSpawner(7)
	for i := 0; i < 50; i++ {
		if a.Sample() != b.Sample() {
			t.Fatalf("sample %d differs for equal seeds", i)
		}
	}
}

func TestStartSpawnsImmediately(t *testing.T) {
	s := newSpawner(1)
	s.Reset(1, 600*time.Millisecond, 350*time.Millisecond)
	sched := schedule.New()

	count := 0
	s.Start(sched, func(Spec) { count++ })

	if count != 1 {
		t.Fatalf("count = %d right after Start, want 1", count)
	}
	if s.Interval() != 594*time.Millisecond {
		t.Errorf("Interval() = %v, want 594ms", s.Interval())
	}

	sched.Advance(599 * time.Millisecond)
	if count != 1 {
		t.Fatalf("second spawn came early: count = %d", count)
	}
	sched.Advance(time.Millisecond)
	if count != 2 {
		t.Fatalf("count = %d at 600ms, want 2", count)
	}
}

func TestIntervalAccelerates(t *testing.T) {
	s := newSpawner(1)
	s.Reset(1, 600*time.Millisecond, 350*time.Millisecond)
	sched := schedule.New()

	var at []time.Duration
	s.Start(sched, func(Spec) { at = append(at, sched.Now()) })
	sched.Advance(2 * time.Second)

	if len(at) < 4 {
		t.Fatalf("only %d spawns in 2s", len(at))
	}
	want := []time.Duration{0, 600 * time.Millisecond, 1194 * time.Millisecond, 1782 * time.Millisecond}
	for i, w := range want {
		if at[i] != w {
			t.Errorf("spawn %d at %v, want %v", i, at[i], w)
		}
	}
}

func TestIntervalFloor(t *testing.T) {
	s := newSpawner(1)
	s.Reset(1, 360*time.Millisecond, 350*time.Millisecond)
	sched := schedule.New()

	s.Start(sched, func(Spec) {})
	sched.Advance(5 * time.Second)

	if s.Interval() != 350*time.Millisecond {
		t.Errorf("Interval() = %v, want floor 350ms", s.Interval())
	}
}

func TestStopCancelsChain(t *testing.T) {
	s := newSpawner(1)
	s.Reset(1, 600*time.Millisecond, 350*time.Millisecond)
	sched := schedule.New()

	count := 0
	s.Start(sched, func(Spec) { count++ })
	sched.Advance(time.Second)
	before := count

	s.Stop()
	if s.Running() {
		t.Fatal("Running() = true after Stop")
	}
	sched.Advance(10 * time.Second)
	if count != before {
		t.Errorf("spawned %d drops after Stop", count-before)
	}
	if sched.Pending() != 0 {
		t.Errorf("Pending() = %d after Stop", sched.Pending())
	}
}
