package audio

import (
	"testing"
	"time"

	"github.com/vovakirdan/waterdrop/internal/game"
)

func drain(t *testing.T, c game.Cue) (samples int, peak float64) {
	t.Helper()
	s := CueStreamer(c, SampleRate, 1)
	if s == nil {
		t.Fatalf("CueStreamer(%q) = nil", c)
	}
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if v := buf[i][0]; v > peak {
				peak = v
			} else if -v > peak {
				peak = -v
			}
		}
		samples += n
		if !ok {
			break
		}
		if samples > SampleRate.N(5*time.Second) {
			t.Fatalf("cue %q never ends", c)
		}
	}
	return samples, peak
}

func TestCuesAreFinite(t *testing.T) {
	tests := []struct {
		cue game.Cue
		min time.Duration
		max time.Duration
	}{
		{game.CueClean, 140 * time.Millisecond, 160 * time.Millisecond},
		{game.CuePolluted, 210 * time.Millisecond, 230 * time.Millisecond},
		{game.CueWin, 580 * time.Millisecond, 600 * time.Millisecond},
		{game.CueBadge, 230 * time.Millisecond, 250 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(string(tt.cue), func(t *testing.T) {
			n, peak := drain(t, tt.cue)
			if n < SampleRate.N(tt.min) || n > SampleRate.N(tt.max) {
				t.Errorf("cue length = %d samples, want between %d and %d",
					n, SampleRate.N(tt.min), SampleRate.N(tt.max))
			}
			if peak == 0 {
				t.Error("cue is silent")
			}
		})
	}
}

func TestUnknownCue(t *testing.T) {
	if s := CueStreamer("bogus", SampleRate, 1); s != nil {
		t.Error("unknown cue should return nil")
	}
}

func TestNoteFadesOut(t *testing.T) {
	n := newNote(440, 100*time.Millisecond, SampleRate)
	buf := make([][2]float64, n.total)
	got, _ := n.Stream(buf)
	if got != n.total {
		t.Fatalf("streamed %d samples, want %d", got, n.total)
	}

	for i := n.total - 10; i < n.total; i++ {
		if v := buf[i][0]; v > 0.01 || v < -0.01 {
			t.Errorf("sample %d = %v, want near silence at the tail", i, v)
		}
	}
	if _, ok := n.Stream(buf); ok {
		t.Error("finished note should report ok=false")
	}
}

func TestUninitializedPlayerIsSilent(t *testing.T) {
	p := NewPlayer(DefaultGain)
	p.PlayCue(game.CueWin)
	p.Close()
}
