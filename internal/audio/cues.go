// Package audio synthesizes the game's sound cues with beep and plays them
// through the system speaker.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/waterdrop/internal/game"
)

// SampleRate is the output rate of every cue.
const SampleRate = beep.SampleRate(44100)

// note is a decaying sine tone.
type note struct {
	freq  float64
	pos   int
	total int
	fade  int // Samples of linear fade at the end
	rate  beep.SampleRate
}

func newNote(freq float64, d time.Duration, rate beep.SampleRate) *note {
	total := rate.N(d)
	return &note{
		freq:  freq,
		total: total,
		fade:  max(1, total/2),
		rate:  rate,
	}
}

func (n *note) Stream(samples [][2]float64) (int, bool) {
	if n.pos >= n.total {
		return 0, false
	}
	for i := range samples {
		if n.pos >= n.total {
			return i, true
		}
		t := float64(n.pos) / float64(n.rate)
		v := math.Sin(2 * math.Pi * n.freq * t)

		if left := n.total - n.pos; left < n.fade {
			v *= float64(left) / float64(n.fade)
		}
		samples[i][0] = v
		samples[i][1] = v
		n.pos++
	}
	return len(samples), true
}

func (n *note) Err() error { return nil }

type step struct {
	freq float64
	dur  time.Duration
}

// arpeggio plays the notes one after another.
func arpeggio(rate beep.SampleRate, steps ...step) beep.Streamer {
	parts := make([]beep.Streamer, len(steps))
	for i, s := range steps {
		parts[i] = newNote(s.freq, s.dur, rate)
	}
	return beep.Seq(parts...)
}

// chord mixes voices and cuts the result at d, since a mixer can keep
// producing silence after its inputs are drained.
func chord(rate beep.SampleRate, d time.Duration, voices ...beep.Streamer) beep.Streamer {
	return beep.Take(rate.N(d), beep.Mix(voices...))
}

func attenuate(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// CueStreamer returns a fresh streamer for the cue, or nil for unknown cues.
func CueStreamer(c game.Cue, rate beep.SampleRate, gain float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case game.CueClean:
		s = arpeggio(rate,
			step{880, 60 * time.Millisecond},
			step{1318.5, 90 * time.Millisecond},
		)
	case game.CuePolluted:
		s = chord(rate, 220*time.Millisecond,
			newNote(196, 220*time.Millisecond, rate),
			attenuate(newNote(207.7, 220*time.Millisecond, rate), 0.6),
		)
	case game.CueWin:
		s = arpeggio(rate,
			step{523.25, 110 * time.Millisecond},
			step{659.25, 110 * time.Millisecond},
			step{783.99, 110 * time.Millisecond},
			step{1046.5, 260 * time.Millisecond},
		)
	case game.CueBadge:
		s = chord(rate, 240*time.Millisecond,
			arpeggio(rate, step{1174.7, 80 * time.Millisecond}, step{1568, 160 * time.Millisecond}),
			attenuate(arpeggio(rate, step{587.33, 240 * time.Millisecond}), 0.4),
		)
	default:
		return nil
	}
	return attenuate(s, gain)
}
