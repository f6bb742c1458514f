package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/waterdrop/internal/game"
)

// DefaultGain is the playback volume of cues, as a linear factor.
const DefaultGain = 0.2

// Player plays cues through the speaker. A Player that was never
// initialized, or whose initialization failed, stays silent.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	gain        float64
	initialized bool
}

// NewPlayer creates a silent player.
func NewPlayer(gain float64) *Player {
	return &Player{mixer: &beep.Mixer{}, gain: gain}
}

// Initialize opens the speaker.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// PlayCue starts the cue without waiting for it to finish.
func (p *Player) PlayCue(c game.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s := CueStreamer(c, SampleRate, p.gain)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences every playing cue.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

var _ game.AudioSink = (*Player)(nil)
