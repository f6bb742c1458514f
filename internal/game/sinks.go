package game

import (
	"github.com/vovakirdan/waterdrop/internal/core"
	"github.com/vovakirdan/waterdrop/internal/drop"
	"github.com/vovakirdan/waterdrop/internal/milestone"
)

// Renderer displays the round. Drops are referenced by the handle returned
// from PlaceDrop.
type Renderer interface {
	PlaceDrop(kind drop.Kind, x float64) drop.Handle
	UpdateDropPosition(h drop.Handle, y float64)
	RemoveDrop(h drop.Handle)
	UpdateScore(score int)
	UpdateTimer(seconds int)
	UpdateHighScore(score int)
	UpdateGoal(g milestone.Goal)
	ShowFeedback(msg string, color core.Color)
	PopText(at core.Point, text string, color core.Color)
	ShowSummary(s Summary)
}

// Notifier shows transient toasts.
type Notifier interface {
	Notify(msg string, color core.Color)
	Celebrate(score int)
}

// AudioSink plays sound cues. Playback failures are the sink's problem.
type AudioSink interface {
	PlayCue(c Cue)
}

// RoundRecorder keeps a history of finished rounds.
type RoundRecorder interface {
	RecordRound(s Summary) error
}

type nopRenderer struct{ next drop.Handle }

func (r *nopRenderer) PlaceDrop(drop.Kind, float64) drop.Handle {
	r.next++
	return r.next
}
func (*nopRenderer) UpdateDropPosition(drop.Handle, float64) {}
func (*nopRenderer) RemoveDrop(drop.Handle) {}
func (*nopRenderer) UpdateScore(int) {}
func (*nopRenderer) UpdateTimer(int) {}
func (*nopRenderer) UpdateHighScore(int) {}
func (*nopRenderer) UpdateGoal(milestone.Goal) {}
func (*nopRenderer) ShowFeedback(string, core.Color) {}
func (*nopRenderer) PopText(core.Point, string, core.Color) {}
func (*nopRenderer) ShowSummary(Summary) {}

type nopNotifier struct{}

func (nopNotifier) Notify(string, core.Color) {}
func (nopNotifier) Celebrate(int) {}

type nopAudio struct{}

func (nopAudio) PlayCue(Cue) {}
