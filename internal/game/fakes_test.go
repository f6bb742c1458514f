package game

import (
	"errors"

	"github.com/vovakirdan/waterdrop/internal/core"
	"github.com/vovakirdan/waterdrop/internal/drop"
	"github.com/vovakirdan/waterdrop/internal/milestone"
	"github.com/vovakirdan/waterdrop/internal/profile"
)

type recordingRenderer struct {
	next      drop.Handle
	placed    map[drop.Handle]drop.Kind
	removed   map[drop.Handle]int
	score     int
	timer     int
	highScore int
	goal      milestone.Goal
	feedback  []string
	pops      []string
	summaries []Summary
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{
		placed:  make(map[drop.Handle]drop.Kind),
		removed: make(map[drop.Handle]int),
	}
}

func (r *recordingRenderer) PlaceDrop(kind drop.Kind, _ float64) drop.Handle {
	r.next++
	r.placed[r.next] = kind
	return r.next
}

func (r *recordingRenderer) UpdateDropPosition(drop.Handle, float64) {}

func (r *recordingRenderer) RemoveDrop(h drop.Handle) { r.removed[h]++ }

func (r *recordingRenderer) UpdateScore(score int) { r.score = score }

func (r *recordingRenderer) UpdateTimer(seconds int) { r.timer = seconds }

func (r *recordingRenderer) UpdateHighScore(s int) { r.highScore = s }

func (r *recordingRenderer) UpdateGoal(g milestone.Goal) { r.goal = g }

func (r *recordingRenderer) ShowFeedback(msg string, _ core.Color) {
	r.feedback = append(r.feedback, msg)
}

func (r *recordingRenderer) PopText(_ core.Point, text string, _ core.Color) {
	r.pops = append(r.pops, text)
}

func (r *recordingRenderer) ShowSummary(s Summary) {
	r.summaries = append(r.summaries, s)
}

func (r *recordingRenderer) lastFeedback() string {
	if len(r.feedback) == 0 {
		return ""
	}
	return r.feedback[len(r.feedback)-1]
}

type recordingNotifier struct {
	toasts     []string
	celebrated []int
}

func (n *recordingNotifier) Notify(msg string, _ core.Color) { n.toasts = append(n.toasts, msg) }

func (n *recordingNotifier) Celebrate(score int) { n.celebrated = append(n.celebrated, score) }

func (n *recordingNotifier) count(msg string) int {
	c := 0
	for _, t := range n.toasts {
		if t == msg {
			c++
		}
	}
	return c
}

type recordingAudio struct {
	cues []Cue
}

func (a *recordingAudio) PlayCue(c Cue) { a.cues = append(a.cues, c) }

func (a *recordingAudio) count(c Cue) int {
	n := 0
	for _, got := range a.cues {
		if got == c {
			n++
		}
	}
	return n
}

type recordingHistory struct {
	rounds []Summary
	err    error
}

func (h *recordingHistory) RecordRound(s Summary) error {
	h.rounds = append(h.rounds, s)
	return h.err
}

var errFailing = errors.New("disk on fire")

type failingStore struct{}

func (failingStore) Load() (profile.Profile, error) { return profile.Profile{}, errFailing }

func (failingStore) Save(profile.Profile) error { return errFailing }

func (failingStore) Update(func(*profile.Profile)) (profile.Profile, error) {
	return profile.Profile{}, errFailing
}
