// Package milestone tracks progress toward round-number scores and the
// one-shot notifications fired when fixed thresholds are crossed.
package milestone

import "fmt"

// Step is the width of a goal band.
const Step = 100

// Goal is the progress of a score within its current band.
type Goal struct {
	Prev      int     // Lower bound of the band
	Next      int     // Upper bound of the band
	Remaining int     // Points still needed to reach Next
	Fraction  float64 // Progress in [0, 1]
	Flash     bool    // Score sits exactly on a positive band boundary
}

// GoalFor computes the goal band for score.
func GoalFor(score int) Goal {
	score = max(0, score)
	prev := score / Step * Step
	next := prev + Step
	frac := float64(score-prev) / float64(next-prev)
	return Goal{
		Prev:      prev,
		Next:      next,
		Remaining: max(0, next-score),
		Fraction:  min(1, max(0, frac)),
		Flash:     score > 0 && score%Step == 0,
	}
}

// Label is the human readable goal line.
func (g Goal) Label() string {
	return fmt.Sprintf("Next milestone: %d points (%d to go)", g.Next, g.Remaining)
}

// Milestone is a score threshold with its announcement.
type Milestone struct {
	Score   int
	Message string
}

// Text is the toast shown when the milestone is reached.
func (m Milestone) Text() string {
	return "💧 " + m.Message
}

var milestones = []Milestone{
	{Score: 50, Message: "Getting started! 50 points!"},
	{Score: 100, Message: "Halfway to a water project! 100 points!"},
	{Score: 200, Message: "Amazing flow! 200 points!"},
	{Score: 300, Message: "Clean water champion! 300 points!"},
}

// All returns the fixed milestone list in ascending order.
func All() []Milestone {
	out := make([]Milestone, len(milestones))
	copy(out, milestones)
	return out
}

// Tracker remembers which milestones have fired during the current round.
type Tracker struct {
	reached map[int]bool
}

// NewTracker returns a tracker with nothing reached.
func NewTracker() *Tracker {
	return &Tracker{reached: make(map[int]bool)}
}

// Check returns the milestones that score reaches for the first time this
// round, in ascending order, and marks them as reached.
func (t *Tracker) Check(score int) []Milestone {
	var hit []Milestone
	for _, m := range milestones {
		if score >= m.Score && !t.reached[m.Score] {
			t.reached[m.Score] = true
			hit = append(hit, m)
		}
	}
	return hit
}

// Reached reports whether the threshold has already fired.
func (t *Tracker) Reached(score int) bool {
	return t.reached[score]
}

// Reset forgets every reached milestone.
func (t *Tracker) Reset() {
	clear(t.reached)
}
