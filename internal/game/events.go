package game

import (
	"github.com/vovakirdan/waterdrop/internal/core"
	"github.com/vovakirdan/waterdrop/internal/drop"
	"github.com/vovakirdan/waterdrop/internal/milestone"
	"github.com/vovakirdan/waterdrop/internal/spawn"
)

const (
	cleanPoints        = 10
	pollutedCatchCost  = 5
	pollutedMissedCost = 2
)

// Catch resolves the drop with the given ID as caught by the player.
// It reports false when the round is not running or the drop is gone.
func (r *Round) Catch(id drop.ID) bool {
	if r.phase != PhaseRunning {
		return false
	}
	i := r.indexOf(id)
	if i < 0 {
		return false
	}
	d := r.drops[i]
	if !d.Resolve() {
		return false
	}
	r.remove(i)

	at := d.Center(r.cfg.Spawn.DropSize)
	if d.Kind == drop.Polluted {
		r.pollutedCaught++
		r.currentStreak = 0
		r.score = max(0, r.score-pollutedCatchCost)
		r.renderer.PopText(at, "-5", core.ColorRed)
		r.renderer.ShowFeedback("Polluted drop — keep going!", core.ColorRed)
		r.play(CuePolluted)
	} else {
		r.cleanCaught++
		if !r.hasFirstClean {
			r.hasFirstClean = true
			r.timeToFirstClean = r.elapsed().Seconds()
		}
		r.currentStreak++
		r.bestStreak = max(r.bestStreak, r.currentStreak)
		r.score += cleanPoints
		r.renderer.PopText(at, "+10", core.ColorGreen)
		r.renderer.ShowFeedback("Great catch! +10", core.ColorGreen)
		r.play(CueClean)
	}
	r.scoreChanged()
	return true
}

// CatchAt catches the topmost drop under p, in play-field units. Later
// spawns are drawn over earlier ones, so they are tried first.
func (r *Round) CatchAt(p core.Point) bool {
	if r.phase != PhaseRunning {
		return false
	}
	for i := len(r.drops) - 1; i >= 0; i-- {
		d := r.drops[i]
		if d.Box(r.cfg.Spawn.DropSize).Contains(p) {
			return r.Catch(d.ID)
		}
	}
	return false
}

// collide resolves a drop that reached the floor unclicked.
func (r *Round) collide(d *drop.Drop) {
	if r.phase != PhaseRunning {
		return
	}
	if !d.Resolve() {
		return
	}
	if i := r.indexOf(d.ID); i >= 0 {
		r.remove(i)
	}

	r.missedDrops++
	if d.Kind == drop.Polluted {
		r.score = max(0, r.score-pollutedMissedCost)
		r.renderer.ShowFeedback("Polluted hit ground: -2", core.ColorRed)
	} else {
		r.renderer.ShowFeedback("Missed clean water — catch the next one!", core.ColorRed)
	}
	r.scoreChanged()
}

func (r *Round) scoreChanged() {
	r.renderer.UpdateScore(r.score)
	r.renderer.UpdateGoal(milestone.GoalFor(r.score))
	for _, m := range r.milestones.Check(r.score) {
		r.notifier.Notify(m.Text(), core.ColorSky)
	}
}

func (r *Round) spawnDrop(spec spawn.Spec) {
	r.nextID++
	d := drop.New(r.nextID, spec.Kind, spec.X, spec.Y, spec.Speed)
	d.Handle = r.renderer.PlaceDrop(d.Kind, d.X)
	r.renderer.UpdateDropPosition(d.Handle, d.Y)
	r.drops = append(r.drops, d)
}

// moveDrops is the shared motion task for every drop in flight.
func (r *Round) moveDrops() {
	tick := r.cfg.Motion.Tick()
	floor := r.cfg.Field.Height

	// collide removes from r.drops, so walk a snapshot.
	for _, d := range append([]*drop.Drop(nil), r.drops...) {
		if d.Resolved() {
			continue
		}
		d.Advance(tick)
		r.renderer.UpdateDropPosition(d.Handle, d.Y)
		if d.BelowFloor(floor) {
			r.collide(d)
		}
	}
}

func (r *Round) countdownTick() {
	r.timeRemaining--
	r.renderer.UpdateTimer(r.timeRemaining)
	if r.timeRemaining <= 0 {
		r.End()
	}
}

func (r *Round) indexOf(id drop.ID) int {
	for i, d := range r.drops {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// remove takes the drop at i off the field before any score changes.
func (r *Round) remove(i int) {
	d := r.drops[i]
	r.drops = append(r.drops[:i], r.drops[i+1:]...)
	r.renderer.RemoveDrop(d.Handle)
}
