package game

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/waterdrop/internal/achievement"
	"github.com/vovakirdan/waterdrop/internal/config"
	"github.com/vovakirdan/waterdrop/internal/core"
	"github.com/vovakirdan/waterdrop/internal/drop"
	"github.com/vovakirdan/waterdrop/internal/milestone"
	"github.com/vovakirdan/waterdrop/internal/profile"
	"github.com/vovakirdan/waterdrop/internal/schedule"
	"github.com/vovakirdan/waterdrop/internal/spawn"
)

// Options configures a Round. Nil collaborators are replaced by no-ops, and
// a nil Store keeps the profile in memory.
type Options struct {
	Config   config.Config
	Level    config.Level // Initially selected level; empty picks the table default
	Seed     int64        // 0 seeds from the clock
	Store    profile.Store
	Renderer Renderer
	Notifier Notifier
	Audio    AudioSink
	History  RoundRecorder
	Logger   *log.Logger
}

// Round is the game state machine. It owns every piece of per-round state
// and all scheduled work. A Round is driven from a single goroutine: Tick
// advances its virtual clock and every callback runs inside Tick.
type Round struct {
	cfg   config.Config
	level config.Level
	rc    config.RoundConfig
	seed  int64
	plays int64

	sched     *schedule.Scheduler
	spawner   *spawn.Spawner
	motion    *schedule.Timer
	countdown *schedule.Timer

	drops  []*drop.Drop
	nextID drop.ID

	phase            Phase
	score            int
	timeRemaining    int
	cleanCaught      int
	pollutedCaught   int
	missedDrops      int
	currentStreak    int
	bestStreak       int
	timeToFirstClean float64
	hasFirstClean    bool
	startedAt        time.Duration
	milestones       *milestone.Tracker

	store    profile.Store
	prof     profile.Profile
	unlocked []achievement.Badge
	last     *Summary

	renderer Renderer
	notifier Notifier
	audio    AudioSink
	history  RoundRecorder
	log      *log.Logger
}

// New creates an idle round and loads the player profile once.
func New(opts Options) *Round {
	r := &Round{
		cfg:        opts.Config,
		seed:       opts.Seed,
		sched:      schedule.New(),
		milestones: milestone.NewTracker(),
		store:      opts.Store,
		renderer:   opts.Renderer,
		notifier:   opts.Notifier,
		audio:      opts.Audio,
		history:    opts.History,
		log:        opts.Logger,
	}
	if r.seed == 0 {
		r.seed = time.Now().UnixNano()
	}
	if r.renderer == nil {
		r.renderer = &nopRenderer{}
	}
	if r.notifier == nil {
		r.notifier = nopNotifier{}
	}
	if r.audio == nil {
		r.audio = nopAudio{}
	}
	if r.log == nil {
		r.log = log.New(io.Discard)
	}
	if r.store == nil {
		r.store = profile.NewMemoryStore(profile.Default())
	}

	r.level = opts.Level
	if r.level == "" {
		r.level = r.cfg.Difficulty.DefaultOrNormal()
	}
	r.rc = r.cfg.Difficulty.Round(r.level)
	r.timeRemaining = r.rc.DurationSeconds
	r.spawner = spawn.New(r.cfg.Spawn, r.cfg.Field.Width, r.seed)

	p, err := r.store.Load()
	if err != nil {
		r.log.Warn("cannot load profile, using defaults", "err", err)
		p = profile.Default()
	}
	p.Sanitize()
	r.prof = p

	r.renderer.UpdateHighScore(r.prof.HighScore)
	r.renderer.UpdateTimer(r.timeRemaining)
	r.renderer.UpdateGoal(milestone.GoalFor(0))
	return r
}

// Start begins a round at the given level. It does nothing while a round is
// running or paused. An empty level keeps the current selection.
func (r *Round) Start(level config.Level) {
	if r.phase == PhaseRunning || r.phase == PhasePaused {
		return
	}
	if level != "" {
		r.level = level
	}
	r.rc = r.cfg.Difficulty.Round(r.level)

	r.cancelTimers()
	r.discardDrops()
	r.clearCounters()
	r.phase = PhaseRunning
	r.timeRemaining = r.rc.DurationSeconds
	r.startedAt = r.sched.Now()
	r.unlocked = nil
	r.plays++

	r.renderer.UpdateScore(r.score)
	r.renderer.UpdateTimer(r.timeRemaining)
	r.renderer.ShowFeedback("Catch the clean water drops!", core.ColorDefault)
	r.renderer.UpdateGoal(milestone.GoalFor(r.score))

	r.log.Debug("round started", "level", r.level, "duration", r.rc.Duration(), "plays", r.plays)

	r.spawner.Reset(r.seed+r.plays, r.rc.InitialSpawnInterval(), r.rc.MinSpawnInterval())
	r.spawner.Start(r.sched, r.spawnDrop)
	r.motion = r.sched.Every(r.cfg.Motion.Tick(), r.moveDrops)
	r.countdown = r.sched.Every(time.Second, r.countdownTick)
}

// TogglePause switches between running and paused. It reports whether the
// phase changed.
func (r *Round) TogglePause() bool {
	switch r.phase {
	case PhaseRunning:
		r.phase = PhasePaused
		r.renderer.ShowFeedback("Paused — press P to resume", core.ColorYellow)
	case PhasePaused:
		r.phase = PhaseRunning
		r.renderer.ShowFeedback("Go!", core.ColorSky)
	default:
		return false
	}
	r.log.Debug("pause toggled", "phase", r.phase)
	return true
}

// Tick advances the round clock by dt. Time does not pass unless the round
// is running, so a paused round freezes spawning, motion and the countdown.
func (r *Round) Tick(dt time.Duration) {
	if r.phase != PhaseRunning {
		return
	}
	r.sched.Advance(dt)
}

// End finishes a running or paused round. Calling it in any other phase
// does nothing.
func (r *Round) End() {
	if r.phase != PhaseRunning && r.phase != PhasePaused {
		return
	}
	r.phase = PhaseEnded
	r.cancelTimers()
	r.discardDrops()

	newHigh, earned := r.commitProfile()
	r.renderer.UpdateHighScore(r.prof.HighScore)
	if newHigh {
		r.renderer.ShowFeedback(fmt.Sprintf("New High Score! %d", r.prof.HighScore), core.ColorGreen)
	} else if r.score >= r.rc.WinThreshold {
		r.renderer.ShowFeedback("Amazing! You are a clean water hero!", core.ColorDefault)
	} else {
		r.renderer.ShowFeedback("Good try! Play again or learn more.", core.ColorDefault)
	}

	won := r.score >= r.rc.WinThreshold
	if won {
		r.notifier.Celebrate(r.score)
		r.renderer.ShowFeedback(fmt.Sprintf("You hit the milestone! 🎉 Score: %d", r.score), core.ColorGreen)
		r.play(CueWin)
	}

	ids := make([]string, 0, len(earned))
	for _, b := range earned {
		ids = append(ids, b.ID)
	}
	r.unlocked = earned
	for _, b := range achievement.Toasts(earned) {
		r.notifier.Notify(achievement.ToastText(b), b.Color)
	}
	if len(earned) > 0 {
		r.play(CueBadge)
	}

	summary := Summary{
		Level:            r.level,
		Score:            r.score,
		CleanCaught:      r.cleanCaught,
		PollutedCaught:   r.pollutedCaught,
		MissedDrops:      r.missedDrops,
		BestStreak:       r.bestStreak,
		TimeToFirstClean: r.timeToFirstClean,
		HasFirstClean:    r.hasFirstClean,
		Duration:         r.sched.Now() - r.startedAt,
		Won:              won,
		NewHighScore:     newHigh,
		Unlocked:         ids,
	}
	r.last = &summary
	r.renderer.ShowSummary(summary)

	if r.history != nil {
		if err := r.history.RecordRound(summary); err != nil {
			r.log.Warn("cannot record round", "err", err)
		}
	}

	r.log.Info("round ended",
		"level", r.level,
		"score", r.score,
		"clean", r.cleanCaught,
		"polluted", r.pollutedCaught,
		"missed", r.missedDrops,
		"unlocked", ids,
	)
}

// Reset returns an ended or idle round to idle. It does nothing while a
// round is running or paused.
func (r *Round) Reset() {
	if r.phase == PhaseRunning || r.phase == PhasePaused {
		return
	}
	r.cancelTimers()
	r.discardDrops()
	r.clearCounters()
	r.phase = PhaseIdle
	r.rc = r.cfg.Difficulty.Round(r.level)
	r.timeRemaining = r.rc.DurationSeconds

	r.renderer.UpdateScore(r.score)
	r.renderer.UpdateTimer(r.timeRemaining)
	r.renderer.ShowFeedback("Ready when you are.", core.ColorDefault)
	r.renderer.UpdateGoal(milestone.GoalFor(r.score))
}

// Restart resets a finished round and starts a new one at the current level.
func (r *Round) Restart() {
	if r.phase == PhaseRunning || r.phase == PhasePaused {
		return
	}
	r.Reset()
	r.Start("")
}

// SelectLevel chooses the level for the next round. It is ignored while a
// round is in progress and reports whether the selection was applied.
func (r *Round) SelectLevel(level config.Level) bool {
	if r.phase == PhaseRunning || r.phase == PhasePaused {
		return false
	}
	if !slices.Contains(config.Levels(), level) {
		return false
	}
	r.level = level
	r.rc = r.cfg.Difficulty.Round(level)
	if r.phase == PhaseIdle {
		r.timeRemaining = r.rc.DurationSeconds
		r.renderer.UpdateTimer(r.timeRemaining)
	}
	r.renderer.ShowFeedback("Mode: "+level.Title(), core.ColorSky)
	return true
}

// ToggleMute flips the mute flag, saves the profile and returns the new value.
func (r *Round) ToggleMute() bool {
	muted := !r.prof.Muted
	r.updateProfile(func(p *profile.Profile) { p.Muted = muted })
	return r.prof.Muted
}

// Phase returns the current phase.
func (r *Round) Phase() Phase {
	return r.phase
}

// Level returns the selected level.
func (r *Round) Level() config.Level {
	return r.level
}

// Config returns the configuration the round was created with.
func (r *Round) Config() config.Config {
	return r.cfg
}

// State returns a snapshot of the round.
func (r *Round) State() State {
	var reached []int
	for _, m := range milestone.All() {
		if r.milestones.Reached(m.Score) {
			reached = append(reached, m.Score)
		}
	}
	return State{
		Phase:            r.phase,
		Level:            r.level,
		Score:            r.score,
		TimeRemaining:    r.timeRemaining,
		CleanCaught:      r.cleanCaught,
		PollutedCaught:   r.pollutedCaught,
		MissedDrops:      r.missedDrops,
		CurrentStreak:    r.currentStreak,
		BestStreak:       r.bestStreak,
		TimeToFirstClean: r.timeToFirstClean,
		HasFirstClean:    r.hasFirstClean,
		SpawnInterval:    r.spawner.Interval(),
		Elapsed:          r.elapsed(),
		Milestones:       reached,
		Goal:             milestone.GoalFor(r.score),
		HighScore:        r.prof.HighScore,
		Muted:            r.prof.Muted,
	}
}

// Drops returns copies of the drops in flight, oldest first.
func (r *Round) Drops() []drop.Drop {
	out := make([]drop.Drop, len(r.drops))
	for i, d := range r.drops {
		out[i] = *d
	}
	return out
}

// Profile returns a copy of the player profile.
func (r *Round) Profile() profile.Profile {
	return r.prof.Clone()
}

// Badges returns the badges unlocked by the last finished round.
func (r *Round) Badges() []achievement.Badge {
	return slices.Clone(r.unlocked)
}

// LastSummary returns the summary of the last finished round.
func (r *Round) LastSummary() (Summary, bool) {
	if r.last == nil {
		return Summary{}, false
	}
	return *r.last, true
}

func (r *Round) elapsed() time.Duration {
	if r.phase == PhaseIdle {
		return 0
	}
	if r.phase == PhaseEnded && r.last != nil {
		return r.last.Duration
	}
	return r.sched.Now() - r.startedAt
}

func (r *Round) metrics() achievement.Metrics {
	return achievement.Metrics{
		FinalScore:       r.score,
		CleanCaught:      r.cleanCaught,
		PollutedCaught:   r.pollutedCaught,
		BestStreak:       r.bestStreak,
		TimeToFirstClean: r.timeToFirstClean,
		HasFirstClean:    r.hasFirstClean,
		Stats:            r.prof.Stats,
	}
}

func (r *Round) clearCounters() {
	r.score = 0
	r.cleanCaught = 0
	r.pollutedCaught = 0
	r.missedDrops = 0
	r.currentStreak = 0
	r.bestStreak = 0
	r.timeToFirstClean = 0
	r.hasFirstClean = false
	r.milestones.Reset()
}

func (r *Round) cancelTimers() {
	r.spawner.Stop()
	if r.motion != nil {
		r.motion.Stop()
		r.motion = nil
	}
	if r.countdown != nil {
		r.countdown.Stop()
		r.countdown = nil
	}
}

// discardDrops removes every drop without scoring it.
func (r *Round) discardDrops() {
	for _, d := range r.drops {
		d.Resolve()
		r.renderer.RemoveDrop(d.Handle)
	}
	r.drops = r.drops[:0]
}

// commitProfile folds the finished round into the stored profile. Counters
// are added and bests are maxed against the stored values, and badges are
// evaluated against the stored unlocks.
func (r *Round) commitProfile() (newHigh bool, earned []achievement.Badge) {
	m := r.metrics()
	r.updateProfile(func(p *profile.Profile) {
		p.Stats.TotalGames++
		p.Stats.TotalClean += r.cleanCaught
		p.Stats.TotalPolluted += r.pollutedCaught
		p.Stats.BestCleanStreak = max(p.Stats.BestCleanStreak, r.bestStreak)

		newHigh = r.score > p.HighScore
		if newHigh {
			p.HighScore = r.score
		}

		m.Stats = p.Stats
		earned = achievement.Evaluate(m, p.Achievements)
		for _, b := range earned {
			p.Achievements[b.ID] = true
		}
	})
	return newHigh, earned
}

// updateProfile applies fn through the store. When the store fails, fn is
// applied to the in-memory copy so the session keeps going.
func (r *Round) updateProfile(fn func(*profile.Profile)) {
	saved, err := r.store.Update(fn)
	if err != nil {
		r.log.Warn("cannot save profile", "err", err)
		saved = r.prof.Clone()
		fn(&saved)
		saved.Sanitize()
	}
	r.prof = saved
}

func (r *Round) play(c Cue) {
	if r.prof.Muted {
		return
	}
	r.audio.PlayCue(c)
}
