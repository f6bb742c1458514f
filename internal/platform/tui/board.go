package tui

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/waterdrop/internal/achievement"
	"github.com/vovakirdan/waterdrop/internal/config"
	"github.com/vovakirdan/waterdrop/internal/core"
	"github.com/vovakirdan/waterdrop/internal/drop"
	"github.com/vovakirdan/waterdrop/internal/game"
	"github.com/vovakirdan/waterdrop/internal/milestone"
)

// Lifetimes of transient board elements.
const (
	popLife      = 650 * time.Millisecond
	toastLife    = 1600 * time.Millisecond
	flashLife    = 250 * time.Millisecond
	confettiLife = 3200 * time.Millisecond
)

// Board layout constants
const (
	hudRows       = 3  // Score line, goal bar, feedback
	maxToasts     = 4  // Older toasts are dropped first
	goalBarWidth  = 20 // Cells in the milestone progress bar
	confettiCount = 40
)

var confettiColors = []core.Color{
	core.ColorRed, core.ColorYellow, core.ColorGreen, core.ColorSky, core.ColorPurple, core.ColorOrange,
}

type boardDrop struct {
	kind drop.Kind
	x, y float64
}

// floating is a pop text or toast that disappears after ttl.
type floating struct {
	text  string
	color core.Color
	at    core.Point
	ttl   time.Duration
}

// Status is what the HUD shows besides the values pushed by the round.
type Status struct {
	Phase game.Phase
	Level config.Level
	Muted bool
}

// Board implements game.Renderer and game.Notifier on top of a core.Screen.
// It keeps the last value pushed for every element and draws them on demand.
// Drop positions are in field units and scaled to the screen when drawn.
type Board struct {
	field    config.FieldConfig
	dropSize float64

	drops map[drop.Handle]*boardDrop
	next  drop.Handle

	score     int
	timer     int
	highScore int
	goal      milestone.Goal
	flash     time.Duration

	feedback      string
	feedbackColor core.Color

	pops     []floating
	toasts   []floating
	confetti time.Duration
	frame    int

	summary    *game.Summary
	showBadges bool
	badges     []achievement.Badge
	unlocked   map[string]bool
}

var (
	_ game.Renderer = (*Board)(nil)
	_ game.Notifier = (*Board)(nil)
)

// NewBoard creates a board for the configured play field.
func NewBoard(cfg config.Config) *Board {
	return &Board{
		field:    cfg.Field,
		dropSize: cfg.Spawn.DropSize,
		drops:    make(map[drop.Handle]*boardDrop),
		goal:     milestone.GoalFor(0),
	}
}

// PlaceDrop adds a drop sprite and returns its handle.
func (b *Board) PlaceDrop(kind drop.Kind, x float64) drop.Handle {
	b.next++
	b.drops[b.next] = &boardDrop{kind: kind, x: x}
	return b.next
}

// UpdateDropPosition moves a drop sprite to field height y.
func (b *Board) UpdateDropPosition(h drop.Handle, y float64) {
	if d, ok := b.drops[h]; ok {
		d.y = y
	}
}

// RemoveDrop deletes a drop sprite. Unknown handles are ignored.
func (b *Board) RemoveDrop(h drop.Handle) {
	delete(b.drops, h)
}

// UpdateScore sets the score shown in the HUD.
func (b *Board) UpdateScore(score int) {
	b.score = score
}

// UpdateTimer sets the remaining seconds shown in the HUD.
func (b *Board) UpdateTimer(seconds int) {
	b.timer = seconds
}

// UpdateHighScore sets the best score shown in the HUD.
func (b *Board) UpdateHighScore(score int) {
	b.highScore = score
}

// UpdateGoal replaces the goal bar. The bar flashes briefly whenever a new
// flashing goal arrives.
func (b *Board) UpdateGoal(g milestone.Goal) {
	if g.Flash && g != b.goal {
		b.flash = flashLife
	}
	b.goal = g
}

// ShowFeedback replaces the feedback line under the goal bar.
func (b *Board) ShowFeedback(msg string, color core.Color) {
	b.feedback = msg
	b.feedbackColor = color
}

// PopText shows a short text rising from a field point.
func (b *Board) PopText(at core.Point, text string, color core.Color) {
	b.pops = append(b.pops, floating{text: text, color: color, at: at, ttl: popLife})
}

// ShowSummary opens the end of round overlay.
func (b *Board) ShowSummary(s game.Summary) {
	b.summary = &s
	b.showBadges = false
}

// Notify shows a toast in the corner of the field.
func (b *Board) Notify(msg string, color core.Color) {
	b.toasts = append(b.toasts, floating{text: msg, color: color, ttl: toastLife})
	if len(b.toasts) > maxToasts {
		b.toasts = b.toasts[len(b.toasts)-maxToasts:]
	}
}

// Celebrate starts the confetti animation.
func (b *Board) Celebrate(int) {
	b.confetti = confettiLife
}

// Advance ages transient elements by dt of wall time.
func (b *Board) Advance(dt time.Duration) {
	b.frame++
	b.flash = max(0, b.flash-dt)
	b.confetti = max(0, b.confetti-dt)
	b.pops = age(b.pops, dt)
	b.toasts = age(b.toasts, dt)
}

func age(items []floating, dt time.Duration) []floating {
	kept := items[:0]
	for _, it := range items {
		it.ttl -= dt
		if it.ttl > 0 {
			kept = append(kept, it)
		}
	}
	return kept
}

// ShowBadges opens the achievements overlay.
func (b *Board) ShowBadges(catalog []achievement.Badge, unlocked map[string]bool) {
	b.badges = catalog
	b.unlocked = maps.Clone(unlocked)
	b.showBadges = true
}

// Dismiss closes whichever overlay is open. It reports whether one was.
func (b *Board) Dismiss() bool {
	switch {
	case b.showBadges:
		b.showBadges = false
		return true
	case b.summary != nil:
		b.summary = nil
		return true
	}
	return false
}

// BadgesVisible reports whether the achievements overlay is open.
func (b *Board) BadgesVisible() bool {
	return b.showBadges
}

// SummaryVisible reports whether the end-of-round overlay is open.
func (b *Board) SummaryVisible() bool {
	return b.summary != nil
}

// DropCount returns the number of drop sprites on the board.
func (b *Board) DropCount() int {
	return len(b.drops)
}

// Feedback returns the current feedback line.
func (b *Board) Feedback() string {
	return b.feedback
}

// Toasts returns the texts of the visible toasts, oldest first.
func (b *Board) Toasts() []string {
	out := make([]string, len(b.toasts))
	for i, t := range b.toasts {
		out[i] = t.text
	}
	return out
}

// fieldRect is the bordered play area of a screen.
func fieldRect(w, h int) core.Rect {
	return core.NewRect(0, hudRows, w, max(0, h-hudRows))
}

// innerRect is the drawable interior of the play area.
func innerRect(w, h int) core.Rect {
	f := fieldRect(w, h)
	return core.NewRect(f.X+1, f.Y+1, max(0, f.W-2), max(0, f.H-2))
}

// FieldPoint converts a screen cell to field units. A cell showing a drop
// maps to the center of that drop, the topmost one where sprites overlap.
// Any other cell maps to its own center. It reports false for cells outside
// the play area.
func (b *Board) FieldPoint(w, h, x, y int) (core.Point, bool) {
	in := innerRect(w, h)
	if in.W == 0 || in.H == 0 || !in.Contains(x, y) {
		return core.Point{}, false
	}
	cx, cy := x-in.X, y-in.Y
	if p, ok := b.dropAt(in, cx, cy); ok {
		return p, true
	}
	return core.Point{
		X: (float64(cx) + 0.5) / float64(in.W) * b.field.Width,
		Y: (float64(cy) + 0.5) / float64(in.H) * b.field.Height,
	}, true
}

// dropAt returns the center of the newest drop drawn in interior cell (cx, cy).
func (b *Board) dropAt(in core.Rect, cx, cy int) (core.Point, bool) {
	handles := slices.Sorted(maps.Keys(b.drops))
	for i := len(handles) - 1; i >= 0; i-- {
		d := b.drops[handles[i]]
		x0, x1, y0, y1 := b.dropCells(d, in)
		if cx >= x0 && cx < x1 && cy >= y0 && cy < y1 {
			return core.Point{X: d.x + b.dropSize/2, Y: d.y + b.dropSize/2}, true
		}
	}
	return core.Point{}, false
}

// dropCells returns the interior cell ranges [x0, x1) and [y0, y1) covered
// by a drop sprite.
func (b *Board) dropCells(d *boardDrop, in core.Rect) (x0, x1, y0, y1 int) {
	sx := float64(in.W) / b.field.Width
	sy := float64(in.H) / b.field.Height
	x0, x1 = span(d.x, d.x+b.dropSize, sx)
	y0, y1 = span(d.y, d.y+b.dropSize, sy)
	return x0, x1, y0, y1
}

// span returns the cells [from, to) whose centers fall inside [lo, hi) once
// scaled. A span narrower than a cell still covers the cell holding its
// midpoint.
func span(lo, hi, scale float64) (int, int) {
	from := int(math.Ceil(lo*scale - 0.5))
	to := int(math.Ceil(hi*scale - 0.5))
	if to <= from {
		c := int(math.Floor((lo + hi) / 2 * scale))
		return c, c + 1
	}
	return from, to
}

// Draw renders the whole board into s.
func (b *Board) Draw(s *core.Screen, st Status) {
	s.Clear()
	w, h := s.Width(), s.Height()
	if w < 10 || h < hudRows+3 {
		s.DrawText(0, 0, "Terminal too small")
		return
	}

	b.drawHUD(s, st)
	s.DrawBox(fieldRect(w, h), core.ColorSlate)
	in := innerRect(w, h)

	b.drawDrops(s, in)
	b.drawConfetti(s, in)
	b.drawPops(s, in)

	switch {
	case b.showBadges:
		b.drawBadges(s, in)
	case b.summary != nil:
		b.drawSummary(s, in)
	case st.Phase == game.PhaseIdle:
		b.drawCentered(s, in, []string{
			"Catch clean drops, avoid polluted ones.",
			"",
			"Press S to start",
		}, core.ColorSky)
	case st.Phase == game.PhasePaused:
		b.drawCentered(s, in, []string{"PAUSED", "", "Press P to resume"}, core.ColorYellow)
	case st.Phase == game.PhaseEnded:
		b.drawCentered(s, in, []string{"Press R to play again"}, core.ColorSky)
	}

	b.drawToasts(s, in)
}

func (b *Board) drawHUD(s *core.Screen, st Status) {
	w := s.Width()

	timerColor := core.ColorWhite
	if b.timer <= 5 && st.Phase == game.PhaseRunning {
		timerColor = core.ColorRed
	}
	x := 0
	for _, part := range []struct {
		text  string
		color core.Color
	}{
		{fmt.Sprintf("Score: %d", b.score), core.ColorWhite},
		{fmt.Sprintf("Time: %ds", b.timer), timerColor},
		{fmt.Sprintf("Best: %d", b.highScore), core.ColorYellow},
	} {
		s.DrawTextColor(x, 0, part.text, part.color)
		x += core.TextWidth(part.text) + 3
	}

	right := st.Level.Title()
	if st.Muted {
		right += "  muted"
	}
	s.DrawTextColor(w-core.TextWidth(right)-1, 0, right, core.ColorSky)

	filled := core.Clamp(int(math.Round(b.goal.Fraction*goalBarWidth)), 0, goalBarWidth)
	barColor, restColor := core.ColorSky, core.ColorGray
	if b.flash > 0 {
		barColor, restColor = core.ColorYellow, core.ColorYellow
	}
	s.DrawTextColor(0, 1, strings.Repeat("█", filled), barColor)
	s.DrawTextColor(filled, 1, strings.Repeat("░", goalBarWidth-filled), restColor)
	s.DrawTextColor(goalBarWidth+1, 1, b.goal.Label(), core.ColorGray)

	s.DrawTextColor(0, 2, b.feedback, b.feedbackColor)
}

func (b *Board) drawDrops(s *core.Screen, in core.Rect) {
	// Later handles are newer drops and are drawn on top.
	for _, h := range slices.Sorted(maps.Keys(b.drops)) {
		d := b.drops[h]
		glyph, color := '●', core.ColorSky
		if d.kind == drop.Polluted {
			glyph, color = '✖', core.ColorGray
		}
		x0, x1, y0, y1 := b.dropCells(d, in)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				if in.Contains(in.X+x, in.Y+y) {
					s.SetColor(in.X+x, in.Y+y, glyph, color)
				}
			}
		}
	}
}

func (b *Board) drawPops(s *core.Screen, in core.Rect) {
	for _, p := range b.pops {
		// Pops drift upwards as they age.
		rise := int((popLife - p.ttl) / (popLife / 3))
		x := in.X + int(p.at.X/b.field.Width*float64(in.W))
		y := in.Y + int(p.at.Y/b.field.Height*float64(in.H)) - rise
		if y >= in.Y && y < in.Bottom() {
			s.DrawTextColor(core.Clamp(x, in.X, in.Right()-core.TextWidth(p.text)), y, p.text, p.color)
		}
	}
}

func (b *Board) drawConfetti(s *core.Screen, in core.Rect) {
	if b.confetti <= 0 || in.W == 0 || in.H == 0 {
		return
	}
	fall := int((confettiLife - b.confetti) / (confettiLife / time.Duration(in.H)))
	for i := range confettiCount {
		x := in.X + (i*37+b.frame/4)%in.W
		y := in.Y + (i*11+fall)%in.H
		s.SetColor(x, y, '*', confettiColors[i%len(confettiColors)])
	}
}

func (b *Board) drawToasts(s *core.Screen, in core.Rect) {
	y := in.Bottom() - 1
	for i := len(b.toasts) - 1; i >= 0 && y >= in.Y; i-- {
		t := b.toasts[i]
		s.DrawTextColor(in.Right()-core.TextWidth(t.text)-1, y, t.text, t.color)
		y--
	}
}

// panelLine is one line of an overlay panel.
type panelLine struct {
	text  string
	color core.Color
}

// drawCentered draws lines in a box in the middle of the play area.
func (b *Board) drawCentered(s *core.Screen, in core.Rect, lines []string, c core.Color) {
	panel := make([]panelLine, len(lines))
	for i, l := range lines {
		panel[i] = panelLine{text: l, color: c}
	}
	b.drawPanel(s, in, panel, c)
}

func (b *Board) drawPanel(s *core.Screen, in core.Rect, lines []panelLine, border core.Color) {
	width := 0
	for _, l := range lines {
		width = max(width, core.TextWidth(l.text))
	}
	bw := min(in.W, width+4)
	bh := min(in.H, len(lines)+2)
	box := core.NewRect(in.X+(in.W-bw)/2, in.Y+(in.H-bh)/2, bw, bh)

	for y := box.Y; y < box.Bottom(); y++ {
		s.DrawHLine(box.X, y, box.W, ' ', core.ColorDefault)
	}
	s.DrawBox(box, border)
	for i, l := range lines {
		if box.Y+1+i >= box.Bottom()-1 {
			break
		}
		s.DrawTextColor(box.X+2, box.Y+1+i, runewidth.Truncate(l.text, box.W-4, "…"), l.color)
	}
}

func (b *Board) drawSummary(s *core.Screen, in core.Rect) {
	sum := b.summary
	title := "Round over"
	if sum.Won {
		title = "You hit the milestone!"
	}
	lines := []string{
		title,
		"",
		fmt.Sprintf("Score        %d", sum.Score),
		fmt.Sprintf("Clean        %d", sum.CleanCaught),
		fmt.Sprintf("Polluted     %d", sum.PollutedCaught),
		fmt.Sprintf("Missed       %d", sum.MissedDrops),
		fmt.Sprintf("Best streak  %d", sum.BestStreak),
	}
	if sum.HasFirstClean {
		lines = append(lines, fmt.Sprintf("First clean  %.1fs", sum.TimeToFirstClean))
	}
	if sum.NewHighScore {
		lines = append(lines, "", "New high score!")
	}
	for _, id := range sum.Unlocked {
		if badge, ok := achievement.Lookup(id); ok {
			lines = append(lines, badge.Icon+" "+badge.Title)
		}
	}
	lines = append(lines, "", "R: play again  1/2/3: level  Esc: close")

	color := core.ColorWhite
	if sum.Won {
		color = core.ColorGreen
	}
	b.drawCentered(s, in, lines, color)
}

func (b *Board) drawBadges(s *core.Screen, in core.Rect) {
	lines := []panelLine{
		{text: "Achievements", color: core.ColorWhite},
		{},
	}
	for _, badge := range b.badges {
		mark, color := "[ ]", core.ColorGray
		if b.unlocked[badge.ID] {
			mark, color = "[x]", badge.Color
		}
		lines = append(lines, panelLine{
			text:  fmt.Sprintf("%s %s %s: %s", mark, badge.Icon, badge.Title, badge.Description),
			color: color,
		})
	}
	lines = append(lines, panelLine{}, panelLine{text: "Esc: close", color: core.ColorGray})
	b.drawPanel(s, in, lines, core.ColorPurple)
}
