package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/waterdrop/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"start", runeKey('s'), core.ActionStart, false},
		{"space starts", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionStart, false},
		{"pause", runeKey('p'), core.ActionPause, false},
		{"restart", runeKey('r'), core.ActionRestart, false},
		{"badges", runeKey('a'), core.ActionBadges, false},
		{"mute", runeKey('m'), core.ActionMute, false},
		{"help", runeKey('?'), core.ActionHelp, false},
		{"easy", runeKey('1'), core.ActionLevelEasy, false},
		{"normal", runeKey('2'), core.ActionLevelNormal, false},
		{"hard", runeKey('3'), core.ActionLevelHard, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionDismiss, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionDismiss, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = (%v, %v), want (%v, %v)", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey('p'), &frame) {
		t.Error("p should not quit")
	}
	km.MapKeyToFrame(runeKey('z'), &frame)
	if !frame.Has(core.ActionPause) || frame.Has(core.ActionNone) {
		t.Errorf("frame actions = %v", frame.Actions)
	}
	if !km.MapKeyToFrame(runeKey('q'), &frame) {
		t.Error("q should quit")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestHelpListsEveryBinding(t *testing.T) {
	keys := DefaultKeyMap()
	seen := 0
	for _, col := range keys.FullHelp() {
		for _, b := range col {
			if b.Help().Key == "" {
				t.Errorf("binding %v has no help", b.Keys())
			}
			seen++
		}
	}
	if seen != 11 {
		t.Errorf("full help lists %d bindings, want 11", seen)
	}
}
