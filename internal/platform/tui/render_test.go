package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/waterdrop/internal/core"
)

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawText(0, 0, "hello")
	s.DrawText(0, 1, "world")

	if got := RenderScreen(s); got != "hello\nworld" {
		t.Errorf("RenderScreen() = %q", got)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 1)
	s.DrawTextColor(0, 0, "ab", core.ColorRed)
	s.DrawTextColor(2, 0, "cd", core.ColorSky)
	s.DrawTextColor(4, 0, "💧", core.ColorSky)

	out := RenderScreen(s)
	for _, want := range []string{"ab", "cd", "💧"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() = %q, missing %q", out, want)
		}
	}
	if strings.ContainsRune(out, 0) {
		t.Error("wide rune placeholder should not be printed")
	}
}

func TestEveryColorHasStyle(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorGray; c++ {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("no style for color %v", c)
		}
	}
}
