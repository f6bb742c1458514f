package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLevel is returned by ParseLevel for names outside the table.
var ErrUnknownLevel = errors.New("config: unknown difficulty level")

// Level represents a named difficulty level.
type Level string

const (
	LevelEasy   Level = "easy"
	LevelNormal Level = "normal"
	LevelHard   Level = "hard"
)

// DefaultLevel is the middle tier, used when nothing was selected.
const DefaultLevel = LevelNormal

// Levels returns the selectable levels from easiest to hardest.
func Levels() []Level {
	return []Level{LevelEasy, LevelNormal, LevelHard}
}

// Title returns the capitalized level name for display ("Normal").
func (l Level) Title() string {
	if l == "" {
		return ""
	}
	return strings.ToUpper(string(l[:1])) + string(l[1:])
}

// ParseLevel converts a user-supplied name to a Level.
// An empty name selects DefaultLevel.
func ParseLevel(name string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(name))) {
	case "":
		return DefaultLevel, nil
	case LevelEasy:
		return LevelEasy, nil
	case LevelNormal:
		return LevelNormal, nil
	case LevelHard:
		return LevelHard, nil
	default:
		return "", fmt.Errorf("%w: %q (want easy, normal or hard)", ErrUnknownLevel, name)
	}
}

// DifficultyTable maps each level to its round parameters.
type DifficultyTable struct {
	Default Level       `yaml:"default"`
	Easy    RoundConfig `yaml:"easy"`
	Normal  RoundConfig `yaml:"normal"`
	Hard    RoundConfig `yaml:"hard"`
}

func (t DifficultyTable) levels() map[Level]RoundConfig {
	return map[Level]RoundConfig{
		LevelEasy:   t.Easy,
		LevelNormal: t.Normal,
		LevelHard:   t.Hard,
	}
}

// Round returns the parameters for the given level.
// Unknown levels fall back to the normal tier.
func (t DifficultyTable) Round(level Level) RoundConfig {
	if rc, ok := t.levels()[level]; ok {
		return rc
	}
	return t.Normal
}

// DefaultOrNormal returns the configured default level, or DefaultLevel when unset.
func (t DifficultyTable) DefaultOrNormal() Level {
	if _, ok := t.levels()[t.Default]; ok {
		return t.Default
	}
	return DefaultLevel
}
