// Package drop models a single falling water drop.
package drop

import (
	"time"

	"github.com/vovakirdan/waterdrop/internal/core"
)

// Kind tells clean drops from polluted ones.
type Kind int

const (
	Clean Kind = iota
	Polluted
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Clean:
		return "clean"
	case Polluted:
		return "polluted"
	default:
		return "unknown"
	}
}

// ID identifies a drop within one round. IDs grow with spawn order.
type ID uint64

// Handle is the renderer's opaque reference to the visual object of a drop.
type Handle int

// Drop is one falling object. X and Y are the top-left corner in play-field
// units; Y grows downward.
type Drop struct {
	ID     ID
	Kind   Kind
	X      float64
	Y      float64
	Speed  float64 // Units per second, fixed at spawn
	Handle Handle

	resolved bool
}

// New creates an unresolved drop.
func New(id ID, kind Kind, x, y, speed float64) *Drop {
	return &Drop{ID: id, Kind: kind, X: x, Y: y, Speed: speed}
}

// Advance moves the drop down by Speed*dt. Resolved drops stay where they are.
func (d *Drop) Advance(dt time.Duration) {
	if d.resolved {
		return
	}
	d.Y += d.Speed * dt.Seconds()
}

// BelowFloor reports whether the drop's top edge has passed the floor at
// height h.
func (d *Drop) BelowFloor(h float64) bool {
	return d.Y > h
}

// Resolve marks the drop as caught or collided. Only the first call returns
// true; every later call is a no-op that returns false.
func (d *Drop) Resolve() bool {
	if d.resolved {
		return false
	}
	d.resolved = true
	return true
}

// Resolved reports whether Resolve has succeeded once.
func (d *Drop) Resolved() bool {
	return d.resolved
}

// Box returns the drop's hit box for a square drop of the given size.
func (d *Drop) Box(size float64) core.Box {
	return core.Box{X: d.X, Y: d.Y, W: size, H: size}
}

// Center returns the midpoint of the drop's hit box.
func (d *Drop) Center(size float64) core.Point {
	return core.Point{X: d.X + size/2, Y: d.Y + size/2}
}
