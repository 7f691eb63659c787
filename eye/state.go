// Package eye is the animation state engine: motion, blinking, decoration and the
// per-tick frame composition that ties them together.
package eye

import (
	"github.com/lixenwraith/mood-eye/theme"
	"github.com/lixenwraith/mood-eye/vmath"
)

// State is the mutable animation state of one eye
// Only the Composer that renders it (and SetEmotion from the same goroutine) writes it
type State struct {
	Position vmath.Vec2 // current iris center
	Target   vmath.Vec2 // saccade destination
	Rotation [2]float64 // spoke layer phase, node layer phase; unbounded
	Blink    Blink

	Emotion theme.Emotion
	Theme   theme.Theme
}

// NewState creates a centered, open, neutral eye
func NewState(cfg Config) *State {
	center := Center(cfg)
	return &State{
		Position: center,
		Target:   center,
		Emotion:  theme.Neutral,
		Theme:    theme.Lookup(theme.Neutral),
	}
}

// SetEmotion switches the active theme
func (s *State) SetEmotion(e theme.Emotion) {
	s.Emotion = e
	s.Theme = theme.Lookup(e)
}

// Center returns the canvas center
func Center(cfg Config) vmath.Vec2 {
	return vmath.V2(float64(cfg.Width)/2, float64(cfg.Height)/2)
}
