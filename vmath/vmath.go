// Package vmath provides the small amount of 2D float geometry the eye needs and a
// seedable random source that animation code takes by interface.
package vmath

import "math"

// TwoPi is a full turn in radians
const TwoPi = 2 * math.Pi

// Vec2 is a point or offset on the canvas, in pixels
type Vec2 struct {
	X, Y float64
}

// V2 builds a Vec2
func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64  { return v.Sub(o).Len() }
func (v Vec2) Round() (x, y int)    { return int(math.Round(v.X)), int(math.Round(v.Y)) }

// Approach moves v toward target by fraction k of the remaining offset
// Exponential decay: no velocity term, so it cannot overshoot for k in (0,1)
func (v Vec2) Approach(target Vec2, k float64) Vec2 {
	return v.Add(target.Sub(v).Scale(k))
}

// Polar returns center + radius*(cos angle, sin angle)
func Polar(center Vec2, radius, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{center.X + radius*cos, center.Y + radius*sin}
}
