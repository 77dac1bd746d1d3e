package ctf

import "math"

type Vec2 struct{ X, Y float64 }

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Len() float64    { return math.Hypot(a.X, a.Y) }

// Dist is the Euclidean distance between a and b.
func (a Vec2) Dist(b Vec2) float64 { return a.Sub(b).Len() }

// Clamp bounds each coordinate independently into [lo, hi].
func (a Vec2) Clamp(lo, hi Vec2) Vec2 {
	return Vec2{clamp(a.X, lo.X, hi.X), clamp(a.Y, lo.Y, hi.Y)}
}

func (a Vec2) IsFinite() bool {
	return !math.IsNaN(a.X) && !math.IsNaN(a.Y) && !math.IsInf(a.X, 0) && !math.IsInf(a.Y, 0)
}

// Heading is the unit step for an angle in radians.
func Heading(rad float64) Vec2 { return Vec2{math.Cos(rad), math.Sin(rad)} }

// Angle of a, in [0, 2π).
func (a Vec2) Angle() float64 {
	r := math.Atan2(a.Y, a.X)
	if r < 0 {
		r += 2 * math.Pi
	}
	return r
}

func clamp(v, lo, hi float64) float64 {
	// math.Max/Min propagate NaN, so a bad coordinate survives to the invariant check.
	return math.Min(math.Max(v, lo), hi)
}
