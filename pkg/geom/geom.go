// Package geom holds the small geometry types shared by layout, scene and
// viewport code.
package geom

import "math"

// Point is a coordinate in scene or surface space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair.
type Size struct {
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Center returns the middle of r.
func (r Rect) Center() Point { return Point{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// Transform maps scene coordinates to surface coordinates:
//
//	surface = scene*Scale + (X, Y)
type Transform struct {
	Scale float64 `json:"scale"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Identity is the 1:1 transform with no translation.
var Identity = Transform{Scale: 1}

// Apply maps a scene point to surface space.
func (t Transform) Apply(p Point) Point {
	return Point{X: p.X*t.Scale + t.X, Y: p.Y*t.Scale + t.Y}
}

// Invert maps a surface point back to scene space.
// A non-positive scale is treated as 1.
func (t Transform) Invert(p Point) Point {
	s := t.Scale
	if s <= 0 {
		s = 1
	}
	return Point{X: (p.X - t.X) / s, Y: (p.Y - t.Y) / s}
}

// Valid reports whether the transform has a positive, finite scale and
// finite translation.
func (t Transform) Valid() bool {
	finite := func(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
	return t.Scale > 0 && finite(t.Scale) && finite(t.X) && finite(t.Y)
}
