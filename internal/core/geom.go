// Package core provides the small value types shared by the simulation engine
// and the platform layer. It has no terminal dependencies, keeping game logic
// pure and testable.
package core

import "math"

// Vec is a point or velocity in canvas coordinates.
type Vec struct {
	X, Y float64
}

// V is shorthand for constructing a Vec.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Unit returns v scaled to length 1. The zero vector stays zero.
func (v Vec) Unit() Vec {
	d := v.Len()
	if d == 0 {
		return Vec{}
	}
	return Vec{X: v.X / d, Y: v.Y / d}
}

// Area is an axis-aligned rectangle given by its corners. Min may exceed Max
// on an axis when an area was inset past its own size.
type Area struct {
	Min, Max Vec
}

// Centre returns the midpoint of the area.
func (a Area) Centre() Vec {
	return Vec{X: (a.Min.X + a.Max.X) / 2, Y: (a.Min.Y + a.Max.Y) / 2}
}

// Contains reports whether p lies inside the area, edges included.
func (a Area) Contains(p Vec) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X && p.Y >= a.Min.Y && p.Y <= a.Max.Y
}

// Inverted reports whether the area collapsed on either axis.
func (a Area) Inverted() bool {
	return a.Min.X > a.Max.X || a.Min.Y > a.Max.Y
}

// Grow extends every edge outward by d.
func (a Area) Grow(d float64) Area {
	return Area{
		Min: Vec{X: a.Min.X - d, Y: a.Min.Y - d},
		Max: Vec{X: a.Max.X + d, Y: a.Max.Y + d},
	}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
