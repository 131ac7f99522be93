// Package core provides fundamental types and utilities for the maze game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import (
	"fmt"
	"math"
)

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// String returns the point as "(x, y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Vec2 is a continuous render-space coordinate.
type Vec2 struct {
	X, Y float64
}

// Lerp interpolates linearly between a and b. t=0 yields a, t=1 yields b.
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{
		X: (1-t)*a.X + t*b.X,
		Y: (1-t)*a.Y + t*b.Y,
	}
}

// NDC maps grid cell p of a width x height grid into [-1, 1) render space:
// (-1 + 2x/width, -1 + 2y/height). Renderers depend on this exact mapping.
func NDC(p Point, width, height int) Vec2 {
	return Vec2{
		X: -1 + float64(p.X)*2/float64(width),
		Y: -1 + float64(p.Y)*2/float64(height),
	}
}

// FromNDC is the inverse of NDC, rounded to the nearest cell.
func FromNDC(v Vec2, width, height int) Point {
	return Point{
		X: int(math.Round((v.X + 1) * float64(width) / 2)),
		Y: int(math.Round((v.Y + 1) * float64(height) / 2)),
	}
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
