package collision

import "math"

// Point is a position in layout coordinates
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in layout coordinates
type Rect struct {
	X, Y, W, H float64
}

// Center returns the rectangle's centre point
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Corners returns top-left, top-right, bottom-left, bottom-right
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X, Y: r.Y + r.H},
		{X: r.X + r.W, Y: r.Y + r.H},
	}
}

// Contains reports whether p lies inside r (right and bottom edges excluded)
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// MidY returns the vertical midpoint
func (r Rect) MidY() float64 {
	return r.Y + r.H/2
}

// Translate returns r moved by dx, dy
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
