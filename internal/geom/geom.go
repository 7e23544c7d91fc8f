// Package geom provides the 2D value types shared by input, gestures and
// layout: points, sizes and axis-aligned rectangles in window units.
package geom

import "math"

// Point is a position or a 2D vector.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns p-o.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Scale multiplies both components by f.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Abs returns the component-wise absolute value.
func (p Point) Abs() Point {
	return Point{X: math.Abs(p.X), Y: math.Abs(p.Y)}
}

// IsZero reports whether both components are zero.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Size is a width/height pair.
type Size struct {
	Width  float64
	Height float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Origin Point
	Size   Size
}

// R builds a Rect from origin and size components.
func R(x, y, width, height float64) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{Width: width, Height: height}}
}

// MinX returns the left edge.
func (r Rect) MinX() float64 { return r.Origin.X }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.Origin.X + r.Size.Width }

// MinY returns the top edge.
func (r Rect) MinY() float64 { return r.Origin.Y }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Origin.Y + r.Size.Height }

// MidX returns the horizontal center.
func (r Rect) MidX() float64 { return r.Origin.X + r.Size.Width/2 }

// MidY returns the vertical center.
func (r Rect) MidY() float64 { return r.Origin.Y + r.Size.Height/2 }

// Contains reports whether p lies inside r. Edges are inclusive, so a
// pointer resting exactly on the border still counts as inside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X <= r.MaxX() && p.Y >= r.MinY() && p.Y <= r.MaxY()
}

// Intersects reports whether r and o overlap with a non-empty area.
func (r Rect) Intersects(o Rect) bool {
	return r.MinX() < o.MaxX() && o.MinX() < r.MaxX() &&
		r.MinY() < o.MaxY() && o.MinY() < r.MaxY()
}

// Inscribed reports whether r lies entirely within o.
func (r Rect) Inscribed(o Rect) bool {
	return r.MinX() >= o.MinX() && r.MaxX() <= o.MaxX() &&
		r.MinY() >= o.MinY() && r.MaxY() <= o.MaxY()
}

// Offset returns r translated by d.
func (r Rect) Offset(d Point) Rect {
	return Rect{Origin: r.Origin.Add(d), Size: r.Size}
}
