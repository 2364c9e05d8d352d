// Package core provides engine-agnostic types shared by the generator, the
// simulation and the terminal frontend. It has no external dependencies so
// gameplay code stays pure and testable.
package core

import "math"

// Vec2 is a point or direction on the ground plane. Y in the 3D world is
// height, so the plane axes are X and Z.
type Vec2 struct {
	X, Z float64
}

// V2 is shorthand for Vec2{X: x, Z: z}.
func V2(x, z float64) Vec2 {
	return Vec2{X: x, Z: z}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Z: v.Z - o.Z}
}

// Scale returns v * k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Z: v.Z * k}
}

// LenSq returns the squared length.
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Z*v.Z
}

// Len returns the Euclidean length.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// DistSq returns the squared distance between two points.
func (v Vec2) DistSq(o Vec2) float64 {
	return v.Sub(o).LenSq()
}

// Normalize returns a unit vector in the same direction, or the zero vector
// when v has no length.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Z: v.Z / l}
}

// Angle returns atan2(z, x).
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Z, v.X)
}

// FromAngle returns the unit vector for an angle in radians.
func FromAngle(a float64) Vec2 {
	return Vec2{X: math.Cos(a), Z: math.Sin(a)}
}

// Vec3 is a world position as [x, y, z]. It marshals as a JSON array.
type Vec3 [3]float64

// Ground drops the height component.
func (v Vec3) Ground() Vec2 {
	return Vec2{X: v[0], Z: v[2]}
}

// AABB is an axis-aligned box on the ground plane.
type AABB struct {
	Min, Max Vec2
}

// BoxAround builds a box centered at c with the given full width and depth.
func BoxAround(c Vec2, width, depth float64) AABB {
	hw, hd := width/2, depth/2
	return AABB{
		Min: Vec2{X: c.X - hw, Z: c.Z - hd},
		Max: Vec2{X: c.X + hw, Z: c.Z + hd},
	}
}

// Inflate grows the box by r on every side.
func (b AABB) Inflate(r float64) AABB {
	return AABB{
		Min: Vec2{X: b.Min.X - r, Z: b.Min.Z - r},
		Max: Vec2{X: b.Max.X + r, Z: b.Max.Z + r},
	}
}

// ContainsOpen reports whether p lies strictly inside the box. Points on the
// boundary are outside.
func (b AABB) ContainsOpen(p Vec2) bool {
	return p.X > b.Min.X && p.X < b.Max.X && p.Z > b.Min.Z && p.Z < b.Max.Z
}

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
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
