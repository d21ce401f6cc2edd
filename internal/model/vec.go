package model

import "math"

// Vec3 is a position or direction in world space. Y is the vertical axis.
// Value type, passed by value.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Zero is the zero vector.
var Zero = Vec3{}

// NewVec3 creates a vector with the given components.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// LengthSquared returns the squared length (no sqrt, for hot paths).
func (v Vec3) LengthSquared() float64 {
	return v.Dot(v)
}

// Length returns the Euclidean length.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Normalized returns the unit vector in the direction of v.
// The zero vector normalizes to itself.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l < 1e-9 {
		return Zero
	}
	return v.Scale(1 / l)
}

// Horizontal returns v with the vertical component dropped.
func (v Vec3) Horizontal() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

// DistanceSquared returns the squared distance to o.
func (v Vec3) DistanceSquared(o Vec3) float64 {
	return v.Sub(o).LengthSquared()
}

// Distance returns the Euclidean distance to o.
func (v Vec3) Distance(o Vec3) float64 {
	return math.Sqrt(v.DistanceSquared(o))
}

// IsZero reports whether all components are (almost) zero.
func (v Vec3) IsZero() bool {
	return v.LengthSquared() < 1e-18
}

// WithY returns v with the vertical component replaced.
func (v Vec3) WithY(y float64) Vec3 {
	v.Y = y
	return v
}

// Lerp interpolates linearly from v to o; t is clamped to [0, 1].
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	t = clamp01(t)
	return v.Add(o.Sub(v).Scale(t))
}

// Slerp rotates unit vector v toward unit vector o by fraction t of the angle
// between them. Both inputs are expected to be normalized.
func (v Vec3) Slerp(o Vec3, t float64) Vec3 {
	t = clamp01(t)
	dot := v.Dot(o)
	if dot > 0.9995 {
		return v.Lerp(o, t).Normalized()
	}
	if dot < -1 {
		dot = -1
	}
	theta := math.Acos(dot) * t
	rel := o.Sub(v.Scale(dot)).Normalized()
	if rel.IsZero() {
		// Opposite vectors: any perpendicular in the horizontal plane works.
		rel = Vec3{X: -v.Z, Z: v.X}.Normalized()
	}
	return v.Scale(math.Cos(theta)).Add(rel.Scale(math.Sin(theta))).Normalized()
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
