// pkg/physics/vector.go
package physics

import "math"

// Vector3 is a position or Euler rotation in scene space.
// X and Z span the orbital plane, Y points up.
type Vector3 struct {
	X float64
	Y float64
	Z float64
}

// Add returns the sum of two vectors
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub returns the difference between two vectors
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vector3) Scale(factor float64) Vector3 {
	return Vector3{
		X: v.X * factor,
		Y: v.Y * factor,
		Z: v.Z * factor,
	}
}

// Length returns the magnitude of the vector
func (v Vector3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// LengthSquared returns magnitude squared (optimization for comparisons)
func (v Vector3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// PlanarLength returns the magnitude of the vector projected onto the XZ plane.
func (v Vector3) PlanarLength() float64 {
	return math.Hypot(v.X, v.Z)
}

// Distance returns the distance between two vectors
func (v Vector3) Distance(other Vector3) float64 {
	return v.Sub(other).Length()
}

// OnOrbit returns the point at the given phase on a circle of the given
// radius in the XZ plane. Phase zero lies on +Z.
func OnOrbit(phase, radius float64) Vector3 {
	return Vector3{
		X: math.Sin(phase) * radius,
		Z: math.Cos(phase) * radius,
	}
}

// ApproxEqual reports whether every component of v is within tolerance of other.
func (v Vector3) ApproxEqual(other Vector3, tolerance float64) bool {
	return math.Abs(v.X-other.X) <= tolerance &&
		math.Abs(v.Y-other.Y) <= tolerance &&
		math.Abs(v.Z-other.Z) <= tolerance
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vector3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Radians converts degrees to radians.
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
