package geometry

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used for float comparisons and zero-length checks.
const (
	Epsilon = 1e-9
)

// Vector3D is a point or direction in world space.
// The simulation is planar: agents move on the x/z plane and y only carries
// the fixed render height, so most callers build vectors with Y left at zero.
type Vector3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Zero is the zero vector.
var Zero = Vector3D{}

// NewPlanar creates a vector on the x/z plane (y = 0).
func NewPlanar(x, z float64) Vector3D {
	return Vector3D{X: x, Z: z}
}

// String implements fmt.Stringer.
func (v Vector3D) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

// ---------------------------------------------------------------------
// Arithmetic Operations
// Value receivers, every operation returns a new Vector3D.
// ---------------------------------------------------------------------

// Add adds two vectors and returns the result.
func (v Vector3D) Add(other Vector3D) Vector3D {
	return Vector3D{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub subtracts the other vector from the current vector.
func (v Vector3D) Sub(other Vector3D) Vector3D {
	return Vector3D{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Mul scales the vector by a scalar value.
func (v Vector3D) Mul(scalar float64) Vector3D {
	return Vector3D{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// ---------------------------------------------------------------------
// Magnitude and Normalization
// ---------------------------------------------------------------------

// LenSqr calculates the squared magnitude of the vector.
// Cheaper than Len, use it for comparisons.
func (v Vector3D) LenSqr() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Len calculates the magnitude (length) of the vector.
func (v Vector3D) Len() float64 {
	return math.Sqrt(v.LenSqr())
}

// IsZero reports whether the vector length is effectively zero.
func (v Vector3D) IsZero() bool {
	return v.LenSqr() < Epsilon*Epsilon
}

// Normalize returns a unit vector in the same direction.
// Returns a zero vector if the length is effectively zero.
func (v Vector3D) Normalize() Vector3D {
	l := v.Len()
	if l < Epsilon {
		return Vector3D{}
	}
	return v.Mul(1 / l)
}

// SetLength returns a vector with the same direction and the given length.
// A zero vector stays zero whatever the requested length.
func (v Vector3D) SetLength(length float64) Vector3D {
	return v.Normalize().Mul(length)
}

// ClampLength caps the vector length at max, keeping its direction.
func (v Vector3D) ClampLength(max float64) Vector3D {
	if max <= 0 {
		return Vector3D{}
	}
	if v.LenSqr() > max*max {
		return v.SetLength(max)
	}
	return v
}

// ---------------------------------------------------------------------
// Geometric Utilities
// ---------------------------------------------------------------------

// DistanceTo calculates the Euclidean distance to another vector.
func (v Vector3D) DistanceTo(other Vector3D) float64 {
	return v.Sub(other).Len()
}

// Planar drops the y component.
func (v Vector3D) Planar() Vector3D {
	return Vector3D{X: v.X, Z: v.Z}
}

// Heading returns the planar angle (radians) of the vector from the +x axis
// towards +z. Range: [-Pi, Pi]
func (v Vector3D) Heading() float64 {
	return math.Atan2(v.Z, v.X)
}

// ---------------------------------------------------------------------
// Comparison
// ---------------------------------------------------------------------

// Eq checks if two vectors are approximately equal using Epsilon.
func (v Vector3D) Eq(other Vector3D) bool {
	return math.Abs(v.X-other.X) <= Epsilon &&
		math.Abs(v.Y-other.Y) <= Epsilon &&
		math.Abs(v.Z-other.Z) <= Epsilon
}
