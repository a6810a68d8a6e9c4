// Package vector provides the 3D vector and rotation primitives shared by the
// face, hand and pose solvers.
package vector

import (
	"encoding/json"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// MinLength is the shortest segment treated as having a direction.
// Shorter vectors normalise to the zero vector.
const MinLength = 1e-9

// Vector is a 3D point or direction. Operations return new values and never
// modify the receiver.
type Vector struct {
	r3.Vec
}

// New creates a Vector from its components.
func New(x, y, z float64) Vector {
	return Vector{Vec: r3.Vec{X: x, Y: y, Z: z}}
}

// Add returns v + u.
func (v Vector) Add(u Vector) Vector {
	return Vector{Vec: r3.Add(v.Vec, u.Vec)}
}

// Sub returns v - u.
func (v Vector) Sub(u Vector) Vector {
	return Vector{Vec: r3.Sub(v.Vec, u.Vec)}
}

// Scale returns v * s.
func (v Vector) Scale(s float64) Vector {
	return Vector{Vec: r3.Scale(s, v.Vec)}
}

// Negative returns -v.
func (v Vector) Negative() Vector {
	return v.Scale(-1)
}

// Dot returns the dot product of v and u.
func (v Vector) Dot(u Vector) float64 {
	return r3.Dot(v.Vec, u.Vec)
}

// Cross returns the cross product v × u.
func (v Vector) Cross(u Vector) Vector {
	return Vector{Vec: r3.Cross(v.Vec, u.Vec)}
}

// Length returns the Euclidean norm of v.
func (v Vector) Length() float64 {
	return r3.Norm(v.Vec)
}

// Unit returns v scaled to length 1, or the zero vector when v is shorter
// than MinLength.
func (v Vector) Unit() Vector {
	l := v.Length()
	if l < MinLength || math.IsNaN(l) || math.IsInf(l, 0) {
		return Vector{}
	}
	return v.Scale(1 / l)
}

// IsDegenerate reports whether v is too short to carry a direction.
func (v Vector) IsDegenerate() bool {
	l := v.Length()
	return l < MinLength || math.IsNaN(l)
}

// Distance returns the distance between v and u using the first dims
// coordinates. dims == 2 ignores z; any other value uses all three.
func (v Vector) Distance(u Vector, dims int) float64 {
	return Distance(v, u, dims)
}

// Lerp interpolates from v towards u. Values of t outside [0,1] extrapolate.
func (v Vector) Lerp(u Vector, t float64) Vector {
	return u.Sub(v).Scale(t).Add(v)
}

// Component returns the coordinate selected by axis.
func (v Vector) Component(axis Axis) float64 {
	switch axis {
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	default:
		return v.X
	}
}

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// MarshalJSON encodes v as {"x":..,"y":..,"z":..}.
func (v Vector) MarshalJSON() ([]byte, error) {
	return json.Marshal(point{X: v.X, Y: v.Y, Z: v.Z})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (v *Vector) UnmarshalJSON(data []byte) error {
	var p point
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*v = New(p.X, p.Y, p.Z)
	return nil
}

// Distance returns the distance between a and b using either 2 or 3
// coordinates.
func Distance(a, b Vector, dims int) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	if dims == 2 {
		return math.Sqrt(dx*dx + dy*dy)
	}
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Lerp interpolates scalars: a + (b-a)*t.
func Lerp(a, b, t float64) float64 {
	return (b-a)*t + a
}
