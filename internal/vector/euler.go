package vector

// RotationOrder names the Euler composition order a consumer should apply.
type RotationOrder string

const (
	OrderXYZ RotationOrder = "XYZ"
	OrderYXZ RotationOrder = "YXZ"
	OrderZXY RotationOrder = "ZXY"
	OrderZYX RotationOrder = "ZYX"
	OrderYZX RotationOrder = "YZX"
	OrderXZY RotationOrder = "XZY"
)

// Euler is the rotation value emitted for every joint, in radians unless a
// field documents otherwise.
type Euler struct {
	X     float64       `json:"x"`
	Y     float64       `json:"y"`
	Z     float64       `json:"z"`
	Order RotationOrder `json:"rotationOrder"`
}

// NewEuler creates an Euler in XYZ order.
func NewEuler(x, y, z float64) Euler {
	return Euler{X: x, Y: y, Z: z, Order: OrderXYZ}
}

// EulerFrom converts a vector of per-axis angles into an Euler in XYZ order.
func EulerFrom(v Vector) Euler {
	return NewEuler(v.X, v.Y, v.Z)
}

// Multiply scales every axis by s, keeping the rotation order.
func (e Euler) Multiply(s float64) Euler {
	return Euler{X: e.X * s, Y: e.Y * s, Z: e.Z * s, Order: e.order()}
}

// Finite replaces non-finite axes with 0.
func (e Euler) Finite() Euler {
	return Euler{X: Finite(e.X), Y: Finite(e.Y), Z: Finite(e.Z), Order: e.order()}
}

func (e Euler) order() RotationOrder {
	if e.Order == "" {
		return OrderXYZ
	}
	return e.Order
}
