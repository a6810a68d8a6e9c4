package vector

import "math"

// Axis selects one coordinate of a Vector.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// AxisMap chooses which spatial axis plays the role of each spherical axis.
type AxisMap struct {
	X, Y, Z Axis
}

var (
	// DefaultAxisMap uses the world axes as they are.
	DefaultAxisMap = AxisMap{X: AxisX, Y: AxisY, Z: AxisZ}
	// LegAxisMap rotates the frame so the leg swing axis lines up with theta.
	LegAxisMap = AxisMap{X: AxisY, Y: AxisZ, Z: AxisX}
)

// Spherical holds spherical angles normalised to [-1, 1].
type Spherical struct {
	Theta float64 `json:"theta"`
	Phi   float64 `json:"phi"`
}

// NormalizeAngle wraps radians into (-π, π] and returns the result divided
// by π.
func NormalizeAngle(rad float64) float64 {
	const twoPi = 2 * math.Pi
	angle := math.Mod(rad, twoPi)
	if angle > math.Pi {
		angle -= twoPi
	} else if angle < -math.Pi {
		angle += twoPi
	}
	return Finite(angle / math.Pi)
}

// NormalizeRadians folds radians around ±π/2 and returns the result divided
// by π. A straight hinge (π) folds to 0.
func NormalizeRadians(rad float64) float64 {
	if rad >= math.Pi/2 {
		rad -= 2 * math.Pi
	}
	if rad <= -math.Pi/2 {
		rad += 2 * math.Pi
		rad = math.Pi - rad
	}
	return Finite(rad / math.Pi)
}

// Find2DAngle returns the angle of the segment (cx,cy)→(ex,ey).
func Find2DAngle(cx, cy, ex, ey float64) float64 {
	return math.Atan2(ey-cy, ex-cx)
}

// FindRotation estimates a normalised orientation from the direction a→b
// alone, projecting the segment onto the three coordinate planes.
func FindRotation(a, b Vector) Vector {
	return New(
		NormalizeRadians(Find2DAngle(a.Z, a.X, b.Z, b.X)),
		NormalizeRadians(Find2DAngle(a.Z, a.Y, b.Z, b.Y)),
		NormalizeRadians(Find2DAngle(a.X, a.Y, b.X, b.Y)),
	)
}

// LineRollPitchYaw estimates roll, pitch and yaw from the line a→b. Each
// axis is normalised to [-1, 1].
func LineRollPitchYaw(a, b Vector) Vector {
	return New(
		NormalizeAngle(Find2DAngle(a.Z, a.Y, b.Z, b.Y)),
		NormalizeAngle(Find2DAngle(a.Z, a.X, b.Z, b.X)),
		NormalizeAngle(Find2DAngle(a.X, a.Y, b.X, b.Y)),
	)
}

// RollPitchYaw treats a, b and c as a rigid plane and returns its
// orientation with each axis normalised to [-1, 1]. The in-plane X axis is
// a→b and the plane normal is (b-a)×(c-a). Collinear or coincident points
// give a zero rotation.
func RollPitchYaw(a, b, c Vector) Vector {
	qb := b.Sub(a)
	qc := c.Sub(a)
	n := qb.Cross(qc)

	unitZ := n.Unit()
	unitX := qb.Unit()
	if unitZ.IsDegenerate() || unitX.IsDegenerate() {
		return Vector{}
	}
	unitY := unitZ.Cross(unitX)

	beta := Finite(math.Asin(Clamp(unitZ.X, -1, 1)))
	alpha := Finite(math.Atan2(-unitZ.Y, unitZ.Z))
	gamma := Finite(math.Atan2(-unitY.X, unitX.X))

	return New(NormalizeAngle(alpha), NormalizeAngle(beta), NormalizeAngle(gamma))
}

// AngleBetween3DCoords returns the hinge angle at b between the rays b→a
// and b→c, folded with NormalizeRadians. A coincident point gives 0.
func AngleBetween3DCoords(a, b, c Vector) float64 {
	v1 := a.Sub(b).Unit()
	v2 := c.Sub(b).Unit()
	if v1.IsDegenerate() || v2.IsDegenerate() {
		return 0
	}
	angle := math.Acos(Clamp(v1.Dot(v2), -1, 1))
	return NormalizeRadians(angle)
}

// sphericalOf returns the raw spherical angles of a unit direction under m.
func sphericalOf(v Vector, m AxisMap) (theta, phi float64) {
	theta = math.Atan2(v.Component(m.Y), v.Component(m.X))
	phi = math.Acos(Clamp(v.Component(m.Z)/v.Length(), -1, 1))
	return theta, phi
}

// SphericalCoords returns the spherical direction of a→b under the axis
// remapping m. Theta is negated and phi measured from the equator so that a
// segment hanging along the remapped X axis reads as zero.
func SphericalCoords(a, b Vector, m AxisMap) Spherical {
	v := b.Sub(a).Unit()
	if v.IsDegenerate() {
		return Spherical{}
	}
	theta, phi := sphericalOf(v, m)
	return Spherical{
		Theta: NormalizeAngle(-theta),
		Phi:   NormalizeAngle(math.Pi/2 - phi),
	}
}

// RelativeSphericalCoords returns the spherical angles of b→c relative to
// a→b under the axis remapping m.
func RelativeSphericalCoords(a, b, c Vector, m AxisMap) Spherical {
	v1 := b.Sub(a).Unit()
	v2 := c.Sub(b).Unit()
	if v1.IsDegenerate() || v2.IsDegenerate() {
		return Spherical{}
	}
	theta1, phi1 := sphericalOf(v1, m)
	theta2, phi2 := sphericalOf(v2, m)
	return Spherical{
		Theta: NormalizeAngle(theta1 - theta2),
		Phi:   NormalizeAngle(phi1 - phi2),
	}
}
