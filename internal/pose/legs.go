package pose

import (
	"math"

	"github.com/ayusman/abhinaya/internal/landmark"
	"github.com/ayusman/abhinaya/internal/vector"
)

// UpperLegZOffset is added to the rigged ab/adduction, mirrored per side.
const UpperLegZOffset = 0.1

// Leg is one rigged leg in radians.
type Leg struct {
	Upper vector.Euler `json:"upper"`
	Lower vector.Euler `json:"lower"`
}

// Legs holds both legs, mirrored like Arms.
type Legs struct {
	R Leg `json:"r"`
	L Leg `json:"l"`
}

type legChain struct {
	hip, knee, ankle int
}

var legChains = map[landmark.Side]legChain{
	landmark.Right: {landmark.LeftHip, landmark.LeftKnee, landmark.LeftAnkle},
	landmark.Left:  {landmark.RightHip, landmark.RightKnee, landmark.RightAnkle},
}

// CalcLegs returns both rigged legs from world landmarks.
func CalcLegs(lm []landmark.Landmark) Legs {
	hipRot := vector.FindRotation(lm[landmark.LeftHip].Vector(), lm[landmark.RightHip].Vector())
	return Legs{
		R: calcLeg(lm, landmark.Right, hipRot),
		L: calcLeg(lm, landmark.Left, hipRot),
	}
}

func calcLeg(lm []landmark.Landmark, side landmark.Side, hipRot vector.Vector) Leg {
	c := legChains[side]
	hip, knee, ankle := lm[c.hip].Vector(), lm[c.knee].Vector(), lm[c.ankle].Vector()

	upper := vector.SphericalCoords(hip, knee, vector.LegAxisMap)
	lower := vector.RelativeSphericalCoords(hip, knee, ankle, vector.LegAxisMap)

	// The knee is a hinge; only its bend is kept.
	return RigLeg(
		vector.New(upper.Theta, lower.Phi, upper.Phi-hipRot.Z),
		vector.New(-math.Abs(lower.Theta), 0, 0),
		side,
	)
}

// RigLeg clamps normalised leg rotations to human limits in radians.
func RigLeg(upper, lower vector.Vector, side landmark.Side) Leg {
	return Leg{
		Upper: vector.NewEuler(
			vector.Clamp(upper.X, 0, 0.5)*math.Pi,
			vector.Clamp(upper.Y, -0.25, 0.25)*math.Pi,
			vector.Clamp(upper.Z, -0.5, 0.5)*math.Pi+side.Invert()*UpperLegZOffset,
		).Finite(),
		Lower: vector.EulerFrom(lower.Scale(math.Pi)).Finite(),
	}
}
