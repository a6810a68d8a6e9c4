package pose

import (
	"math"

	"github.com/ayusman/abhinaya/internal/landmark"
	"github.com/ayusman/abhinaya/internal/vector"
)

// Arm limits and gains.
const (
	lowerArmZMin    = -2.14
	upperArmZGain   = -2.3
	upperArmXOffset = 0.3
	lowerArmGain    = 2.14
	upperArmXMin    = -0.5
	lowerArmXLimit  = 0.3
	handTiltGain    = 2
	handTiltLimit   = 0.6
	handYawGain     = -2.3
)

// Arm is one rigged arm in radians.
type Arm struct {
	Upper vector.Euler `json:"upper"`
	Lower vector.Euler `json:"lower"`
	Hand  vector.Euler `json:"hand"`
}

// Arms holds both arms. The camera mirrors the subject, so the subject's
// left landmarks drive the avatar's right arm.
type Arms struct {
	R Arm `json:"r"`
	L Arm `json:"l"`
}

type armChain struct {
	shoulder, otherShoulder, elbow, wrist, pinky, index int
}

var armChains = map[landmark.Side]armChain{
	landmark.Right: {landmark.LeftShoulder, landmark.RightShoulder, landmark.LeftElbow, landmark.LeftWrist, landmark.LeftPinky, landmark.LeftIndex},
	landmark.Left:  {landmark.RightShoulder, landmark.LeftShoulder, landmark.RightElbow, landmark.RightWrist, landmark.RightPinky, landmark.RightIndex},
}

// CalcArms returns both rigged arms from world landmarks.
func CalcArms(lm []landmark.Landmark) Arms {
	return Arms{
		R: calcArm(lm, landmark.Right),
		L: calcArm(lm, landmark.Left),
	}
}

func calcArm(lm []landmark.Landmark, side landmark.Side) Arm {
	c := armChains[side]
	p := func(i int) vector.Vector { return lm[i].Vector() }

	upper := vector.FindRotation(p(c.shoulder), p(c.elbow))
	upper.Y = vector.AngleBetween3DCoords(p(c.otherShoulder), p(c.shoulder), p(c.elbow))

	lower := vector.FindRotation(p(c.elbow), p(c.wrist))
	lower.Y = vector.AngleBetween3DCoords(p(c.shoulder), p(c.elbow), p(c.wrist))
	lower.Z = vector.Clamp(lower.Z, lowerArmZMin, 0)

	knuckles := p(c.pinky).Lerp(p(c.index), 0.5)
	hand := vector.FindRotation(p(c.wrist), knuckles)

	return RigArm(upper, lower, hand, side)
}

// RigArm scales normalised arm rotations into radians. Elbow bend feeds
// into the upper arm's yaw so the shoulder follows the forearm.
func RigArm(upper, lower, hand vector.Vector, side landmark.Side) Arm {
	inv := side.Invert()

	upper.Z *= upperArmZGain * inv
	upper.Y *= math.Pi * inv
	upper.Y -= lower.X
	upper.Y -= -inv * math.Max(lower.Z, 0)
	upper.X -= upperArmXOffset * inv

	lower.Z *= -lowerArmGain * inv
	lower.Y *= lowerArmGain * inv
	lower.X *= lowerArmGain * inv

	upper.X = vector.Clamp(upper.X, upperArmXMin, math.Pi)
	lower.X = vector.Clamp(lower.X, -lowerArmXLimit, lowerArmXLimit)

	hand.Y = vector.Clamp(hand.Z*handTiltGain, -handTiltLimit, handTiltLimit)
	hand.Z *= handYawGain * inv

	return Arm{
		Upper: vector.EulerFrom(upper).Finite(),
		Lower: vector.EulerFrom(lower).Finite(),
		Hand:  vector.EulerFrom(hand).Finite(),
	}
}
