package pose

import (
	"math"

	"github.com/ayusman/abhinaya/internal/landmark"
	"github.com/ayusman/abhinaya/internal/vector"
)

const (
	// hipCenterT picks the point along the left→right hip line used as the
	// body centre. 1 selects the right point.
	hipCenterT = 1
	hipXOffset = 0.4
	// turnLow and turnHigh bound the yaw band over which line tilt fades
	// out as the subject turns side-on.
	turnLow  = 0.2
	turnHigh = 0.4
)

// Hips is the root of the avatar.
type Hips struct {
	// Position is a screen-space offset with z from inverse spine length.
	Position vector.Vector `json:"position"`
	// WorldPosition applies a nonlinear depth correction to Position.
	WorldPosition vector.Vector `json:"worldPosition"`
	Rotation      vector.Euler  `json:"rotation"`
}

// Torso is the output of CalcHips.
type Torso struct {
	Hips  Hips         `json:"Hips"`
	Spine vector.Euler `json:"Spine"`
}

// CalcHips estimates the hip position from screen landmarks and the hip
// and shoulder rotations from world landmarks.
func CalcHips(lm3d, lm2d []landmark.Landmark) Torso {
	p2 := func(i int) vector.Vector { return lm2d[i].Vector() }
	p3 := func(i int) vector.Vector { return lm3d[i].Vector() }

	hipCenter := p2(landmark.LeftHip).Lerp(p2(landmark.RightHip), hipCenterT)
	shoulderCenter := p2(landmark.LeftShoulder).Lerp(p2(landmark.RightShoulder), hipCenterT)
	spineLength := hipCenter.Distance(shoulderCenter, 3)

	pos := vector.New(
		vector.Clamp(hipCenter.X-hipXOffset, -1, 1),
		0,
		vector.Clamp(spineLength-1, -2, 0),
	)
	wz := pos.Z * math.Pow(pos.Z*-2, 2)
	world := vector.New(pos.X*wz, 0, wz)

	hips := foldLine(vector.LineRollPitchYaw(p3(landmark.LeftHip), p3(landmark.RightHip)))
	spine := foldLine(vector.LineRollPitchYaw(p3(landmark.LeftShoulder), p3(landmark.RightShoulder)))

	return RigHips(Hips{Position: pos, WorldPosition: world}, hips, spine)
}

// foldLine removes the ±π wrap and left/right tilt ambiguity of a line
// rotation, then fades the tilt as the line turns away from the camera.
// Roll is unreliable for a two-point line and is dropped.
func foldLine(rot vector.Vector) vector.Vector {
	if rot.Y > 0.5 {
		rot.Y -= 2
	}
	rot.Y += 0.5

	if rot.Z > 0 {
		rot.Z = 1 - rot.Z
	}
	if rot.Z < 0 {
		rot.Z = -1 - rot.Z
	}
	rot.Z *= 1 - vector.Remap(math.Abs(rot.Y), turnLow, turnHigh)
	rot.X = 0
	return rot
}

// RigHips converts the normalised hip and spine rotations to radians.
func RigHips(hips Hips, hipRot, spineRot vector.Vector) Torso {
	hips.Position = finiteVector(hips.Position)
	hips.WorldPosition = finiteVector(hips.WorldPosition)
	hips.Rotation = vector.EulerFrom(hipRot.Scale(math.Pi)).Finite()
	return Torso{
		Hips:  hips,
		Spine: vector.EulerFrom(spineRot.Scale(math.Pi)).Finite(),
	}
}

func finiteVector(v vector.Vector) vector.Vector {
	return vector.New(vector.Finite(v.X), vector.Finite(v.Y), vector.Finite(v.Z))
}
