// Package pose turns a body pose into arm, leg, hip and spine rotations.
//
// The solver reads two parallel landmark sets with the BlazePose topology:
// world landmarks in metres around the hips, and screen landmarks in
// normalised image space.
package pose

import (
	"errors"
	"fmt"

	"github.com/ayusman/abhinaya/internal/landmark"
	"github.com/ayusman/abhinaya/internal/vector"
)

var (
	ErrNoLandmarks     = errors.New("pose: no landmarks")
	ErrTooFewLandmarks = errors.New("pose: too few landmarks")
)

// Offscreen thresholds.
const (
	// MaxTrackedY is the world y below the hips past which a point is
	// treated as out of frame.
	MaxTrackedY        = 0.1
	MinHandVisibility  = 0.23
	MinFootVisibility  = 0.63
	MaxScreenY         = 0.995
	MaxHipDepthForFeet = -0.4
)

// Pose is the solved body. Field names match avatar bone names.
type Pose struct {
	RightUpperArm vector.Euler `json:"RightUpperArm"`
	RightLowerArm vector.Euler `json:"RightLowerArm"`
	LeftUpperArm  vector.Euler `json:"LeftUpperArm"`
	LeftLowerArm  vector.Euler `json:"LeftLowerArm"`
	RightHand     vector.Euler `json:"RightHand"`
	LeftHand      vector.Euler `json:"LeftHand"`
	RightUpperLeg vector.Euler `json:"RightUpperLeg"`
	RightLowerLeg vector.Euler `json:"RightLowerLeg"`
	LeftUpperLeg  vector.Euler `json:"LeftUpperLeg"`
	LeftLowerLeg  vector.Euler `json:"LeftLowerLeg"`
	Hips          Hips         `json:"Hips"`
	Spine         vector.Euler `json:"Spine"`
	// Offscreen reports which limbs were replaced by their resting pose.
	Offscreen Offscreen `json:"offscreen"`
}

// Offscreen flags limbs whose end point is out of frame or poorly tracked.
type Offscreen struct {
	RightHand bool `json:"rightHand"`
	LeftHand  bool `json:"leftHand"`
	RightFoot bool `json:"rightFoot"`
	LeftFoot  bool `json:"leftFoot"`
}

// RestingDefault is the pose an untracked limb falls back to: arms down at
// the sides and everything else neutral.
var RestingDefault = Pose{
	RightUpperArm: vector.NewEuler(0, 0, -1.25),
	RightLowerArm: vector.NewEuler(0, 0, 0),
	LeftUpperArm:  vector.NewEuler(0, 0, 1.25),
	LeftLowerArm:  vector.NewEuler(0, 0, 0),
	RightHand:     vector.NewEuler(0, 0, 0),
	LeftHand:      vector.NewEuler(0, 0, 0),
	RightUpperLeg: vector.NewEuler(0, 0, 0),
	RightLowerLeg: vector.NewEuler(0, 0, 0),
	LeftUpperLeg:  vector.NewEuler(0, 0, 0),
	LeftLowerLeg:  vector.NewEuler(0, 0, 0),
	Hips:          Hips{Rotation: vector.NewEuler(0, 0, 0)},
	Spine:         vector.NewEuler(0, 0, 0),
}

// Options configures Solve.
type Options struct {
	Source landmark.Source `json:"source"`
	// ImageSize is needed to normalise TFJS pixel coordinates.
	ImageSize *landmark.ImageSize `json:"image_size,omitempty"`
	// EnableLegs solves the legs; when off they hold RestingDefault.
	EnableLegs bool `json:"enable_legs"`
}

// DefaultOptions returns MediaPipe input with legs enabled.
func DefaultOptions() Options {
	return Options{Source: landmark.SourceMediaPipe, EnableLegs: true}
}

// Solve runs the arm, hip and leg calculations and masks untracked limbs.
// The inputs are never modified.
func Solve(lm3d, lm2d []landmark.Landmark, opts Options) (*Pose, error) {
	if len(lm3d) == 0 || len(lm2d) == 0 {
		return nil, ErrNoLandmarks
	}
	if n := min(len(lm3d), len(lm2d)); n < landmark.MinPosePoints {
		return nil, fmt.Errorf("%w: got %d, need %d", ErrTooFewLandmarks, n, landmark.MinPosePoints)
	}

	if opts.Source == landmark.SourceTFJS && opts.ImageSize.Valid() {
		lm3d = landmark.PromoteScore(lm3d)
		lm2d = landmark.NormalizeToImage(lm2d, opts.ImageSize)
	}

	arms := CalcArms(lm3d)
	torso := CalcHips(lm3d, lm2d)
	off := DetectOffscreen(lm3d, lm2d, torso.Hips)

	p := &Pose{
		RightUpperArm: arms.R.Upper,
		RightLowerArm: arms.R.Lower,
		RightHand:     arms.R.Hand,
		LeftUpperArm:  arms.L.Upper,
		LeftLowerArm:  arms.L.Lower,
		LeftHand:      arms.L.Hand,
		RightUpperLeg: RestingDefault.RightUpperLeg,
		RightLowerLeg: RestingDefault.RightLowerLeg,
		LeftUpperLeg:  RestingDefault.LeftUpperLeg,
		LeftLowerLeg:  RestingDefault.LeftLowerLeg,
		Hips:          torso.Hips,
		Spine:         torso.Spine,
		Offscreen:     off,
	}

	if off.RightHand {
		p.RightUpperArm = RestingDefault.RightUpperArm
		p.RightLowerArm = RestingDefault.RightLowerArm
		p.RightHand = RestingDefault.RightHand
	}
	if off.LeftHand {
		p.LeftUpperArm = RestingDefault.LeftUpperArm
		p.LeftLowerArm = RestingDefault.LeftLowerArm
		p.LeftHand = RestingDefault.LeftHand
	}

	if opts.EnableLegs {
		legs := CalcLegs(lm3d)
		if !off.RightFoot {
			p.RightUpperLeg, p.RightLowerLeg = legs.R.Upper, legs.R.Lower
		}
		if !off.LeftFoot {
			p.LeftUpperLeg, p.LeftLowerLeg = legs.L.Upper, legs.L.Lower
		}
	}

	return p, nil
}

// DetectOffscreen checks each limb end point against the tracking
// thresholds. A hand is lost when its wrist drops below the hips, loses
// visibility or leaves the bottom of the frame. A foot is lost when its hip
// drops, loses visibility or the body is too close for the legs to be in
// view. Sides follow the mirrored convention of Arms and Legs.
func DetectOffscreen(lm3d, lm2d []landmark.Landmark, hips Hips) Offscreen {
	hand := func(i int) bool {
		return lm3d[i].Y > MaxTrackedY || lm3d[i].Visibility < MinHandVisibility || lm2d[i].Y > MaxScreenY
	}
	foot := func(i int) bool {
		return lm3d[i].Y > MaxTrackedY || lm3d[i].Visibility < MinFootVisibility || hips.Position.Z > MaxHipDepthForFeet
	}
	return Offscreen{
		RightHand: hand(landmark.LeftWrist),
		LeftHand:  hand(landmark.RightWrist),
		RightFoot: foot(landmark.LeftHip),
		LeftFoot:  foot(landmark.RightHip),
	}
}

// Joints returns the rotations keyed by avatar bone name.
func (p Pose) Joints() map[string]vector.Euler {
	return map[string]vector.Euler{
		"RightUpperArm": p.RightUpperArm,
		"RightLowerArm": p.RightLowerArm,
		"LeftUpperArm":  p.LeftUpperArm,
		"LeftLowerArm":  p.LeftLowerArm,
		"RightHand":     p.RightHand,
		"LeftHand":      p.LeftHand,
		"RightUpperLeg": p.RightUpperLeg,
		"RightLowerLeg": p.RightLowerLeg,
		"LeftUpperLeg":  p.LeftUpperLeg,
		"LeftLowerLeg":  p.LeftLowerLeg,
		"Hips":          p.Hips.Rotation,
		"Spine":         p.Spine,
	}
}
