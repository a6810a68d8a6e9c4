// Package testdata provides landmark sets for tests across packages.
package testdata

import "github.com/ayusman/abhinaya/internal/landmark"

// FaceParams shapes the synthetic face mesh returned by Face.
type FaceParams struct {
	// EyeGap is the lid gap of both eyes; eye width is 0.06.
	EyeGap float64
	// BrowGap is the brow gap; brow width is 0.08.
	BrowGap float64
	// MouthGap is the inner lip gap.
	MouthGap float64
	// PupilDX shifts both irises toward the subject's right.
	PupilDX float64
}

// NeutralFaceParams gives open eyes, resting brows and a closed mouth.
var NeutralFaceParams = FaceParams{EyeGap: 0.02, BrowGap: 0.092}

// NeutralFace returns a front-facing 478-point face mesh.
func NeutralFace() []landmark.Landmark {
	return Face(NeutralFaceParams)
}

// Face returns a front-facing 478-point face mesh in normalised image
// coordinates. Points the solvers do not read sit at the face centre.
func Face(p FaceParams) []landmark.Landmark {
	lm := make([]landmark.Landmark, landmark.NumFaceIrisPoints)
	for i := range lm {
		lm[i] = landmark.Landmark{X: 0.5, Y: 0.5, Visibility: 1}
	}
	set := func(i int, x, y float64) { lm[i] = landmark.Landmark{X: x, Y: y, Visibility: 1} }

	// Face box
	set(landmark.FaceTopLeft, 0.4, 0.3)
	set(landmark.FaceTopRight, 0.6, 0.3)
	set(landmark.FaceBottomRight, 0.6, 0.7)
	set(landmark.FaceBottomLeft, 0.4, 0.7)

	outline := func(pts landmark.EyeOutline, outerX, innerX, y, gap float64) {
		set(pts[0], outerX, y)
		set(pts[1], innerX, y)
		for i := 0; i < 3; i++ {
			x := outerX + (innerX-outerX)*float64(i+1)/4
			set(pts[2+i], x, y-gap/2)
			set(pts[5+i], x, y+gap/2)
		}
	}
	outline(landmark.EyePoints[landmark.Left], 0.40, 0.46, 0.45, p.EyeGap)
	outline(landmark.EyePoints[landmark.Right], 0.60, 0.54, 0.45, p.EyeGap)
	outline(landmark.BrowPoints[landmark.Left], 0.39, 0.47, 0.42, p.BrowGap)
	outline(landmark.BrowPoints[landmark.Right], 0.61, 0.53, 0.42, p.BrowGap)

	// Irises centred in each eye
	set(landmark.PupilPoints[landmark.Left][0], 0.43-p.PupilDX, 0.4455)
	set(landmark.PupilPoints[landmark.Right][0], 0.57-p.PupilDX, 0.4455)

	// Mouth
	set(landmark.UpperInnerLip, 0.5, 0.6)
	set(landmark.LowerInnerLip, 0.5, 0.6+p.MouthGap)
	set(landmark.MouthCornerLeft, 0.45, 0.62)
	set(landmark.MouthCornerRight, 0.55, 0.62)

	return lm
}

// OpenPalm returns a hand with all fingers extended upward.
func OpenPalm() []landmark.Landmark {
	lm := make([]landmark.Landmark, landmark.NumHandPoints)

	// Wrist at base
	lm[landmark.Wrist] = landmark.Landmark{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb extended to the side
	lm[landmark.ThumbCMC] = landmark.Landmark{X: 0.55, Y: 0.75, Z: 0.02}
	lm[landmark.ThumbMCP] = landmark.Landmark{X: 0.62, Y: 0.70, Z: 0.03}
	lm[landmark.ThumbIP] = landmark.Landmark{X: 0.68, Y: 0.65, Z: 0.03}
	lm[landmark.ThumbTip] = landmark.Landmark{X: 0.73, Y: 0.60, Z: 0.03}

	// Index finger extended upward
	lm[landmark.IndexMCP] = landmark.Landmark{X: 0.55, Y: 0.68, Z: 0.0}
	lm[landmark.IndexPIP] = landmark.Landmark{X: 0.57, Y: 0.55, Z: 0.0}
	lm[landmark.IndexDIP] = landmark.Landmark{X: 0.58, Y: 0.45, Z: 0.0}
	lm[landmark.IndexTip] = landmark.Landmark{X: 0.58, Y: 0.35, Z: 0.0}

	// Middle finger extended upward (slightly longer)
	lm[landmark.MiddleMCP] = landmark.Landmark{X: 0.50, Y: 0.66, Z: 0.0}
	lm[landmark.MiddlePIP] = landmark.Landmark{X: 0.50, Y: 0.52, Z: 0.0}
	lm[landmark.MiddleDIP] = landmark.Landmark{X: 0.50, Y: 0.40, Z: 0.0}
	lm[landmark.MiddleTip] = landmark.Landmark{X: 0.50, Y: 0.28, Z: 0.0}

	// Ring finger extended upward
	lm[landmark.RingMCP] = landmark.Landmark{X: 0.45, Y: 0.68, Z: 0.0}
	lm[landmark.RingPIP] = landmark.Landmark{X: 0.43, Y: 0.55, Z: 0.0}
	lm[landmark.RingDIP] = landmark.Landmark{X: 0.42, Y: 0.45, Z: 0.0}
	lm[landmark.RingTip] = landmark.Landmark{X: 0.42, Y: 0.35, Z: 0.0}

	// Pinky finger extended upward
	lm[landmark.PinkyMCP] = landmark.Landmark{X: 0.40, Y: 0.70, Z: 0.0}
	lm[landmark.PinkyPIP] = landmark.Landmark{X: 0.37, Y: 0.60, Z: 0.0}
	lm[landmark.PinkyDIP] = landmark.Landmark{X: 0.35, Y: 0.50, Z: 0.0}
	lm[landmark.PinkyTip] = landmark.Landmark{X: 0.34, Y: 0.42, Z: 0.0}

	return lm
}

// Fist returns a hand with the thumb out and the other fingers curled.
func Fist() []landmark.Landmark {
	lm := make([]landmark.Landmark, landmark.NumHandPoints)

	// Wrist at origin
	lm[landmark.Wrist] = landmark.Landmark{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb extended upward
	lm[landmark.ThumbCMC] = landmark.Landmark{X: 0.55, Y: 0.75, Z: 0.0}
	lm[landmark.ThumbMCP] = landmark.Landmark{X: 0.58, Y: 0.65, Z: 0.0}
	lm[landmark.ThumbIP] = landmark.Landmark{X: 0.58, Y: 0.50, Z: 0.0}
	lm[landmark.ThumbTip] = landmark.Landmark{X: 0.58, Y: 0.35, Z: 0.0}

	// Index finger curled (knuckles close together, tip near palm)
	lm[landmark.IndexMCP] = landmark.Landmark{X: 0.55, Y: 0.70, Z: -0.02}
	lm[landmark.IndexPIP] = landmark.Landmark{X: 0.55, Y: 0.68, Z: -0.05}
	lm[landmark.IndexDIP] = landmark.Landmark{X: 0.52, Y: 0.70, Z: -0.04}
	lm[landmark.IndexTip] = landmark.Landmark{X: 0.50, Y: 0.72, Z: -0.02}

	// Middle finger curled
	lm[landmark.MiddleMCP] = landmark.Landmark{X: 0.50, Y: 0.68, Z: -0.02}
	lm[landmark.MiddlePIP] = landmark.Landmark{X: 0.50, Y: 0.66, Z: -0.05}
	lm[landmark.MiddleDIP] = landmark.Landmark{X: 0.47, Y: 0.68, Z: -0.04}
	lm[landmark.MiddleTip] = landmark.Landmark{X: 0.45, Y: 0.70, Z: -0.02}

	// Ring finger curled
	lm[landmark.RingMCP] = landmark.Landmark{X: 0.45, Y: 0.70, Z: -0.02}
	lm[landmark.RingPIP] = landmark.Landmark{X: 0.45, Y: 0.68, Z: -0.05}
	lm[landmark.RingDIP] = landmark.Landmark{X: 0.42, Y: 0.70, Z: -0.04}
	lm[landmark.RingTip] = landmark.Landmark{X: 0.40, Y: 0.72, Z: -0.02}

	// Pinky finger curled
	lm[landmark.PinkyMCP] = landmark.Landmark{X: 0.40, Y: 0.72, Z: -0.02}
	lm[landmark.PinkyPIP] = landmark.Landmark{X: 0.40, Y: 0.70, Z: -0.05}
	lm[landmark.PinkyDIP] = landmark.Landmark{X: 0.37, Y: 0.72, Z: -0.04}
	lm[landmark.PinkyTip] = landmark.Landmark{X: 0.35, Y: 0.74, Z: -0.02}

	return lm
}

// TPose returns world and screen landmarks of a subject facing the camera
// with arms stretched out sideways, every point fully visible.
func TPose() (world, screen []landmark.Landmark) {
	world = make([]landmark.Landmark, landmark.NumPosePoints)
	screen = make([]landmark.Landmark, landmark.NumPosePoints)
	for i := range world {
		world[i].Visibility = 0.99
		screen[i].Visibility = 0.99
	}
	w := func(i int, x, y, z float64) { world[i].X, world[i].Y, world[i].Z = x, y, z }
	s := func(i int, x, y float64) { screen[i].X, screen[i].Y = x, y }

	// Arms out at shoulder height
	w(landmark.LeftShoulder, 0.2, -0.5, 0)
	w(landmark.RightShoulder, -0.2, -0.5, 0)
	w(landmark.LeftElbow, 0.45, -0.5, 0)
	w(landmark.RightElbow, -0.45, -0.5, 0)
	w(landmark.LeftWrist, 0.7, -0.5, 0)
	w(landmark.RightWrist, -0.7, -0.5, 0)
	w(landmark.LeftPinky, 0.78, -0.48, 0)
	w(landmark.RightPinky, -0.78, -0.48, 0)
	w(landmark.LeftIndex, 0.78, -0.52, 0)
	w(landmark.RightIndex, -0.78, -0.52, 0)

	// Legs straight down
	w(landmark.LeftHip, 0.1, 0, 0)
	w(landmark.RightHip, -0.1, 0, 0)
	w(landmark.LeftKnee, 0.1, 0.4, 0.02)
	w(landmark.RightKnee, -0.1, 0.4, 0.02)
	w(landmark.LeftAnkle, 0.1, 0.8, 0)
	w(landmark.RightAnkle, -0.1, 0.8, 0)

	s(landmark.LeftShoulder, 0.6, 0.3)
	s(landmark.RightShoulder, 0.4, 0.3)
	s(landmark.LeftElbow, 0.75, 0.3)
	s(landmark.RightElbow, 0.25, 0.3)
	s(landmark.LeftWrist, 0.9, 0.3)
	s(landmark.RightWrist, 0.1, 0.3)
	s(landmark.LeftHip, 0.55, 0.6)
	s(landmark.RightHip, 0.45, 0.6)
	s(landmark.LeftKnee, 0.55, 0.78)
	s(landmark.RightKnee, 0.45, 0.78)
	s(landmark.LeftAnkle, 0.55, 0.95)
	s(landmark.RightAnkle, 0.45, 0.95)

	return world, screen
}

// HolisticFrame returns a frame with every part present.
func HolisticFrame() *landmark.Frame {
	world, screen := TPose()
	return &landmark.Frame{
		Face:      NeutralFace(),
		LeftHand:  OpenPalm(),
		RightHand: Fist(),
		Pose:      screen,
		PoseWorld: world,
	}
}
