// Package landmark defines the detector output consumed by the solvers: the
// landmark record, the fixed index topologies and the source-specific
// pre-normalisation step.
package landmark

import "github.com/ayusman/abhinaya/internal/vector"

// Landmark is a single detector point in detector-normalised space.
// Visibility (or Score, for sources that report one) is the tracking
// confidence in [0,1]; a missing value reads as 0.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility,omitempty"`
	Score      float64 `json:"score,omitempty"`
}

// Vector returns the landmark position.
func (l Landmark) Vector() vector.Vector {
	return vector.New(l.X, l.Y, l.Z)
}

// Side identifies one half of a mirrored body part.
type Side string

const (
	Left  Side = "Left"
	Right Side = "Right"
)

// Invert returns the sign applied to mirrored rotations: +1 for the right
// side and -1 for the left.
func (s Side) Invert() float64 {
	if s == Right {
		return 1
	}
	return -1
}

// Valid reports whether s is Left or Right.
func (s Side) Valid() bool {
	return s == Left || s == Right
}

// ImageSize is the pixel size of the frame the landmarks were detected in.
type ImageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Valid reports whether both dimensions are positive.
func (s *ImageSize) Valid() bool {
	return s != nil && s.Width > 0 && s.Height > 0
}

// Frame is the output of one holistic detector run. Any part may be empty
// when it was not detected. Hands are the subject's, as MediaPipe names them.
type Frame struct {
	Face      []Landmark `json:"face,omitempty"`
	LeftHand  []Landmark `json:"left_hand,omitempty"`
	RightHand []Landmark `json:"right_hand,omitempty"`
	Pose      []Landmark `json:"pose,omitempty"`
	PoseWorld []Landmark `json:"pose_world,omitempty"`
	ImageSize *ImageSize `json:"image_size,omitempty"`
}

// Empty reports whether the frame carries no landmarks at all.
func (f *Frame) Empty() bool {
	return f == nil || (len(f.Face) == 0 && len(f.LeftHand) == 0 && len(f.RightHand) == 0 &&
		len(f.Pose) == 0 && len(f.PoseWorld) == 0)
}

// Copy returns a deep copy of lm so pre-normalisation never touches caller
// data.
func Copy(lm []Landmark) []Landmark {
	if lm == nil {
		return nil
	}
	out := make([]Landmark, len(lm))
	copy(out, lm)
	return out
}

// Copy returns a deep copy of the frame.
func (f *Frame) Copy() *Frame {
	if f == nil {
		return nil
	}
	out := &Frame{
		Face:      Copy(f.Face),
		LeftHand:  Copy(f.LeftHand),
		RightHand: Copy(f.RightHand),
		Pose:      Copy(f.Pose),
		PoseWorld: Copy(f.PoseWorld),
	}
	if f.ImageSize != nil {
		size := *f.ImageSize
		out.ImageSize = &size
	}
	return out
}
