// Package rig solves every body part present in one detector frame.
package rig

import (
	"errors"
	"fmt"

	"github.com/ayusman/abhinaya/internal/face"
	"github.com/ayusman/abhinaya/internal/hand"
	"github.com/ayusman/abhinaya/internal/landmark"
	"github.com/ayusman/abhinaya/internal/pose"
)

// ErrEmptyFrame is returned when a frame carries no landmarks.
var ErrEmptyFrame = errors.New("rig: frame has no landmarks")

// Options configures the per-part solvers. ImageSize on the frame, when
// set, overrides the size in each part's options.
type Options struct {
	Face face.Options `json:"face"`
	Pose pose.Options `json:"pose"`
}

// DefaultOptions returns the defaults of each solver.
func DefaultOptions() Options {
	return Options{
		Face: face.DefaultOptions(),
		Pose: pose.DefaultOptions(),
	}
}

// WithSource sets the landmark source on every solver.
func (o Options) WithSource(src landmark.Source) Options {
	o.Face.Source = src
	o.Pose.Source = src
	return o
}

// Result is one solved frame, keyed by avatar side. Parts missing from the
// frame are nil.
type Result struct {
	Face      *face.Face `json:"face,omitempty"`
	Pose      *pose.Pose `json:"pose,omitempty"`
	LeftHand  *hand.Hand `json:"left_hand,omitempty"`
	RightHand *hand.Hand `json:"right_hand,omitempty"`
}

// Solve runs the face, pose and hand solvers over the parts present in f.
// A part with too few landmarks fails the whole frame, since a detector
// that truncates one part is misconfigured.
func Solve(f *landmark.Frame, opts Options) (*Result, error) {
	if f.Empty() {
		return nil, ErrEmptyFrame
	}
	if f.ImageSize.Valid() {
		opts.Face.ImageSize = f.ImageSize
		opts.Pose.ImageSize = f.ImageSize
	}

	var (
		res Result
		err error
	)
	if len(f.Face) > 0 {
		if res.Face, err = face.Solve(f.Face, opts.Face); err != nil {
			return nil, fmt.Errorf("solve face: %w", err)
		}
	}
	if len(f.Pose) > 0 || len(f.PoseWorld) > 0 {
		if res.Pose, err = pose.Solve(f.PoseWorld, f.Pose, opts.Pose); err != nil {
			return nil, fmt.Errorf("solve pose: %w", err)
		}
	}
	// Detector hands are the subject's; the avatar mirrors them, as Arms
	// and Offscreen do.
	if len(f.LeftHand) > 0 {
		if res.RightHand, err = hand.Solve(f.LeftHand, landmark.Right); err != nil {
			return nil, fmt.Errorf("solve right hand: %w", err)
		}
	}
	if len(f.RightHand) > 0 {
		if res.LeftHand, err = hand.Solve(f.RightHand, landmark.Left); err != nil {
			return nil, fmt.Errorf("solve left hand: %w", err)
		}
	}
	return &res, nil
}

// IsInputError reports whether err was caused by malformed landmarks rather
// than an empty frame.
func IsInputError(err error) bool {
	return errors.Is(err, face.ErrNoLandmarks) || errors.Is(err, face.ErrTooFewLandmarks) ||
		errors.Is(err, pose.ErrNoLandmarks) || errors.Is(err, pose.ErrTooFewLandmarks) ||
		errors.Is(err, hand.ErrNoLandmarks) || errors.Is(err, hand.ErrTooFewLandmarks)
}
