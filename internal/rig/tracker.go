package rig

import (
	"github.com/ayusman/abhinaya/internal/face"
	"github.com/ayusman/abhinaya/internal/landmark"
)

// Tracker solves a stream of frames from one subject. It keeps the last
// stabilised eyes so that blinks are smoothed across frames. A Tracker is
// not safe for concurrent use.
type Tracker struct {
	opts     Options
	prevEyes *face.Eyes
}

// NewTracker creates a Tracker.
func NewTracker(opts Options) *Tracker {
	return &Tracker{opts: opts}
}

// Options returns the options in use.
func (t *Tracker) Options() Options {
	return t.opts
}

// SetOptions replaces the options. Blink history is kept.
func (t *Tracker) SetOptions(opts Options) {
	t.opts = opts
}

// Reset forgets the blink history.
func (t *Tracker) Reset() {
	t.prevEyes = nil
}

// Solve solves f. With SmoothBlink on, the current eyes are averaged with
// the previous frame's before stabilising.
func (t *Tracker) Solve(f *landmark.Frame) (*Result, error) {
	opts := t.opts
	smooth := opts.Face.SmoothBlink
	opts.Face.SmoothBlink = false

	res, err := Solve(f, opts)
	if err != nil {
		return nil, err
	}
	if res.Face == nil || !smooth {
		return res, nil
	}

	eyes := res.Face.Eye
	if t.prevEyes != nil {
		eyes = face.Eyes{
			L: (eyes.L + t.prevEyes.L) / 2,
			R: (eyes.R + t.prevEyes.R) / 2,
		}
	}
	eyes = face.StabilizeBlink(eyes, res.Face.Head.Y, opts.Face.Stabilize)
	res.Face.Eye = eyes
	t.prevEyes = &eyes
	return res, nil
}
