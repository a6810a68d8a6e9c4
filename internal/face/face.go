// Package face turns a face mesh into head rotation, eye, pupil, brow and
// mouth parameters.
package face

import (
	"errors"
	"fmt"

	"github.com/ayusman/abhinaya/internal/landmark"
)

var (
	ErrNoLandmarks     = errors.New("face: no landmarks")
	ErrTooFewLandmarks = errors.New("face: too few landmarks")
)

// Face is the solved face.
type Face struct {
	Head  Head    `json:"head"`
	Eye   Eyes    `json:"eye"`
	Brow  float64 `json:"brow"`
	Pupil Pupil   `json:"pupil"`
	Mouth Mouth   `json:"mouth"`
}

// Options configures Solve.
type Options struct {
	Source landmark.Source `json:"source"`
	// ImageSize is needed to scale normalised MediaPipe points to pixels.
	ImageSize *landmark.ImageSize `json:"image_size,omitempty"`
	// SmoothBlink runs StabilizeBlink on the eyes.
	SmoothBlink bool `json:"smooth_blink"`
	// BlinkSettings overrides the source's default blink band.
	BlinkSettings *Thresholds     `json:"blink_settings,omitempty"`
	Stabilize     StabilizeOptions `json:"stabilize"`
}

// DefaultOptions returns options for TensorFlow.js face mesh input.
func DefaultOptions() Options {
	return Options{
		Source:    landmark.SourceTFJS,
		Stabilize: DefaultStabilizeOptions(),
	}
}

// Thresholds returns the blink band in effect for o.
func (o Options) Thresholds() Thresholds {
	if o.BlinkSettings != nil {
		return *o.BlinkSettings
	}
	return ThresholdsFor(o.Source)
}

// Solve runs every face calculation over lm. The input is never modified.
// Meshes without the ten iris points still solve head and mouth; eyes,
// pupils and brow fall back to their neutral values.
func Solve(lm []landmark.Landmark, opts Options) (*Face, error) {
	if len(lm) == 0 {
		return nil, ErrNoLandmarks
	}
	if len(lm) < landmark.NumFacePoints {
		return nil, fmt.Errorf("%w: got %d, need %d", ErrTooFewLandmarks, len(lm), landmark.NumFacePoints)
	}

	if opts.Source == landmark.SourceMediaPipe && opts.ImageSize.Valid() {
		lm = landmark.ScaleToImage(lm, opts.ImageSize)
	}

	head := CalcHead(lm)
	eyes := CalcEyes(lm, opts.Thresholds())
	if opts.SmoothBlink {
		eyes = StabilizeBlink(eyes, head.Y, opts.Stabilize)
	}

	return &Face{
		Head:  head,
		Eye:   eyes,
		Brow:  CalcBrow(lm),
		Pupil: CalcPupils(lm),
		Mouth: CalcMouth(lm),
	}, nil
}
