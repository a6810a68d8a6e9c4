package face

import (
	"math"

	"github.com/ayusman/abhinaya/internal/landmark"
	"github.com/ayusman/abhinaya/internal/vector"
)

// Eye and brow tuning constants.
const (
	// MaxEyeRatio is the lid-gap to eye-width ratio of a fully open human eye.
	MaxEyeRatio = 0.285
	// MaxBrowRatio is the brow-gap ratio treated as a resting brow.
	MaxBrowRatio = 1.15
	BrowLow      = 0.07
	BrowHigh     = 0.125

	// pupilBias lifts the eye centre above the corner midpoint, as a
	// fraction of eye width.
	pupilBias        = 0.075
	pupilSensitivity = 4
)

// Blink stabiliser constants.
const (
	WinkThreshold         = 0.8
	WinkThresholdDisabled = 1.2
	MaxBlinkRot           = 0.5
	closingBelow          = 0.3
	openAbove             = 0.6
	blinkBlend            = 0.95
)

// Thresholds is the raw eye ratio band remapped onto [0,1] openness.
type Thresholds struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

var (
	// TFJSThresholds suit the TensorFlow.js face mesh.
	TFJSThresholds = Thresholds{Low: 0.55, High: 0.85}
	// MediaPipeThresholds suit MediaPipe face mesh, whose lids read narrower.
	MediaPipeThresholds = Thresholds{Low: 0.35, High: 0.5}
)

// ThresholdsFor returns the default blink band for a landmark source.
func ThresholdsFor(src landmark.Source) Thresholds {
	if src == landmark.SourceTFJS {
		return TFJSThresholds
	}
	return MediaPipeThresholds
}

// EyeOpenness is the result of EyeOpen.
type EyeOpenness struct {
	// Norm is the remapped openness in [0,1].
	Norm float64 `json:"norm"`
	// Raw is the lid ratio over MaxEyeRatio, clamped to [0,2].
	Raw float64 `json:"raw"`
}

// Eyes holds per-eye openness. 1 is open and 0 is closed.
type Eyes struct {
	L float64 `json:"l"`
	R float64 `json:"r"`
}

// Pupil is the gaze offset, roughly in [-1,1] on each axis.
type Pupil struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StabilizeOptions configures StabilizeBlink.
type StabilizeOptions struct {
	// WinkThreshold is the eye difference above which a wink is kept.
	WinkThreshold float64 `json:"wink_threshold"`
	// MaxRot is the head yaw, in radians, past which the far eye is hidden.
	MaxRot float64 `json:"max_rot"`
}

// DefaultStabilizeOptions returns winks enabled and a 0.5 rad yaw limit.
func DefaultStabilizeOptions() StabilizeOptions {
	return StabilizeOptions{WinkThreshold: WinkThreshold, MaxRot: MaxBlinkRot}
}

func (o StabilizeOptions) withDefaults() StabilizeOptions {
	d := DefaultStabilizeOptions()
	if o.WinkThreshold <= 0 {
		o.WinkThreshold = d.WinkThreshold
	}
	if o.MaxRot <= 0 {
		o.MaxRot = d.MaxRot
	}
	return o
}

// EyeLidRatio returns the average of the three lid gaps divided by the eye
// width. Distances are 2D since depth jitters more than the lid gap.
func EyeLidRatio(lm []landmark.Landmark, pts landmark.EyeOutline) float64 {
	p := func(i int) vector.Vector { return lm[pts[i]].Vector() }

	width := p(0).Distance(p(1), 2)
	outer := p(2).Distance(p(5), 2)
	mid := p(3).Distance(p(6), 2)
	inner := p(4).Distance(p(7), 2)

	return vector.SafeDiv((outer+mid+inner)/3, width)
}

// EyeOpen measures one eye and remaps it through t.
func EyeOpen(lm []landmark.Landmark, side landmark.Side, t Thresholds) EyeOpenness {
	ratio := vector.Clamp(EyeLidRatio(lm, landmark.EyePoints[side])/MaxEyeRatio, 0, 2)
	return EyeOpenness{
		Norm: vector.Finite(vector.Remap(ratio, t.Low, t.High)),
		Raw:  ratio,
	}
}

// CalcEyes returns both eyes' openness. Without iris points the lids cannot
// be told from the iris and both eyes read fully open.
func CalcEyes(lm []landmark.Landmark, t Thresholds) Eyes {
	if len(lm) != landmark.NumFaceIrisPoints {
		return Eyes{L: 1, R: 1}
	}
	return Eyes{
		L: EyeOpen(lm, landmark.Left, t).Norm,
		R: EyeOpen(lm, landmark.Right, t).Norm,
	}
}

// PupilPos returns the iris offset from the eye centre for one side.
func PupilPos(lm []landmark.Landmark, side landmark.Side) Pupil {
	eye := landmark.EyePoints[side]
	outer := lm[eye[0]].Vector()
	inner := lm[eye[1]].Vector()
	pupil := lm[landmark.PupilPoints[side][0]].Vector()

	width := outer.Distance(inner, 2)
	mid := outer.Lerp(inner, 0.5)

	dx := mid.X - pupil.X
	dy := mid.Y - width*pupilBias - pupil.Y

	return Pupil{
		X: vector.SafeDiv(dx, width/2) * pupilSensitivity,
		Y: vector.SafeDiv(dy, width/4) * pupilSensitivity,
	}
}

// CalcPupils averages both irises. Without iris points the gaze is centred.
func CalcPupils(lm []landmark.Landmark) Pupil {
	if len(lm) != landmark.NumFaceIrisPoints {
		return Pupil{}
	}
	l := PupilPos(lm, landmark.Left)
	r := PupilPos(lm, landmark.Right)
	return Pupil{
		X: vector.Finite((l.X + r.X) * 0.5),
		Y: vector.Finite((l.Y + r.Y) * 0.5),
	}
}

// BrowRaise returns one brow's raise in [0,1].
func BrowRaise(lm []landmark.Landmark, side landmark.Side) float64 {
	ratio := EyeLidRatio(lm, landmark.BrowPoints[side])/MaxBrowRatio - 1
	return (vector.Clamp(ratio, BrowLow, BrowHigh) - BrowLow) / (BrowHigh - BrowLow)
}

// CalcBrow averages both brows. Without iris points it reads 0.
func CalcBrow(lm []landmark.Landmark) float64 {
	if len(lm) != landmark.NumFaceIrisPoints {
		return 0
	}
	return vector.Finite((BrowRaise(lm, landmark.Left) + BrowRaise(lm, landmark.Right)) / 2)
}

// StabilizeBlink evens out per-eye noise. When the head is turned past
// opts.MaxRot the far eye copies the near one. A difference above the wink
// threshold passes through untouched unless both eyes are clearly closing
// or clearly open; anything else collapses both eyes onto a 95/5 blend
// weighted toward the more open eye.
func StabilizeBlink(eyes Eyes, headY float64, opts StabilizeOptions) Eyes {
	opts = opts.withDefaults()

	l := vector.Clamp(vector.Finite(eyes.L), 0, 1)
	r := vector.Clamp(vector.Finite(eyes.R), 0, 1)

	if headY > opts.MaxRot {
		return Eyes{L: r, R: r}
	}
	if headY < -opts.MaxRot {
		return Eyes{L: l, R: l}
	}

	closing := l < closingBelow && r < closingBelow
	open := l > openAbove && r > openAbove
	if math.Abs(l-r) >= opts.WinkThreshold && !closing && !open {
		return Eyes{L: l, R: r}
	}

	blended := vector.Lerp(math.Min(l, r), math.Max(l, r), blinkBlend)
	return Eyes{L: blended, R: blended}
}
