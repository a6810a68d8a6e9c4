package hand

import (
	"math"

	"github.com/ayusman/abhinaya/internal/landmark"
	"github.com/ayusman/abhinaya/internal/vector"
)

// wristYawOffset turns the palm normal's roll into wrist side tilt.
const wristYawOffset = 0.4

// Wrist limits.
const (
	WristTwistLimit = 0.3
	wristTwistScale = 2
	wristTiltScale  = 2.3
	wristYawScale   = -2.3
)

// Range is a closed clamp interval.
type Range struct {
	Min, Max float64
}

func (r Range) clamp(v float64) float64 {
	return vector.Clamp(v, r.Min, r.Max)
}

// WristTilt returns the wrist side-tilt limit for side.
func WristTilt(side landmark.Side) Range {
	if side == landmark.Right {
		return Range{-1.2, 0.6}
	}
	return Range{-0.6, 1.6}
}

// FingerBend returns the bend limit for non-thumb fingers.
func FingerBend(side landmark.Side) Range {
	if side == landmark.Right {
		return Range{0, math.Pi}
	}
	return Range{-math.Pi, 0}
}

// thumbTuning is the per-bone damping and resting pose of the thumb, which
// rotates on all three axes rather than hinging.
type thumbTuning struct {
	damp  vector.Vector
	start func(invert float64) vector.Vector
	limit func(side landmark.Side) [3]Range
}

var thumbWide = func(landmark.Side) [3]Range {
	return [3]Range{{-2, 2}, {-2, 2}, {-2, 2}}
}

var thumb = map[Segment]thumbTuning{
	Proximal: {
		damp:  vector.New(2.2, 2.2, 0.5),
		start: func(inv float64) vector.Vector { return vector.New(1.2, 1.1*inv, 0.2*inv) },
		limit: func(side landmark.Side) [3]Range {
			if side == landmark.Right {
				return [3]Range{{-0.6, 0.3}, {-1, 0.3}, {-0.6, 0.3}}
			}
			return [3]Range{{-0.6, 0.3}, {-0.3, 1}, {-0.3, 0.6}}
		},
	},
	Intermediate: {
		damp:  vector.New(0, 0.7, 0.5),
		start: func(inv float64) vector.Vector { return vector.New(-0.2, 0.1*inv, 0.2*inv) },
		limit: thumbWide,
	},
	Distal: {
		damp:  vector.New(0, 1, 0.5),
		start: func(inv float64) vector.Vector { return vector.New(-0.2, 0.1*inv, 0.2*inv) },
		limit: thumbWide,
	},
}

// Rig converts the normalised output of Calc into radians within human
// joint limits. h is not modified.
func Rig(h Hand) Hand {
	inv := h.Side.Invert()
	out := h

	out.Wrist = vector.NewEuler(
		vector.Clamp(h.Wrist.X*wristTwistScale*inv, -WristTwistLimit, WristTwistLimit),
		WristTilt(h.Side).clamp(h.Wrist.Y*wristTiltScale),
		h.Wrist.Z*wristYawScale*inv,
	).Finite()

	for _, d := range Digits {
		src := h.Finger(d)
		dst := out.Finger(d)
		for _, s := range Segments {
			raw := src.Segment(s).Z
			if d == Thumb {
				*dst.Segment(s) = rigThumb(raw, s, h.Side)
				continue
			}
			z := FingerBend(h.Side).clamp(raw * math.Pi * inv)
			*dst.Segment(s) = vector.NewEuler(0, 0, vector.Finite(z))
		}
	}
	return out
}

func rigThumb(raw float64, s Segment, side landmark.Side) vector.Euler {
	inv := side.Invert()
	t := thumb[s]
	start := t.start(inv)
	limit := t.limit(side)
	turn := raw * -math.Pi

	return vector.NewEuler(
		limit[0].clamp(start.X+turn*t.damp.X),
		limit[1].clamp(start.Y+turn*t.damp.Y*inv),
		limit[2].clamp(start.Z+turn*t.damp.Z*inv),
	).Finite()
}
