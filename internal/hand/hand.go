// Package hand turns a 21-point hand into wrist and finger rotations.
package hand

import (
	"errors"
	"fmt"

	"github.com/ayusman/abhinaya/internal/landmark"
	"github.com/ayusman/abhinaya/internal/vector"
)

var (
	ErrNoLandmarks     = errors.New("hand: no landmarks")
	ErrTooFewLandmarks = errors.New("hand: too few landmarks")
	ErrInvalidSide     = errors.New("hand: invalid side")
)

// Digit identifies a finger.
type Digit int

const (
	Thumb Digit = iota
	Index
	Middle
	Ring
	Little
)

// Digits lists every finger in landmark order.
var Digits = []Digit{Thumb, Index, Middle, Ring, Little}

var digitNames = [...]string{"Thumb", "Index", "Middle", "Ring", "Little"}

func (d Digit) String() string {
	if d < Thumb || d > Little {
		return fmt.Sprintf("Digit(%d)", int(d))
	}
	return digitNames[d]
}

// Segment identifies one bone of a finger.
type Segment int

const (
	Proximal Segment = iota
	Intermediate
	Distal
)

// Segments lists the bones from knuckle to tip.
var Segments = []Segment{Proximal, Intermediate, Distal}

var segmentNames = [...]string{"Proximal", "Intermediate", "Distal"}

func (s Segment) String() string {
	if s < Proximal || s > Distal {
		return fmt.Sprintf("Segment(%d)", int(s))
	}
	return segmentNames[s]
}

// chains holds the four landmarks of each finger from base to tip. Every
// finger hangs off the wrist.
var chains = map[Digit][4]int{
	Thumb:  {landmark.ThumbCMC, landmark.ThumbMCP, landmark.ThumbIP, landmark.ThumbTip},
	Index:  {landmark.IndexMCP, landmark.IndexPIP, landmark.IndexDIP, landmark.IndexTip},
	Middle: {landmark.MiddleMCP, landmark.MiddlePIP, landmark.MiddleDIP, landmark.MiddleTip},
	Ring:   {landmark.RingMCP, landmark.RingPIP, landmark.RingDIP, landmark.RingTip},
	Little: {landmark.PinkyMCP, landmark.PinkyPIP, landmark.PinkyDIP, landmark.PinkyTip},
}

// Finger holds the rotation of each bone of one finger.
type Finger struct {
	Proximal     vector.Euler `json:"proximal"`
	Intermediate vector.Euler `json:"intermediate"`
	Distal       vector.Euler `json:"distal"`
}

// Segment returns a pointer to the rotation of bone s.
func (f *Finger) Segment(s Segment) *vector.Euler {
	switch s {
	case Intermediate:
		return &f.Intermediate
	case Distal:
		return &f.Distal
	default:
		return &f.Proximal
	}
}

// Hand is the solved hand.
type Hand struct {
	Side   landmark.Side `json:"side"`
	Wrist  vector.Euler  `json:"wrist"`
	Thumb  Finger        `json:"thumb"`
	Index  Finger        `json:"index"`
	Middle Finger        `json:"middle"`
	Ring   Finger        `json:"ring"`
	Little Finger        `json:"little"`
}

// Finger returns a pointer to digit d.
func (h *Hand) Finger(d Digit) *Finger {
	switch d {
	case Thumb:
		return &h.Thumb
	case Index:
		return &h.Index
	case Middle:
		return &h.Middle
	case Ring:
		return &h.Ring
	default:
		return &h.Little
	}
}

// Joints returns the rotations keyed by avatar bone name, such as
// "RightWrist" or "LeftIndexIntermediate".
func (h Hand) Joints() map[string]vector.Euler {
	side := string(h.Side)
	joints := make(map[string]vector.Euler, 1+len(Digits)*len(Segments))
	joints[side+"Wrist"] = h.Wrist
	for _, d := range Digits {
		f := h.Finger(d)
		for _, s := range Segments {
			joints[side+d.String()+s.String()] = *f.Segment(s)
		}
	}
	return joints
}

// Calc measures the palm plane and every finger hinge. Values are
// normalised and unclamped; Rig turns them into radians.
func Calc(lm []landmark.Landmark, side landmark.Side) Hand {
	p := func(i int) vector.Vector { return lm[i].Vector() }

	// Ordering the base points by side keeps the palm normal facing out of
	// the back of the hand for both hands.
	first, second := landmark.IndexMCP, landmark.PinkyMCP
	if side == landmark.Right {
		first, second = landmark.PinkyMCP, landmark.IndexMCP
	}
	rot := vector.RollPitchYaw(p(landmark.Wrist), p(first), p(second))

	h := Hand{
		Side:  side,
		Wrist: vector.NewEuler(rot.X, rot.Z-wristYawOffset, rot.Z),
	}
	for _, d := range Digits {
		c := chains[d]
		f := h.Finger(d)
		f.Proximal = bend(p(landmark.Wrist), p(c[0]), p(c[1]))
		f.Intermediate = bend(p(c[0]), p(c[1]), p(c[2]))
		f.Distal = bend(p(c[1]), p(c[2]), p(c[3]))
	}
	return h
}

func bend(a, b, c vector.Vector) vector.Euler {
	return vector.NewEuler(0, 0, vector.AngleBetween3DCoords(a, b, c))
}

// Solve computes the rigged hand for one side.
func Solve(lm []landmark.Landmark, side landmark.Side) (*Hand, error) {
	if len(lm) == 0 {
		return nil, ErrNoLandmarks
	}
	if len(lm) < landmark.NumHandPoints {
		return nil, fmt.Errorf("%w: got %d, need %d", ErrTooFewLandmarks, len(lm), landmark.NumHandPoints)
	}
	if !side.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSide, side)
	}

	h := Rig(Calc(lm, side))
	return &h, nil
}
