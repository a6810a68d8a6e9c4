package hand

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/ayusman/abhinaya/internal/landmark"
)

const epsilon = 1e-9

// openPalm returns a flat hand with every finger pointing straight up from
// its knuckle.
func openPalm() []landmark.Landmark {
	lm := make([]landmark.Landmark, landmark.NumHandPoints)
	lm[landmark.Wrist] = landmark.Landmark{X: 0.5, Y: 0.8}

	bases := map[Digit][2]float64{
		Thumb:  {0.42, 0.74},
		Index:  {0.45, 0.6},
		Middle: {0.5, 0.58},
		Ring:   {0.55, 0.6},
		Little: {0.6, 0.62},
	}
	for d, base := range bases {
		wrist := lm[landmark.Wrist]
		dx, dy := base[0]-wrist.X, base[1]-wrist.Y
		norm := math.Hypot(dx, dy)
		for i, idx := range chains[d] {
			step := 0.05 * float64(i)
			lm[idx] = landmark.Landmark{X: base[0] + dx/norm*step, Y: base[1] + dy/norm*step}
		}
	}
	return lm
}

// fist curls every finger back toward the palm.
func fist() []landmark.Landmark {
	lm := openPalm()
	for _, d := range []Digit{Index, Middle, Ring, Little} {
		c := chains[d]
		base := lm[c[0]]
		lm[c[1]] = landmark.Landmark{X: base.X, Y: base.Y, Z: -0.04}
		lm[c[2]] = landmark.Landmark{X: base.X, Y: base.Y + 0.04, Z: -0.05}
		lm[c[3]] = landmark.Landmark{X: base.X, Y: base.Y + 0.05, Z: -0.02}
	}
	return lm
}

func within(v float64, r Range) bool {
	return v >= r.Min-epsilon && v <= r.Max+epsilon
}

func checkLimits(t *testing.T, h *Hand) {
	t.Helper()
	bend := FingerBend(h.Side)
	for _, d := range Digits {
		f := h.Finger(d)
		for _, s := range Segments {
			e := *f.Segment(s)
			if math.IsNaN(e.X) || math.IsNaN(e.Y) || math.IsNaN(e.Z) {
				t.Errorf("%s %s%s is NaN: %+v", h.Side, d, s, e)
				continue
			}
			if d == Thumb {
				limits := thumb[s].limit(h.Side)
				if !within(e.X, limits[0]) || !within(e.Y, limits[1]) || !within(e.Z, limits[2]) {
					t.Errorf("%s thumb %s outside %v: %+v", h.Side, s, limits, e)
				}
				continue
			}
			if !within(e.Z, bend) || e.X != 0 || e.Y != 0 {
				t.Errorf("%s %s%s outside %v: %+v", h.Side, d, s, bend, e)
			}
		}
	}
	if math.Abs(h.Wrist.X) > WristTwistLimit+epsilon {
		t.Errorf("%s wrist twist out of range: %f", h.Side, h.Wrist.X)
	}
	if !within(h.Wrist.Y, WristTilt(h.Side)) {
		t.Errorf("%s wrist tilt out of range: %f", h.Side, h.Wrist.Y)
	}
}

func TestSolve(t *testing.T) {
	t.Run("open palm has straight fingers", func(t *testing.T) {
		for _, side := range []landmark.Side{landmark.Left, landmark.Right} {
			h, err := Solve(openPalm(), side)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, d := range []Digit{Index, Middle, Ring, Little} {
				for _, s := range Segments {
					if z := h.Finger(d).Segment(s).Z; math.Abs(z) > 1e-6 {
						t.Errorf("%s %s%s expected straight, got %f", side, d, s, z)
					}
				}
			}
			checkLimits(t, h)
		}
	})

	t.Run("fist bends toward the side's limit", func(t *testing.T) {
		right, err := Solve(fist(), landmark.Right)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		left, err := Solve(fist(), landmark.Left)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if right.Index.Intermediate.Z <= 0 {
			t.Errorf("expected positive right bend, got %f", right.Index.Intermediate.Z)
		}
		if left.Index.Intermediate.Z >= 0 {
			t.Errorf("expected negative left bend, got %f", left.Index.Intermediate.Z)
		}
		if !approxEq(right.Index.Intermediate.Z, -left.Index.Intermediate.Z) {
			t.Errorf("expected mirrored bends, got %f and %f", right.Index.Intermediate.Z, left.Index.Intermediate.Z)
		}
		checkLimits(t, right)
		checkLimits(t, left)
	})

	t.Run("no landmarks", func(t *testing.T) {
		if _, err := Solve(nil, landmark.Right); !errors.Is(err, ErrNoLandmarks) {
			t.Errorf("expected ErrNoLandmarks, got %v", err)
		}
	})

	t.Run("too few landmarks", func(t *testing.T) {
		if _, err := Solve(openPalm()[:20], landmark.Right); !errors.Is(err, ErrTooFewLandmarks) {
			t.Errorf("expected ErrTooFewLandmarks, got %v", err)
		}
	})

	t.Run("invalid side", func(t *testing.T) {
		if _, err := Solve(openPalm(), landmark.Side("Middle")); !errors.Is(err, ErrInvalidSide) {
			t.Errorf("expected ErrInvalidSide, got %v", err)
		}
	})

	t.Run("coincident points", func(t *testing.T) {
		h, err := Solve(make([]landmark.Landmark, landmark.NumHandPoints), landmark.Left)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		checkLimits(t, h)
	})
}

func TestRigLimits(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 200; i++ {
		lm := make([]landmark.Landmark, landmark.NumHandPoints)
		for j := range lm {
			lm[j] = landmark.Landmark{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64() - 0.5}
		}
		for _, side := range []landmark.Side{landmark.Left, landmark.Right} {
			h, err := Solve(lm, side)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			checkLimits(t, h)
		}
	}
}

func TestRigDoesNotModifyInput(t *testing.T) {
	raw := Calc(fist(), landmark.Right)
	before := raw.Index.Distal
	Rig(raw)
	if raw.Index.Distal != before {
		t.Errorf("Rig modified its input: %+v -> %+v", before, raw.Index.Distal)
	}
}

func TestJoints(t *testing.T) {
	h, err := Solve(openPalm(), landmark.Left)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	joints := h.Joints()

	if len(joints) != 16 {
		t.Errorf("expected 16 joints, got %d", len(joints))
	}
	for _, name := range []string{"LeftWrist", "LeftThumbProximal", "LeftLittleDistal", "LeftMiddleIntermediate"} {
		if _, ok := joints[name]; !ok {
			t.Errorf("missing joint %s", name)
		}
	}
	if joints["LeftRingDistal"] != h.Ring.Distal {
		t.Error("joint map does not match struct field")
	}
}

func approxEq(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}
