package face

import (
	"testing"

	"github.com/ayusman/abhinaya/internal/landmark"
	"github.com/ayusman/abhinaya/testdata"
)

func TestEyeOpen(t *testing.T) {
	tests := []struct {
		name     string
		gap      float64
		expected float64
	}{
		{"closed", 0, 0},
		{"wide open", 0.03, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lm := syntheticFace(testdata.FaceParams{EyeGap: tt.gap, BrowGap: 0.092})
			got := EyeOpen(lm, landmark.Left, TFJSThresholds)
			if got.Norm != tt.expected {
				t.Errorf("expected norm %f, got %f", tt.expected, got.Norm)
			}
			if got.Raw < 0 || got.Raw > 2 {
				t.Errorf("raw ratio out of [0,2]: %f", got.Raw)
			}
		})
	}

	t.Run("raw ratio saturates at 2", func(t *testing.T) {
		lm := syntheticFace(testdata.FaceParams{EyeGap: 0.2, BrowGap: 0.092})
		if got := EyeOpen(lm, landmark.Right, TFJSThresholds); got.Raw != 2 {
			t.Errorf("expected raw 2, got %f", got.Raw)
		}
	})
}

func TestPupilPos(t *testing.T) {
	lm := syntheticFace(testdata.FaceParams{EyeGap: 0.02, BrowGap: 0.092, PupilDX: 0.0075})

	p := CalcPupils(lm)
	// Offset of a quarter half-width times sensitivity 4.
	if !approx(p.X, 1) {
		t.Errorf("expected pupil x 1, got %f", p.X)
	}
	if !approx(p.Y, 0) {
		t.Errorf("expected pupil y 0, got %f", p.Y)
	}
}

func TestBrowRaise(t *testing.T) {
	t.Run("fully raised", func(t *testing.T) {
		// Gap ratio 1.15 * 1.2 sits above the high band.
		lm := syntheticFace(testdata.FaceParams{EyeGap: 0.02, BrowGap: 0.08 * 1.15 * 1.2})
		if got := CalcBrow(lm); !approx(got, 1) {
			t.Errorf("expected brow 1, got %f", got)
		}
	})

	t.Run("half raised", func(t *testing.T) {
		ratio := (1 + (BrowLow+BrowHigh)/2) * MaxBrowRatio
		lm := syntheticFace(testdata.FaceParams{EyeGap: 0.02, BrowGap: 0.08 * ratio})
		if got := CalcBrow(lm); got < 0.45 || got > 0.55 {
			t.Errorf("expected brow near 0.5, got %f", got)
		}
	})
}

func TestStabilizeBlink(t *testing.T) {
	opts := DefaultStabilizeOptions()

	t.Run("head turned right mirrors the right eye", func(t *testing.T) {
		got := StabilizeBlink(Eyes{L: 0.1, R: 0.9}, 0.7, opts)
		if got.L != got.R || got.R != 0.9 {
			t.Errorf("expected both 0.9, got %+v", got)
		}
	})

	t.Run("head turned left mirrors the left eye", func(t *testing.T) {
		got := StabilizeBlink(Eyes{L: 0.1, R: 0.9}, -0.7, opts)
		if got.L != got.R || got.L != 0.1 {
			t.Errorf("expected both 0.1, got %+v", got)
		}
	})

	t.Run("wink passes through", func(t *testing.T) {
		got := StabilizeBlink(Eyes{L: 0, R: 0.9}, 0, opts)
		if got.L != 0 || got.R != 0.9 {
			t.Errorf("expected wink kept, got %+v", got)
		}
	})

	t.Run("wink disabled blends", func(t *testing.T) {
		got := StabilizeBlink(Eyes{L: 0, R: 0.9}, 0, StabilizeOptions{WinkThreshold: WinkThresholdDisabled})
		if got.L != got.R {
			t.Errorf("expected blended eyes, got %+v", got)
		}
	})

	t.Run("blend favours the more open eye", func(t *testing.T) {
		got := StabilizeBlink(Eyes{L: 0.4, R: 0.8}, 0, opts)
		if !approx(got.L, 0.4*0.05+0.8*0.95) || got.L != got.R {
			t.Errorf("unexpected blend %+v", got)
		}
	})

	t.Run("inputs are clamped", func(t *testing.T) {
		got := StabilizeBlink(Eyes{L: 1.5, R: -0.5}, 1, opts)
		if got.L != 0 || got.R != 0 {
			t.Errorf("expected clamped right eye on both sides, got %+v", got)
		}
	})

	t.Run("fixed point", func(t *testing.T) {
		inputs := []Eyes{{L: 0.2, R: 0.7}, {L: 0, R: 0.95}, {L: 0.5, R: 0.5}, {L: 0.05, R: 0.25}}
		for _, yaw := range []float64{-0.8, -0.2, 0, 0.3, 0.9} {
			for _, e := range inputs {
				once := StabilizeBlink(e, yaw, opts)
				twice := StabilizeBlink(once, yaw, opts)
				if once != twice {
					t.Errorf("not idempotent for %+v yaw %f: %+v then %+v", e, yaw, once, twice)
				}
			}
		}
	})

	t.Run("zero options use defaults", func(t *testing.T) {
		got := StabilizeBlink(Eyes{L: 0.2, R: 0.6}, 0.6, StabilizeOptions{})
		if got.L != 0.6 {
			t.Errorf("expected default yaw limit 0.5 to apply, got %+v", got)
		}
	})
}

func TestCalcMouth(t *testing.T) {
	closed := CalcMouth(syntheticFace(neutral))
	open := CalcMouth(syntheticFace(testdata.FaceParams{EyeGap: 0.02, BrowGap: 0.092, MouthGap: 0.05}))

	if closed.Y != 0 {
		t.Errorf("expected closed mouth y 0, got %f", closed.Y)
	}
	if open.Y <= closed.Y {
		t.Errorf("expected open mouth to raise y: %f vs %f", open.Y, closed.Y)
	}
	if !approx(open.Shape.A, 1) {
		t.Errorf("expected full A on a narrow open mouth, got %f", open.Shape.A)
	}
	if open.Shape.O <= 0 || open.Shape.O > open.Shape.A {
		t.Errorf("expected 0 < O <= A, got %+v", open.Shape)
	}
	if open.X < -0.6 || open.X > 1.4 {
		t.Errorf("mouth x out of range: %f", open.X)
	}
}
