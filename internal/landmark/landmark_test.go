package landmark

import "testing"

func TestSide(t *testing.T) {
	if Right.Invert() != 1 {
		t.Errorf("expected right invert 1, got %f", Right.Invert())
	}
	if Left.Invert() != -1 {
		t.Errorf("expected left invert -1, got %f", Left.Invert())
	}
	if Side("Up").Valid() {
		t.Error("unexpected valid side")
	}
}

func TestParseSource(t *testing.T) {
	t.Run("known names", func(t *testing.T) {
		cases := map[string]Source{
			"":          SourceMediaPipe,
			"mediapipe": SourceMediaPipe,
			"TFJS":      SourceTFJS,
			" tfjs ":    SourceTFJS,
		}
		for name, expected := range cases {
			got, err := ParseSource(name)
			if err != nil {
				t.Errorf("ParseSource(%q) unexpected error: %v", name, err)
			}
			if got != expected {
				t.Errorf("ParseSource(%q): expected %v, got %v", name, expected, got)
			}
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		if _, err := ParseSource("openpose"); err == nil {
			t.Error("expected error for unknown source")
		}
	})

	t.Run("text round trip", func(t *testing.T) {
		var s Source
		if err := s.UnmarshalText([]byte("tfjs")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text, _ := s.MarshalText()
		if string(text) != "tfjs" {
			t.Errorf("expected tfjs, got %s", text)
		}
	})
}

func TestScaleToImage(t *testing.T) {
	in := []Landmark{{X: 0.5, Y: 0.25, Z: 0.1}}
	size := &ImageSize{Width: 640, Height: 480}

	out := ScaleToImage(in, size)

	if out[0].X != 320 || out[0].Y != 120 || out[0].Z != 64 {
		t.Errorf("unexpected scaled landmark %+v", out[0])
	}
	if in[0].X != 0.5 {
		t.Error("input landmarks were modified")
	}

	t.Run("missing size copies unchanged", func(t *testing.T) {
		out := ScaleToImage(in, nil)
		if out[0] != in[0] {
			t.Errorf("expected unchanged copy, got %+v", out[0])
		}
	})
}

func TestNormalizeToImage(t *testing.T) {
	in := []Landmark{{X: 320, Y: 120, Z: 7, Score: 0.8}}
	out := NormalizeToImage(in, &ImageSize{Width: 640, Height: 480})

	if out[0].X != 0.5 || out[0].Y != 0.25 || out[0].Z != 0 {
		t.Errorf("unexpected normalised landmark %+v", out[0])
	}
	if out[0].Visibility != 0.8 {
		t.Errorf("expected visibility from score, got %f", out[0].Visibility)
	}
	if in[0].X != 320 || in[0].Visibility != 0 {
		t.Error("input landmarks were modified")
	}
}

func TestFrameEmpty(t *testing.T) {
	var nilFrame *Frame
	if !nilFrame.Empty() {
		t.Error("nil frame should be empty")
	}
	if !(&Frame{}).Empty() {
		t.Error("zero frame should be empty")
	}
	if (&Frame{LeftHand: make([]Landmark, NumHandPoints)}).Empty() {
		t.Error("frame with a hand should not be empty")
	}
}
