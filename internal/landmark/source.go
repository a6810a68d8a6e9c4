package landmark

import (
	"fmt"
	"strings"
)

// Source is the detector runtime that produced a landmark set. Sources
// differ in coordinate space, so each one has its own pre-normalisation.
type Source int

const (
	// SourceMediaPipe reports normalised [0,1] screen coordinates and
	// per-point visibility.
	SourceMediaPipe Source = iota
	// SourceTFJS reports pixel coordinates and per-point score.
	SourceTFJS
)

// String returns the lower-case runtime name.
func (s Source) String() string {
	switch s {
	case SourceTFJS:
		return "tfjs"
	default:
		return "mediapipe"
	}
}

// ParseSource converts a runtime name into a Source.
func ParseSource(name string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "mediapipe":
		return SourceMediaPipe, nil
	case "tfjs":
		return SourceTFJS, nil
	default:
		return SourceMediaPipe, fmt.Errorf("unknown landmark source %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Source) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Source) UnmarshalText(text []byte) error {
	parsed, err := ParseSource(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ScaleToImage returns a copy of lm with normalised coordinates scaled up to
// pixels: x by width, y by height and z by width. The face solver expects
// pixel-proportional input so that eye ratios are not skewed by the frame's
// aspect ratio.
func ScaleToImage(lm []Landmark, size *ImageSize) []Landmark {
	out := Copy(lm)
	if !size.Valid() {
		return out
	}
	for i := range out {
		out[i].X *= size.Width
		out[i].Y *= size.Height
		out[i].Z *= size.Width
	}
	return out
}

// NormalizeToImage returns a copy of lm with pixel coordinates divided down
// to [0,1] screen space, depth dropped and score promoted to visibility.
func NormalizeToImage(lm []Landmark, size *ImageSize) []Landmark {
	out := Copy(lm)
	if !size.Valid() {
		return out
	}
	for i := range out {
		out[i].X /= size.Width
		out[i].Y /= size.Height
		out[i].Z = 0
		out[i].Visibility = out[i].Score
	}
	return out
}

// PromoteScore returns a copy of lm whose visibility is taken from score.
func PromoteScore(lm []Landmark) []Landmark {
	out := Copy(lm)
	for i := range out {
		out[i].Visibility = out[i].Score
	}
	return out
}
