package face

import (
	"github.com/ayusman/abhinaya/internal/landmark"
	"github.com/ayusman/abhinaya/internal/vector"
)

// Shape holds the viseme weights, each in [0,1].
type Shape struct {
	A float64 `json:"A"`
	E float64 `json:"E"`
	I float64 `json:"I"`
	O float64 `json:"O"`
	U float64 `json:"U"`
}

// Mouth is the mouth opening and shape.
type Mouth struct {
	// X is the mouth width ratio, in [-0.6, 1.4].
	X float64 `json:"x"`
	// Y is the mouth open ratio, in [0,1].
	Y     float64 `json:"y"`
	Shape Shape   `json:"shape"`
}

// CalcMouth measures the mouth against the eye corners so the result does
// not depend on the distance to the camera. The I weight is derived first
// and the others share whatever opening it leaves.
func CalcMouth(lm []landmark.Landmark) Mouth {
	p := func(i int) vector.Vector { return lm[i].Vector() }

	eyeInner := p(landmark.EyeInnerLeft).Distance(p(landmark.EyeInnerRight), 3)
	eyeOuter := p(landmark.EyeOuterLeft).Distance(p(landmark.EyeOuterRight), 3)
	open := p(landmark.UpperInnerLip).Distance(p(landmark.LowerInnerLip), 3)
	width := p(landmark.MouthCornerLeft).Distance(p(landmark.MouthCornerRight), 3)

	openRatio := vector.SafeDiv(open, eyeInner)
	ratioY := vector.Remap(openRatio, 0.15, 0.7)
	ratioX := (vector.Remap(vector.SafeDiv(width, eyeOuter), 0.45, 0.9) - 0.3) * 2
	mouthY := vector.Remap(openRatio, 0.17, 0.5)

	i := vector.Clamp(vector.Remap(ratioX, 0, 1)*2*vector.Remap(mouthY, 0.2, 0.7), 0, 1)
	a := mouthY*0.4 + mouthY*(1-i)*0.6
	u := mouthY * vector.Remap(1-i, 0, 0.3) * 0.1
	e := vector.Remap(u, 0.2, 1) * (1 - i) * 0.3
	o := (1 - i) * vector.Remap(mouthY, 0.3, 1) * 0.4

	return Mouth{
		X: vector.Finite(ratioX),
		Y: vector.Finite(ratioY),
		Shape: Shape{
			A: vector.Finite(a),
			E: vector.Finite(e),
			I: vector.Finite(i),
			O: vector.Finite(o),
			U: vector.Finite(u),
		},
	}
}
