package face

import (
	"math"

	"github.com/ayusman/abhinaya/internal/landmark"
	"github.com/ayusman/abhinaya/internal/vector"
)

// Plane is the face triangle used for head orientation.
type Plane struct {
	// Vertices are top-left, top-right and the midpoint of the two bottom
	// corners. Using the midpoint keeps the triangle steady when one jaw
	// corner jitters.
	Vertices [3]vector.Vector
	// Corners are the four face-box corners clockwise from top-left.
	Corners [4]vector.Vector
}

// Head is the head orientation and rough face box.
type Head struct {
	// X, Y and Z are in radians.
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	// Position is the centre of the face box.
	Position   vector.Vector `json:"position"`
	Normalized vector.Vector `json:"normalized"`
	Degrees    vector.Vector `json:"degrees"`
}

// Euler returns the head rotation in radians.
func (h Head) Euler() vector.Euler {
	return vector.NewEuler(h.X, h.Y, h.Z)
}

// CreateEulerPlane builds the face plane from the four face-box corners.
func CreateEulerPlane(lm []landmark.Landmark) Plane {
	p1 := lm[landmark.FaceTopLeft].Vector()
	p2 := lm[landmark.FaceTopRight].Vector()
	p3 := lm[landmark.FaceBottomRight].Vector()
	p4 := lm[landmark.FaceBottomLeft].Vector()

	return Plane{
		Vertices: [3]vector.Vector{p1, p2, p3.Lerp(p4, 0.5)},
		Corners:  [4]vector.Vector{p1, p2, p3, p4},
	}
}

// CalcHead returns the head rotation with x and z flipped into avatar
// convention, plus the face box size and centre.
func CalcHead(lm []landmark.Landmark) Head {
	v := CreateEulerPlane(lm).Vertices
	rot := vector.RollPitchYaw(v[0], v[1], v[2])
	rot = vector.New(-rot.X, rot.Y, -rot.Z)

	mid := v[0].Lerp(v[1], 0.5)

	return Head{
		X:          rot.X * math.Pi,
		Y:          rot.Y * math.Pi,
		Z:          rot.Z * math.Pi,
		Width:      vector.Finite(v[0].Distance(v[1], 3)),
		Height:     vector.Finite(mid.Distance(v[2], 3)),
		Position:   mid.Lerp(v[2], 0.5),
		Normalized: rot,
		Degrees:    rot.Scale(180),
	}
}
