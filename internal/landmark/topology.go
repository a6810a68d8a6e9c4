package landmark

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist         = 0
	ThumbCMC      = 1
	ThumbMCP      = 2
	ThumbIP       = 3
	ThumbTip      = 4
	IndexMCP      = 5
	IndexPIP      = 6
	IndexDIP      = 7
	IndexTip      = 8
	MiddleMCP     = 9
	MiddlePIP     = 10
	MiddleDIP     = 11
	MiddleTip     = 12
	RingMCP       = 13
	RingPIP       = 14
	RingDIP       = 15
	RingTip       = 16
	PinkyMCP      = 17
	PinkyPIP      = 18
	PinkyDIP      = 19
	PinkyTip      = 20
	NumHandPoints = 21
)

// Pose landmark indices (BlazePose topology). Only the body points the pose
// solver reads are named.
const (
	LeftShoulder  = 11
	RightShoulder = 12
	LeftElbow     = 13
	RightElbow    = 14
	LeftWrist     = 15
	RightWrist    = 16
	LeftPinky     = 17
	RightPinky    = 18
	LeftIndex     = 19
	RightIndex    = 20
	LeftHip       = 23
	RightHip      = 24
	LeftKnee      = 25
	RightKnee     = 26
	LeftAnkle     = 27
	RightAnkle    = 28
	NumPosePoints = 33
	// MinPosePoints is the shortest pose sequence the solver can index.
	MinPosePoints = RightAnkle + 1
)

// Face mesh sizes.
const (
	// NumFacePoints is the face mesh without iris refinement.
	NumFacePoints = 468
	// NumFaceIrisPoints is the face mesh with the ten iris points appended.
	NumFaceIrisPoints = 478
)

// Face mesh indices read by the head and mouth solvers.
const (
	FaceTopLeft      = 21
	FaceTopRight     = 251
	FaceBottomRight  = 397
	FaceBottomLeft   = 172
	UpperInnerLip    = 13
	LowerInnerLip    = 14
	MouthCornerLeft  = 61
	MouthCornerRight = 291
	EyeInnerLeft     = 133
	EyeInnerRight    = 362
	EyeOuterLeft     = 130
	EyeOuterRight    = 263
)

// EyeOutline lists the eight lid points of one eye in the order outer
// corner, inner corner, outer/mid/inner upper lid, outer/mid/inner lower lid.
type EyeOutline [8]int

var (
	// EyePoints are the lid outlines per side.
	EyePoints = map[Side]EyeOutline{
		Left:  {130, 133, 160, 159, 158, 144, 145, 153},
		Right: {263, 362, 387, 386, 385, 373, 374, 380},
	}
	// BrowPoints reuse the lid layout with the brow as the upper lid.
	BrowPoints = map[Side]EyeOutline{
		Left:  {35, 244, 63, 105, 66, 229, 230, 231},
		Right: {265, 464, 293, 334, 296, 449, 450, 451},
	}
	// PupilPoints are the iris centre followed by its four rim points.
	PupilPoints = map[Side][5]int{
		Left:  {468, 469, 470, 471, 472},
		Right: {473, 474, 475, 476, 477},
	}
)
