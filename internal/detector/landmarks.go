package detector

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ayusman/abhinaya/internal/landmark"
)

// ErrService is returned when the model process reports a failure.
var ErrService = errors.New("detector: service error")

// response is one JSON line written by the holistic service.
type response struct {
	landmark.Frame
	Error string `json:"error,omitempty"`
}

// decodeResponse parses a service line into a frame. Parts with the wrong
// number of points are dropped rather than handed to the solvers.
func decodeResponse(line []byte) (*landmark.Frame, error) {
	var r response
	if err := json.Unmarshal(line, &r); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if r.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrService, r.Error)
	}

	f := r.Frame
	if n := len(f.Face); n != landmark.NumFacePoints && n != landmark.NumFaceIrisPoints {
		f.Face = nil
	}
	if len(f.LeftHand) != landmark.NumHandPoints {
		f.LeftHand = nil
	}
	if len(f.RightHand) != landmark.NumHandPoints {
		f.RightHand = nil
	}
	if len(f.Pose) != landmark.NumPosePoints || len(f.PoseWorld) != landmark.NumPosePoints {
		f.Pose = nil
		f.PoseWorld = nil
	}
	return &f, nil
}
