package detector

import (
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayusman/abhinaya/internal/landmark"
	"github.com/ayusman/abhinaya/testdata"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	mu    sync.Mutex
	frame *landmark.Frame
	err   error
	calls int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetFrame sets the frame that will be returned by Detect.
func (m *MockDetector) SetFrame(f *landmark.Frame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frame = f
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Detect was called.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns a copy of the pre-configured frame or error. Without a
// configured frame it returns an empty one.
func (m *MockDetector) Detect(frame *gocv.Mat) (*landmark.Frame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.err != nil {
		return nil, m.err
	}
	if m.frame == nil {
		return &landmark.Frame{}, nil
	}
	return m.frame.Copy(), nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// NeutralFaceFrame returns a frame with a relaxed, front-facing face.
func NeutralFaceFrame() *landmark.Frame {
	return &landmark.Frame{Face: testdata.NeutralFace()}
}

// OpenPalmFrame returns a frame with one open hand on the given side.
func OpenPalmFrame(side landmark.Side) *landmark.Frame {
	return handFrame(side, testdata.OpenPalm())
}

// FistFrame returns a frame with one closed hand on the given side.
func FistFrame(side landmark.Side) *landmark.Frame {
	return handFrame(side, testdata.Fist())
}

func handFrame(side landmark.Side, lm []landmark.Landmark) *landmark.Frame {
	if side == landmark.Left {
		return &landmark.Frame{LeftHand: lm}
	}
	return &landmark.Frame{RightHand: lm}
}

// TPoseFrame returns a frame with a full-body T-pose.
func TPoseFrame() *landmark.Frame {
	world, screen := testdata.TPose()
	return &landmark.Frame{Pose: screen, PoseWorld: world}
}
