package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

const (
	// GaussianBlurSize is the kernel size for Gaussian blur (21x21)
	GaussianBlurSize = 21
	// DiffThreshold is the binary threshold for difference detection
	DiffThreshold = 25
	// DefaultMaxSkip bounds how many still frames in a row may be skipped.
	DefaultMaxSkip = 15
)

// StillGate decides whether a frame differs enough from the last detected
// one to be worth another landmark detection. Frames are compared against
// the last frame the gate let through, so slow drift still adds up.
type StillGate struct {
	threshold float64
	maxSkip   int
	skipped   int
	baseline  gocv.Mat
	hasBase   bool
	mu        sync.Mutex
}

// NewStillGate creates a gate that lets a frame through when more than
// threshold percent of its pixels changed, or after maxSkip still frames.
// A maxSkip of zero or less uses DefaultMaxSkip.
func NewStillGate(threshold float64, maxSkip int) *StillGate {
	if maxSkip <= 0 {
		maxSkip = DefaultMaxSkip
	}
	return &StillGate{
		threshold: threshold,
		maxSkip:   maxSkip,
		baseline:  gocv.NewMat(),
	}
}

// Changed reports whether frame should be detected and the percentage of
// pixels that changed since the last frame let through. The first frame
// always passes.
func (g *StillGate) Changed(frame *gocv.Mat) (bool, float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	blurred := blurGray(frame)
	defer blurred.Close()

	if !g.hasBase {
		g.accept(blurred)
		return true, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, g.baseline, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, DiffThreshold, 255, gocv.ThresholdBinary)

	changed := float64(gocv.CountNonZero(thresh)) / float64(thresh.Rows()*thresh.Cols()) * 100.0

	if changed > g.threshold || g.skipped >= g.maxSkip {
		g.accept(blurred)
		return true, changed
	}
	g.skipped++
	return false, changed
}

func (g *StillGate) accept(blurred gocv.Mat) {
	blurred.CopyTo(&g.baseline)
	g.hasBase = true
	g.skipped = 0
}

// blurGray converts a frame to a blurred grayscale Mat owned by the caller.
func blurGray(frame *gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: GaussianBlurSize, Y: GaussianBlurSize}, 0, 0, gocv.BorderDefault)
	return blurred
}

// Reset forgets the baseline so the next frame passes.
func (g *StillGate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.hasBase = false
	g.skipped = 0
}

// SetThreshold sets the changed-pixel percentage above which a frame passes.
// Values less than or equal to 0 are ignored.
func (g *StillGate) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.threshold = threshold
}

// Close releases the baseline Mat.
func (g *StillGate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.baseline.Close()
	g.baseline = gocv.NewMat()
	g.hasBase = false
}
