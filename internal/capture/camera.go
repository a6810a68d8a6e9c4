// Package capture reads the video frames the tracker runs on, from a webcam
// or a recorded video file.
package capture

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayusman/abhinaya/internal/landmark"
)

// Capture defaults. MediaPipe Holistic runs comfortably at 640x480.
const (
	DefaultFPS    = 30
	DefaultWidth  = 640
	DefaultHeight = 480
)

var (
	// ErrCameraNotOpen is returned when reading from a closed camera.
	ErrCameraNotOpen = errors.New("camera is not open")
	// ErrEndOfVideo is returned when a non-looping video file runs out.
	ErrEndOfVideo = errors.New("end of video")
	// ErrEmptyCapture is returned when the device hands back no pixels.
	ErrEmptyCapture = errors.New("captured frame is empty")
)

// Camera is a source of video frames.
type Camera interface {
	Open() error
	Close() error
	// ReadFrame returns the next frame. The caller closes it.
	ReadFrame() (*gocv.Mat, error)
	SetFPS(fps int)
	FPS() int
	IsOpen() bool
	// Size returns the pixel size of the frames being captured.
	Size() landmark.ImageSize
}

// Options selects a capture source.
type Options struct {
	// Device is a camera index such as "0", or a video file path.
	Device string
	// Width and Height are requested from cameras; files keep their own.
	Width  int
	Height int
	FPS    int
	// Loop restarts a video file when it ends.
	Loop bool
}

// DefaultOptions returns the first camera at the default size and rate.
func DefaultOptions() Options {
	return Options{Device: "0", Width: DefaultWidth, Height: DefaultHeight, FPS: DefaultFPS, Loop: true}
}

// deviceIndex reports whether Device names a camera index.
func (o Options) deviceIndex() (int, bool) {
	id, err := strconv.Atoi(o.Device)
	return id, err == nil && id >= 0
}

// videoCamera reads frames through OpenCV's VideoCapture.
type videoCamera struct {
	opts    Options
	mu      sync.Mutex
	capture *gocv.VideoCapture
	size    landmark.ImageSize
}

// NewCamera creates a Camera for opts. Zero fields take the defaults.
func NewCamera(opts Options) Camera {
	def := DefaultOptions()
	if opts.Device == "" {
		opts.Device = def.Device
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = def.Width, def.Height
	}
	if opts.FPS <= 0 {
		opts.FPS = def.FPS
	}
	return &videoCamera{
		opts: opts,
		size: landmark.ImageSize{Width: float64(opts.Width), Height: float64(opts.Height)},
	}
}

// Open starts capture. For cameras it requests the configured size and
// records what the device actually delivers.
func (c *videoCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capture != nil {
		return nil
	}

	var (
		vc  *gocv.VideoCapture
		err error
	)
	id, isDevice := c.opts.deviceIndex()
	if isDevice {
		vc, err = gocv.OpenVideoCapture(id)
	} else {
		vc, err = gocv.VideoCaptureFile(c.opts.Device)
	}
	if err != nil {
		return fmt.Errorf("open capture %q: %w", c.opts.Device, err)
	}

	if isDevice {
		vc.Set(gocv.VideoCaptureFrameWidth, float64(c.opts.Width))
		vc.Set(gocv.VideoCaptureFrameHeight, float64(c.opts.Height))
		vc.Set(gocv.VideoCaptureFPS, float64(c.opts.FPS))
	}
	if w, h := vc.Get(gocv.VideoCaptureFrameWidth), vc.Get(gocv.VideoCaptureFrameHeight); w > 0 && h > 0 {
		c.size = landmark.ImageSize{Width: w, Height: h}
	}

	c.capture = vc
	return nil
}

// Close releases the capture. Closing a closed camera is a no-op.
func (c *videoCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capture == nil {
		return nil
	}
	err := c.capture.Close()
	c.capture = nil
	return err
}

func (c *videoCamera) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capture == nil {
		return nil, ErrCameraNotOpen
	}

	mat := gocv.NewMat()
	ok := c.capture.Read(&mat)
	if !ok || mat.Empty() {
		if _, isDevice := c.opts.deviceIndex(); isDevice {
			mat.Close()
			return nil, ErrEmptyCapture
		}
		if !c.opts.Loop {
			mat.Close()
			return nil, ErrEndOfVideo
		}
		c.capture.Set(gocv.VideoCapturePosFrames, 0)
		if !c.capture.Read(&mat) || mat.Empty() {
			mat.Close()
			return nil, ErrEndOfVideo
		}
	}

	c.size = landmark.ImageSize{Width: float64(mat.Cols()), Height: float64(mat.Rows())}
	return &mat, nil
}

// SetFPS changes the capture rate. Values <= 0 are ignored.
func (c *videoCamera) SetFPS(fps int) {
	if fps <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.opts.FPS = fps
	if c.capture != nil {
		c.capture.Set(gocv.VideoCaptureFPS, float64(fps))
	}
}

func (c *videoCamera) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opts.FPS
}

func (c *videoCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.capture != nil
}

// Size returns the size of the last frame read, or the requested size
// before the first read.
func (c *videoCamera) Size() landmark.ImageSize {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}
