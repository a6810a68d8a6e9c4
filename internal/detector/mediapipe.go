package detector

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/abhinaya/internal/landmark"
)

const serviceScript = "holistic_service.py"

// MediaPipeDetector implements Detector using a Python MediaPipe Holistic
// subprocess. Frames go in as length-prefixed JPEG and landmarks come back
// as one JSON line per frame.
type MediaPipeDetector struct {
	config    Config
	script    string
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    *bufio.Reader
	mu        sync.Mutex
	started   bool
	lastUsed  time.Time
	idleTimer *time.Timer
}

// NewMediaPipeDetector creates a new MediaPipe detector.
// The Python process is started lazily on first detection.
func NewMediaPipeDetector(config Config) (*MediaPipeDetector, error) {
	script := findServiceScript()
	if script == "" {
		return nil, fmt.Errorf("%s not found", serviceScript)
	}
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = DefaultConfig().IdleTimeout
	}

	return &MediaPipeDetector{
		config: config,
		script: script,
	}, nil
}

// Detect analyzes a frame and returns the holistic landmarks. The returned
// frame carries the input size so MediaPipe's normalized coordinates can be
// scaled back to pixels.
func (d *MediaPipeDetector) Detect(frame *gocv.Mat) (*landmark.Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensureStarted(); err != nil {
		return nil, err
	}

	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	if err := writeFrame(d.stdin, buf.GetBytes()); err != nil {
		d.shutdown()
		return nil, err
	}

	line, err := d.stdout.ReadBytes('\n')
	if err != nil {
		d.shutdown()
		return nil, fmt.Errorf("read response: %w", err)
	}

	result, err := decodeResponse(line)
	if err != nil {
		return nil, err
	}
	result.ImageSize = &landmark.ImageSize{Width: float64(frame.Cols()), Height: float64(frame.Rows())}

	d.lastUsed = time.Now()
	d.resetIdleTimer()

	return result, nil
}

// Close shuts down the Python process.
func (d *MediaPipeDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shutdown()
}

// writeFrame writes a 4-byte big-endian length followed by the payload.
func writeFrame(w io.Writer, data []byte) error {
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))

	if _, err := w.Write(length); err != nil {
		return fmt.Errorf("write length: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write data: %w", err)
	}
	return nil
}

// args returns the service command line for the configured model.
func (c Config) args(script string) []string {
	args := []string{
		script,
		"--model-complexity", strconv.Itoa(c.ModelComplexity),
		"--min-detection-confidence", strconv.FormatFloat(c.MinConfidence, 'f', -1, 64),
		"--min-tracking-confidence", strconv.FormatFloat(c.MinTrackingConf, 'f', -1, 64),
	}
	if c.RefineFace {
		args = append(args, "--refine-face")
	}
	return args
}

func (d *MediaPipeDetector) ensureStarted() error {
	if d.started {
		return nil
	}

	// Use virtual environment Python if available
	pythonPath := findVenvPython()
	if pythonPath == "" {
		pythonPath = "python3"
	}

	d.cmd = exec.Command(pythonPath, d.config.args(d.script)...)

	stdin, err := d.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}

	stdout, err := d.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}

	// Capture stderr for debugging
	d.cmd.Stderr = os.Stderr

	if err := d.cmd.Start(); err != nil {
		return fmt.Errorf("start holistic service: %w", err)
	}
	log.Printf("Holistic service started (pid %d)", d.cmd.Process.Pid)

	d.stdin = stdin
	d.stdout = bufio.NewReader(stdout)
	d.started = true
	d.lastUsed = time.Now()

	return nil
}

func (d *MediaPipeDetector) shutdown() error {
	if !d.started {
		return nil
	}

	if d.idleTimer != nil {
		d.idleTimer.Stop()
		d.idleTimer = nil
	}

	if d.stdin != nil {
		d.stdin.Close()
	}

	err := d.cmd.Wait()
	d.started = false
	d.cmd = nil
	d.stdin = nil
	d.stdout = nil

	return err
}

func (d *MediaPipeDetector) resetIdleTimer() {
	if d.idleTimer != nil {
		d.idleTimer.Stop()
	}
	d.idleTimer = time.AfterFunc(d.config.IdleTimeout, d.stopIfIdle)
}

// stopIfIdle shuts the service down unless a detection ran since the timer
// was armed. Stop does not cancel a callback that already fired and is
// waiting on mu.
func (d *MediaPipeDetector) stopIfIdle() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.idle(time.Now()) {
		return
	}
	log.Printf("Holistic service idle for %s, stopping", d.config.IdleTimeout)
	if err := d.shutdown(); err != nil {
		log.Printf("Holistic service exited: %v", err)
	}
}

// idle reports whether the running service has gone unused for the idle
// timeout. Callers hold mu.
func (d *MediaPipeDetector) idle(now time.Time) bool {
	return d.started && now.Sub(d.lastUsed) >= d.config.IdleTimeout
}

// searchPaths returns the locations checked for a file shipped next to the
// binary, in order of preference.
func searchPaths(rel string) []string {
	var execDir string
	if execPath, err := os.Executable(); err == nil {
		execDir = filepath.Dir(execPath)
	}

	return []string{
		rel,
		filepath.Join("..", rel),
		filepath.Join("../..", rel),
		filepath.Join(execDir, rel),
		filepath.Join(os.Getenv("HOME"), ".abhinaya", rel),
	}
}

func firstExisting(paths []string) string {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				return absPath
			}
			return path
		}
	}
	return ""
}

func findServiceScript() string {
	return firstExisting(searchPaths(filepath.Join("scripts", serviceScript)))
}

// findVenvPython looks for a Python interpreter in a virtual environment.
func findVenvPython() string {
	return firstExisting(searchPaths("venv/bin/python"))
}
