package app

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/abhinaya/internal/capture"
	"github.com/ayusman/abhinaya/internal/detector"
	"github.com/ayusman/abhinaya/internal/rig"
)

// runPipeline reads a frame every tick while tracking is enabled and hands
// it to processFrame. The camera frame rate is set once at Start.
func (a *App) runPipeline(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(time.Second / time.Duration(a.config.FPS))
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.Camera().ReadFrame()
			if errors.Is(err, capture.ErrEndOfVideo) {
				log.Println("Video finished; tracking paused")
				a.SetEnabled(false)
				continue
			}
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			a.processFrame(frame)
			frame.Close()
		}
	}
}

// processFrame runs one frame through detection, solving, broadcast and
// recording. It returns the published result, or nil when nothing was
// published. The frame is not closed.
//
// Steps:
//  1. Pass the frame to the OnFrame callbacks
//  2. Skip detection on a still scene and reuse the last result
//  3. Detect landmarks and stamp the camera size on them
//  4. Solve with the tracker
//  5. Publish to OnResult callbacks and append to the recording
func (a *App) processFrame(frame *gocv.Mat) *rig.Result {
	a.mu.Lock()
	onFrame, onResult := a.onFrame, a.onResult
	det := a.detector
	if a.rigDirty {
		a.tracker.SetOptions(a.config.Rig)
		a.rigDirty = false
	}
	a.mu.Unlock()

	for _, fn := range onFrame {
		fn(frame)
	}

	res := a.last
	changed := a.gate == nil || a.stillChanged(frame)
	if changed || res == nil {
		res = a.solve(det, frame)
		if res == nil {
			return nil
		}
		a.last = res
	}

	for _, fn := range onResult {
		fn(res)
	}
	a.record(res)
	return res
}

func (a *App) stillChanged(frame *gocv.Mat) bool {
	changed, _ := a.gate.Changed(frame)
	return changed
}

// solve detects and solves one frame. Detector failures and frames the
// solvers reject are logged and dropped; an empty frame is dropped quietly.
func (a *App) solve(det detector.Detector, frame *gocv.Mat) *rig.Result {
	lm, err := det.Detect(frame)
	if err != nil {
		log.Printf("Error detecting landmarks: %v", err)
		return nil
	}
	if lm.ImageSize == nil || !lm.ImageSize.Valid() {
		size := a.Camera().Size()
		lm.ImageSize = &size
	}

	res, err := a.tracker.Solve(lm)
	switch {
	case errors.Is(err, rig.ErrEmptyFrame):
		return nil
	case err != nil:
		log.Printf("Error solving rig: %v", err)
		return nil
	}
	return res
}

// record appends res to the active session, if any.
func (a *App) record(res *rig.Result) {
	a.mu.RLock()
	session, started := a.session, a.recStarted
	a.mu.RUnlock()

	if session == "" {
		return
	}

	data, err := json.Marshal(res)
	if err != nil {
		log.Printf("Error encoding frame: %v", err)
		return
	}
	if _, err := a.config.Store.Frames().Append(session, time.Since(started).Milliseconds(), data); err != nil {
		log.Printf("Error recording frame: %v", err)
	}
}
