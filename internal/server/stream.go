package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// streamInterval paces the MJPEG stream at about 15 FPS.
const streamInterval = 66 * time.Millisecond

// StreamHandler serves the latest camera frame as MJPEG. The pipeline pushes
// frames into it so the camera is only ever read by one goroutine.
type StreamHandler struct {
	mu   sync.RWMutex
	jpeg []byte
	seq  uint64
}

// NewStreamHandler creates an empty StreamHandler.
func NewStreamHandler() *StreamHandler {
	return &StreamHandler{}
}

// Push encodes frame as JPEG and makes it the current stream frame.
func (h *StreamHandler) Push(frame *gocv.Mat) error {
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	h.PushJPEG(buf.GetBytes())
	return nil
}

// PushJPEG makes data the current stream frame. The bytes are copied.
func (h *StreamHandler) PushJPEG(data []byte) {
	b := make([]byte, len(data))
	copy(b, data)

	h.mu.Lock()
	h.jpeg = b
	h.seq++
	h.mu.Unlock()
}

func (h *StreamHandler) latest() ([]byte, uint64) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.jpeg, h.seq
}

// ServeHTTP streams MJPEG frames to connected clients.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()

	var sent uint64
	for {
		if data, seq := h.latest(); seq != sent && data != nil {
			fmt.Fprintf(w, "--frame\r\n")
			fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
			fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(data))
			if _, err := w.Write(data); err != nil {
				return
			}
			fmt.Fprintf(w, "\r\n")
			sent = seq

			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		}

		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
