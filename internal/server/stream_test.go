package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestStreamHandler(t *testing.T) {
	t.Run("only allows GET", func(t *testing.T) {
		h := NewStreamHandler()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/stream", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
		}
	})

	t.Run("writes the pushed frame once", func(t *testing.T) {
		h := NewStreamHandler()
		jpeg := []byte{0xff, 0xd8, 0xff, 0xd9}
		h.PushJPEG(jpeg)

		ctx, cancel := context.WithTimeout(context.Background(), 3*streamInterval)
		defer cancel()

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stream", nil).WithContext(ctx))

		if ct := rec.Header().Get("Content-Type"); ct != "multipart/x-mixed-replace; boundary=frame" {
			t.Errorf("unexpected Content-Type %q", ct)
		}
		body := rec.Body.Bytes()
		if n := bytes.Count(body, []byte("--frame")); n != 1 {
			t.Errorf("expected the unchanged frame to be sent once, got %d parts", n)
		}
		if !bytes.Contains(body, jpeg) {
			t.Error("expected JPEG bytes in the stream")
		}
	})

	t.Run("no frames until pushed", func(t *testing.T) {
		h := NewStreamHandler()
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stream", nil).WithContext(ctx))
		if rec.Body.Len() != 0 {
			t.Errorf("expected empty body, got %d bytes", rec.Body.Len())
		}
	})
}
