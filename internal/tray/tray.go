// Package tray provides the system tray menu for Abhinaya.
package tray

import (
	"strings"
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/abhinaya/internal/rig"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle func(enabled bool)
	onRecord func(recording bool)
	onViewer func()
	onQuit   func()

	enabled   bool
	recording bool
	mu        sync.RWMutex

	menuToggle *systray.MenuItem
	menuRecord *systray.MenuItem
	menuStatus *systray.MenuItem
}

// New creates a new Tray with tracking enabled.
func New() *Tray {
	return &Tray{
		enabled: true,
	}
}

// OnToggle sets the callback run when tracking is switched on or off.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnRecord sets the callback run when recording is started or stopped.
func (t *Tray) OnRecord(fn func(recording bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onRecord = fn
}

// OnViewer sets the callback run when the viewer menu item is clicked.
func (t *Tray) OnViewer(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onViewer = fn
}

// OnQuit sets the callback run when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, func() {})
}

func (t *Tray) onReady() {
	systray.SetTitle("Abhinaya")
	systray.SetTooltip("Abhinaya Motion Capture")

	t.mu.Lock()
	t.menuToggle = systray.AddMenuItem(toggleTitle(t.enabled), "Toggle tracking")
	t.menuRecord = systray.AddMenuItem(recordTitle(t.recording), "Record solved frames to a session")
	systray.AddSeparator()

	t.menuStatus = systray.AddMenuItem(StatusLine(nil), "Parts in the last solved frame")
	t.menuStatus.Disable()
	t.mu.Unlock()
	systray.AddSeparator()

	menuViewer := systray.AddMenuItem("Open Viewer...", "Open the rig viewer in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Abhinaya")

	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-t.menuRecord.ClickedCh:
				t.handleRecord()
			case <-menuViewer.ClickedCh:
				t.handleViewer()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled
	t.menuToggle.SetTitle(toggleTitle(enabled))
	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

func (t *Tray) handleRecord() {
	t.mu.Lock()
	t.recording = !t.recording
	recording := t.recording
	t.menuRecord.SetTitle(recordTitle(recording))
	callback := t.onRecord
	t.mu.Unlock()

	if callback != nil {
		callback(recording)
	}
}

func (t *Tray) handleViewer() {
	t.mu.RLock()
	callback := t.onViewer
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetResult shows which parts the last solved frame carried.
func (t *Tray) SetResult(res *rig.Result) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuStatus != nil {
		t.menuStatus.SetTitle(StatusLine(res))
	}
}

// IsEnabled returns the current tracking state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

// IsRecording returns whether the tray has recording switched on.
func (t *Tray) IsRecording() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.recording
}

// StatusLine formats the tracked parts of res for the status menu item.
func StatusLine(res *rig.Result) string {
	if res == nil {
		return "Tracking: none"
	}

	var parts []string
	if res.Face != nil {
		parts = append(parts, "face")
	}
	if res.Pose != nil {
		parts = append(parts, "pose")
	}
	if res.LeftHand != nil {
		parts = append(parts, "left hand")
	}
	if res.RightHand != nil {
		parts = append(parts, "right hand")
	}
	if len(parts) == 0 {
		return "Tracking: none"
	}
	return "Tracking: " + strings.Join(parts, ", ")
}

func toggleTitle(enabled bool) string {
	if enabled {
		return "● Tracking"
	}
	return "○ Paused"
}

func recordTitle(recording bool) string {
	if recording {
		return "■ Stop Recording"
	}
	return "● Start Recording"
}

// Quit closes the tray, making Run return.
func (t *Tray) Quit() {
	systray.Quit()
}
