package display

import (
	"time"

	"github.com/diamondburned/gotk4/pkg/core/glib"
)

// frameInterval is roughly one frame at 60Hz.
const frameInterval = 16 * time.Millisecond

// FrameDriver calls tick on the GTK main loop until tick returns false.
type FrameDriver struct {
	tick    func(now time.Time) bool
	handle  glib.SourceHandle
	running bool
}

// NewFrameDriver creates a stopped driver.
func NewFrameDriver(tick func(now time.Time) bool) *FrameDriver {
	return &FrameDriver{tick: tick}
}

// Start begins ticking. It is a no-op when already running.
func (f *FrameDriver) Start() {
	if f.running {
		return
	}
	f.running = true
	f.handle = glib.TimeoutAdd(uint(frameInterval.Milliseconds()), func() bool {
		if f.tick(time.Now()) {
			return true
		}
		f.running = false
		return false
	})
}

// Stop cancels ticking.
func (f *FrameDriver) Stop() {
	if !f.running {
		return
	}
	f.running = false
	glib.SourceRemove(f.handle)
}

// Running reports whether the driver is ticking.
func (f *FrameDriver) Running() bool {
	return f.running
}
