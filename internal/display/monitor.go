package display

import (
	"log/slog"
	"unsafe"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
)

// MonitorWatcher tracks the monitor banners are shown on and reports when
// its geometry changes, which is how rotation and resolution changes reach
// the presenter.
type MonitorWatcher struct {
	display *gdk.Display
	logger  *slog.Logger

	index    int // 0 = first monitor, 1+ = configured monitor
	monitor  *gdk.Monitor
	geometry glib.SignalHandle

	onChange func()
}

// NewMonitorWatcher creates a watcher for the configured 1-based monitor
// number; 0 selects the first monitor.
func NewMonitorWatcher(index int, logger *slog.Logger) *MonitorWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &MonitorWatcher{
		display: gdk.DisplayGetDefault(),
		logger:  logger,
		index:   index,
	}
}

// SetChangeCallback sets the function called when the monitor or its
// geometry changes.
func (w *MonitorWatcher) SetChangeCallback(callback func()) {
	w.onChange = callback
}

// Start selects the monitor and begins watching for changes.
func (w *MonitorWatcher) Start() error {
	if w.display == nil {
		return &DisplayError{Message: "no display available"}
	}
	w.display.Monitors().ConnectItemsChanged(func(_, removed, added uint) {
		w.logger.Info("monitor configuration changed", "removed", removed, "added", added)
		w.selectMonitor()
		w.changed()
	})
	w.selectMonitor()
	return nil
}

// SetIndex switches to another configured monitor.
func (w *MonitorWatcher) SetIndex(index int) {
	if index == w.index {
		return
	}
	w.index = index
	w.selectMonitor()
	w.changed()
}

// Monitor returns the selected monitor, or nil when none is connected.
func (w *MonitorWatcher) Monitor() *gdk.Monitor {
	return w.monitor
}

// Width returns the width of the selected monitor in logical pixels.
func (w *MonitorWatcher) Width() float64 {
	if w.monitor == nil {
		return 0
	}
	return float64(w.monitor.Geometry().Width())
}

func (w *MonitorWatcher) selectMonitor() {
	if w.monitor != nil && w.geometry != 0 {
		w.monitor.HandlerDisconnect(w.geometry)
		w.geometry = 0
	}

	w.monitor = monitorAt(w.display, w.index)
	if w.monitor == nil {
		w.logger.Warn("no monitor available")
		return
	}
	w.geometry = w.monitor.NotifyProperty("geometry", func() {
		w.logger.Debug("monitor geometry changed", "width", w.Width())
		w.changed()
	})
	w.logger.Debug("selected monitor", "index", w.index, "connector", w.monitor.Connector(), "width", w.Width())
}

func (w *MonitorWatcher) changed() {
	if w.onChange != nil {
		w.onChange()
	}
}

// monitorAt returns the 1-based monitor, falling back to the first one.
func monitorAt(display *gdk.Display, index int) *gdk.Monitor {
	monitors := display.Monitors()
	if monitors == nil || monitors.NItems() == 0 {
		return nil
	}
	i := uint(0)
	if index > 0 && uint(index-1) < monitors.NItems() {
		i = uint(index - 1)
	}
	return wrapMonitor(monitors.Item(i))
}

// wrapMonitor casts a list model item to a gdk.Monitor. gotk4 keeps its own
// wrapper unexported; gdk.Monitor is a struct embedding *glib.Object.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	return (*gdk.Monitor)(unsafe.Pointer(&monitor{Object: obj}))
}
