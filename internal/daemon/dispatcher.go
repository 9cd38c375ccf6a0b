package daemon

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/jmylchreest/shout/internal/banner"
	"github.com/jmylchreest/shout/internal/config"
	"github.com/jmylchreest/shout/internal/dbus"
)

// Display shows banners. Implementations run on the UI thread.
type Display interface {
	Show(a banner.Announcement) error
	// Close dismisses the banner if it is still showing announcementID.
	Close(announcementID string)
}

// Signaller reports notification events back over the bus.
type Signaller interface {
	EmitActionInvoked(id uint32, actionKey string) error
	CloseWithReason(id uint32, reason dbus.CloseReason) error
}

// Chime plays the sound for a notification.
type Chime interface {
	PlayFor(n *dbus.DBusNotification) error
}

// Dispatcher turns D-Bus notifications into banners and banner endings into
// D-Bus signals. Its Handle methods must be called on the UI thread.
type Dispatcher struct {
	mu  sync.RWMutex
	cfg *config.Config

	display  Display
	signals  Signaller
	chime    Chime
	tracker  *Tracker
	notifier *InternalNotifier
	logger   *slog.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(cfg *config.Config, display Display, signals Signaller, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		cfg:     cfg,
		display: display,
		signals: signals,
		tracker: NewTracker(),
		logger:  logger,
	}
}

// SetChime sets the sound player. A nil chime disables sound.
func (d *Dispatcher) SetChime(c Chime) {
	d.chime = c
}

// SetNotifier sets where audio failures are reported.
func (d *Dispatcher) SetNotifier(n *InternalNotifier) {
	d.notifier = n
}

// SetConfig replaces the configuration used for subsequent notifications.
func (d *Dispatcher) SetConfig(cfg *config.Config) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cfg = cfg
}

func (d *Dispatcher) config() *config.Config {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cfg
}

// Tracker returns the id tracker.
func (d *Dispatcher) Tracker() *Tracker {
	return d.tracker
}

// HandleNotify presents a notification, superseding any banner on screen.
func (d *Dispatcher) HandleNotify(n *dbus.DBusNotification, id uint32) {
	a := AnnouncementFromNotification(n, d.config())

	if key, ok := n.DefaultAction(); ok {
		a.Action = func() {
			if err := d.signals.EmitActionInvoked(id, key); err != nil {
				d.logger.Warn("failed to emit ActionInvoked", "id", id, "error", err)
			}
		}
	}
	a.Dismissed = func() {
		d.logger.Debug("banner flung away", "id", id, "app", n.AppName)
	}

	d.tracker.Register(a.ID, id)
	if err := d.display.Show(a); err != nil {
		d.logger.Warn("failed to show banner", "id", id, "error", err)
		d.tracker.Finish(a.ID, StatusClosed)
		if err := d.signals.CloseWithReason(id, dbus.CloseReasonUndefined); err != nil {
			d.logger.Debug("failed to emit NotificationClosed", "id", id, "error", err)
		}
		return
	}

	if d.chime != nil && !n.SuppressSound() {
		if err := d.chime.PlayFor(n); err != nil {
			d.logger.Warn("failed to play sound", "id", id, "error", err)
			if d.notifier != nil {
				d.notifier.NotifyAudioError(err)
			}
		}
	}
}

// HandleClose dismisses the banner for a CloseNotification request.
func (d *Dispatcher) HandleClose(id uint32) {
	announcementID, ok := d.tracker.AnnouncementFor(id)
	if !ok {
		// already off screen
		if err := d.signals.CloseWithReason(id, dbus.CloseReasonClosed); err != nil {
			d.logger.Debug("failed to emit NotificationClosed", "id", id, "error", err)
		}
		return
	}
	d.display.Close(announcementID)
}

// HandleDismissed reports the end of a banner over the bus.
func (d *Dispatcher) HandleDismissed(a banner.Announcement, reason banner.DismissReason) {
	entry, ok := d.tracker.Finish(a.ID, StatusFor(reason))
	if !ok {
		// replaced under the same id
		return
	}
	if err := d.signals.CloseWithReason(entry.DBusID, CloseReasonFor(reason)); err != nil {
		d.logger.Warn("failed to emit NotificationClosed", "id", entry.DBusID, "error", err)
	}
}

// AnnouncementFromNotification maps a Notify call onto banner content.
func AnnouncementFromNotification(n *dbus.DBusNotification, cfg *config.Config) banner.Announcement {
	duration, ok := n.Timeout()
	if !ok {
		duration = cfg.TimeoutForUrgency(n.Urgency())
	}

	title := n.Summary
	if title == "" {
		title = n.AppName
	}
	a := banner.NewAnnouncement(title, n.Body, duration)

	if path := ImagePathFor(n); path != "" && cfg.Display.ImageSize > 0 {
		size := float64(cfg.Display.ImageSize)
		a.Image = &banner.Image{
			Size: banner.Size{Width: size, Height: size},
			Path: path,
		}
	}
	return a
}

// ImagePathFor returns the image hint or app icon of a notification, with any
// file:// prefix removed.
func ImagePathFor(n *dbus.DBusNotification) string {
	path := n.ImagePath()
	if path == "" {
		path = n.AppIcon
	}
	return strings.TrimPrefix(path, "file://")
}

// CloseReasonFor maps how a banner ended to a D-Bus close reason.
func CloseReasonFor(r banner.DismissReason) dbus.CloseReason {
	switch r {
	case banner.ReasonExpired:
		return dbus.CloseReasonExpired
	case banner.ReasonTapped, banner.ReasonOpened, banner.ReasonForceDismissed:
		return dbus.CloseReasonDismissed
	case banner.ReasonClosed:
		return dbus.CloseReasonClosed
	default:
		return dbus.CloseReasonUndefined
	}
}

// StatusFor maps how a banner ended to a tracker status.
func StatusFor(r banner.DismissReason) Status {
	switch r {
	case banner.ReasonExpired:
		return StatusExpired
	case banner.ReasonClosed:
		return StatusClosed
	case banner.ReasonSuperseded:
		return StatusSuperseded
	default:
		return StatusDismissed
	}
}
