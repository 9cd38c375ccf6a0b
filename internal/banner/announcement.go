// Package banner implements a drop-down banner presenter: layout, auto-dismiss,
// drag and tap handling, and animated height transitions.
//
// The presenter is headless. A host surface supplies the width and safe-area
// inset, renders snapshots, forwards gestures and drives time by calling Tick.
package banner

import (
	"crypto/rand"
	"errors"
	"image"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	// ErrInvalidDuration is returned when an announcement has a non-positive duration.
	ErrInvalidDuration = errors.New("announcement duration must be positive")
	// ErrNoHost is returned when Present is called without a host surface.
	ErrNoHost = errors.New("no host surface")
)

// Image is the optional picture shown at the leading edge of a banner.
type Image struct {
	// Size in host units (pixels for the desktop, cells for the terminal).
	Size Size
	// Source holds decoded pixels when the host renders them itself.
	Source image.Image
	// Path is a file path or icon name for hosts that load images lazily.
	Path string
}

// Announcement is the immutable content of one banner presentation.
type Announcement struct {
	ID       string
	Title    string
	Subtitle string
	Image    *Image
	Duration time.Duration

	// Action runs when the banner is tapped or dragged open.
	Action func()
	// Dismissed runs only when the banner is flung upward.
	Dismissed func()
}

// NewAnnouncement creates an announcement with a fresh ULID.
func NewAnnouncement(title, subtitle string, duration time.Duration) Announcement {
	return Announcement{
		ID:       ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String(),
		Title:    title,
		Subtitle: subtitle,
		Duration: duration,
	}
}

// Validate checks the announcement can be presented.
func (a Announcement) Validate() error {
	if a.Duration <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

// HasImage reports whether the announcement carries an image with a usable size.
func (a Announcement) HasImage() bool {
	return a.Image != nil && a.Image.Size.Width > 0 && a.Image.Size.Height > 0
}

// DismissReason describes how a presentation ended.
type DismissReason int

const (
	ReasonExpired DismissReason = iota
	ReasonTapped
	ReasonOpened
	ReasonForceDismissed
	ReasonClosed
	ReasonSuperseded
)

func (r DismissReason) String() string {
	switch r {
	case ReasonExpired:
		return "expired"
	case ReasonTapped:
		return "tapped"
	case ReasonOpened:
		return "opened"
	case ReasonForceDismissed:
		return "force-dismissed"
	case ReasonClosed:
		return "closed"
	case ReasonSuperseded:
		return "superseded"
	default:
		return "unknown"
	}
}

// UserInitiated reports whether the reason came from a gesture.
func (r DismissReason) UserInitiated() bool {
	return r == ReasonTapped || r == ReasonOpened || r == ReasonForceDismissed
}
