package daemon

import (
	"sync"
	"time"
)

// Status is the display status of a tracked notification.
type Status int

const (
	StatusActive Status = iota
	StatusExpired
	StatusDismissed
	StatusClosed
	StatusSuperseded
)

// String returns the string representation of Status.
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusExpired:
		return "expired"
	case StatusDismissed:
		return "dismissed"
	case StatusClosed:
		return "closed"
	case StatusSuperseded:
		return "superseded"
	default:
		return "unknown"
	}
}

// Entry links a banner announcement to the D-Bus notification it shows.
type Entry struct {
	AnnouncementID string
	DBusID         uint32
	Status         Status
	CreatedAt      time.Time
	ClosedAt       time.Time
}

// Tracker maps announcement IDs to D-Bus notification IDs.
type Tracker struct {
	mu sync.RWMutex

	byAnnouncement map[string]*Entry
	byDBusID       map[uint32]string
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		byAnnouncement: make(map[string]*Entry),
		byDBusID:       make(map[uint32]string),
	}
}

// Register records that announcementID shows dbusID. A notification that
// replaces an earlier one under the same D-Bus ID takes over its mapping.
func (t *Tracker) Register(announcementID string, dbusID uint32) *Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	if old, ok := t.byDBusID[dbusID]; ok {
		delete(t.byAnnouncement, old)
	}

	e := &Entry{
		AnnouncementID: announcementID,
		DBusID:         dbusID,
		Status:         StatusActive,
		CreatedAt:      time.Now(),
	}
	t.byAnnouncement[announcementID] = e
	t.byDBusID[dbusID] = announcementID
	return e
}

// AnnouncementFor returns the announcement currently showing dbusID.
func (t *Tracker) AnnouncementFor(dbusID uint32) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.byDBusID[dbusID]
	return id, ok
}

// DBusIDFor returns the D-Bus ID an announcement shows.
func (t *Tracker) DBusIDFor(announcementID string) (uint32, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.byAnnouncement[announcementID]
	if !ok {
		return 0, false
	}
	return e.DBusID, true
}

// Finish removes an announcement and returns its final entry. It reports
// false when the announcement is unknown or was replaced.
func (t *Tracker) Finish(announcementID string, status Status) (Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.byAnnouncement[announcementID]
	if !ok {
		return Entry{}, false
	}
	delete(t.byAnnouncement, announcementID)
	if t.byDBusID[e.DBusID] == announcementID {
		delete(t.byDBusID, e.DBusID)
	}

	e.Status = status
	e.ClosedAt = time.Now()
	return *e, true
}

// Count returns the number of tracked announcements.
func (t *Tracker) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byAnnouncement)
}
