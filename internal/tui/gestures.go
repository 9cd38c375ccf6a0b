package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// Target receives recognised gestures. *banner.Presenter implements it.
type Target interface {
	Tap()
	DragBegan()
	DragChanged(t float64)
	DragEnded(t float64)
	DragCancelled(t float64)
}

// Region is the part of the banner a mouse event landed on.
type Region int

const (
	RegionNone Region = iota
	RegionBody
	RegionGrip
)

// HitTester locates a mouse event.
type HitTester interface {
	Hit(msg tea.MouseMsg) Region
}

// ZoneHitTester finds regions from the zones marked by the Renderer.
type ZoneHitTester struct {
	Zones *zone.Manager
}

// Hit implements HitTester.
func (z ZoneHitTester) Hit(msg tea.MouseMsg) Region {
	switch {
	case z.Zones.Get(zoneBody).InBounds(msg):
		return RegionBody
	case z.Zones.Get(zoneGrip).InBounds(msg):
		return RegionGrip
	default:
		return RegionNone
	}
}

// Gestures turns mouse events into taps and vertical drags. A press on the
// banner starts tracking; moving with the button held drags with the
// translation in rows, and releasing without moving on the body is a tap.
type Gestures struct {
	target Target
	hits   HitTester

	tracking bool
	onBody   bool
	dragging bool
	startY   int
	last     float64
}

// NewGestures creates a recognizer that forwards to target.
func NewGestures(target Target, hits HitTester) *Gestures {
	return &Gestures{target: target, hits: hits}
}

// Handle processes a mouse event and reports whether it was consumed.
func (g *Gestures) Handle(msg tea.MouseMsg) bool {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return false
		}
		region := g.hits.Hit(msg)
		if region == RegionNone {
			return false
		}
		g.tracking = true
		g.onBody = region == RegionBody
		g.dragging = false
		g.startY = msg.Y
		g.last = 0
		return true

	case tea.MouseActionMotion:
		if !g.tracking {
			return false
		}
		t := float64(msg.Y - g.startY)
		if !g.dragging {
			if t == 0 {
				return true
			}
			g.dragging = true
			g.target.DragBegan()
		}
		g.last = t
		g.target.DragChanged(t)
		return true

	case tea.MouseActionRelease:
		if !g.tracking {
			return false
		}
		g.tracking = false
		if g.dragging {
			g.dragging = false
			g.target.DragEnded(float64(msg.Y - g.startY))
			return true
		}
		if g.onBody && g.hits.Hit(msg) == RegionBody {
			g.target.Tap()
		}
		return true
	}
	return false
}

// Cancel abandons a drag in progress, for example when the terminal is
// resized under the pointer.
func (g *Gestures) Cancel() {
	if g.dragging {
		g.target.DragCancelled(g.last)
	}
	g.tracking = false
	g.dragging = false
}

// Dragging reports whether a drag is in progress.
func (g *Gestures) Dragging() bool {
	return g.dragging
}
