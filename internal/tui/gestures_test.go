package tui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

// rowHits treats rows [0, body) as the body and [body, grip) as the grip.
type rowHits struct {
	body, grip int
}

func (h rowHits) Hit(msg tea.MouseMsg) Region {
	switch {
	case msg.Y < 0:
		return RegionNone
	case msg.Y < h.body:
		return RegionBody
	case msg.Y < h.grip:
		return RegionGrip
	default:
		return RegionNone
	}
}

type recordingTarget struct {
	events []string
}

func (r *recordingTarget) Tap()                    { r.events = append(r.events, "tap") }
func (r *recordingTarget) DragBegan()              { r.events = append(r.events, "began") }
func (r *recordingTarget) DragChanged(t float64)   { r.events = append(r.events, fmt.Sprintf("changed %g", t)) }
func (r *recordingTarget) DragEnded(t float64)     { r.events = append(r.events, fmt.Sprintf("ended %g", t)) }
func (r *recordingTarget) DragCancelled(t float64) { r.events = append(r.events, fmt.Sprintf("cancelled %g", t)) }

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func newTestGestures() (*Gestures, *recordingTarget) {
	target := &recordingTarget{}
	return NewGestures(target, rowHits{body: 3, grip: 5}), target
}

func TestGestures_TapOnBody(t *testing.T) {
	g, target := newTestGestures()

	assert.True(t, g.Handle(press(4, 1)))
	assert.True(t, g.Handle(motion(9, 1)), "horizontal movement is not a drag")
	assert.True(t, g.Handle(release(9, 1)))

	assert.Equal(t, []string{"tap"}, target.events)
}

func TestGestures_Drag(t *testing.T) {
	g, target := newTestGestures()

	g.Handle(press(4, 1))
	g.Handle(motion(4, 3))
	g.Handle(motion(4, 6))
	assert.True(t, g.Dragging())
	g.Handle(release(4, 6))

	assert.Equal(t, []string{"began", "changed 2", "changed 5", "ended 5"}, target.events)
	assert.False(t, g.Dragging())
}

func TestGestures_DragUpFromGrip(t *testing.T) {
	g, target := newTestGestures()

	g.Handle(press(4, 4))
	g.Handle(motion(4, 1))
	g.Handle(release(4, 0))

	assert.Equal(t, []string{"began", "changed -3", "ended -4"}, target.events)
}

func TestGestures_NoTap(t *testing.T) {
	tests := []struct {
		name   string
		events []tea.MouseMsg
	}{
		{name: "press on grip", events: []tea.MouseMsg{press(4, 4), release(4, 4)}},
		{name: "released off the body", events: []tea.MouseMsg{press(4, 1), release(4, 8)}},
		{name: "outside the banner", events: []tea.MouseMsg{press(4, 9), release(4, 9)}},
		{name: "right button", events: []tea.MouseMsg{
			{X: 4, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight},
			release(4, 1),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, target := newTestGestures()
			for _, msg := range tt.events {
				g.Handle(msg)
			}
			assert.Empty(t, target.events)
		})
	}
}

func TestGestures_IgnoresEventsOutsideBanner(t *testing.T) {
	g, _ := newTestGestures()

	assert.False(t, g.Handle(press(0, 12)))
	assert.False(t, g.Handle(motion(0, 13)))
	assert.False(t, g.Handle(release(0, 13)))
	assert.False(t, g.Handle(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown, Y: 1}))
}

func TestGestures_Cancel(t *testing.T) {
	g, target := newTestGestures()

	g.Cancel()
	assert.Empty(t, target.events, "nothing to cancel")

	g.Handle(press(4, 1))
	g.Handle(motion(4, 3))
	g.Cancel()
	assert.False(t, g.Dragging())

	// the release after a cancel belongs to no gesture
	assert.False(t, g.Handle(release(4, 3)))
	assert.Equal(t, []string{"began", "changed 2", "cancelled 2"}, target.events)
}
