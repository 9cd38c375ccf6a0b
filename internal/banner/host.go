package banner

// HostSurface is the screen region a banner is attached to.
type HostSurface interface {
	Width() float64
	SafeAreaTopInset() float64
	Attach(v View)
	Detach(v View)
}

// View is what a host receives on Attach. Hosts read Snapshot to render and
// forward gestures back to the presenter.
type View interface {
	Snapshot() Snapshot
}

// State is the lifecycle state of a presenter.
type State int

const (
	StateIdle State = iota
	StatePresenting
	StateDisplayed
	StateDragging
	StateDismissing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePresenting:
		return "presenting"
	case StateDisplayed:
		return "displayed"
	case StateDragging:
		return "dragging"
	case StateDismissing:
		return "dismissing"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only view of the presenter for rendering.
type Snapshot struct {
	State        State
	Announcement Announcement
	// Height is the full frame height including the touch offset.
	Height        float64
	ContentHeight float64
	Layout        Layout
	Background    Rect
	Indicator     Rect
	Dimensions    Dimensions
}

// Visible reports whether any part of the banner is on screen.
func (s Snapshot) Visible() bool {
	return s.State != StateIdle && s.Background.Height > 0
}

// ContentShift is the vertical offset applied to the content while the
// banner is shorter than it. The content slides up with its bottom edge
// leading, so it is never taller than the frame. The result is zero or
// negative.
func (s Snapshot) ContentShift() float64 {
	extent := s.Layout.ContainerHeight
	if sub := s.Layout.Subtitle; sub.Visible {
		extent = max(extent, sub.Frame.Bottom()+s.Dimensions.ContentInsets.Bottom)
	}
	return min(0, s.Background.Height-extent)
}
