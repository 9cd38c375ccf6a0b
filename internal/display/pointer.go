package display

// pointer turns the window's click and drag callbacks into presenter
// gestures. GTK may deliver the click release before or after the drag end,
// so any vertical movement since the press rules out a tap either way.
type pointer struct {
	target Gestures
	body   func() Box

	pressed  bool
	onBody   bool
	moved    bool
	dragging bool
	dragY    float64
}

func newPointer(target Gestures, body func() Box) *pointer {
	return &pointer{target: target, body: body}
}

// press starts a gesture. The click and drag controllers both report the
// same button press.
func (p *pointer) press(x, y float64) {
	p.pressed = true
	p.onBody = p.body().Contains(x, y)
	p.moved = false
	p.dragging = false
	p.dragY = 0
}

func (p *pointer) dragUpdate(dy float64) {
	if !p.dragging {
		if dy == 0 {
			return
		}
		p.dragging = true
		p.target.DragBegan()
	}
	p.moved = true
	p.dragY = dy
	p.target.DragChanged(dy)
}

func (p *pointer) dragEnd(dy float64) {
	if p.dragging {
		p.dragging = false
		p.target.DragEnded(dy)
	}
}

func (p *pointer) cancel() {
	if p.dragging {
		p.dragging = false
		p.target.DragCancelled(p.dragY)
	}
	p.moved = true
}

// release taps when the press and the release both hit the banner body
// without moving. The touch strip below the body only starts drags.
func (p *pointer) release(x, y float64) {
	if p.pressed && !p.moved && p.onBody && p.body().Contains(x, y) {
		p.target.Tap()
	}
	p.pressed = false
}

// detached drops any gesture in progress without reporting it.
func (p *pointer) detached() {
	p.pressed = false
	p.dragging = false
	p.moved = false
	p.dragY = 0
}
