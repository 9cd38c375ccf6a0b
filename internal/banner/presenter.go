package banner

import (
	"log/slog"
	"math"
	"time"
)

// Presenter shows one announcement at a time on a host surface.
//
// A presenter is not safe for concurrent use. Every method, including Tick,
// must be called from the host's event thread.
type Presenter struct {
	dims     Dimensions
	tuning   Tuning
	measurer TextMeasurer
	clock    Clock
	logger   *slog.Logger

	state         State
	announcement  Announcement
	host          HostSurface
	completion    func()
	pendingExpiry bool
	layoutDirty   bool
	generation    uint64

	layout                 Layout
	contentHeight          float64
	height                 float64
	originalSubtitleHeight float64
	dragTranslation        float64
	// dragOutcome is set while a released drag that opened or flung the
	// banner is settling. end consumes it.
	dragOutcome *DismissReason

	deadline time.Time
	anim     *tween

	onChange  func(Snapshot)
	onDismiss func(Announcement, DismissReason)
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithDimensions overrides the layout metrics.
func WithDimensions(d Dimensions) Option {
	return func(p *Presenter) { p.dims = d }
}

// WithTuning overrides the timing and gesture constants.
func WithTuning(t Tuning) Option {
	return func(p *Presenter) { p.tuning = t }
}

// WithClock sets the clock used to arm timers and start animations.
func WithClock(c Clock) Option {
	return func(p *Presenter) { p.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Presenter) { p.logger = l }
}

// NewPresenter creates an idle presenter.
func NewPresenter(measurer TextMeasurer, opts ...Option) *Presenter {
	p := &Presenter{
		dims:     DefaultDimensions(),
		tuning:   DefaultTuning(),
		measurer: measurer,
		clock:    systemClock{},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// OnChange registers a function called after every visible change.
func (p *Presenter) OnChange(fn func(Snapshot)) {
	p.onChange = fn
}

// OnDismiss registers a function called once at the end of every presentation.
func (p *Presenter) OnDismiss(fn func(Announcement, DismissReason)) {
	p.onDismiss = fn
}

// SetDimensions replaces the layout metrics. It applies from the next
// presentation or layout pass.
func (p *Presenter) SetDimensions(d Dimensions) {
	p.dims = d
	p.layoutDirty = true
}

// SetTuning replaces the timing and gesture constants.
func (p *Presenter) SetTuning(t Tuning) {
	p.tuning = t
}

// Dimensions returns the current layout metrics.
func (p *Presenter) Dimensions() Dimensions { return p.dims }

// State returns the lifecycle state.
func (p *Presenter) State() State { return p.state }

// Active reports whether an announcement is on screen.
func (p *Presenter) Active() bool { return p.state != StateIdle }

// Height returns the current frame height including the touch offset.
func (p *Presenter) Height() float64 { return p.height }

// ContentHeight returns the settled banner height without the touch offset.
func (p *Presenter) ContentHeight() float64 { return p.contentHeight }

// Layout returns the current layout.
func (p *Presenter) Layout() Layout { return p.layout }

// Announcement returns the live announcement and whether there is one.
func (p *Presenter) Announcement() (Announcement, bool) {
	return p.announcement, p.state != StateIdle
}

// Animating reports whether a height animation is in progress.
func (p *Presenter) Animating() bool { return p.anim != nil }

// TimeRemaining returns the time until auto-dismiss, or zero when no timer
// is armed.
func (p *Presenter) TimeRemaining(now time.Time) time.Duration {
	if p.deadline.IsZero() {
		return 0
	}
	return max(p.deadline.Sub(now), 0)
}

// Snapshot implements View.
func (p *Presenter) Snapshot() Snapshot {
	return Snapshot{
		State:         p.state,
		Announcement:  p.announcement,
		Height:        p.height,
		ContentHeight: p.contentHeight,
		Layout:        p.layout,
		Background:    p.layout.Background(p.height, p.dims),
		Indicator:     p.layout.Indicator(p.height, p.dims),
		Dimensions:    p.dims,
	}
}

// Present shows a on host. A presentation already in progress is superseded:
// its completion runs once and its timer and animation are discarded.
// completion runs exactly once when this presentation ends.
func (p *Presenter) Present(a Announcement, host HostSurface, completion func()) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if host == nil {
		return ErrNoHost
	}

	// a superseded completion may itself present again
	for p.state != StateIdle {
		p.end(ReasonSuperseded, p.host != host)
	}

	now := p.clock.Now()
	p.generation++
	p.announcement = a
	p.completion = completion
	p.pendingExpiry = false
	p.dragTranslation = 0
	p.deadline = now.Add(a.Duration)

	if p.host == nil {
		p.host = host
		host.Attach(p)
	}

	p.setupFrames()
	p.height = 0
	p.state = StatePresenting
	p.animate(now, p.contentHeight+p.dims.TouchOffset, p.tuning.PresentDuration, func() {
		p.state = StateDisplayed
	})

	p.logger.Debug("presenting banner",
		"id", a.ID,
		"title", a.Title,
		"duration", a.Duration,
		"height", p.contentHeight)
	p.notify()
	return nil
}

// Dismiss animates the banner away. It is a no-op when idle or already
// dismissing.
func (p *Presenter) Dismiss() {
	p.dismiss(ReasonClosed)
}

// Tap runs the announcement's action and dismisses the banner.
func (p *Presenter) Tap() {
	switch p.state {
	case StateIdle, StateDismissing:
		return
	case StateDragging:
		if p.tuning.ExclusiveGestures {
			return
		}
		p.cancelDrag()
	}

	gen := p.generation
	if p.announcement.Action != nil {
		p.announcement.Action()
	}
	if gen != p.generation {
		// the action presented something else
		return
	}
	p.dismiss(ReasonTapped)
}

// DragBegan starts an interactive drag. The subtitle expands to its full
// height so it can be revealed by pulling down.
func (p *Presenter) DragBegan() {
	if p.state != StatePresenting && p.state != StateDisplayed {
		return
	}
	p.anim = nil
	p.state = StateDragging
	p.pendingExpiry = false
	p.dragTranslation = 0
	p.expandSubtitle()
	p.notify()
}

// DragChanged follows the finger. t is the vertical translation since the
// drag began, positive downward.
func (p *Presenter) DragChanged(t float64) {
	if p.state != StateDragging {
		return
	}
	p.dragTranslation = t
	p.height = math.Max(0, p.dragHeight(t))
	p.notify()
}

// DragEnded resolves the drag with its final translation.
func (p *Presenter) DragEnded(t float64) {
	if p.state != StateDragging {
		return
	}
	p.dragTranslation = t
	p.resolveDrag(t)
}

// DragCancelled is handled like a release at translation t.
func (p *Presenter) DragCancelled(t float64) {
	p.DragEnded(t)
}

// RotationChanged marks the layout stale. The next LayoutPass recomputes it.
func (p *Presenter) RotationChanged() {
	p.layoutDirty = true
}

// LayoutPass recomputes element positions when the layout is stale. The
// frame height is left alone.
func (p *Presenter) LayoutPass() {
	if !p.layoutDirty {
		return
	}
	if p.state == StateIdle || p.host == nil {
		return
	}
	p.setupFrames()
	if p.state == StateDragging {
		p.expandSubtitle()
	}
	p.notify()
}

// Tick advances animations and fires the auto-dismiss timer.
func (p *Presenter) Tick(now time.Time) {
	changed := false

	if p.anim != nil {
		tw := p.anim
		h, done := tw.at(now)
		p.height = h
		changed = true
		if done {
			p.anim = nil
			if tw.done != nil {
				tw.done()
			}
		}
	}

	if !p.deadline.IsZero() && !now.Before(p.deadline) {
		p.deadline = time.Time{}
		p.expire()
		changed = true
	}

	if changed {
		p.notify()
	}
}

func (p *Presenter) expire() {
	switch p.state {
	case StateDragging:
		p.deferExpiry()
	case StatePresenting, StateDisplayed:
		p.logger.Debug("banner expired", "id", p.announcement.ID)
		p.dismiss(ReasonExpired)
	}
}

// deferExpiry records that the timer fired during a drag. resolveDrag
// consumes it.
func (p *Presenter) deferExpiry() {
	p.pendingExpiry = true
}

func (p *Presenter) resolveDrag(t float64) {
	shouldOpen := t > p.tuning.DragThreshold
	forceDismissed := t < -p.tuning.DragThreshold
	shouldDismiss := shouldOpen || forceDismissed || p.pendingExpiry
	p.pendingExpiry = false

	p.restoreSubtitle()

	target := p.contentHeight
	if shouldDismiss {
		target = 0
		p.state = StateDismissing
		p.deadline = time.Time{}
	} else {
		p.state = StateDisplayed
	}

	reason := ReasonExpired
	switch {
	case shouldOpen:
		reason = ReasonOpened
	case forceDismissed:
		reason = ReasonForceDismissed
	}
	if shouldOpen || forceDismissed {
		p.dragOutcome = &reason
	}

	a := p.announcement
	gen := p.generation
	p.animate(p.clock.Now(), target+p.dims.TouchOffset, p.tuning.SettleDuration, func() {
		if shouldDismiss && gen == p.generation {
			p.end(reason, true)
		}
	})

	p.logger.Debug("drag ended",
		"id", a.ID,
		"translation", t,
		"open", shouldOpen,
		"dismiss", shouldDismiss)
	p.notify()
}

func (p *Presenter) dismiss(reason DismissReason) {
	switch p.state {
	case StateIdle, StateDismissing:
		return
	case StateDragging:
		p.cancelDrag()
	}
	p.state = StateDismissing
	p.deadline = time.Time{}
	gen := p.generation
	p.animate(p.clock.Now(), 0, p.tuning.DismissDuration, func() {
		if gen == p.generation {
			p.end(reason, true)
		}
	})
	p.notify()
}

// end finishes the live presentation. The host is detached before the
// callbacks run so a callback that presents again starts clean. A drag
// outcome still settling wins over reason, so a superseded open still runs
// the action.
func (p *Presenter) end(reason DismissReason, detach bool) {
	a := p.announcement
	completion := p.completion
	outcome := p.dragOutcome
	if outcome != nil {
		reason = *outcome
	}

	p.dragOutcome = nil
	p.completion = nil
	p.deadline = time.Time{}
	p.anim = nil
	p.pendingExpiry = false
	p.dragTranslation = 0
	p.state = StateIdle

	if detach {
		if p.host != nil {
			p.host.Detach(p)
			p.host = nil
		}
		p.height = 0
	}

	p.logger.Debug("banner finished", "id", a.ID, "reason", reason)

	if outcome != nil {
		switch reason {
		case ReasonOpened:
			if a.Action != nil {
				a.Action()
			}
		case ReasonForceDismissed:
			if a.Dismissed != nil {
				a.Dismissed()
			}
		}
	}
	if completion != nil {
		completion()
	}
	if p.onDismiss != nil {
		p.onDismiss(a, reason)
	}
	if detach && p.state == StateIdle {
		p.announcement = Announcement{}
		p.layout = Layout{}
		p.contentHeight = 0
		p.notify()
	}
}

func (p *Presenter) cancelDrag() {
	p.restoreSubtitle()
	p.pendingExpiry = false
	p.dragTranslation = 0
	p.state = StateDisplayed
}

func (p *Presenter) animate(now time.Time, to float64, d time.Duration, done func()) {
	p.anim = &tween{
		from:     p.height,
		to:       to,
		start:    now,
		duration: d,
		done:     done,
	}
}

func (p *Presenter) setupFrames() {
	p.layoutDirty = false
	if p.host == nil {
		return
	}
	a := p.announcement
	in := LayoutInput{
		HostWidth:     p.host.Width(),
		SafeAreaTop:   p.host.SafeAreaTopInset(),
		Title:         a.Title,
		Subtitle:      a.Subtitle,
		SubtitleLines: -1,
		Measurer:      p.measurer,
	}
	if a.HasImage() {
		in.ImageSize = a.Image.Size
	}
	p.layout = ComputeLayout(in, p.dims)
	p.contentHeight = p.layout.ContainerHeight
}

func (p *Presenter) expandSubtitle() {
	p.originalSubtitleHeight = p.layout.Subtitle.Frame.Height
	if !p.layout.Subtitle.Visible || p.measurer == nil {
		return
	}
	size := p.measurer.Measure(p.announcement.Subtitle, p.layout.LabelWidth, 0)
	p.layout.Subtitle.Frame.Height = size.Height
	p.layout.Subtitle.Lines = 0
}

func (p *Presenter) restoreSubtitle() {
	p.layout.Subtitle.Frame.Height = p.originalSubtitleHeight
	p.layout.Subtitle.Lines = p.dims.SubtitleLines
}

// dragHeight maps a drag translation to a frame height. Past the point where
// the subtitle is fully revealed the growth is damped.
func (p *Presenter) dragHeight(t float64) float64 {
	maxT := p.layout.Subtitle.Frame.Height - p.originalSubtitleHeight
	if t >= maxT {
		div := p.tuning.OverdragDivisor
		if div <= 0 {
			div = 1
		}
		return p.contentHeight + maxT + (t-maxT)/div + p.dims.TouchOffset
	}
	return p.contentHeight + t + p.dims.TouchOffset
}

func (p *Presenter) notify() {
	if p.onChange != nil {
		p.onChange(p.Snapshot())
	}
}
