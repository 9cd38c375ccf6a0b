package banner

import (
	"io"
	"log/slog"
	"math"
	"time"
)

const (
	testCharWidth  = 8.0
	testLineHeight = 20.0
)

// fixedMeasurer wraps at testCharWidth per character and testLineHeight per line.
var fixedMeasurer = MeasureFunc(func(text string, maxWidth float64, maxLines int) Size {
	if text == "" {
		return Size{}
	}
	perLine := math.Max(1, math.Floor(maxWidth/testCharWidth))
	lines := math.Ceil(float64(len(text)) / perLine)
	if maxLines > 0 && lines > float64(maxLines) {
		lines = float64(maxLines)
	}
	return Size{Width: math.Min(maxWidth, float64(len(text))*testCharWidth), Height: lines * testLineHeight}
})

type manualClock struct {
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

type fakeHost struct {
	width    float64
	safeTop  float64
	attached int
	detached int
	view     View
}

func newFakeHost(width float64) *fakeHost {
	return &fakeHost{width: width}
}

func (h *fakeHost) Width() float64            { return h.width }
func (h *fakeHost) SafeAreaTopInset() float64 { return h.safeTop }
func (h *fakeHost) Attach(v View) {
	h.attached++
	h.view = v
}
func (h *fakeHost) Detach(v View) {
	h.detached++
	h.view = nil
}

func (h *fakeHost) isAttached() bool { return h.view != nil }

type fixture struct {
	clock     *manualClock
	host      *fakeHost
	presenter *Presenter
	reasons   []DismissReason
}

func newFixture(opts ...Option) *fixture {
	f := &fixture{
		clock: newManualClock(),
		host:  newFakeHost(375),
	}
	opts = append([]Option{
		WithClock(f.clock),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)
	f.presenter = NewPresenter(fixedMeasurer, opts...)
	f.presenter.OnDismiss(func(_ Announcement, r DismissReason) {
		f.reasons = append(f.reasons, r)
	})
	return f
}

// run ticks the presenter every step for d and returns the observed heights.
func (f *fixture) run(d, step time.Duration) []float64 {
	var heights []float64
	for elapsed := time.Duration(0); elapsed < d; elapsed += step {
		f.presenter.Tick(f.clock.Advance(step))
		heights = append(heights, f.presenter.Height())
	}
	return heights
}
