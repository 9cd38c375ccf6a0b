package banner

import "time"

// Insets are distances from the edges of a rectangle.
type Insets struct {
	Top    float64
	Left   float64
	Bottom float64
	Right  float64
}

// Dimensions are the fixed metrics of the banner layout.
type Dimensions struct {
	ContentInsets         Insets
	TextToImageMargin     float64
	LabelSpacing          float64
	IndicatorHeight       float64
	IndicatorWidth        float64
	IndicatorBottomMargin float64
	// TouchOffset is extra transparent height below the banner that still
	// accepts the drag gesture.
	TouchOffset         float64
	ImageRoundedCorners bool
	// Line limits used while not dragging. Zero means unlimited.
	TitleLines    int
	SubtitleLines int
}

// DefaultDimensions returns the pixel metrics of the desktop banner.
func DefaultDimensions() Dimensions {
	return Dimensions{
		ContentInsets:         Insets{Top: 1, Left: 18, Bottom: 1, Right: 18},
		TextToImageMargin:     9,
		LabelSpacing:          2,
		IndicatorHeight:       6,
		IndicatorWidth:        50,
		IndicatorBottomMargin: 5,
		TouchOffset:           40,
		ImageRoundedCorners:   true,
		TitleLines:            2,
		SubtitleLines:         2,
	}
}

// TerminalDimensions returns metrics in character cells.
func TerminalDimensions() Dimensions {
	return Dimensions{
		ContentInsets:         Insets{Top: 0, Left: 2, Bottom: 0, Right: 2},
		TextToImageMargin:     1,
		LabelSpacing:          0,
		IndicatorHeight:       1,
		IndicatorWidth:        8,
		IndicatorBottomMargin: 0,
		TouchOffset:           1,
		ImageRoundedCorners:   true,
		TitleLines:            2,
		SubtitleLines:         2,
	}
}

// IndicatorTakenHeight is the vertical space reserved for the drag indicator.
func (d Dimensions) IndicatorTakenHeight() float64 {
	return d.IndicatorHeight + d.IndicatorBottomMargin
}

// Tuning holds the timing and gesture constants of the presenter.
type Tuning struct {
	PresentDuration time.Duration
	DismissDuration time.Duration
	SettleDuration  time.Duration
	// OverdragDivisor damps growth once the subtitle is fully revealed.
	OverdragDivisor float64
	// DragThreshold is the translation a release must exceed to open or dismiss.
	DragThreshold float64
	// ExclusiveGestures ignores taps while a drag is active.
	ExclusiveGestures bool
}

// DefaultTuning returns the desktop tuning.
func DefaultTuning() Tuning {
	return Tuning{
		PresentDuration:   350 * time.Millisecond,
		DismissDuration:   350 * time.Millisecond,
		SettleDuration:    200 * time.Millisecond,
		OverdragDivisor:   25,
		DragThreshold:     5,
		ExclusiveGestures: true,
	}
}

// TerminalTuning returns tuning for row-granular mouse drags.
func TerminalTuning() Tuning {
	t := DefaultTuning()
	t.OverdragDivisor = 4
	t.DragThreshold = 1
	return t
}
