package display

import (
	"math"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/diamondburned/gotk4/pkg/pango"

	"github.com/jmylchreest/shout/internal/banner"
)

// LabelMeasurer measures text with an offscreen label carrying the title
// style, so subtitles are never measured smaller than they draw.
type LabelMeasurer struct {
	label *gtk.Label
}

// NewLabelMeasurer creates a measurer. GTK must be initialised.
func NewLabelMeasurer() *LabelMeasurer {
	l := gtk.NewLabel("")
	l.AddCSSClass("banner-title")
	l.SetWrap(true)
	l.SetWrapMode(pango.WrapWordChar)
	l.SetXAlign(0)
	return &LabelMeasurer{label: l}
}

// Measure implements banner.TextMeasurer.
func (m *LabelMeasurer) Measure(text string, maxWidth float64, maxLines int) banner.Size {
	if text == "" || maxWidth <= 0 {
		return banner.Size{}
	}
	configureLines(m.label, maxLines)
	m.label.SetText(text)

	_, naturalWidth, _, _ := m.label.Measure(gtk.OrientationHorizontal, -1)
	_, naturalHeight, _, _ := m.label.Measure(gtk.OrientationVertical, int(maxWidth))
	return banner.Size{
		Width:  math.Min(float64(naturalWidth), maxWidth),
		Height: float64(naturalHeight),
	}
}

// configureLines limits a wrapping label to lines, ellipsizing the last one.
// Zero means unlimited.
func configureLines(l *gtk.Label, lines int) {
	if lines > 0 {
		l.SetLines(lines)
		l.SetEllipsize(pango.EllipsizeEnd)
		return
	}
	l.SetLines(-1)
	l.SetEllipsize(pango.EllipsizeNone)
}
