package banner

import "math"

// Size is a width and height in host units.
type Size struct {
	Width  float64
	Height float64
}

// Rect is an axis-aligned rectangle relative to the banner's top-left corner.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Bottom returns the y coordinate of the rectangle's bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// TextMeasurer wraps text to a width and reports the resulting size.
type TextMeasurer interface {
	// Measure returns the size of text wrapped at maxWidth and limited to
	// maxLines lines. maxLines of zero means unlimited.
	Measure(text string, maxWidth float64, maxLines int) Size
}

// MeasureFunc adapts a function to TextMeasurer.
type MeasureFunc func(text string, maxWidth float64, maxLines int) Size

// Measure implements TextMeasurer.
func (f MeasureFunc) Measure(text string, maxWidth float64, maxLines int) Size {
	return f(text, maxWidth, maxLines)
}

// LayoutInput is everything the layout engine reads.
type LayoutInput struct {
	HostWidth   float64
	SafeAreaTop float64
	Title       string
	Subtitle    string
	// ImageSize is zero when there is no image.
	ImageSize Size
	// SubtitleLines overrides Dimensions.SubtitleLines; -1 keeps the default
	// and 0 means unlimited.
	SubtitleLines int
	Measurer      TextMeasurer
}

// Label is a positioned text element.
type Label struct {
	Frame   Rect
	Visible bool
	Lines   int
}

// Layout is the computed geometry of one banner.
type Layout struct {
	Width float64
	// ContainerHeight is the visible banner height without the touch offset.
	ContainerHeight float64
	ContentTop      float64
	ContentHeight   float64
	TextOffsetX     float64
	LabelWidth      float64

	Image             Rect
	ImageVisible      bool
	ImageCornerRadius float64

	Title    Label
	Subtitle Label
}

// ComputeLayout positions the banner's children for a host width. It is pure:
// the same input and dimensions always produce the same layout.
func ComputeLayout(in LayoutInput, dims Dimensions) Layout {
	l := Layout{Width: in.HostWidth}

	indicatorTaken := dims.IndicatorTakenHeight()
	l.ContentTop = dims.ContentInsets.Top + math.Max(indicatorTaken, in.SafeAreaTop)

	hasImage := in.ImageSize.Width > 0 && in.ImageSize.Height > 0
	l.TextOffsetX = dims.ContentInsets.Left
	if hasImage {
		l.TextOffsetX += in.ImageSize.Width + dims.TextToImageMargin
	}
	l.LabelWidth = math.Max(0, in.HostWidth-l.TextOffsetX-dims.ContentInsets.Right)

	subtitleLines := dims.SubtitleLines
	if in.SubtitleLines >= 0 {
		subtitleLines = in.SubtitleLines
	}

	l.Title = measureLabel(in.Measurer, in.Title, l.LabelWidth, dims.TitleLines)
	l.Subtitle = measureLabel(in.Measurer, in.Subtitle, l.LabelWidth, subtitleLines)

	var labelsHeight float64
	visible := 0
	for _, lb := range []*Label{&l.Title, &l.Subtitle} {
		if !lb.Visible {
			continue
		}
		if visible > 0 {
			labelsHeight += dims.LabelSpacing
		}
		labelsHeight += lb.Frame.Height
		visible++
	}

	l.ContentHeight = labelsHeight
	if hasImage {
		l.ContentHeight = math.Max(labelsHeight, in.ImageSize.Height)
	}
	l.ContainerHeight = l.ContentTop + l.ContentHeight + dims.ContentInsets.Bottom + indicatorTaken

	if hasImage {
		l.ImageVisible = true
		l.Image = Rect{
			X:      dims.ContentInsets.Left,
			Y:      l.ContentTop + (l.ContentHeight-in.ImageSize.Height)/2,
			Width:  in.ImageSize.Width,
			Height: in.ImageSize.Height,
		}
		if dims.ImageRoundedCorners {
			l.ImageCornerRadius = math.Min(in.ImageSize.Width, in.ImageSize.Height) / 2
		}
	}

	y := l.ContentTop + (l.ContentHeight-labelsHeight)/2
	for _, lb := range []*Label{&l.Title, &l.Subtitle} {
		if !lb.Visible {
			continue
		}
		lb.Frame.X = l.TextOffsetX
		lb.Frame.Y = y
		y += lb.Frame.Height + dims.LabelSpacing
	}

	return l
}

func measureLabel(m TextMeasurer, text string, width float64, lines int) Label {
	if text == "" || m == nil {
		return Label{Lines: lines}
	}
	size := m.Measure(text, width, lines)
	return Label{
		Frame:   Rect{Width: width, Height: size.Height},
		Visible: true,
		Lines:   lines,
	}
}

// Background returns the visible banner rectangle for a frame height.
func (l Layout) Background(height float64, dims Dimensions) Rect {
	return Rect{Width: l.Width, Height: math.Max(0, height-dims.TouchOffset)}
}

// Indicator returns the drag indicator rectangle for a frame height. The
// indicator tracks the bottom of the background as the banner grows.
func (l Layout) Indicator(height float64, dims Dimensions) Rect {
	bg := l.Background(height, dims)
	return Rect{
		X:      (bg.Width - dims.IndicatorWidth) / 2,
		Y:      bg.Height - dims.IndicatorHeight - dims.IndicatorBottomMargin,
		Width:  dims.IndicatorWidth,
		Height: dims.IndicatorHeight,
	}
}
