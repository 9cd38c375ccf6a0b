package display

import (
	"math"

	"github.com/jmylchreest/shout/internal/banner"
)

// Box is a widget position in whole pixels.
type Box struct {
	X, Y, W, H int
}

func boxOf(r banner.Rect, shift float64) Box {
	return Box{
		X: int(math.Round(r.X)),
		Y: int(math.Round(r.Y + shift)),
		W: int(math.Round(r.Width)),
		H: int(math.Round(r.Height)),
	}
}

// Placement is where every banner widget goes for one frame.
type Placement struct {
	WindowHeight int
	Background   Box
	Image        Box
	Title        Box
	Subtitle     Box
	Indicator    Box

	ShowImage    bool
	ShowTitle    bool
	ShowSubtitle bool
	ShowBanner   bool
}

// Place converts a snapshot into widget boxes.
func Place(s banner.Snapshot) Placement {
	shift := s.ContentShift()

	return Placement{
		WindowHeight: int(math.Ceil(s.Height)),
		Background:   boxOf(s.Background, 0),
		Image:        boxOf(s.Layout.Image, shift),
		Title:        boxOf(s.Layout.Title.Frame, shift),
		Subtitle:     boxOf(s.Layout.Subtitle.Frame, shift),
		Indicator:    boxOf(s.Indicator, 0),

		ShowImage:    s.Layout.ImageVisible,
		ShowTitle:    s.Layout.Title.Visible,
		ShowSubtitle: s.Layout.Subtitle.Visible,
		ShowBanner:   s.Visible(),
	}
}

// Contains reports whether the point lies inside b.
func (b Box) Contains(x, y float64) bool {
	return x >= float64(b.X) && x < float64(b.X+b.W) &&
		y >= float64(b.Y) && y < float64(b.Y+b.H)
}
