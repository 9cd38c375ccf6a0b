package display

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/shout/internal/banner"
)

func snapshotAt(height float64) banner.Snapshot {
	dims := banner.DefaultDimensions()
	measure := banner.MeasureFunc(func(text string, _ float64, _ int) banner.Size {
		return banner.Size{Height: 20}
	})
	l := banner.ComputeLayout(banner.LayoutInput{
		HostWidth:     400,
		Title:         "Title",
		Subtitle:      "Subtitle",
		ImageSize:     banner.Size{Width: 40, Height: 40},
		SubtitleLines: -1,
		Measurer:      measure,
	}, dims)
	return banner.Snapshot{
		State:         banner.StateDisplayed,
		Height:        height,
		ContentHeight: l.ContainerHeight,
		Layout:        l,
		Background:    l.Background(height, dims),
		Indicator:     l.Indicator(height, dims),
		Dimensions:    dims,
	}
}

func TestPlace_FullyOpen(t *testing.T) {
	s := snapshotAt(0)
	s = snapshotAt(s.ContentHeight + s.Dimensions.TouchOffset)

	p := Place(s)
	assert.Equal(t, int(s.ContentHeight+40), p.WindowHeight)
	assert.Equal(t, Box{W: 400, H: int(s.ContentHeight)}, p.Background)
	assert.Equal(t, int(s.Layout.Title.Frame.Y), p.Title.Y, "no shift when fully open")
	assert.True(t, p.ShowBanner)
	assert.False(t, p.Background.Contains(10, float64(p.WindowHeight-1)), "touch strip is not body")
	assert.True(t, p.ShowImage)
	assert.True(t, p.ShowTitle)
	assert.True(t, p.ShowSubtitle)
}

func TestPlace_SlidesContentWhileOpening(t *testing.T) {
	full := snapshotAt(0).ContentHeight
	s := snapshotAt(40 + full/2)

	p := Place(s)
	shift := int(full/2 - full)
	assert.Equal(t, int(s.Layout.Title.Frame.Y)+shift, p.Title.Y)
	assert.Equal(t, int(s.Layout.Image.Y)+shift, p.Image.Y)
	assert.Equal(t, p.Background.H-6-5, p.Indicator.Y, "indicator tracks the bottom edge")
}

func TestPlace_ExpandedSubtitleDuringDrag(t *testing.T) {
	s := snapshotAt(0)
	s.Layout.Subtitle.Frame.Height += 60
	s = withHeight(s, s.ContentHeight+40+30)

	p := Place(s)
	extent := s.Layout.Subtitle.Frame.Bottom() + s.Dimensions.ContentInsets.Bottom
	assert.Equal(t, int(s.Layout.Subtitle.Frame.Y+(s.Background.Height-extent)), p.Subtitle.Y)
}

func TestPlace_Hidden(t *testing.T) {
	p := Place(snapshotAt(20))
	assert.False(t, p.ShowBanner, "only the touch offset is on screen")
	assert.Equal(t, 20, p.WindowHeight)
}

func withHeight(s banner.Snapshot, h float64) banner.Snapshot {
	s.Height = h
	s.Background = s.Layout.Background(h, s.Dimensions)
	s.Indicator = s.Layout.Indicator(h, s.Dimensions)
	return s
}
