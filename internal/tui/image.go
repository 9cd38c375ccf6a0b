package tui

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
)

const halfBlock = "▀"

// LoadImage decodes an image file for display in a banner.
func LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	return img, nil
}

// HalfBlocks renders img into cols x rows cells. Each cell shows two pixels:
// the upper one as the foreground of an upper half block and the lower one as
// the background. With rounded set, pixels outside the inscribed circle take
// the banner background.
func HalfBlocks(img image.Image, cols, rows int, rounded bool, background lipgloss.Color) []string {
	if img == nil || cols <= 0 || rows <= 0 {
		return nil
	}
	fitted := imaging.Fill(img, cols, rows*2, imaging.Center, imaging.Lanczos)

	out := make([]string, rows)
	for y := range rows {
		var line string
		for x := range cols {
			top := cellColor(fitted, x, 2*y, rounded, background)
			bottom := cellColor(fitted, x, 2*y+1, rounded, background)
			line += lipgloss.NewStyle().Foreground(top).Background(bottom).Render(halfBlock)
		}
		out[y] = line
	}
	return out
}

func cellColor(img *image.NRGBA, x, y int, rounded bool, background lipgloss.Color) lipgloss.Color {
	if rounded && !insideCircle(img.Bounds(), x, y) {
		return background
	}
	c := img.NRGBAAt(x, y)
	if c.A < 128 {
		return background
	}
	return hexColor(c)
}

// insideCircle reports whether the pixel centre lies within the ellipse
// inscribed in b.
func insideCircle(b image.Rectangle, x, y int) bool {
	rx := float64(b.Dx()) / 2
	ry := float64(b.Dy()) / 2
	dx := (float64(x) + 0.5 - rx) / rx
	dy := (float64(y) + 0.5 - ry) / ry
	return math.Hypot(dx, dy) <= 1
}

func hexColor(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// SampleImage draws a small gradient used by the demo when no image file is
// given.
func SampleImage() image.Image {
	const size = 32
	img := imaging.New(size, size, color.NRGBA{})
	for y := range size {
		for x := range size {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(255 * x / (size - 1)),
				G: uint8(96 + 128*y/(size-1)),
				B: 220,
				A: 255,
			})
		}
	}
	return img
}
