package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/shout/internal/banner"
)

const ellipsis = "…"

// Measurer wraps text at a cell width with lipgloss. Sizes are in cells.
type Measurer struct{}

// Measure implements banner.TextMeasurer.
func (Measurer) Measure(text string, maxWidth float64, maxLines int) banner.Size {
	lines := wrap(text, int(maxWidth), maxLines)
	if len(lines) == 0 {
		return banner.Size{}
	}
	w := 0
	for _, l := range lines {
		w = max(w, lipgloss.Width(l))
	}
	return banner.Size{Width: float64(w), Height: float64(len(lines))}
}

// wrap word-wraps text to width cells and cuts it to maxLines lines, marking
// the cut with an ellipsis. maxLines of zero keeps every line.
func wrap(text string, width, maxLines int) []string {
	text = strings.TrimSpace(text)
	if text == "" || width <= 0 {
		return nil
	}

	rendered := lipgloss.NewStyle().Width(width).Render(text)
	lines := strings.Split(rendered, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	for len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] = truncate(lines[maxLines-1]+" ", width-1) + ellipsis
	}
	return lines
}

// truncate cuts s to at most width cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r)) > width {
		r = r[:len(r)-1]
	}
	return strings.TrimRight(string(r), " ")
}
