package tui

import (
	"log/slog"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/jmylchreest/shout/internal/banner"
	"github.com/jmylchreest/shout/internal/theme"
)

// Zone IDs marked in the rendered banner.
const (
	zoneBody = "shout-banner-body"
	zoneGrip = "shout-banner-grip"
)

const indicatorBar = "━"

// Renderer draws banner snapshots as terminal rows.
type Renderer struct {
	logger *slog.Logger
	zones  *zone.Manager

	background lipgloss.Color
	base       lipgloss.Style
	title      lipgloss.Style
	subtitle   lipgloss.Style
	indicator  lipgloss.Style

	imageFor string
	image    []string
}

// NewRenderer creates a renderer. zones may be nil, in which case nothing is
// marked for mouse hit testing.
func NewRenderer(palette theme.Palette, zones *zone.Manager, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Renderer{logger: logger, zones: zones}
	r.SetPalette(palette)
	return r
}

// SetPalette changes the banner colours.
func (r *Renderer) SetPalette(p theme.Palette) {
	r.background = lipgloss.Color(p.Background)
	r.base = lipgloss.NewStyle().Background(r.background)
	r.title = r.base.Foreground(lipgloss.Color(p.Title)).Bold(true)
	r.subtitle = r.base.Foreground(lipgloss.Color(p.Subtitle))
	r.indicator = r.base.Foreground(lipgloss.Color(p.Indicator))
	r.imageFor = ""
}

// Rows returns the visible banner rows for s, top to bottom. The touch
// offset below the banner is not included.
func (r *Renderer) Rows(s banner.Snapshot) []string {
	width := int(math.Round(s.Layout.Width))
	rows := int(math.Round(s.Background.Height))
	if s.State == banner.StateIdle || width <= 0 || rows <= 0 {
		return nil
	}

	a := s.Announcement
	shift := s.ContentShift()
	l := s.Layout
	labelWidth := int(l.LabelWidth)

	titleLines := wrap(a.Title, labelWidth, l.Title.Lines)
	subtitleLines := wrap(a.Subtitle, labelWidth, l.Subtitle.Lines)
	image := r.imageRows(s)

	titleTop := rowOf(l.Title.Frame.Y + shift)
	subtitleTop := rowOf(l.Subtitle.Frame.Y + shift)
	imageTop := rowOf(l.Image.Y + shift)
	indicatorRow := -1
	if s.Indicator.Y >= 0 {
		indicatorRow = rowOf(s.Indicator.Y)
	}

	out := make([]string, rows)
	for y := range rows {
		if y == indicatorRow {
			out[y] = r.indicatorRow(s, width)
			continue
		}

		var imgLine string
		if i := y - imageTop; l.ImageVisible && i >= 0 && i < len(image) {
			imgLine = image[i]
		}
		text, style := "", r.base
		if i := y - titleTop; l.Title.Visible && i >= 0 && i < len(titleLines) {
			text, style = titleLines[i], r.title
		} else if i := y - subtitleTop; l.Subtitle.Visible && i >= 0 && i < len(subtitleLines) {
			text, style = subtitleLines[i], r.subtitle
		}
		out[y] = r.contentRow(s, width, imgLine, text, style)
	}
	return out
}

func rowOf(y float64) int {
	return int(math.Round(y))
}

func (r *Renderer) contentRow(s banner.Snapshot, width int, imgLine, text string, style lipgloss.Style) string {
	l := s.Layout
	textX := min(rowOf(l.TextOffsetX), width)

	var b strings.Builder
	if imgLine != "" {
		imgX := rowOf(l.Image.X)
		imgW := lipgloss.Width(imgLine)
		b.WriteString(r.base.Render(spaces(imgX)))
		b.WriteString(imgLine)
		b.WriteString(r.base.Render(spaces(textX - imgX - imgW)))
	} else {
		b.WriteString(r.base.Render(spaces(textX)))
	}

	labelWidth := min(int(l.LabelWidth), width-textX)
	text = truncate(text, labelWidth)
	b.WriteString(style.Render(text + spaces(labelWidth-lipgloss.Width(text))))
	b.WriteString(r.base.Render(spaces(width - textX - labelWidth)))
	return b.String()
}

func (r *Renderer) indicatorRow(s banner.Snapshot, width int) string {
	x := max(rowOf(s.Indicator.X), 0)
	w := min(rowOf(s.Indicator.Width), width-x)
	return r.base.Render(spaces(x)) +
		r.indicator.Render(strings.Repeat(indicatorBar, max(w, 0))) +
		r.base.Render(spaces(width-x-w))
}

// imageRows renders the announcement image once per announcement.
func (r *Renderer) imageRows(s banner.Snapshot) []string {
	a := s.Announcement
	if !s.Layout.ImageVisible || a.Image == nil {
		return nil
	}
	if r.imageFor == a.ID {
		return r.image
	}

	src := a.Image.Source
	if src == nil && a.Image.Path != "" {
		img, err := LoadImage(a.Image.Path)
		if err != nil {
			r.logger.Debug("failed to load banner image", "error", err)
		}
		src = img
	}
	r.image = HalfBlocks(src,
		rowOf(s.Layout.Image.Width), rowOf(s.Layout.Image.Height),
		s.Layout.ImageCornerRadius > 0, r.background)
	r.imageFor = a.ID
	return r.image
}

// Overlay draws the banner for s over the top of base. The touch offset rows
// stay transparent but are marked as part of the drag grip.
func (r *Renderer) Overlay(s banner.Snapshot, base string) string {
	rows := r.Rows(s)
	if len(rows) == 0 {
		return base
	}
	touch := max(rowOf(s.Height)-len(rows), 0)

	lines := strings.Split(base, "\n")
	for len(lines) < len(rows)+touch {
		lines = append(lines, "")
	}

	body, grip := rows, []string(nil)
	if i := rowOf(s.Indicator.Y); s.Indicator.Y >= 0 && i < len(rows) {
		body, grip = rows[:i], rows[i:]
	}
	grip = append(grip, lines[len(rows):len(rows)+touch]...)

	var top []string
	if len(body) > 0 {
		top = append(top, r.mark(zoneBody, body)...)
	}
	if len(grip) > 0 {
		top = append(top, r.mark(zoneGrip, grip)...)
	}
	return strings.Join(append(top, lines[len(rows)+touch:]...), "\n")
}

func (r *Renderer) mark(id string, rows []string) []string {
	if r.zones == nil {
		return rows
	}
	return strings.Split(r.zones.Mark(id, strings.Join(rows, "\n")), "\n")
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
