package tui

import (
	"log/slog"

	"github.com/jmylchreest/shout/internal/banner"
)

// Surface is the top of the terminal screen. Its width is in columns and its
// safe-area inset in rows.
type Surface struct {
	logger *slog.Logger

	width       int
	safeAreaTop float64
	view        banner.View
}

// NewSurface creates a surface with no width. The width arrives with the
// first tea.WindowSizeMsg.
func NewSurface(safeAreaTop float64, logger *slog.Logger) *Surface {
	if logger == nil {
		logger = slog.Default()
	}
	return &Surface{logger: logger, safeAreaTop: safeAreaTop}
}

// SetWidth records the terminal width in columns.
func (s *Surface) SetWidth(cols int) {
	s.width = max(cols, 0)
}

// SetSafeAreaTop sets the number of rows kept clear at the top.
func (s *Surface) SetSafeAreaTop(rows float64) {
	s.safeAreaTop = rows
}

// Width implements banner.HostSurface.
func (s *Surface) Width() float64 {
	return float64(s.width)
}

// SafeAreaTopInset implements banner.HostSurface.
func (s *Surface) SafeAreaTopInset() float64 {
	return s.safeAreaTop
}

// Attach implements banner.HostSurface.
func (s *Surface) Attach(v banner.View) {
	s.view = v
	s.logger.Debug("banner attached", "width", s.width)
}

// Detach implements banner.HostSurface.
func (s *Surface) Detach(banner.View) {
	s.view = nil
	s.logger.Debug("banner detached")
}

// Attached reports whether a banner is on the surface.
func (s *Surface) Attached() bool {
	return s.view != nil
}
