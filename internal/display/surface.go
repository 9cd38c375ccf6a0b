package display

import (
	"bytes"
	"image"
	"log/slog"
	"path/filepath"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/disintegration/imaging"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"

	"github.com/jmylchreest/shout/internal/banner"
)

// Gestures receives input from the banner window.
type Gestures interface {
	Tap()
	DragBegan()
	DragChanged(t float64)
	DragEnded(t float64)
	DragCancelled(t float64)
}

// Surface is the layer-shell window banners are drawn into. It implements
// banner.HostSurface.
type Surface struct {
	logger   *slog.Logger
	monitors *MonitorWatcher
	gestures Gestures

	window     *gtk.Window
	fixed      *gtk.Fixed
	background *gtk.Box
	image      *gtk.Image
	title      *gtk.Label
	subtitle   *gtk.Label
	indicator  *gtk.Box

	safeAreaTop float64
	imageFor    string // announcement ID the image was loaded for

	body    Box
	pointer *pointer
}

// NewSurface builds the banner window. It stays hidden until a banner is
// attached.
func NewSurface(app *gtk.Application, monitors *MonitorWatcher, gestures Gestures, logger *slog.Logger) *Surface {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Surface{
		logger:   logger,
		monitors: monitors,
		gestures: gestures,
	}
	s.pointer = newPointer(gestures, func() Box { return s.body })

	s.window = gtk.NewWindow()
	s.window.SetApplication(app)
	s.window.SetDecorated(false)
	s.window.SetResizable(false)
	s.window.AddCSSClass("shout-banner")

	layershell.InitForWindow(s.window)
	layershell.SetLayer(s.window, layershell.LayerShellLayerOverlay)
	layershell.SetNamespace(s.window, "shout-banner")
	layershell.SetKeyboardMode(s.window, layershell.LayerShellKeyboardModeNone)
	layershell.SetExclusiveZone(s.window, 0)
	layershell.SetAnchor(s.window, layershell.LayerShellEdgeTop, true)
	layershell.SetAnchor(s.window, layershell.LayerShellEdgeLeft, true)
	layershell.SetAnchor(s.window, layershell.LayerShellEdgeRight, true)

	s.fixed = gtk.NewFixed()
	s.fixed.SetOverflow(gtk.OverflowHidden)

	s.background = gtk.NewBox(gtk.OrientationVertical, 0)
	s.background.AddCSSClass("banner-background")

	s.image = gtk.NewImage()
	s.image.AddCSSClass("banner-image")

	s.title = newBannerLabel("banner-title")
	s.subtitle = newBannerLabel("banner-subtitle")

	s.indicator = gtk.NewBox(gtk.OrientationHorizontal, 0)
	s.indicator.AddCSSClass("banner-indicator")

	for _, w := range []gtk.Widgetter{s.background, s.image, s.title, s.subtitle, s.indicator} {
		s.fixed.Put(w, 0, 0)
	}
	s.window.SetChild(s.fixed)

	s.connectGestures()
	return s
}

func newBannerLabel(class string) *gtk.Label {
	l := gtk.NewLabel("")
	l.AddCSSClass(class)
	l.SetXAlign(0)
	l.SetYAlign(0)
	l.SetWrap(true)
	return l
}

func (s *Surface) connectGestures() {
	click := gtk.NewGestureClick()
	click.ConnectPressed(func(nPress int, x, y float64) {
		s.pointer.press(x, y)
	})
	click.ConnectReleased(func(nPress int, x, y float64) {
		s.pointer.release(x, y)
	})
	s.window.AddController(click)

	// A drag only starts once the pointer moves, so a plain click stays a tap.
	drag := gtk.NewGestureDrag()
	drag.ConnectDragBegin(func(startX, startY float64) {
		s.pointer.press(startX, startY)
	})
	drag.ConnectDragUpdate(func(offsetX, offsetY float64) {
		s.pointer.dragUpdate(offsetY)
	})
	drag.ConnectDragEnd(func(offsetX, offsetY float64) {
		s.pointer.dragEnd(offsetY)
	})
	drag.ConnectCancel(func(_ *gdk.EventSequence) {
		s.pointer.cancel()
	})
	s.window.AddController(drag)
}

// SetSafeAreaTop sets the space kept clear at the top of the monitor.
func (s *Surface) SetSafeAreaTop(px float64) {
	s.safeAreaTop = px
}

// SetOpacity sets the window opacity.
func (s *Surface) SetOpacity(opacity float64) {
	s.window.SetOpacity(opacity)
	if opacity < 1 {
		s.window.AddCSSClass("translucent")
	} else {
		s.window.RemoveCSSClass("translucent")
	}
}

// Width implements banner.HostSurface.
func (s *Surface) Width() float64 {
	return s.monitors.Width()
}

// SafeAreaTopInset implements banner.HostSurface.
func (s *Surface) SafeAreaTopInset() float64 {
	return s.safeAreaTop
}

// Attach implements banner.HostSurface.
func (s *Surface) Attach(v banner.View) {
	if m := s.monitors.Monitor(); m != nil {
		layershell.SetMonitor(s.window, m)
	}
	s.window.RemoveCSSClass("dark")
	s.window.RemoveCSSClass("light")
	s.window.AddCSSClass(colorSchemeClass())
	s.Render(v.Snapshot())
	s.window.SetVisible(true)
}

// Detach implements banner.HostSurface.
func (s *Surface) Detach(banner.View) {
	s.window.SetVisible(false)
	s.pointer.detached()
	s.body = Box{}
	s.imageFor = ""
}

// Render moves the widgets to match a snapshot.
func (s *Surface) Render(snap banner.Snapshot) {
	if snap.State == banner.StateIdle {
		return
	}
	a := snap.Announcement
	p := Place(snap)

	s.window.SetDefaultSize(-1, p.WindowHeight)
	s.window.SetSizeRequest(-1, p.WindowHeight)
	s.fixed.SetSizeRequest(p.Background.W, p.WindowHeight)

	s.body = Box{}
	if p.ShowBanner {
		s.body = p.Background
	}
	s.background.SetVisible(p.ShowBanner)
	s.place(s.background, p.Background)
	s.indicator.SetVisible(p.ShowBanner && p.Indicator.Y >= 0)
	s.place(s.indicator, p.Indicator)

	s.title.SetVisible(p.ShowTitle)
	if p.ShowTitle {
		s.title.SetText(a.Title)
		configureLines(s.title, snap.Layout.Title.Lines)
		s.place(s.title, p.Title)
	}

	s.subtitle.SetVisible(p.ShowSubtitle)
	if p.ShowSubtitle {
		s.subtitle.SetText(a.Subtitle)
		configureLines(s.subtitle, snap.Layout.Subtitle.Lines)
		s.place(s.subtitle, p.Subtitle)
	}

	s.image.SetVisible(p.ShowImage)
	if p.ShowImage {
		if s.imageFor != a.ID {
			s.loadImage(a.Image, p.Image)
			s.imageFor = a.ID
		}
		if snap.Layout.ImageCornerRadius > 0 {
			s.image.AddCSSClass("rounded")
		} else {
			s.image.RemoveCSSClass("rounded")
		}
		s.place(s.image, p.Image)
	}
}

func (s *Surface) place(w gtk.Widgetter, b Box) {
	gtk.BaseWidget(w).SetSizeRequest(max(b.W, 0), max(b.H, 0))
	s.fixed.Move(w, float64(b.X), float64(b.Y))
}

// loadImage shows a decoded image, an image file or a themed icon name.
func (s *Surface) loadImage(img *banner.Image, b Box) {
	s.image.SetPixelSize(max(b.W, b.H))

	src := img.Source
	if src == nil && img.Path != "" && !filepath.IsAbs(img.Path) {
		s.image.SetFromIconName(img.Path)
		return
	}
	if src == nil {
		decoded, err := imaging.Open(img.Path, imaging.AutoOrientation(true))
		if err != nil {
			s.logger.Debug("failed to load banner image", "path", img.Path, "error", err)
			s.image.SetFromIconName("dialog-information")
			return
		}
		src = decoded
	}

	texture, err := textureFrom(src, b.W, b.H)
	if err != nil {
		s.logger.Debug("failed to convert banner image", "error", err)
		s.image.SetFromIconName("dialog-information")
		return
	}
	s.image.SetFromPaintable(texture)
}

// textureFrom scales src to fit w x h and uploads it as a texture.
func textureFrom(src image.Image, w, h int) (*gdk.Texture, error) {
	if w > 0 && h > 0 {
		src = imaging.Fit(src, w, h, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, src, imaging.PNG); err != nil {
		return nil, err
	}
	return gdk.NewTextureFromBytes(glib.NewBytes(buf.Bytes()))
}

// Destroy closes the window.
func (s *Surface) Destroy() {
	s.window.Destroy()
}
