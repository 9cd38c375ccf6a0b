// Package display hosts banners on Wayland. A single layer-shell window is
// anchored to the top edge of the configured monitor and resized every frame
// to the presenter's height; GTK gestures on it are forwarded back to the
// presenter.
package display
