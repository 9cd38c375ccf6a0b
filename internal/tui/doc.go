// Package tui hosts banners in a terminal with bubbletea. The banner is drawn
// over the top rows of the program's view in cell units, and mouse events are
// routed through bubblezone regions into the presenter's tap and drag hooks.
package tui
