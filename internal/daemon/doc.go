// Package daemon wires shoutd together: it turns D-Bus notifications into
// banners, reports their end back over the bus, reloads configuration and
// raises the daemon's own notices.
package daemon
