// Package dbus speaks the org.freedesktop.Notifications protocol.
//
// NotificationServer owns the bus name and turns Notify calls into banners.
// Monitor observes notification traffic without owning the name, and Client
// sends notifications to whichever server owns it.
package dbus
