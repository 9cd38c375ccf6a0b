package dbus

import (
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
)

// CloseReason represents the reason for closing a notification.
// These values are defined by the freedesktop.org notification specification.
type CloseReason uint32

const (
	// CloseReasonExpired indicates the notification expired (timeout reached).
	CloseReasonExpired CloseReason = 1
	// CloseReasonDismissed indicates the user dismissed the notification.
	CloseReasonDismissed CloseReason = 2
	// CloseReasonClosed indicates the notification was closed via CloseNotification.
	CloseReasonClosed CloseReason = 3
	// CloseReasonUndefined is reserved; shout reports superseded banners with it.
	CloseReasonUndefined CloseReason = 4
)

// String returns the string representation of the close reason.
func (r CloseReason) String() string {
	switch r {
	case CloseReasonExpired:
		return "expired"
	case CloseReasonDismissed:
		return "dismissed"
	case CloseReasonClosed:
		return "closed"
	case CloseReasonUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// Urgency levels carried in the "urgency" hint.
const (
	UrgencyLow      byte = 0
	UrgencyNormal   byte = 1
	UrgencyCritical byte = 2
)

// DBusNotification represents an incoming D-Bus Notify call.
type DBusNotification struct {
	AppName       string
	ReplacesID    uint32
	AppIcon       string
	Summary       string
	Body          string
	Actions       []string // Alternating key, label pairs
	Hints         map[string]dbus.Variant
	ExpireTimeout int32 // -1 = server default, 0 = never expire
}

// ParseNotifyArgs decodes the body of a Notify method call.
// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout)
func ParseNotifyArgs(body []interface{}) (*DBusNotification, error) {
	if len(body) < 8 {
		return nil, fmt.Errorf("malformed Notify call: %d arguments", len(body))
	}

	n := &DBusNotification{}
	var ok bool
	if n.AppName, ok = body[0].(string); !ok {
		return nil, fmt.Errorf("invalid app_name type %T", body[0])
	}
	if n.ReplacesID, ok = body[1].(uint32); !ok {
		return nil, fmt.Errorf("invalid replaces_id type %T", body[1])
	}
	if n.AppIcon, ok = body[2].(string); !ok {
		return nil, fmt.Errorf("invalid app_icon type %T", body[2])
	}
	if n.Summary, ok = body[3].(string); !ok {
		return nil, fmt.Errorf("invalid summary type %T", body[3])
	}
	if n.Body, ok = body[4].(string); !ok {
		return nil, fmt.Errorf("invalid body type %T", body[4])
	}
	if actions, ok := body[5].([]string); ok {
		n.Actions = actions
	}
	if hints, ok := body[6].(map[string]dbus.Variant); ok {
		n.Hints = hints
	}
	if timeout, ok := body[7].(int32); ok {
		n.ExpireTimeout = timeout
	}
	return n, nil
}

// Action represents a notification action with key and label.
type Action struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ParsedActions converts the D-Bus action array to structured form.
// D-Bus actions are passed as alternating key/label pairs.
func (n *DBusNotification) ParsedActions() []Action {
	actions := make([]Action, 0, len(n.Actions)/2)
	for i := 0; i+1 < len(n.Actions); i += 2 {
		actions = append(actions, Action{
			Key:   n.Actions[i],
			Label: n.Actions[i+1],
		})
	}
	return actions
}

// DefaultAction returns the key invoked when the banner is tapped: the
// "default" action when offered, otherwise the first one.
func (n *DBusNotification) DefaultAction() (string, bool) {
	actions := n.ParsedActions()
	if len(actions) == 0 {
		return "", false
	}
	for _, a := range actions {
		if a.Key == "default" {
			return a.Key, true
		}
	}
	return actions[0].Key, true
}

// Timeout returns the requested display time, or false when the sender
// left it to the server (-1) or asked for no expiry (0).
func (n *DBusNotification) Timeout() (time.Duration, bool) {
	if n.ExpireTimeout <= 0 {
		return 0, false
	}
	return time.Duration(n.ExpireTimeout) * time.Millisecond, true
}

// Urgency extracts the urgency hint, defaulting to normal.
func (n *DBusNotification) Urgency() int {
	if v, ok := n.Hints["urgency"]; ok {
		if b, ok := v.Value().(byte); ok {
			return int(b)
		}
	}
	return int(UrgencyNormal)
}

// Category extracts the category hint.
func (n *DBusNotification) Category() string {
	return n.stringHint("category")
}

// SoundFile extracts the sound-file hint.
func (n *DBusNotification) SoundFile() string {
	return n.stringHint("sound-file")
}

// SuppressSound returns true if the suppress-sound hint is set.
func (n *DBusNotification) SuppressSound() bool {
	return n.boolHint("suppress-sound")
}

// Resident returns true if the resident hint is set.
func (n *DBusNotification) Resident() bool {
	return n.boolHint("resident")
}

// ImagePath extracts the image-path hint, falling back to the deprecated
// image_path spelling.
func (n *DBusNotification) ImagePath() string {
	if s := n.stringHint("image-path"); s != "" {
		return s
	}
	return n.stringHint("image_path")
}

func (n *DBusNotification) stringHint(key string) string {
	if v, ok := n.Hints[key]; ok {
		if s, ok := v.Value().(string); ok {
			return s
		}
	}
	return ""
}

func (n *DBusNotification) boolHint(key string) bool {
	if v, ok := n.Hints[key]; ok {
		if b, ok := v.Value().(bool); ok {
			return b
		}
	}
	return false
}

// ServerCapabilities lists the capabilities advertised by shoutd.
var ServerCapabilities = []string{
	"actions",     // tap or pull down invokes the default action
	"body",        // body is shown as the banner subtitle
	"icon-static", // app icon or image-path shown beside the text
	"sound",       // chime on present
}

// ServerInfo contains information about the notification server.
type ServerInfo struct {
	Name        string
	Vendor      string
	Version     string
	SpecVersion string
}

// DefaultServerInfo returns the default server information.
func DefaultServerInfo() ServerInfo {
	return ServerInfo{
		Name:        "shoutd",
		Vendor:      "shout",
		Version:     "0.0.1",
		SpecVersion: "1.2",
	}
}
