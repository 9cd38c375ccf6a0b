package dbus

import (
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseReasonString(t *testing.T) {
	tests := []struct {
		reason   CloseReason
		expected string
	}{
		{CloseReasonExpired, "expired"},
		{CloseReasonDismissed, "dismissed"},
		{CloseReasonClosed, "closed"},
		{CloseReasonUndefined, "undefined"},
		{CloseReason(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.reason.String())
		})
	}
}

func TestParseNotifyArgs(t *testing.T) {
	hints := map[string]dbus.Variant{"urgency": dbus.MakeVariant(byte(2))}
	n, err := ParseNotifyArgs([]interface{}{
		"mail", uint32(7), "mail-unread", "New message", "from alice",
		[]string{"default", "Open"}, hints, int32(4000),
	})
	require.NoError(t, err)

	assert.Equal(t, "mail", n.AppName)
	assert.Equal(t, uint32(7), n.ReplacesID)
	assert.Equal(t, "mail-unread", n.AppIcon)
	assert.Equal(t, "New message", n.Summary)
	assert.Equal(t, "from alice", n.Body)
	assert.Equal(t, []string{"default", "Open"}, n.Actions)
	assert.Equal(t, 2, n.Urgency())
	assert.Equal(t, int32(4000), n.ExpireTimeout)
}

func TestParseNotifyArgs_Malformed(t *testing.T) {
	_, err := ParseNotifyArgs([]interface{}{"too", "short"})
	assert.Error(t, err)

	_, err = ParseNotifyArgs([]interface{}{
		42, uint32(0), "", "", "", []string{}, map[string]dbus.Variant{}, int32(-1),
	})
	assert.Error(t, err)
}

func TestParsedActions(t *testing.T) {
	tests := []struct {
		name     string
		actions  []string
		expected []Action
	}{
		{
			name:     "empty",
			actions:  nil,
			expected: []Action{},
		},
		{
			name:     "single action",
			actions:  []string{"default", "Open"},
			expected: []Action{{Key: "default", Label: "Open"}},
		},
		{
			name:     "odd number (incomplete pair ignored)",
			actions:  []string{"default", "Open", "orphan"},
			expected: []Action{{Key: "default", Label: "Open"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &DBusNotification{Actions: tt.actions}
			assert.Equal(t, tt.expected, n.ParsedActions())
		})
	}
}

func TestDefaultAction(t *testing.T) {
	tests := []struct {
		name    string
		actions []string
		key     string
		ok      bool
	}{
		{"none", nil, "", false},
		{"default offered", []string{"reply", "Reply", "default", "Open"}, "default", true},
		{"first otherwise", []string{"reply", "Reply", "mute", "Mute"}, "reply", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &DBusNotification{Actions: tt.actions}
			key, ok := n.DefaultAction()
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestTimeout(t *testing.T) {
	d, ok := (&DBusNotification{ExpireTimeout: 2500}).Timeout()
	assert.True(t, ok)
	assert.Equal(t, 2500*time.Millisecond, d)

	_, ok = (&DBusNotification{ExpireTimeout: -1}).Timeout()
	assert.False(t, ok)

	_, ok = (&DBusNotification{ExpireTimeout: 0}).Timeout()
	assert.False(t, ok)
}

func TestUrgency(t *testing.T) {
	tests := []struct {
		name     string
		hints    map[string]dbus.Variant
		expected int
	}{
		{"no hint", nil, int(UrgencyNormal)},
		{"low urgency", map[string]dbus.Variant{"urgency": dbus.MakeVariant(byte(0))}, int(UrgencyLow)},
		{"critical urgency", map[string]dbus.Variant{"urgency": dbus.MakeVariant(byte(2))}, int(UrgencyCritical)},
		{"wrong type returns normal", map[string]dbus.Variant{"urgency": dbus.MakeVariant("high")}, int(UrgencyNormal)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &DBusNotification{Hints: tt.hints}
			assert.Equal(t, tt.expected, n.Urgency())
		})
	}
}

func TestStringAndBoolHints(t *testing.T) {
	n := &DBusNotification{
		Hints: map[string]dbus.Variant{
			"category":       dbus.MakeVariant("email.arrived"),
			"sound-file":     dbus.MakeVariant("/tmp/ding.wav"),
			"suppress-sound": dbus.MakeVariant(true),
			"resident":       dbus.MakeVariant("yes"),
		},
	}
	assert.Equal(t, "email.arrived", n.Category())
	assert.Equal(t, "/tmp/ding.wav", n.SoundFile())
	assert.True(t, n.SuppressSound())
	// wrong type
	assert.False(t, n.Resident())

	n.Hints = nil
	assert.Empty(t, n.Category())
	assert.False(t, n.SuppressSound())
}

func TestImagePath(t *testing.T) {
	n := &DBusNotification{
		Hints: map[string]dbus.Variant{
			"image-path": dbus.MakeVariant("/tmp/image.png"),
		},
	}
	assert.Equal(t, "/tmp/image.png", n.ImagePath())

	n.Hints = map[string]dbus.Variant{
		"image_path": dbus.MakeVariant("/tmp/legacy.png"),
	}
	assert.Equal(t, "/tmp/legacy.png", n.ImagePath())

	n.Hints = nil
	assert.Equal(t, "", n.ImagePath())
}

func TestDefaultServerInfo(t *testing.T) {
	info := DefaultServerInfo()
	assert.Equal(t, "shoutd", info.Name)
	assert.Equal(t, "shout", info.Vendor)
	assert.Equal(t, "1.2", info.SpecVersion)
	assert.NotEmpty(t, info.Version)
}

func TestServerCapabilities(t *testing.T) {
	assert.Contains(t, ServerCapabilities, "actions")
	assert.Contains(t, ServerCapabilities, "body")
	assert.NotContains(t, ServerCapabilities, "persistence")
}
