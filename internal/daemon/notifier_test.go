package daemon

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/shout/internal/dbus"
)

func newTestNotifier() (*InternalNotifier, *[]*dbus.DBusNotification, *time.Time) {
	n := NewInternalNotifier(quietLogger())
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	n.now = func() time.Time { return now }

	var sent []*dbus.DBusNotification
	n.SetNotifyHandler(func(notification *dbus.DBusNotification) uint32 {
		sent = append(sent, notification)
		return uint32(len(sent))
	})
	return n, &sent, &now
}

func TestInternalNotifier_Levels(t *testing.T) {
	n, sent, _ := newTestNotifier()

	n.NotifyConfigReloaded()
	n.NotifyConfigError(errors.New("bad toml"))
	n.NotifyAudioError(errors.New("no device"))
	require.Len(t, *sent, 3)

	info, warn, crit := (*sent)[0], (*sent)[1], (*sent)[2]
	assert.Equal(t, int(dbus.UrgencyLow), info.Urgency())
	assert.Equal(t, int(dbus.UrgencyNormal), warn.Urgency())
	assert.Equal(t, int(dbus.UrgencyCritical), crit.Urgency())

	assert.Equal(t, "shoutd", info.AppName)
	assert.True(t, info.SuppressSound())
	assert.Contains(t, warn.Body, "bad toml")

	timeout, ok := crit.Timeout()
	require.True(t, ok)
	assert.Equal(t, 4*time.Second, timeout)
}

func TestInternalNotifier_RateLimit(t *testing.T) {
	n, sent, now := newTestNotifier()

	n.NotifyThemeReloaded("default")
	n.NotifyThemeReloaded("default")
	assert.Len(t, *sent, 1)

	// a different key is not limited
	n.NotifyThemeError(errors.New("missing"))
	assert.Len(t, *sent, 2)

	*now = now.Add(6 * time.Second)
	n.NotifyThemeReloaded("default")
	assert.Len(t, *sent, 3)
}

func TestInternalNotifier_Disabled(t *testing.T) {
	n, sent, _ := newTestNotifier()
	n.SetEnabled(false)

	n.NotifyStartup("1.0.0")
	assert.Empty(t, *sent)

	n.SetEnabled(true)
	n.NotifyStartup("1.0.0")
	require.Len(t, *sent, 1)
	assert.Contains(t, (*sent)[0].Body, "v1.0.0")
}

func TestInternalNotifier_NoHandler(t *testing.T) {
	n := NewInternalNotifier(nil)
	assert.NotPanics(t, func() { n.NotifyStartup("1.0.0") })
}

func TestInternalNotifier_MinInterval(t *testing.T) {
	n, sent, now := newTestNotifier()
	n.SetMinInterval(time.Minute)

	n.NotifyConfigReloaded()
	*now = now.Add(30 * time.Second)
	n.NotifyConfigReloaded()
	assert.Len(t, *sent, 1)
}
