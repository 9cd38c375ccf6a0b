package dbus

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietServer() *NotificationServer {
	return NewNotificationServer(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNotify_AssignsAndReusesIDs(t *testing.T) {
	s := quietServer()
	var got []*DBusNotification
	var ids []uint32
	s.SetNotifyHandler(func(n *DBusNotification, id uint32) {
		got = append(got, n)
		ids = append(ids, id)
	})

	id1, derr := s.Notify("app", 0, "", "one", "", nil, nil, -1)
	require.Nil(t, derr)
	id2, derr := s.Notify("app", 0, "", "two", "", nil, nil, -1)
	require.Nil(t, derr)
	id3, derr := s.Notify("app", id1, "", "one again", "", nil, nil, -1)
	require.Nil(t, derr)

	assert.Equal(t, uint32(1), id1)
	assert.Equal(t, uint32(2), id2)
	assert.Equal(t, id1, id3)
	assert.Equal(t, []uint32{1, 2, 1}, ids)
	assert.Equal(t, "one again", got[2].Summary)
	assert.True(t, s.IsActive(id1))
}

func TestCloseNotification_DelegatesToHandler(t *testing.T) {
	s := quietServer()
	var closed []uint32
	s.SetCloseHandler(func(id uint32) { closed = append(closed, id) })

	id, _ := s.Notify("app", 0, "", "x", "", nil, nil, -1)
	assert.Nil(t, s.CloseNotification(id))
	assert.Nil(t, s.CloseNotification(999))

	assert.Equal(t, []uint32{id}, closed)
	// the handler closes it once the banner is gone
	assert.True(t, s.IsActive(id))
}

func TestCloseWithReason(t *testing.T) {
	s := quietServer()
	id := s.NotifyInternal(&DBusNotification{AppName: "shoutd", Summary: "hi"})
	require.True(t, s.IsActive(id))

	// no bus connection in tests
	err := s.CloseWithReason(id, CloseReasonExpired)
	assert.ErrorIs(t, err, errNotConnected)
	assert.False(t, s.IsActive(id))

	// closing again is a no-op
	assert.NoError(t, s.CloseWithReason(id, CloseReasonExpired))
}

func TestCapabilitiesAndInfo(t *testing.T) {
	s := quietServer()
	caps, derr := s.GetCapabilities()
	require.Nil(t, derr)
	assert.Equal(t, ServerCapabilities, caps)

	s.SetServerInfo(ServerInfo{Name: "n", Vendor: "v", Version: "1", SpecVersion: "1.2"})
	name, vendor, version, spec, derr := s.GetServerInformation()
	require.Nil(t, derr)
	assert.Equal(t, []string{"n", "v", "1", "1.2"}, []string{name, vendor, version, spec})
}

func TestMessage_Hints(t *testing.T) {
	m := Message{Urgency: UrgencyCritical, ImagePath: "/tmp/a.png", Timeout: 1500 * time.Millisecond}
	hints := m.Hints()
	assert.Equal(t, dbus.MakeVariant(UrgencyCritical), hints["urgency"])
	assert.Equal(t, dbus.MakeVariant("/tmp/a.png"), hints["image-path"])
	assert.Equal(t, int32(1500), m.expireTimeout())

	assert.Equal(t, int32(-1), Message{}.expireTimeout())
	assert.NotContains(t, Message{}.Hints(), "image-path")

	m.Actions = []Action{{Key: "default", Label: "Open"}}
	assert.Equal(t, []string{"default", "Open"}, m.actionList())
}

func TestMonitorID(t *testing.T) {
	a := &DBusNotification{AppName: "a", Summary: "s", Body: "b"}
	b := &DBusNotification{AppName: "a", Summary: "s", Body: "b"}
	c := &DBusNotification{AppName: "a", Summary: "sb"}
	assert.Equal(t, monitorID(a), monitorID(b))
	assert.NotEqual(t, monitorID(a), monitorID(c))
	assert.Equal(t, uint32(12), monitorID(&DBusNotification{ReplacesID: 12}))
}
