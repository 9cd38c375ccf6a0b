package daemon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_RegisterAndFinish(t *testing.T) {
	tr := NewTracker()

	e := tr.Register("a1", 10)
	assert.Equal(t, StatusActive, e.Status)
	assert.False(t, e.CreatedAt.IsZero())

	id, ok := tr.AnnouncementFor(10)
	require.True(t, ok)
	assert.Equal(t, "a1", id)

	dbusID, ok := tr.DBusIDFor("a1")
	require.True(t, ok)
	assert.Equal(t, uint32(10), dbusID)

	final, ok := tr.Finish("a1", StatusExpired)
	require.True(t, ok)
	assert.Equal(t, StatusExpired, final.Status)
	assert.False(t, final.ClosedAt.IsZero())
	assert.Zero(t, tr.Count())

	_, ok = tr.Finish("a1", StatusExpired)
	assert.False(t, ok, "finishing twice reports nothing")
}

func TestTracker_Replacement(t *testing.T) {
	tr := NewTracker()
	tr.Register("old", 5)
	tr.Register("new", 5)

	assert.Equal(t, 1, tr.Count())
	id, _ := tr.AnnouncementFor(5)
	assert.Equal(t, "new", id)

	_, ok := tr.Finish("old", StatusSuperseded)
	assert.False(t, ok)

	_, ok = tr.AnnouncementFor(5)
	assert.True(t, ok, "old announcement must not drop the new mapping")
}

func TestTracker_Unknown(t *testing.T) {
	tr := NewTracker()

	_, ok := tr.AnnouncementFor(1)
	assert.False(t, ok)
	_, ok = tr.DBusIDFor("missing")
	assert.False(t, ok)
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusActive, "active"},
		{StatusExpired, "expired"},
		{StatusDismissed, "dismissed"},
		{StatusClosed, "closed"},
		{StatusSuperseded, "superseded"},
		{Status(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.String())
	}
}
