package dbus

import (
	"errors"
	"fmt"
)

var errNotConnected = errors.New("not connected to D-Bus")

// EmitNotificationClosed emits the NotificationClosed signal.
func (s *NotificationServer) EmitNotificationClosed(id uint32, reason CloseReason) error {
	if s.conn == nil {
		return errNotConnected
	}

	err := s.conn.Emit(DBusPath, DBusInterface+".NotificationClosed", id, uint32(reason))
	if err != nil {
		return fmt.Errorf("failed to emit NotificationClosed signal: %w", err)
	}

	s.logger.Debug("emitted NotificationClosed signal", "id", id, "reason", reason.String())
	return nil
}

// EmitActionInvoked emits the ActionInvoked signal.
func (s *NotificationServer) EmitActionInvoked(id uint32, actionKey string) error {
	if s.conn == nil {
		return errNotConnected
	}

	err := s.conn.Emit(DBusPath, DBusInterface+".ActionInvoked", id, actionKey)
	if err != nil {
		return fmt.Errorf("failed to emit ActionInvoked signal: %w", err)
	}

	s.logger.Debug("emitted ActionInvoked signal", "id", id, "action_key", actionKey)
	return nil
}

// CloseWithReason stops tracking a notification and emits NotificationClosed.
// Notifications that are no longer active are ignored so each id is closed
// at most once.
func (s *NotificationServer) CloseWithReason(id uint32, reason CloseReason) error {
	s.mu.Lock()
	_, active := s.live[id]
	delete(s.live, id)
	s.mu.Unlock()

	if !active {
		return nil
	}
	return s.EmitNotificationClosed(id, reason)
}
