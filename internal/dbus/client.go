package dbus

import (
	"context"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
)

// Message is a notification to send with Client.Send.
type Message struct {
	AppName   string
	AppIcon   string
	Summary   string
	Body      string
	ImagePath string
	Urgency   byte
	Timeout   time.Duration // zero leaves it to the server
	Actions   []Action
	ReplaceID uint32
}

// Hints builds the Notify hint map for the message.
func (m Message) Hints() map[string]dbus.Variant {
	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(m.Urgency),
	}
	if m.ImagePath != "" {
		hints["image-path"] = dbus.MakeVariant(m.ImagePath)
	}
	return hints
}

func (m Message) expireTimeout() int32 {
	if m.Timeout <= 0 {
		return -1
	}
	return int32(m.Timeout.Milliseconds())
}

func (m Message) actionList() []string {
	list := make([]string, 0, len(m.Actions)*2)
	for _, a := range m.Actions {
		list = append(list, a.Key, a.Label)
	}
	return list
}

// Client sends notifications to the server owning org.freedesktop.Notifications.
type Client struct {
	conn *dbus.Conn
}

// NewClient connects to the session bus.
func NewClient() (*Client, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Client{conn: conn}, nil
}

// Send delivers a notification and returns the id assigned by the server.
func (c *Client) Send(ctx context.Context, m Message) (uint32, error) {
	obj := c.conn.Object(DBusBusName, dbus.ObjectPath(DBusPath))
	call := obj.CallWithContext(ctx, DBusInterface+".Notify", 0,
		m.AppName,
		m.ReplaceID,
		m.AppIcon,
		m.Summary,
		m.Body,
		m.actionList(),
		m.Hints(),
		m.expireTimeout(),
	)
	if call.Err != nil {
		return 0, fmt.Errorf("failed to send notification: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("failed to read notification id: %w", err)
	}
	return id, nil
}

// ServerInformation queries the name and version of the running server.
func (c *Client) ServerInformation(ctx context.Context) (ServerInfo, error) {
	obj := c.conn.Object(DBusBusName, dbus.ObjectPath(DBusPath))
	var info ServerInfo
	err := obj.CallWithContext(ctx, DBusInterface+".GetServerInformation", 0).
		Store(&info.Name, &info.Vendor, &info.Version, &info.SpecVersion)
	if err != nil {
		return ServerInfo{}, fmt.Errorf("failed to query server information: %w", err)
	}
	return info, nil
}
