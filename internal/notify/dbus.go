//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
)

const (
	dbusNotifyDest      = "org.freedesktop.Notifications"
	dbusNotifyPath      = "/org/freedesktop/Notifications"
	dbusNotifyInterface = "org.freedesktop.Notifications"

	urgencyLow byte = 0
)

// busTransport sends notifications over a private session bus connection.
type busTransport struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

func dial() (transport, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}
	return &busTransport{
		conn: conn,
		obj:  conn.Object(dbusNotifyDest, dbusNotifyPath),
	}, nil
}

func (b *busTransport) show(replaces uint32, m message) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(urgencyLow),
		"desktop-entry": dbus.MakeVariant(desktopEntry),
	}
	if m.percent >= 0 {
		// Rendered as a progress bar by servers that support it.
		hints["value"] = dbus.MakeVariant(int32(m.percent)) //nolint:gosec // 0..100
	}

	// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout) -> id
	call := b.obj.Call(
		dbusNotifyInterface+".Notify",
		0,
		appName,
		replaces,
		"",
		m.title,
		m.body,
		[]string{},
		hints,
		int32(m.expire.Milliseconds()), //nolint:gosec // dismiss delays are seconds
	)
	if call.Err != nil {
		return 0, call.Err
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (b *busTransport) dismiss(id uint32) error {
	return b.obj.Call(dbusNotifyInterface+".CloseNotification", 0, id).Err
}

func (b *busTransport) close() error {
	return b.conn.Close()
}
