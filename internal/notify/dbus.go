//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
)

const (
	notificationsName  = "org.freedesktop.Notifications"
	notificationsPath  = "/org/freedesktop/Notifications"
	notifyMethod       = notificationsName + ".Notify"
	closeMethod        = notificationsName + ".CloseNotification"
	playsyncAppName    = "Playsync"
	playsyncDesktopEnt = "playsync"
)

// busNotifier delivers notifications to the session notification daemon.
type busNotifier struct {
	daemon dbus.BusObject
}

// New connects to the session bus. Without one, notifications are dropped
// silently and playback is unaffected.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return &stubNotifier{}, nil //nolint:nilerr // notifications are optional
	}
	return &busNotifier{daemon: conn.Object(notificationsName, notificationsPath)}, nil
}

func (b *busNotifier) Notify(n Notification) (uint32, error) {
	call := b.daemon.Call(notifyMethod, 0,
		playsyncAppName, n.ReplacesID, n.Icon, n.Title, n.Body,
		[]string{}, hints(n), n.Timeout)
	if call.Err != nil {
		return 0, call.Err
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (b *busNotifier) Close(id uint32) error {
	return b.daemon.Call(closeMethod, 0, id).Err
}

// hints maps a notification onto the daemon's hint dictionary.
func hints(n Notification) map[string]dbus.Variant {
	h := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(playsyncDesktopEnt),
	}
	if n.Category != "" {
		h["category"] = dbus.MakeVariant(n.Category)
	}
	// Track changes replace each other quickly; keep them out of history.
	if n.Category == CategoryTrack {
		h["transient"] = dbus.MakeVariant(true)
	}
	return h
}

type stubNotifier struct{}

func (s *stubNotifier) Notify(Notification) (uint32, error) { return 0, nil }

func (s *stubNotifier) Close(uint32) error { return nil }
