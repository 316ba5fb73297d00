// Package notify shows desktop notifications for playback and sync events.
//
// The builders in this file decide what a notification says; the Watcher
// decides when one is sent, and the platform Notifier delivers it.
package notify

import (
	"strings"

	"github.com/shershen08/playsync/internal/catalog"
	"github.com/shershen08/playsync/internal/ui/render"
)

// Urgency is the freedesktop notification urgency level.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Freedesktop categories used by playsync.
const (
	CategoryTrack   = "x-playsync.track"
	CategoryNetwork = "network.disconnected"
)

const (
	trackTimeout = 5000
	iconPlay     = "media-playback-start"
	iconOffline  = "network-offline"
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // summary, required
	Body       string  // one line per field
	Icon       string  // freedesktop icon name
	Category   string  // freedesktop category hint, empty to omit
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// NowPlaying announces item after the user selected it. replaces is the id of
// the previous track notification, or 0.
func NowPlaying(item catalog.Item, replaces uint32) Notification {
	return trackNotification("Now playing", item, replaces)
}

// Resumed announces a session restored from the server at positionMs.
func Resumed(item catalog.Item, positionMs int64, replaces uint32) Notification {
	return trackNotification("Resumed at "+render.Duration(positionMs), item, replaces)
}

// ConnectionLost warns that playback changes no longer reach the server.
func ConnectionLost() Notification {
	return Notification{
		Title:    "Sync connection lost",
		Body:     "Playback changes are no longer saved. Restart to reconnect.",
		Icon:     iconOffline,
		Category: CategoryNetwork,
		Timeout:  -1,
		Urgency:  UrgencyCritical,
	}
}

func trackNotification(title string, item catalog.Item, replaces uint32) Notification {
	body := item.Title
	if by := byline(item.Artist, item.Album); by != "" {
		body += "\n" + by
	}
	return Notification{
		Title:      title,
		Body:       body,
		Icon:       iconPlay,
		Category:   CategoryTrack,
		Timeout:    trackTimeout,
		ReplacesID: replaces,
		Urgency:    UrgencyLow,
	}
}

func byline(artist, album string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{artist, album} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " · ")
}
