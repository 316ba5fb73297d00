//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/shershen08/playsync/internal/playback"
)

// noTrack is the MPRIS path for "no current track".
const noTrack = dbus.ObjectPath("/org/mpris/MediaPlayer2/TrackList/NoTrack")

func playbackStatus(v playback.View) types.PlaybackStatus {
	switch {
	case !v.State.HasSelection():
		return types.PlaybackStatusStopped
	case v.State.Playing:
		return types.PlaybackStatusPlaying
	default:
		return types.PlaybackStatusPaused
	}
}

func metadata(v playback.View) types.Metadata {
	item, ok := v.SelectedItem()
	if !ok {
		return types.Metadata{TrackId: noTrack}
	}
	meta := types.Metadata{
		TrackId:     trackObjectPath(v.QueueID.String(), item.ID),
		Length:      msToMicros(item.DurationMs),
		Title:       item.Title,
		Album:       item.Album,
		TrackNumber: v.Queue.IndexOf(item.ID) + 1,
		ArtUrl:      item.ImageURL,
	}
	if item.Artist != "" {
		meta.Artist = []string{item.Artist}
	}
	return meta
}

// trackObjectPath derives a valid D-Bus path from ids that may contain any
// character.
func trackObjectPath(queueID, itemID string) dbus.ObjectPath {
	h := fnv.New64a()
	h.Write([]byte(queueID))
	h.Write([]byte{0})
	h.Write([]byte(itemID))
	return dbus.ObjectPath(fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64()))
}

func msToMicros(ms int64) types.Microseconds {
	return types.Microseconds(ms * 1000)
}

func microsToMs(us types.Microseconds) int64 {
	return int64(us) / 1000
}
