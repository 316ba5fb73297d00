// Package queueview projects the controller view into queue rows and renders
// them. It never mutates the session; the app re-projects after every event.
package queueview

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/shershen08/playsync/internal/channel"
	"github.com/shershen08/playsync/internal/playback"
	"github.com/shershen08/playsync/internal/ui/render"
)

const activeMarker = "▶"

// Row is one queue entry ready for display.
type Row struct {
	ID       string
	Number   int
	Title    string
	Artist   string
	Album    string
	Duration string // m:ss
	Active   bool
	Playing  bool
}

// Header summarizes the queue and the sync state.
type Header struct {
	Title      string // "Queue 42"
	Count      string // "25 songs"
	Total      string // summed track length, m:ss
	Connection channel.Status
	Synced     string // "synced 3 seconds ago", empty before the first push
	Restored   bool
}

// Model is the read-only projection of a playback.View.
type Model struct {
	Header  Header
	Rows    []Row
	Loading bool
	Loaded  bool
	Active  int // index of the active row, -1 if none
}

// Project builds the model for v. now is used for relative sync times.
func Project(v playback.View, now time.Time) Model {
	m := Model{
		Header: Header{
			Title:      "Queue " + v.QueueID.String(),
			Count:      render.Songs(v.Queue.Len()),
			Total:      render.Duration(v.Queue.TotalDurationMs()),
			Connection: v.Status,
			Restored:   v.Restored,
		},
		Loading: v.Loading || (!v.QueueLoaded && v.QueueID != ""),
		Loaded:  v.QueueLoaded,
		Active:  -1,
	}
	if !v.LastSync.IsZero() {
		m.Header.Synced = "synced " + humanize.RelTime(v.LastSync, now, "ago", "from now")
	}

	items := v.Queue.Items()
	m.Rows = make([]Row, len(items))
	for i, it := range items {
		active := it.ID == v.State.SelectedItemID
		m.Rows[i] = Row{
			ID:       it.ID,
			Number:   i + 1,
			Title:    it.Title,
			Artist:   it.Artist,
			Album:    it.Album,
			Duration: render.Duration(it.DurationMs),
			Active:   active,
			Playing:  active && v.State.Playing,
		}
		if active {
			m.Active = i
		}
	}
	return m
}

// ConnectionLabel is the indicator text for a channel status.
func ConnectionLabel(s channel.Status) string {
	switch s {
	case channel.Connected:
		return "● Connected"
	case channel.Connecting:
		return "○ Connecting..."
	default:
		return "○ Disconnected"
	}
}
