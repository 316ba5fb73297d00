package playback

import (
	"time"

	"github.com/shershen08/playsync/internal/catalog"
	"github.com/shershen08/playsync/internal/channel"
	"github.com/shershen08/playsync/internal/session"
	"github.com/shershen08/playsync/internal/wire"
)

// Cause names what produced a state change.
type Cause int

const (
	CauseSelect Cause = iota
	CausePlay
	CausePause
	CauseSeek
	CauseTick
	CauseEnd
	CauseRestore
	CauseQueue
)

// String returns the cause name.
func (c Cause) String() string {
	switch c {
	case CauseSelect:
		return "select"
	case CausePlay:
		return "play"
	case CausePause:
		return "pause"
	case CauseSeek:
		return "seek"
	case CauseTick:
		return "tick"
	case CauseEnd:
		return "end"
	case CauseRestore:
		return "restore"
	case CauseQueue:
		return "queue"
	default:
		return "unknown"
	}
}

// View is a read-only snapshot of everything a presentation layer needs.
type View struct {
	UserID      string
	QueueID     wire.QueueID
	Queue       catalog.Queue
	QueueLoaded bool
	Loading     bool
	State       session.State
	Status      channel.Status
	LastSync    time.Time
	Restored    bool
}

// SelectedItem resolves the selected item in the view's queue.
func (v View) SelectedItem() (catalog.Item, bool) {
	if !v.State.HasSelection() {
		return catalog.Item{}, false
	}
	return v.Queue.Lookup(v.State.SelectedItemID)
}
