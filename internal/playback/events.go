package playback

import (
	"time"

	"github.com/shershen08/playsync/internal/catalog"
	"github.com/shershen08/playsync/internal/channel"
	"github.com/shershen08/playsync/internal/errmsg"
	"github.com/shershen08/playsync/internal/session"
	"github.com/shershen08/playsync/internal/wire"
)

// StateChange is emitted after every session transition, including ticks.
type StateChange struct {
	Previous session.State
	Current  session.State
	Cause    Cause
}

// QueueChange is emitted when a queue finished loading.
type QueueChange struct {
	Queue catalog.Queue
}

// StatusChange is emitted when the channel status changes.
type StatusChange struct {
	Status channel.Status
}

// SyncEvent is emitted when an update was handed to the channel.
//
// Reasons are the cause of the push: select, play, pause, seek, end
// (natural end of the item) or heartbeat.
type SyncEvent struct {
	Message wire.SyncMessage
	Reason  string
	At      time.Time
}

// ReplyEvent is emitted for every parsed server reply.
type ReplyEvent struct {
	Reply wire.Reply
}

// ErrorEvent is emitted when an error is reported. None of these errors
// interrupt the session.
type ErrorEvent struct {
	Operation errmsg.Op
	Err       error
}
