// Package app contains the terminal client: a bubbletea model driving a
// playback.Service and rendering its view.
package app

import (
	"time"

	"github.com/shershen08/playsync/internal/playback"
)

// TickMsg refreshes time-derived text such as "synced 3 seconds ago".
type TickMsg time.Time

// ServiceStateChangedMsg wraps a session transition.
type ServiceStateChangedMsg playback.StateChange

// ServiceQueueChangedMsg is sent when a queue finished loading.
type ServiceQueueChangedMsg playback.QueueChange

// ServiceStatusChangedMsg wraps a channel status change.
type ServiceStatusChangedMsg playback.StatusChange

// ServiceSyncedMsg is sent after an update was handed to the channel.
type ServiceSyncedMsg playback.SyncEvent

// ServiceReplyMsg wraps a server acknowledgement.
type ServiceReplyMsg playback.ReplyEvent

// ServiceErrorMsg wraps a reported error.
type ServiceErrorMsg playback.ErrorEvent

// ServiceClosedMsg is sent once the subscription is closed.
type ServiceClosedMsg struct{}
