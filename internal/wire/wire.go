// Package wire defines the JSON messages exchanged between a playback client
// and the sync server.
package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is returned when an inbound payload cannot be parsed.
var ErrMalformed = errors.New("malformed message")

// QueueID identifies a queue (playlist). The server stores whatever clients
// sent, so it decodes from both JSON strings and JSON numbers. It always
// encodes as a string.
type QueueID string

// UnmarshalJSON accepts "42" and 42.
func (q *QueueID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*q = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = QueueID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("queue id: %w", err)
	}
	*q = QueueID(n.String())
	return nil
}

// String returns the identifier.
func (q QueueID) String() string { return string(q) }

// IsNumeric reports whether the identifier is a base-10 integer.
func (q QueueID) IsNumeric() bool {
	_, err := strconv.ParseInt(string(q), 10, 64)
	return err == nil
}

// SyncMessage is the outbound state update. Field names are fixed by the server.
type SyncMessage struct {
	UserID     string  `json:"user_id"`
	QueueID    QueueID `json:"playlist_id"`
	TrackID    string  `json:"track_id"`
	PositionMs int64   `json:"position_ms"`
}

// Validate checks the fields the server needs to store a message.
func (m SyncMessage) Validate() error {
	switch {
	case strings.TrimSpace(m.UserID) == "":
		return fmt.Errorf("%w: user_id is required", ErrMalformed)
	case m.QueueID == "":
		return fmt.Errorf("%w: playlist_id is required", ErrMalformed)
	case m.TrackID == "":
		return fmt.Errorf("%w: track_id is required", ErrMalformed)
	case m.PositionMs < 0:
		return fmt.Errorf("%w: position_ms must be >= 0", ErrMalformed)
	}
	return nil
}

// Snapshot is the server-held record of a user's last known playback state.
// A nil TrackID or PositionMs means nothing is stored.
type Snapshot struct {
	TrackID    *string `json:"track_id,omitempty"`
	PositionMs *int64  `json:"position_ms,omitempty"`
	QueueID    QueueID `json:"playlist_id,omitempty"`
}

// Empty reports whether the snapshot carries no restorable state.
func (s Snapshot) Empty() bool {
	return s.TrackID == nil || *s.TrackID == "" || s.PositionMs == nil
}

// NewSnapshot builds a populated snapshot.
func NewSnapshot(queueID QueueID, trackID string, positionMs int64) Snapshot {
	return Snapshot{TrackID: &trackID, PositionMs: &positionMs, QueueID: queueID}
}

// Reply statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Reply is what the server answers on the channel for each state update.
type Reply struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// OK reports whether the server accepted the update.
func (r Reply) OK() bool { return r.Status == StatusSuccess }

// ParseReply decodes an inbound channel payload. Anything that is not a JSON
// object with a status is malformed.
func ParseReply(data []byte) (Reply, error) {
	var r Reply
	if err := json.Unmarshal(data, &r); err != nil {
		return Reply{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if r.Status == "" {
		return Reply{}, fmt.Errorf("%w: missing status", ErrMalformed)
	}
	return r, nil
}

// ParseSyncMessage decodes and validates an outbound message on the server side.
func ParseSyncMessage(data []byte) (SyncMessage, error) {
	var m SyncMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return SyncMessage{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if err := m.Validate(); err != nil {
		return SyncMessage{}, err
	}
	return m, nil
}
