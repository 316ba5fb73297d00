// Package session holds the local playback state of one user and the
// transitions that mutate it.
//
// The session is a pure state machine: it owns no timers and performs no I/O.
// Callers drive Tick on a fixed cadence while the session is playing.
//
// Valid transitions:
//   - Idle    → Playing (via SelectItem)
//   - Idle    → Paused  (via Restore)
//   - Playing → Paused  (via Pause, or Tick reaching the end of the item)
//   - Paused  → Playing (via Play or SelectItem)
//   - Playing → Playing (via SelectItem, position reset to 0)
//
// Idle is the initial state: nothing selected, position 0, not playing.
// Rejected transitions (unknown item, nothing selected) leave the state
// untouched.
package session

import (
	"errors"

	"github.com/shershen08/playsync/internal/catalog"
	"github.com/shershen08/playsync/internal/wire"
)

var (
	// ErrUnknownItem is returned when selecting an id absent from the queue.
	ErrUnknownItem = errors.New("unknown item")
	// ErrNoActiveItem is returned when an operation needs a selected item.
	ErrNoActiveItem = errors.New("no active item")
)

// State is a value copy of the session's mutable fields.
type State struct {
	SelectedItemID string // empty when nothing is selected
	PositionMs     int64
	Playing        bool
}

// HasSelection returns true if an item is selected.
func (s State) HasSelection() bool {
	return s.SelectedItemID != ""
}

// Session is the live playback state of one user.
type Session struct {
	UserID  string
	QueueID wire.QueueID

	queue catalog.Queue
	state State
}

// New creates an idle session.
func New(userID string, queueID wire.QueueID) *Session {
	return &Session{UserID: userID, QueueID: queueID}
}

// State returns a copy of the current state.
func (s *Session) State() State {
	return s.state
}

// Queue returns the queue used for item lookups.
func (s *Session) Queue() catalog.Queue {
	return s.queue
}

// SelectedItem returns the selected item, if any.
func (s *Session) SelectedItem() (catalog.Item, bool) {
	if !s.state.HasSelection() {
		return catalog.Item{}, false
	}
	return s.queue.Lookup(s.state.SelectedItemID)
}

// SetQueue replaces the lookup queue. A selection that does not resolve in the
// new queue is cleared; a position past the new duration is clamped.
func (s *Session) SetQueue(q catalog.Queue) {
	s.queue = q
	s.QueueID = q.ID
	if !s.state.HasSelection() {
		return
	}
	item, ok := q.Lookup(s.state.SelectedItemID)
	if !ok {
		s.state = State{}
		return
	}
	s.state.PositionMs = clamp(s.state.PositionMs, item.DurationMs)
}

// SelectItem starts an item from the beginning.
func (s *Session) SelectItem(id string) error {
	if _, ok := s.queue.Lookup(id); !ok {
		return ErrUnknownItem
	}
	s.state = State{SelectedItemID: id, PositionMs: 0, Playing: true}
	return nil
}

// Play resumes the selected item. An item sitting at its end restarts from 0.
func (s *Session) Play() error {
	item, ok := s.SelectedItem()
	if !ok {
		return ErrNoActiveItem
	}
	if s.state.PositionMs >= item.DurationMs {
		s.state.PositionMs = 0
	}
	s.state.Playing = true
	return nil
}

// Pause stops position from advancing. Pausing a paused session is a no-op.
func (s *Session) Pause() {
	s.state.Playing = false
}

// Seek moves the position of the selected item, clamped to its duration.
func (s *Session) Seek(positionMs int64) error {
	item, ok := s.SelectedItem()
	if !ok {
		return ErrNoActiveItem
	}
	s.state.PositionMs = clamp(positionMs, item.DurationMs)
	return nil
}

// Tick advances the position by deltaMs while playing. It returns true on the
// tick that reaches the end of the item, which also stops playback.
func (s *Session) Tick(deltaMs int64) (ended bool) {
	if !s.state.Playing || deltaMs <= 0 {
		return false
	}
	item, ok := s.SelectedItem()
	if !ok {
		s.state.Playing = false
		return false
	}
	s.state.PositionMs = min(s.state.PositionMs+deltaMs, item.DurationMs)
	if s.state.PositionMs >= item.DurationMs {
		s.state.Playing = false
		return true
	}
	return false
}

// Restore applies a server snapshot. It only applies when the snapshot is for
// the active queue and its track resolves; the restored session is paused.
func (s *Session) Restore(snap wire.Snapshot) bool {
	if snap.Empty() || snap.QueueID != s.QueueID {
		return false
	}
	item, ok := s.queue.Lookup(*snap.TrackID)
	if !ok {
		return false
	}
	s.state = State{
		SelectedItemID: item.ID,
		PositionMs:     clamp(*snap.PositionMs, item.DurationMs),
		Playing:        false,
	}
	return true
}

// Message builds the outbound update for the current state.
func (s *Session) Message() (wire.SyncMessage, bool) {
	if !s.state.HasSelection() {
		return wire.SyncMessage{}, false
	}
	return wire.SyncMessage{
		UserID:     s.UserID,
		QueueID:    s.QueueID,
		TrackID:    s.state.SelectedItemID,
		PositionMs: s.state.PositionMs,
	}, true
}

func clamp(pos, duration int64) int64 {
	return max(0, min(pos, duration))
}
