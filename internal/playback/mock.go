package playback

import (
	"sync"

	"github.com/shershen08/playsync/internal/catalog"
	"github.com/shershen08/playsync/internal/channel"
	"github.com/shershen08/playsync/internal/session"
	"github.com/shershen08/playsync/internal/wire"
)

// Verify Mock implements Service at compile time.
var _ Service = (*Mock)(nil)

// Mock is a test double for Service. Transitions run on a real session
// without timers or I/O; every call is recorded.
type Mock struct {
	mu     sync.Mutex
	sess   *session.Session
	view   View
	subs   []*Subscription
	calls  []string
	seeks  []int64
	loads  []wire.QueueID
	err    error
	closed bool
}

// NewMock creates a mock with q already loaded.
func NewMock(userID string, q catalog.Queue) *Mock {
	m := &Mock{sess: session.New(userID, q.ID)}
	m.sess.SetQueue(q)
	m.view = View{UserID: userID, QueueLoaded: true}
	m.refresh()
	return m
}

// SetError makes every subsequent transition fail with err.
func (m *Mock) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetView overrides fields of the published view that the session does not own.
func (m *Mock) SetView(fn func(*View)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.view)
}

// Calls returns the names of the recorded transitions.
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Seeks returns the recorded seek positions.
func (m *Mock) Seeks() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64(nil), m.seeks...)
}

// Loads returns the recorded queue loads.
func (m *Mock) Loads() []wire.QueueID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]wire.QueueID(nil), m.loads...)
}

// Emit delivers an event to every subscriber.
func (m *Mock) Emit(e StateChange) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.subs {
		s.sendState(e)
	}
}

// EmitStatus records a channel status change and delivers it to every
// subscriber.
func (m *Mock) EmitStatus(st channel.Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.view.Status = st
	for _, s := range m.subs {
		s.sendStatus(StatusChange{Status: st})
	}
}

// EmitError delivers an error event to every subscriber.
func (m *Mock) EmitError(e ErrorEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.subs {
		s.sendError(e)
	}
}

func (m *Mock) SelectItem(id string) error {
	return m.transition("select", CauseSelect, func() error { return m.sess.SelectItem(id) })
}

func (m *Mock) Play() error {
	return m.transition("play", CausePlay, m.sess.Play)
}

func (m *Mock) Pause() error {
	return m.transition("pause", CausePause, func() error { m.sess.Pause(); return nil })
}

func (m *Mock) Toggle() error {
	return m.transition("toggle", CausePlay, func() error {
		if m.sess.State().Playing {
			m.sess.Pause()
			return nil
		}
		return m.sess.Play()
	})
}

func (m *Mock) Seek(positionMs int64) error {
	m.mu.Lock()
	m.seeks = append(m.seeks, positionMs)
	m.mu.Unlock()
	return m.transition("seek", CauseSeek, func() error { return m.sess.Seek(positionMs) })
}

func (m *Mock) LoadQueue(id wire.QueueID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.calls = append(m.calls, "load")
	m.loads = append(m.loads, id)
	return nil
}

func (m *Mock) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view
}

func (m *Mock) Subscribe() *Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub := newSubscription()
	if m.closed {
		sub.close()
		return sub
	}
	m.subs = append(m.subs, sub)
	return sub
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	for _, s := range m.subs {
		s.close()
	}
	m.subs = nil
	return nil
}

func (m *Mock) transition(name string, cause Cause, fn func() error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.calls = append(m.calls, name)
	if m.err != nil {
		return m.err
	}
	prev := m.sess.State()
	if err := fn(); err != nil {
		return err
	}
	m.refresh()
	if cur := m.sess.State(); cur != prev {
		for _, s := range m.subs {
			s.sendState(StateChange{Previous: prev, Current: cur, Cause: cause})
		}
	}
	return nil
}

// refresh copies session state into the view. Callers hold mu.
func (m *Mock) refresh() {
	m.view.QueueID = m.sess.QueueID
	m.view.Queue = m.sess.Queue()
	m.view.State = m.sess.State()
}
