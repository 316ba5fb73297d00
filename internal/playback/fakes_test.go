package playback

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/shershen08/playsync/internal/catalog"
	"github.com/shershen08/playsync/internal/channel"
	"github.com/shershen08/playsync/internal/wire"
)

type loaderFunc func(ctx context.Context, id wire.QueueID) (catalog.Queue, error)

func (f loaderFunc) Load(ctx context.Context, id wire.QueueID) (catalog.Queue, error) {
	return f(ctx, id)
}

// staticLoader serves fixed queues by id.
func staticLoader(queues ...catalog.Queue) loaderFunc {
	byID := make(map[wire.QueueID]catalog.Queue, len(queues))
	for _, q := range queues {
		byID[q.ID] = q
	}
	return func(_ context.Context, id wire.QueueID) (catalog.Queue, error) {
		q, ok := byID[id]
		if !ok {
			return catalog.Queue{}, catalog.ErrNotFound
		}
		return q, nil
	}
}

// gatedLoader serves q once release is closed.
func gatedLoader(q catalog.Queue, release <-chan struct{}) loaderFunc {
	return func(ctx context.Context, _ wire.QueueID) (catalog.Queue, error) {
		select {
		case <-release:
			return q, nil
		case <-ctx.Done():
			return catalog.Queue{}, ctx.Err()
		}
	}
}

type fakePuller struct {
	calls   atomic.Int32
	snap    wire.Snapshot
	err     error
	release <-chan struct{}
}

func (p *fakePuller) Pull(ctx context.Context, _ string) (wire.Snapshot, error) {
	p.calls.Add(1)
	if p.release != nil {
		select {
		case <-p.release:
		case <-ctx.Done():
			return wire.Snapshot{}, ctx.Err()
		}
	}
	return p.snap, p.err
}

type fakeChannel struct {
	mu         sync.Mutex
	status     channel.Status
	sent       []wire.SyncMessage
	closed     bool
	closeCalls int

	statusCh chan channel.Status
	msgs     chan wire.Reply
	errs     chan error
}

func newFakeChannel(s channel.Status) *fakeChannel {
	return &fakeChannel{
		status:   s,
		statusCh: make(chan channel.Status, 4),
		msgs:     make(chan wire.Reply, 4),
		errs:     make(chan error, 4),
	}
}

func (f *fakeChannel) setStatus(s channel.Status) {
	f.mu.Lock()
	f.status = s
	f.mu.Unlock()
	f.statusCh <- s
}

func (f *fakeChannel) Status() channel.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *fakeChannel) StatusChanges() <-chan channel.Status { return f.statusCh }
func (f *fakeChannel) Messages() <-chan wire.Reply          { return f.msgs }
func (f *fakeChannel) Errors() <-chan error                 { return f.errs }

func (f *fakeChannel) Send(v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status != channel.Connected || f.closed {
		return channel.ErrNotConnected
	}
	f.sent = append(f.sent, v.(wire.SyncMessage))
	return nil
}

func (f *fakeChannel) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeCalls++
	if !f.closed {
		f.closed = true
		f.status = channel.Disconnected
		close(f.statusCh)
		close(f.msgs)
		close(f.errs)
	}
	return nil
}

func (f *fakeChannel) Sent() []wire.SyncMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]wire.SyncMessage(nil), f.sent...)
}
