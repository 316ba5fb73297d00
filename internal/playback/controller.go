// Package playback runs the playback session synchronization controller.
//
// A Controller owns one session, the two timers of a playing period (position
// tick and heartbeat) and the channel to the server. Everything that mutates
// the session runs on a single loop goroutine, so the session itself needs no
// locking: public methods post commands to the loop, timers and asynchronous
// results (catalog load, snapshot pull, channel events) arrive as loop events.
package playback

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shershen08/playsync/internal/catalog"
	"github.com/shershen08/playsync/internal/channel"
	"github.com/shershen08/playsync/internal/errmsg"
	"github.com/shershen08/playsync/internal/remote"
	"github.com/shershen08/playsync/internal/session"
	"github.com/shershen08/playsync/internal/wire"
)

// Verify Controller implements Service at compile time.
var _ Service = (*Controller)(nil)

const (
	DefaultTickInterval      = time.Second
	DefaultHeartbeatInterval = 5 * time.Second
)

// Config identifies the session and sets the sync cadence.
type Config struct {
	UserID            string
	QueueID           wire.QueueID
	BaseURL           string
	TickInterval      time.Duration
	HeartbeatInterval time.Duration
	RandomOrder       bool
}

func (c Config) withDefaults() Config {
	if c.TickInterval <= 0 {
		c.TickInterval = DefaultTickInterval
	}
	if c.HeartbeatInterval <= 0 {
		c.HeartbeatInterval = DefaultHeartbeatInterval
	}
	return c
}

// Channel is the part of channel.Manager the controller uses.
type Channel interface {
	Status() channel.Status
	StatusChanges() <-chan channel.Status
	Messages() <-chan wire.Reply
	Errors() <-chan error
	Send(v any) error
	Close() error
}

// Verify channel.Manager implements Channel at compile time.
var _ Channel = (*channel.Manager)(nil)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithClock replaces time.Now for sync timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

type command struct {
	fn    func() error
	reply chan error
}

type loadResult struct {
	gen   int
	id    wire.QueueID
	queue catalog.Queue
	err   error
}

type pullResult struct {
	snap wire.Snapshot
	err  error
}

// Controller is the playback session synchronization controller.
type Controller struct {
	cfg    Config
	logger *slog.Logger
	now    func() time.Time

	loader catalog.Loader
	puller remote.Puller
	ch     Channel

	// Loop-owned state. Only the loop goroutine touches these.
	sess        *session.Session
	tick        *time.Ticker
	beat        *time.Ticker
	status      channel.Status
	queueLoaded bool
	loading     wire.QueueID
	loadGen     int
	reconciled  bool
	userActed   bool
	restored    bool
	lastSync    time.Time
	inboundOpen bool
	statusOpen  bool
	errorsOpen  bool

	cmds   chan command
	loaded chan loadResult
	pulled chan pullResult

	viewMu sync.RWMutex
	view   View

	subs   []*Subscription
	subsMu sync.RWMutex

	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	loopDone  chan struct{}
	closeOnce sync.Once
	workers   sync.WaitGroup
}

// New creates a controller around the given collaborators and starts loading
// the configured queue.
func New(cfg Config, loader catalog.Loader, puller remote.Puller, ch Channel, opts ...Option) *Controller {
	cfg = cfg.withDefaults()
	c := &Controller{
		cfg:         cfg,
		logger:      slog.Default(),
		now:         time.Now,
		loader:      loader,
		puller:      puller,
		ch:          ch,
		sess:        session.New(cfg.UserID, cfg.QueueID),
		status:      ch.Status(),
		inboundOpen: true,
		statusOpen:  true,
		errorsOpen:  true,
		cmds:        make(chan command),
		loaded:      make(chan loadResult),
		pulled:      make(chan pullResult),
		done:        make(chan struct{}),
		loopDone:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("user_id", cfg.UserID)
	c.ctx, c.cancel = context.WithCancel(context.Background())

	if cfg.QueueID != "" {
		c.startLoad(cfg.QueueID)
	}
	c.publish()

	go c.run()
	return c
}

// Start wires the HTTP catalog, the snapshot puller and a websocket channel
// for cfg.BaseURL and returns the running controller.
func Start(ctx context.Context, cfg Config, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	var catalogOpts []catalog.Option
	if cfg.RandomOrder {
		catalogOpts = append(catalogOpts, catalog.WithRandomOrder())
	}
	loader := catalog.NewClient(cfg.BaseURL, catalogOpts...)
	puller := remote.NewClient(cfg.BaseURL)
	ch := channel.Dial(ctx, cfg.BaseURL, channel.WithLogger(logger))
	return New(cfg, loader, puller, ch, WithLogger(logger))
}

// SelectItem starts an item of the loaded queue from the beginning.
func (c *Controller) SelectItem(id string) error {
	return c.do(func() error { return c.selectItem(id) })
}

// Play resumes the selected item.
func (c *Controller) Play() error {
	return c.do(c.play)
}

// Pause stops the selected item.
func (c *Controller) Pause() error {
	return c.do(c.pause)
}

// Toggle switches between playing and paused.
func (c *Controller) Toggle() error {
	return c.do(func() error {
		if c.sess.State().Playing {
			return c.pause()
		}
		return c.play()
	})
}

// Seek moves the position of the selected item.
func (c *Controller) Seek(positionMs int64) error {
	return c.do(func() error { return c.seek(positionMs) })
}

// LoadQueue switches to another queue. Loading happens in the background;
// requesting the queue that is already active or loading is a no-op.
func (c *Controller) LoadQueue(id wire.QueueID) error {
	return c.do(func() error {
		if id == c.loading || (c.queueLoaded && id == c.sess.QueueID && c.loading == "") {
			return nil
		}
		c.startLoad(id)
		return nil
	})
}

// View returns the latest published view. It stays readable after Close.
func (c *Controller) View() View {
	c.viewMu.RLock()
	defer c.viewMu.RUnlock()
	return c.view
}

// Subscribe creates a new event subscription.
func (c *Controller) Subscribe() *Subscription {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	sub := newSubscription()
	select {
	case <-c.done:
		sub.close()
		return sub
	default:
	}
	c.subs = append(c.subs, sub)
	return sub
}

// Close stops both timers, closes the channel and waits for the loop to exit.
// No session mutation happens after Close returns.
func (c *Controller) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		<-c.loopDone
		c.cancel()
		c.workers.Wait()
		if err := c.ch.Close(); err != nil {
			c.logger.Warn("close channel", "error", err)
		}

		c.subsMu.Lock()
		for _, sub := range c.subs {
			sub.close()
		}
		c.subs = nil
		c.subsMu.Unlock()
	})
	return nil
}

// do runs fn on the loop goroutine and returns its result.
func (c *Controller) do(fn func() error) error {
	reply := make(chan error, 1)
	select {
	case c.cmds <- command{fn: fn, reply: reply}:
	case <-c.done:
		return ErrClosed
	}
	return <-reply
}

func (c *Controller) run() {
	defer close(c.loopDone)
	defer c.stopTimers()

	for {
		select {
		case <-c.done:
			return
		case cmd := <-c.cmds:
			cmd.reply <- cmd.fn()
		case <-tickerC(c.tick):
			c.onTick()
		case <-tickerC(c.beat):
			c.onHeartbeat()
		case res := <-c.loaded:
			c.onQueueLoaded(res)
		case res := <-c.pulled:
			c.onPulled(res)
		case s, ok := <-c.statusChanges():
			if !ok {
				c.statusOpen = false
				continue
			}
			c.onStatus(s)
		case r, ok := <-c.inbound():
			if !ok {
				c.inboundOpen = false
				continue
			}
			c.onReply(r)
		case err, ok := <-c.channelErrors():
			if !ok {
				c.errorsOpen = false
				continue
			}
			c.report(errmsg.OpSyncChannel, &TransportError{Op: "channel", Err: err})
		}
		c.publish()
	}
}

func (c *Controller) statusChanges() <-chan channel.Status {
	if !c.statusOpen {
		return nil
	}
	return c.ch.StatusChanges()
}

func (c *Controller) inbound() <-chan wire.Reply {
	if !c.inboundOpen {
		return nil
	}
	return c.ch.Messages()
}

func (c *Controller) channelErrors() <-chan error {
	if !c.errorsOpen {
		return nil
	}
	return c.ch.Errors()
}

func tickerC(t *time.Ticker) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// publish copies loop-owned state into the view read by other goroutines.
func (c *Controller) publish() {
	v := View{
		UserID:      c.sess.UserID,
		QueueID:     c.sess.QueueID,
		Queue:       c.sess.Queue(),
		QueueLoaded: c.queueLoaded,
		Loading:     c.loading != "",
		State:       c.sess.State(),
		Status:      c.status,
		LastSync:    c.lastSync,
		Restored:    c.restored,
	}
	c.viewMu.Lock()
	c.view = v
	c.viewMu.Unlock()
}

func (c *Controller) broadcast(fn func(*Subscription)) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		fn(sub)
	}
}

// report logs err and forwards it to subscribers.
func (c *Controller) report(op errmsg.Op, err error) {
	c.logger.Warn("playback error", "op", string(op), "error", err)
	c.broadcast(func(s *Subscription) { s.sendError(ErrorEvent{Operation: op, Err: err}) })
}
