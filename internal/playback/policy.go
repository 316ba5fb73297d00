package playback

import (
	"time"

	"github.com/shershen08/playsync/internal/channel"
	"github.com/shershen08/playsync/internal/errmsg"
	"github.com/shershen08/playsync/internal/session"
	"github.com/shershen08/playsync/internal/wire"
)

// Push reasons.
const (
	reasonSelect    = "select"
	reasonPlay      = "play"
	reasonPause     = "pause"
	reasonSeek      = "seek"
	reasonEnd       = "end"
	reasonHeartbeat = "heartbeat"
)

func (c *Controller) selectItem(id string) error {
	prev := c.sess.State()
	if err := c.sess.SelectItem(id); err != nil {
		c.logger.Debug("select rejected", "item_id", id, "error", err)
		return err
	}
	c.userActed = true
	c.startPlaying()
	c.changed(prev, CauseSelect)
	c.push(reasonSelect)
	return nil
}

func (c *Controller) play() error {
	prev := c.sess.State()
	if err := c.sess.Play(); err != nil {
		c.logger.Debug("play rejected", "error", err)
		return err
	}
	c.userActed = true
	if !prev.Playing || prev.PositionMs != c.sess.State().PositionMs {
		c.startPlaying()
	}
	c.changed(prev, CausePlay)
	c.push(reasonPlay)
	return nil
}

func (c *Controller) pause() error {
	prev := c.sess.State()
	c.sess.Pause()
	c.stopTimers()
	if prev.HasSelection() {
		c.userActed = true
	}
	c.changed(prev, CausePause)
	c.push(reasonPause)
	return nil
}

func (c *Controller) seek(positionMs int64) error {
	prev := c.sess.State()
	if err := c.sess.Seek(positionMs); err != nil {
		return err
	}
	c.userActed = true
	c.changed(prev, CauseSeek)
	c.push(reasonSeek)
	return nil
}

func (c *Controller) onTick() {
	prev := c.sess.State()
	ended := c.sess.Tick(c.cfg.TickInterval.Milliseconds())
	if !ended {
		if !c.sess.State().Playing {
			c.stopTimers()
		}
		c.changed(prev, CauseTick)
		return
	}
	c.stopTimers()
	c.changed(prev, CauseEnd)
	// The natural end is a transition like pause: the server gets the final position.
	c.push(reasonEnd)
}

func (c *Controller) onHeartbeat() {
	if !c.sess.State().Playing {
		c.stopTimers()
		return
	}
	c.push(reasonHeartbeat)
}

// startPlaying begins a playing period: both timers restart together.
func (c *Controller) startPlaying() {
	c.stopTimers()
	c.tick = time.NewTicker(c.cfg.TickInterval)
	c.beat = time.NewTicker(c.cfg.HeartbeatInterval)
}

// stopTimers ends the playing period. Safe to call when no period is active.
func (c *Controller) stopTimers() {
	if c.tick != nil {
		c.tick.Stop()
		c.tick = nil
	}
	if c.beat != nil {
		c.beat.Stop()
		c.beat = nil
	}
}

// push sends the post-transition state. Delivery is best-effort: failures are
// reported and the message is dropped.
func (c *Controller) push(reason string) {
	msg, ok := c.sess.Message()
	if !ok {
		c.logger.Debug("nothing to push", "reason", reason, "error", session.ErrNoActiveItem)
		return
	}
	if err := c.ch.Send(msg); err != nil {
		c.report(errmsg.OpSyncPush, &TransportError{Op: "push " + reason, Err: err})
		return
	}
	c.lastSync = c.now()
	c.logger.Debug("pushed state", "reason", reason, "track_id", msg.TrackID, "position_ms", msg.PositionMs)
	ev := SyncEvent{Message: msg, Reason: reason, At: c.lastSync}
	c.broadcast(func(s *Subscription) { s.sendSync(ev) })
}

func (c *Controller) changed(prev session.State, cause Cause) {
	cur := c.sess.State()
	if prev == cur {
		return
	}
	ev := StateChange{Previous: prev, Current: cur, Cause: cause}
	c.broadcast(func(s *Subscription) { s.sendState(ev) })
}

func (c *Controller) startLoad(id wire.QueueID) {
	c.loadGen++
	gen := c.loadGen
	c.loading = id
	loader := c.loader
	ctx := c.ctx

	c.workers.Add(1)
	go func() {
		defer c.workers.Done()
		q, err := loader.Load(ctx, id)
		select {
		case c.loaded <- loadResult{gen: gen, id: id, queue: q, err: err}:
		case <-c.done:
		}
	}()
}

func (c *Controller) onQueueLoaded(res loadResult) {
	if res.gen != c.loadGen {
		c.logger.Debug("discarding stale queue load", "queue_id", res.id)
		return
	}
	c.loading = ""
	if res.err != nil {
		// The previous queue, or none, stays in place. No retry.
		c.report(errmsg.OpQueueLoad, &TransportError{Op: "load queue " + res.id.String(), Err: res.err})
		return
	}

	prev := c.sess.State()
	c.sess.SetQueue(res.queue)
	c.queueLoaded = true
	if !c.sess.State().Playing {
		c.stopTimers()
	}
	c.logger.Info("queue loaded", "queue_id", res.id, "items", res.queue.Len())

	ev := QueueChange{Queue: res.queue}
	c.broadcast(func(s *Subscription) { s.sendQueue(ev) })
	c.changed(prev, CauseQueue)
	c.maybeReconcile()
}

func (c *Controller) onStatus(s channel.Status) {
	if s == c.status {
		return
	}
	c.status = s
	c.logger.Info("channel status", "status", s)
	ev := StatusChange{Status: s}
	c.broadcast(func(sub *Subscription) { sub.sendStatus(ev) })
	if s == channel.Connected {
		c.maybeReconcile()
	}
}

func (c *Controller) onReply(r wire.Reply) {
	if !r.OK() {
		c.logger.Warn("server rejected update", "message", r.Message)
	} else {
		c.logger.Debug("server reply", "status", r.Status, "message", r.Message)
	}
	ev := ReplyEvent{Reply: r}
	c.broadcast(func(s *Subscription) { s.sendReply(ev) })
}

// maybeReconcile pulls the server snapshot once the queue is loaded, no other
// load is in flight, and the channel is connected. It runs at most once per
// controller.
func (c *Controller) maybeReconcile() {
	if c.reconciled || !c.queueLoaded || c.loading != "" || c.status != channel.Connected {
		return
	}
	c.reconciled = true

	puller := c.puller
	ctx := c.ctx
	userID := c.sess.UserID

	c.workers.Add(1)
	go func() {
		defer c.workers.Done()
		snap, err := puller.Pull(ctx, userID)
		select {
		case c.pulled <- pullResult{snap: snap, err: err}:
		case <-c.done:
		}
	}()
}

func (c *Controller) onPulled(res pullResult) {
	if res.err != nil {
		c.report(errmsg.OpSyncPull, &TransportError{Op: "pull snapshot", Err: res.err})
		return
	}
	if res.snap.Empty() {
		c.logger.Info("no stored playback state")
		return
	}
	if c.userActed {
		// Local state is authoritative between syncs; a late snapshot must not
		// override what the user already chose.
		c.logger.Info("ignoring snapshot, session already in use")
		return
	}

	prev := c.sess.State()
	if !c.sess.Restore(res.snap) {
		c.logger.Info("snapshot not restorable",
			"snapshot_queue_id", res.snap.QueueID,
			"queue_id", c.sess.QueueID,
			"track_id", *res.snap.TrackID)
		return
	}
	c.stopTimers()
	c.restored = true
	c.logger.Info("restored playback state", "track_id", c.sess.State().SelectedItemID, "position_ms", c.sess.State().PositionMs)
	c.changed(prev, CauseRestore)
}
