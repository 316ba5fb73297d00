package notify

import (
	"log/slog"
	"sync"

	"github.com/shershen08/playsync/internal/channel"
	"github.com/shershen08/playsync/internal/playback"
)

// Watcher turns playback events into notifications: the item that started,
// a resumed session and a lost sync connection.
type Watcher struct {
	service  playback.Service
	notifier Notifier
	logger   *slog.Logger
	sub      *playback.Subscription

	// Track notifications replace each other.
	trackID uint32

	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// Watch starts forwarding events from service to notifier.
func Watch(service playback.Service, notifier Notifier, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Watcher{
		service:  service,
		notifier: notifier,
		logger:   logger,
		sub:      service.Subscribe(),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w
}

// Close stops the watcher and waits for it to exit.
func (w *Watcher) Close() {
	w.once.Do(func() {
		close(w.done)
		w.wg.Wait()
	})
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case <-w.sub.Done:
			return
		case e := <-w.sub.StateChanged:
			w.onState(e)
		case e := <-w.sub.StatusChanged:
			w.onStatus(e)
		}
	}
}

func (w *Watcher) onState(e playback.StateChange) {
	if e.Cause != playback.CauseSelect && e.Cause != playback.CauseRestore {
		return
	}
	item, ok := w.service.View().Queue.Lookup(e.Current.SelectedItemID)
	if !ok {
		return
	}

	n := NowPlaying(item, w.trackID)
	if e.Cause == playback.CauseRestore {
		n = Resumed(item, e.Current.PositionMs, w.trackID)
	}
	id, err := w.notifier.Notify(n)
	if err != nil {
		w.logger.Debug("notify track", "error", err)
		return
	}
	w.trackID = id
}

func (w *Watcher) onStatus(e playback.StatusChange) {
	if e.Status != channel.Disconnected {
		return
	}
	if _, err := w.notifier.Notify(ConnectionLost()); err != nil {
		w.logger.Debug("notify disconnect", "error", err)
	}
}
