//go:build linux

package mpris

import (
	"log/slog"
	"sync"

	"github.com/quarckster/go-mpris-server/pkg/events"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/shershen08/playsync/internal/playback"
)

const (
	busName      = "playsync"
	identity     = "Playsync"
	desktopEntry = "playsync"
)

var (
	_ types.OrgMprisMediaPlayer2Adapter             = (*rootAdapter)(nil)
	_ types.OrgMprisMediaPlayer2AdapterDesktopEntry = (*rootAdapter)(nil)
)

// Adapter connects a playback.Service to MPRIS over D-Bus.
type Adapter struct {
	service playback.Service
	server  *server.Server
	events  *events.EventHandler
	sub     *playback.Subscription
	logger  *slog.Logger
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// New creates and starts a new MPRIS adapter.
func New(service playback.Service, logger *slog.Logger) (*Adapter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Adapter{
		service: service,
		logger:  logger,
		done:    make(chan struct{}),
	}

	a.server = server.NewServer(busName, &rootAdapter{}, &playerAdapter{service: service})
	a.events = events.NewEventHandler(a.server)
	a.sub = service.Subscribe()

	// Start the server in background
	go func() {
		if err := a.server.Listen(); err != nil {
			a.logger.Warn("mpris listen", "error", err)
		}
	}()

	a.wg.Add(1)
	go a.forward()

	return a, nil
}

// forward turns session transitions into MPRIS property change signals.
func (a *Adapter) forward() {
	defer a.wg.Done()
	for {
		select {
		case <-a.done:
			return
		case <-a.sub.Done:
			return
		case e := <-a.sub.StateChanged:
			if err := a.signal(e); err != nil {
				a.logger.Debug("mpris signal", "cause", e.Cause, "error", err)
			}
		}
	}
}

func (a *Adapter) signal(e playback.StateChange) error {
	switch e.Cause {
	case playback.CauseSelect, playback.CauseRestore, playback.CauseQueue:
		if err := a.events.Player.OnTitle(); err != nil {
			return err
		}
		return a.events.Player.OnPlayPause()
	case playback.CausePlay, playback.CausePause, playback.CauseEnd:
		return a.events.Player.OnPlayPause()
	case playback.CauseSeek:
		return a.events.Player.OnSeek(msToMicros(e.Current.PositionMs))
	case playback.CauseTick:
	}
	return nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	var err error
	a.once.Do(func() {
		close(a.done)
		a.wg.Wait()
		err = a.server.Stop()
	})
	return err
}

// rootAdapter is the MediaPlayer2 root object. playsync has no window to
// raise and exits on its own terms, so the control methods are no-ops.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error                  { return nil }
func (r *rootAdapter) Quit() error                   { return nil }
func (r *rootAdapter) CanQuit() (bool, error)        { return false, nil }
func (r *rootAdapter) CanRaise() (bool, error)       { return false, nil }
func (r *rootAdapter) HasTrackList() (bool, error)   { return false, nil }
func (r *rootAdapter) Identity() (string, error)     { return identity, nil }
func (r *rootAdapter) DesktopEntry() (string, error) { return desktopEntry, nil }

// Items are streamed from the catalog; nothing can be opened by URI.
//
//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) { return nil, nil }
func (r *rootAdapter) SupportedMimeTypes() ([]string, error)  { return nil, nil }
