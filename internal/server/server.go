// Package server implements the reference sync backend: the catalog and
// snapshot HTTP endpoints and the websocket that persists playback updates.
package server

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shershen08/playsync/internal/catalog"
	"github.com/shershen08/playsync/internal/store"
	"github.com/shershen08/playsync/internal/wire"
)

const shutdownTimeout = 5 * time.Second

// Catalog lists the tracks served for every playlist id.
type Catalog interface {
	Tracks(ctx context.Context) ([]catalog.Item, error)
}

// PlaybackStore persists the last update of each user.
type PlaybackStore interface {
	SavePlayback(ctx context.Context, msg wire.SyncMessage) error
	Playback(ctx context.Context, userID string) (store.Playback, bool, error)
}

// Verify store.Store satisfies both interfaces at compile time.
var (
	_ Catalog       = (*store.Store)(nil)
	_ PlaybackStore = (*store.Store)(nil)
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request and connection diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithCORSOrigins sets the browser origins allowed to call the API and open
// the websocket.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) { s.origins = origins }
}

// WithPlaybackStore enables persistence. Without one, updates are
// acknowledged but not stored.
func WithPlaybackStore(ps PlaybackStore) Option {
	return func(s *Server) { s.playbacks = ps }
}

// Server is the reference backend.
type Server struct {
	catalog   Catalog
	playbacks PlaybackStore
	logger    *slog.Logger
	origins   []string
	intN      func(n int) int
	upgrader  websocket.Upgrader

	connsMu sync.Mutex
	conns   map[string]*websocket.Conn
}

// New creates a server backed by cat.
func New(cat Catalog, opts ...Option) *Server {
	s := &Server{
		catalog: cat,
		logger:  slog.Default(),
		intN:    rand.IntN,
		conns:   make(map[string]*websocket.Conn),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// Handler returns the routed handler wrapped with CORS.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /api/playlists/{playlist_id}/tracks", s.handleTracks)
	mux.HandleFunc("GET /api/playlists/{playlist_id}/tracks/random", s.handleRandomTracks)
	mux.HandleFunc("GET /api/playback/{user_id}", s.handlePlayback)
	mux.HandleFunc("GET /ws", s.handleWS)
	return withCORS(s.origins, mux)
}

// Run listens on addr and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully and closes open websockets.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("server listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Hijacked websocket connections are not tracked by http.Server.
	s.closeConns()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) track(id string, conn *websocket.Conn) {
	s.connsMu.Lock()
	s.conns[id] = conn
	s.connsMu.Unlock()
}

func (s *Server) untrack(id string) {
	s.connsMu.Lock()
	delete(s.conns, id)
	s.connsMu.Unlock()
}

func (s *Server) closeConns() {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	for id, conn := range s.conns {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
		delete(s.conns, id)
	}
}
