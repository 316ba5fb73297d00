// Package channel manages the single websocket connection between a playback
// client and the sync server.
package channel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shershen08/playsync/internal/wire"
)

var (
	// ErrNotConnected is returned by Send when the channel is not open.
	ErrNotConnected = errors.New("channel not connected")
	// ErrBufferFull is returned by Send when the write pump cannot keep up.
	ErrBufferFull = errors.New("channel send buffer full")
)

const (
	bufferSize   = 16
	writeTimeout = 5 * time.Second
	dialTimeout  = 10 * time.Second
)

// Manager owns one websocket connection. It connects once and never
// reconnects; once Disconnected it stays Disconnected.
type Manager struct {
	logger *slog.Logger
	dialer *websocket.Dialer

	mu     sync.RWMutex
	status Status
	conn   *websocket.Conn
	closed bool

	out      chan []byte
	messages chan wire.Reply
	statusCh chan Status
	errCh    chan error

	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithDialer replaces the default websocket dialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(m *Manager) { m.dialer = d }
}

// Dial starts connecting to the server's channel endpoint derived from
// baseURL. It returns immediately with the manager in Connecting.
func Dial(ctx context.Context, baseURL string, opts ...Option) *Manager {
	m := &Manager{
		logger:   slog.Default(),
		dialer:   &websocket.Dialer{HandshakeTimeout: dialTimeout},
		status:   Connecting,
		out:      make(chan []byte, bufferSize),
		messages: make(chan wire.Reply, bufferSize),
		statusCh: make(chan Status, 4),
		errCh:    make(chan error, bufferSize),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	ctx, m.cancel = context.WithCancel(ctx)
	m.wg.Add(1)
	go m.connect(ctx, baseURL)
	return m
}

// URL converts an HTTP base URL into the channel endpoint URL.
func URL(baseURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws"
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

// Status returns the current status.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// StatusChanges delivers every status transition in order. It is closed by Close.
func (m *Manager) StatusChanges() <-chan Status {
	return m.statusCh
}

// Messages delivers parsed inbound messages in arrival order. It is closed by Close.
func (m *Manager) Messages() <-chan wire.Reply {
	return m.messages
}

// Inbound returns the inbound messages as a sequence that ends when the
// connection is gone.
func (m *Manager) Inbound() iter.Seq[wire.Reply] {
	return func(yield func(wire.Reply) bool) {
		for r := range m.messages {
			if !yield(r) {
				return
			}
		}
	}
}

// Errors delivers transport and parse errors for diagnostics. Errors are
// dropped when nobody reads them. It is closed by Close.
func (m *Manager) Errors() <-chan error {
	return m.errCh
}

// Send encodes v as JSON and hands it to the write pump. It never waits for
// the network and never keeps a message for later delivery.
func (m *Manager) Send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.status != Connected || m.closed {
		return ErrNotConnected
	}
	select {
	case m.out <- data:
		return nil
	default:
		return ErrBufferFull
	}
}

// Close closes the connection exactly once. No channel of the manager
// delivers anything afterwards.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		conn := m.conn
		m.status = Disconnected
		m.mu.Unlock()

		close(m.done)
		m.cancel()

		if conn != nil {
			deadline := time.Now().Add(time.Second)
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			if err := conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
				m.logger.Debug("write close frame", "error", err)
			}
			_ = conn.Close()
		}

		m.wg.Wait()
		drain(m.messages)
		drain(m.statusCh)
		drain(m.errCh)
		close(m.messages)
		close(m.statusCh)
		close(m.errCh)
	})
	return nil
}

func (m *Manager) connect(ctx context.Context, baseURL string) {
	defer m.wg.Done()

	wsURL, err := URL(baseURL)
	if err != nil {
		m.fail(err)
		return
	}

	m.logger.Debug("connecting", "url", wsURL)
	conn, resp, err := m.dialer.DialContext(ctx, wsURL, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		m.fail(fmt.Errorf("dial %s: %w", wsURL, err))
		return
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		_ = conn.Close()
		return
	}
	m.conn = conn
	m.status = Connected
	m.mu.Unlock()

	m.logger.Info("channel connected", "url", wsURL)
	m.emitStatus(Connected)

	m.wg.Add(2)
	go m.writePump(conn)
	go m.readPump(conn)
}

func (m *Manager) writePump(conn *websocket.Conn) {
	defer m.wg.Done()
	for {
		select {
		case data := <-m.out:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				m.fail(fmt.Errorf("write: %w", err))
				_ = conn.Close()
				return
			}
		case <-m.done:
			return
		}
	}
}

func (m *Manager) readPump(conn *websocket.Conn) {
	defer m.wg.Done()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				m.logger.Info("channel closed by server")
				m.disconnect()
				return
			}
			m.fail(fmt.Errorf("read: %w", err))
			return
		}

		reply, err := wire.ParseReply(data)
		if err != nil {
			m.report(err)
			continue
		}

		select {
		case m.messages <- reply:
		case <-m.done:
			return
		}
	}
}

// fail reports err and moves to Disconnected.
func (m *Manager) fail(err error) {
	if m.isClosed() {
		return
	}
	m.report(err)
	m.disconnect()
}

func (m *Manager) disconnect() {
	m.mu.Lock()
	if m.closed || m.status == Disconnected {
		m.mu.Unlock()
		return
	}
	m.status = Disconnected
	m.mu.Unlock()

	m.emitStatus(Disconnected)
}

func (m *Manager) report(err error) {
	if m.isClosed() {
		return
	}
	m.logger.Warn("channel error", "error", err)
	select {
	case m.errCh <- err:
	default:
	}
}

func (m *Manager) emitStatus(s Status) {
	if m.isClosed() {
		return
	}
	select {
	case m.statusCh <- s:
	default:
	}
}

func (m *Manager) isClosed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}

// drain discards buffered values so nothing is delivered after Close.
func drain[T any](ch chan T) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}
