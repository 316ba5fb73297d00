package channel

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shershen08/playsync/internal/wire"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// echoServer acknowledges every text message and forwards raw payloads to received.
func echoServer(t *testing.T, received chan<- []byte, script func(conn *websocket.Conn)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ws" {
			http.NotFound(w, r)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		if script != nil {
			script(conn)
			return
		}
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if received != nil {
				received <- data
			}
			_ = conn.WriteJSON(wire.Reply{Status: wire.StatusSuccess, Message: "Playback state saved"})
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func waitStatus(t *testing.T, m *Manager, want Status) {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case s := <-m.StatusChanges():
			if s == want {
				return
			}
		case <-timeout:
			t.Fatalf("status = %v, want %v", m.Status(), want)
		}
	}
}

func TestURL(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"http://localhost:8000", "ws://localhost:8000/ws"},
		{"http://localhost:8000/", "ws://localhost:8000/ws"},
		{"https://sync.example.com/base", "wss://sync.example.com/base/ws"},
		{"ws://host", "ws://host/ws"},
	}
	for _, tt := range tests {
		got, err := URL(tt.base)
		require.NoError(t, err, tt.base)
		assert.Equal(t, tt.want, got)
	}

	_, err := URL("ftp://host")
	assert.Error(t, err)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "connecting", Connecting.String())
	assert.Equal(t, "connected", Connected.String())
	assert.Equal(t, "disconnected", Disconnected.String())
	assert.Equal(t, "unknown", Status(9).String())
}

func TestManager_SendAndReceive(t *testing.T) {
	received := make(chan []byte, 1)
	srv := echoServer(t, received, nil)

	m := Dial(context.Background(), srv.URL)
	defer m.Close()
	waitStatus(t, m, Connected)

	msg := wire.SyncMessage{UserID: "user_123", QueueID: "42", TrackID: "track_1", PositionMs: 0}
	require.NoError(t, m.Send(msg))

	select {
	case data := <-received:
		assert.JSONEq(t, `{"user_id":"user_123","playlist_id":"42","track_id":"track_1","position_ms":0}`, string(data))
	case <-time.After(2 * time.Second):
		t.Fatal("server did not receive message")
	}

	select {
	case r := <-m.Messages():
		assert.True(t, r.OK())
	case <-time.After(2 * time.Second):
		t.Fatal("no reply delivered")
	}
}

func TestManager_MalformedInboundDropped(t *testing.T) {
	srv := echoServer(t, nil, func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte("garbage"))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"status":"error","message":"bad"}`))
		_, _, _ = conn.ReadMessage()
	})

	m := Dial(context.Background(), srv.URL)
	defer m.Close()

	select {
	case err := <-m.Errors():
		assert.True(t, errors.Is(err, wire.ErrMalformed), "err = %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("malformed payload not reported")
	}

	select {
	case r := <-m.Messages():
		assert.Equal(t, wire.StatusError, r.Status)
		assert.Equal(t, "bad", r.Message)
	case <-time.After(2 * time.Second):
		t.Fatal("valid message after garbage not delivered")
	}
	assert.Equal(t, Connected, m.Status())
}

func TestManager_DialFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	m := Dial(context.Background(), srv.URL)
	defer m.Close()

	waitStatus(t, m, Disconnected)
	assert.ErrorIs(t, m.Send(wire.SyncMessage{}), ErrNotConnected)
}

func TestManager_ServerCloseIsTerminal(t *testing.T) {
	srv := echoServer(t, nil, func(conn *websocket.Conn) {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
		_ = conn.WriteMessage(websocket.CloseMessage, msg)
	})

	m := Dial(context.Background(), srv.URL)
	defer m.Close()

	waitStatus(t, m, Connected)
	waitStatus(t, m, Disconnected)
	assert.Equal(t, Disconnected, m.Status())
	assert.ErrorIs(t, m.Send(wire.SyncMessage{}), ErrNotConnected)
}

func TestManager_SendBeforeConnected(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	m := Dial(context.Background(), srv.URL)
	defer m.Close()

	assert.Equal(t, Connecting, m.Status())
	assert.ErrorIs(t, m.Send(wire.SyncMessage{}), ErrNotConnected)
}

func TestManager_CloseIsIdempotentAndSilent(t *testing.T) {
	srv := echoServer(t, nil, nil)

	m := Dial(context.Background(), srv.URL)
	waitStatus(t, m, Connected)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	assert.Equal(t, Disconnected, m.Status())
	assert.ErrorIs(t, m.Send(wire.SyncMessage{}), ErrNotConnected)

	_, ok := <-m.Messages()
	assert.False(t, ok, "messages channel should be closed")
	_, ok = <-m.StatusChanges()
	assert.False(t, ok, "status channel should be closed")
	_, ok = <-m.Errors()
	assert.False(t, ok, "errors channel should be closed")
}

func TestManager_CloseWhileConnecting(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	m := Dial(context.Background(), srv.URL)

	done := make(chan struct{})
	go func() {
		_ = m.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close blocked on a pending dial")
	}
	assert.Equal(t, Disconnected, m.Status())
}

func TestManager_Inbound(t *testing.T) {
	srv := echoServer(t, nil, func(conn *websocket.Conn) {
		for i := range 3 {
			_ = conn.WriteJSON(wire.Reply{Status: wire.StatusSuccess, Message: strings.Repeat("x", i+1)})
		}
		_, _, _ = conn.ReadMessage()
	})

	m := Dial(context.Background(), srv.URL)
	defer m.Close()

	var got []string
	for r := range m.Inbound() {
		got = append(got, r.Message)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []string{"x", "xx", "xxx"}, got)
}
