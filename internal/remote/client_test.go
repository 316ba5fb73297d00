package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/playback/user_123" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPull_Stored(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"playlist_id":42,"track_id":"track_1","position_ms":15000}`)

	snap, err := NewClient(srv.URL).Pull(context.Background(), "user_123")
	require.NoError(t, err)

	require.False(t, snap.Empty())
	assert.Equal(t, "track_1", *snap.TrackID)
	assert.Equal(t, int64(15000), *snap.PositionMs)
	assert.Equal(t, "42", snap.QueueID.String())
}

func TestPull_NotFoundSentinel(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"message":"No playback state found"}`)

	snap, err := NewClient(srv.URL).Pull(context.Background(), "user_123")
	require.NoError(t, err)
	assert.True(t, snap.Empty())
}

func TestPull_404IsEmpty(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{}`)

	snap, err := NewClient(srv.URL).Pull(context.Background(), "someone_else")
	require.NoError(t, err)
	assert.True(t, snap.Empty())
}

func TestPull_ServerError(t *testing.T) {
	srv := newServer(t, http.StatusBadRequest, `{"detail":"user_id must be a number"}`)

	_, err := NewClient(srv.URL).Pull(context.Background(), "user_123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestPull_Malformed(t *testing.T) {
	srv := newServer(t, http.StatusOK, `not json`)

	_, err := NewClient(srv.URL).Pull(context.Background(), "user_123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestPull_EmptyUser(t *testing.T) {
	_, err := NewClient("http://127.0.0.1:1").Pull(context.Background(), " ")
	assert.Error(t, err)
}
