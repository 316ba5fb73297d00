// Package remote pulls the server-held playback snapshot of a user.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shershen08/playsync/internal/wire"
)

// Puller fetches the stored snapshot for a user. An empty snapshot and a nil
// error mean nothing is stored.
type Puller interface {
	Pull(ctx context.Context, userID string) (wire.Snapshot, error)
}

// Client is a playback-state API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Verify Client implements Puller at compile time.
var _ Puller = (*Client)(nil)

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Pull fetches GET /api/playback/{userID}. A 404 or the server's "not found"
// body both yield an empty snapshot.
func (c *Client) Pull(ctx context.Context, userID string) (wire.Snapshot, error) {
	if strings.TrimSpace(userID) == "" {
		return wire.Snapshot{}, errors.New("empty user id")
	}
	reqURL := c.baseURL + "/api/playback/" + url.PathEscape(userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return wire.Snapshot{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return wire.Snapshot{}, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return wire.Snapshot{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return wire.Snapshot{}, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var snap wire.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return wire.Snapshot{}, fmt.Errorf("decode response: %w", err)
	}
	if snap.Empty() {
		return wire.Snapshot{}, nil
	}
	return snap, nil
}
