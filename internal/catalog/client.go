package catalog

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

// ErrNotFound is returned when the catalog has no such queue.
var ErrNotFound = errors.New("queue not found")

const userAgent = "playsync/1.0"

// Loader loads the items of a queue.
type Loader interface {
	Load(ctx context.Context, id wire.QueueID) (Queue, error)
}

// Client is a catalog API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	random     bool
}

// Verify Client implements Loader at compile time.
var _ Loader = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRandomOrder makes Load use the random-subset endpoint.
func WithRandomOrder() Option {
	return func(c *Client) { c.random = true }
}

// NewClient creates a catalog client for the server at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches the queue's items, in random order if the client was built
// WithRandomOrder.
func (c *Client) Load(ctx context.Context, id wire.QueueID) (Queue, error) {
	if c.random {
		return c.RandomTracks(ctx, id)
	}
	return c.Tracks(ctx, id)
}

// Tracks fetches every item of a queue in order.
func (c *Client) Tracks(ctx context.Context, id wire.QueueID) (Queue, error) {
	items, err := c.get(ctx, id, "/tracks")
	if err != nil {
		return Queue{}, err
	}
	return NewQueue(id, items), nil
}

// RandomTracks fetches a random subset of a queue in random order.
func (c *Client) RandomTracks(ctx context.Context, id wire.QueueID) (Queue, error) {
	items, err := c.get(ctx, id, "/tracks/random")
	if err != nil {
		return Queue{}, err
	}
	return NewQueue(id, items), nil
}

func (c *Client) get(ctx context.Context, id wire.QueueID, suffix string) ([]Item, error) {
	if id == "" {
		return nil, errors.New("empty queue id")
	}
	reqURL := c.baseURL + "/api/playlists/" + url.PathEscape(id.String()) + suffix

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var items []Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return items, nil
}
