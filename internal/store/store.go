// Package store persists the reference server's catalog and the last
// playback state reported by each user in sqlite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/shershen08/playsync/internal/catalog"
	"github.com/shershen08/playsync/internal/db"
	"github.com/shershen08/playsync/internal/wire"
)

// Playback is the stored state of one user.
type Playback struct {
	UserID     string
	QueueID    wire.QueueID
	TrackID    string
	PositionMs int64
	UpdatedAt  time.Time
}

// Snapshot converts the record to the shape clients pull.
func (p Playback) Snapshot() wire.Snapshot {
	return wire.NewSnapshot(p.QueueID, p.TrackID, p.PositionMs)
}

// Store wraps the sqlite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the database at path. ":memory:" gives a private
// in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection: an in-memory database exists per connection, and sqlite
	// serializes writers regardless.
	conn.SetMaxOpenConns(1)

	s, err := New(ctx, conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// New prepares an already opened database.
func New(ctx context.Context, conn *sql.DB) (*Store, error) {
	if err := initSchema(ctx, conn); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: conn, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Tracks returns the catalog in play order.
func (s *Store) Tracks(ctx context.Context) ([]catalog.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, artist, album, duration_ms, image_url
		FROM catalog_tracks
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []catalog.Item
	for rows.Next() {
		var it catalog.Item
		var image sql.NullString
		if err := rows.Scan(&it.ID, &it.Title, &it.Artist, &it.Album, &it.DurationMs, &image); err != nil {
			return nil, err
		}
		it.ImageURL = db.NullStringValue(image)
		items = append(items, it)
	}
	return items, rows.Err()
}

// SavePlayback replaces the stored state of msg.UserID.
func (s *Store) SavePlayback(ctx context.Context, msg wire.SyncMessage) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO playback_state (user_id, playlist_id, track_id, position_ms, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			playlist_id = excluded.playlist_id,
			track_id = excluded.track_id,
			position_ms = excluded.position_ms,
			updated_at = excluded.updated_at
	`, msg.UserID, msg.QueueID.String(), msg.TrackID, msg.PositionMs, s.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("save playback for %s: %w", msg.UserID, err)
	}
	return nil
}

// Playback returns the stored state of userID. ok is false when nothing was
// ever saved for that user.
func (s *Store) Playback(ctx context.Context, userID string) (Playback, bool, error) {
	var p Playback
	var queueID string
	var updated int64
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, playlist_id, track_id, position_ms, updated_at
		FROM playback_state
		WHERE user_id = ?
	`, userID).Scan(&p.UserID, &queueID, &p.TrackID, &p.PositionMs, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Playback{}, false, nil
	}
	if err != nil {
		return Playback{}, false, err
	}
	p.QueueID = wire.QueueID(queueID)
	p.UpdatedAt = time.UnixMilli(updated)
	return p, true, nil
}
