package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shershen08/playsync/internal/db"
)

const currentSchemaVersion = 1

func initSchema(ctx context.Context, conn *sql.DB) error {
	_, err := conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS catalog_tracks (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			artist TEXT NOT NULL,
			album TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			image_url TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_catalog_tracks_position ON catalog_tracks(position);

		CREATE TABLE IF NOT EXISTS playback_state (
			user_id TEXT PRIMARY KEY,
			playlist_id TEXT NOT NULL,
			track_id TEXT NOT NULL,
			position_ms INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	var version int
	err = conn.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version >= currentSchemaVersion {
		return nil
	}

	return db.WithTx(ctx, conn, func(tx *sql.Tx) error {
		if err := seedCatalog(ctx, tx); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO schema_version (version) VALUES (?)`, currentSchemaVersion)
		return err
	})
}

func seedCatalog(ctx context.Context, tx *sql.Tx) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO catalog_tracks (id, position, name, artist, album, duration_ms, image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, t := range seedTracks {
		_, err := stmt.ExecContext(ctx, t.ID, i, t.Title, t.Artist, t.Album, t.DurationMs, db.NullString(placeholderImage(i+1)))
		if err != nil {
			return fmt.Errorf("seed %s: %w", t.ID, err)
		}
	}
	return nil
}
