package state

import (
	"database/sql"
)

const currentSchemaVersion = 2

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS browser_settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			sort_mode TEXT NOT NULL DEFAULT 'default',
			inverted INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS favorites (
			level_id TEXT PRIMARY KEY,
			added_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS levels (
			path TEXT PRIMARY KEY,
			id TEXT NOT NULL,
			mtime INTEGER NOT NULL,
			song_name TEXT NOT NULL,
			song_sub_name TEXT,
			author_name TEXT,
			difficulties INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS song_dirs (
			path TEXT PRIMARY KEY,
			added_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_levels_id ON levels(id);
		CREATE INDEX IF NOT EXISTS idx_levels_created_at ON levels(created_at);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	if err != nil {
		return err
	}

	// Migration: song_sub_name was added after the first release
	_, _ = db.Exec(`ALTER TABLE levels ADD COLUMN song_sub_name TEXT`)

	return nil
}
