package state

import (
	"database/sql"
	"errors"
	"log"

	"github.com/llehouerou/songbrowser/internal/songsort"
)

// Settings holds the persisted browser settings.
type Settings struct {
	Sort songsort.SortState
}

func getSettings(db *sql.DB) (*Settings, error) {
	row := db.QueryRow(`SELECT sort_mode, inverted FROM browser_settings WHERE id = 1`)

	var mode string
	var inverted bool
	err := row.Scan(&mode, &inverted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved settings is valid on first run
	}
	if err != nil {
		return nil, err
	}

	sortMode, err := songsort.ParseSortMode(mode)
	if err != nil {
		// A mode from a newer version; fall back rather than refusing to start.
		log.Printf("state: %v, using default sort", err)
		sortMode = songsort.Default
	}

	return &Settings{Sort: songsort.SortState{Mode: sortMode, Inverted: inverted}}, nil
}

func saveSettings(db *sql.DB, s Settings) error {
	_, err := db.Exec(`
		INSERT INTO browser_settings (id, sort_mode, inverted)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			sort_mode = excluded.sort_mode,
			inverted = excluded.inverted
	`, s.Sort.Mode.String(), s.Sort.Inverted)
	return err
}
