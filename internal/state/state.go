// Package state persists the song browser settings and favorites in SQLite.
package state

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/songbrowser/internal/songsort"
)

const (
	appName      = "songbrowser"
	dbFileName   = "songbrowser.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db *sql.DB

	// flushMu is held for the whole of a flush, so Close never closes the
	// database under a background save.
	flushMu sync.Mutex

	saveMu    sync.Mutex
	saveTimer *time.Timer
	closed    bool

	pendingSettings  *Settings
	pendingFavorites songsort.FavoriteSet
	favoritesDirty   bool
}

// Open opens the state database at path, or at the default data location
// when path is empty.
func Open(path string) (*Manager, error) {
	if path == "" {
		var err error
		path, err = getDBPath()
		if err != nil {
			return nil, err
		}
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := configure(db); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db}, nil
}

func configure(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes pending saves and closes the database. It waits for a
// background save that is already running. Saves requested afterwards are
// dropped.
func (m *Manager) Close() error {
	m.flushMu.Lock()
	defer m.flushMu.Unlock()

	flushErr := m.flushLocked()

	m.saveMu.Lock()
	m.closed = true
	m.saveMu.Unlock()

	if err := m.db.Close(); err != nil {
		return err
	}
	return flushErr
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

// GetSettings returns the saved settings, or nil on first run.
func (m *Manager) GetSettings() (*Settings, error) {
	return getSettings(m.db)
}

// GetFavorites returns the saved favorites set.
func (m *Manager) GetFavorites() (songsort.FavoriteSet, error) {
	return getFavorites(m.db)
}

// SaveSettings schedules a save of s. The write happens in the background
// after a short debounce; only the latest value is written.
func (m *Manager) SaveSettings(s Settings) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pendingSettings = &s
	m.scheduleLocked()
}

// SaveFavorites schedules a save of the favorites set, like SaveSettings.
func (m *Manager) SaveFavorites(favorites songsort.FavoriteSet) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pendingFavorites = favorites
	m.favoritesDirty = true
	m.scheduleLocked()
}

func (m *Manager) scheduleLocked() {
	if m.closed {
		return
	}
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		if err := m.Flush(); err != nil {
			log.Printf("state: background save failed: %v", err)
		}
	})
}

// Flush writes pending saves immediately.
func (m *Manager) Flush() error {
	m.flushMu.Lock()
	defer m.flushMu.Unlock()
	return m.flushLocked()
}

func (m *Manager) flushLocked() error {
	m.saveMu.Lock()
	if m.closed {
		m.saveMu.Unlock()
		return nil
	}
	if m.saveTimer != nil {
		m.saveTimer.Stop()
		m.saveTimer = nil
	}
	settings := m.pendingSettings
	favorites, favoritesDirty := m.pendingFavorites, m.favoritesDirty
	m.pendingSettings = nil
	m.pendingFavorites = nil
	m.favoritesDirty = false
	m.saveMu.Unlock()

	if settings != nil {
		if err := saveSettings(m.db, *settings); err != nil {
			return err
		}
	}
	if favoritesDirty {
		if err := saveFavorites(m.db, favorites, time.Now()); err != nil {
			return err
		}
	}
	return nil
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
