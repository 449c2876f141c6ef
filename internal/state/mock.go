// internal/state/mock.go
package state

import (
	"database/sql"
	"maps"

	"github.com/llehouerou/songbrowser/internal/songsort"
)

// Mock is a test double for Manager. Saves are applied synchronously.
type Mock struct {
	settings      *Settings
	favorites     songsort.FavoriteSet
	settingsSaves int
	favoriteSaves int
	closed        bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) DB() *sql.DB { return nil }

func (m *Mock) GetSettings() (*Settings, error) {
	return m.settings, nil
}

func (m *Mock) SaveSettings(s Settings) {
	m.settings = &s
	m.settingsSaves++
}

func (m *Mock) GetFavorites() (songsort.FavoriteSet, error) {
	return maps.Clone(m.favorites), nil
}

func (m *Mock) SaveFavorites(favorites songsort.FavoriteSet) {
	m.favorites = maps.Clone(favorites)
	m.favoriteSaves++
}

func (m *Mock) Flush() error { return nil }

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetSettings(s *Settings) { m.settings = s }

func (m *Mock) SetFavorites(f songsort.FavoriteSet) { m.favorites = f }

func (m *Mock) SettingsSaves() int { return m.settingsSaves }

func (m *Mock) FavoriteSaves() int { return m.favoriteSaves }

func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
