// internal/state/interface.go
package state

import (
	"database/sql"

	"github.com/llehouerou/songbrowser/internal/songsort"
)

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	DB() *sql.DB
	GetSettings() (*Settings, error)
	SaveSettings(s Settings)
	GetFavorites() (songsort.FavoriteSet, error)
	SaveFavorites(favorites songsort.FavoriteSet)
	Flush() error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
