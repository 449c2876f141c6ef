package library

import (
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	dbutil "github.com/llehouerou/songbrowser/internal/db"
)

// SongDirs returns the song dirs registered in the library, oldest first.
func (l *Library) SongDirs() ([]string, error) {
	rows, err := l.db.Query(`SELECT path FROM song_dirs ORDER BY added_at, path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dirs []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		dirs = append(dirs, path)
	}
	return dirs, rows.Err()
}

// AddSongDir registers a song dir. Adding a dir twice is a no-op.
func (l *Library) AddSongDir(path string) error {
	_, err := l.db.Exec(`
		INSERT OR IGNORE INTO song_dirs (path, added_at) VALUES (?, ?)
	`, filepath.Clean(path), time.Now().Unix())
	return err
}

// RemoveSongDir unregisters a song dir and drops the levels cached under it.
// Files on disk are left alone.
func (l *Library) RemoveSongDir(path string) error {
	path = filepath.Clean(path)

	return dbutil.WithTx(l.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM levels WHERE path LIKE ? ESCAPE '!'`, likeUnder(path)); err != nil {
			return err
		}
		_, err := tx.Exec(`DELETE FROM song_dirs WHERE path = ?`, path)
		return err
	})
}

// LevelCountByDir returns the number of cached levels under a song dir.
func (l *Library) LevelCountByDir(path string) (int, error) {
	var count int
	err := l.db.QueryRow(`SELECT COUNT(*) FROM levels WHERE path LIKE ? ESCAPE '!'`, likeUnder(path)).Scan(&count)
	return count, err
}

// MigrateSongDirs seeds the song dirs from configuration when none are
// registered yet.
func (l *Library) MigrateSongDirs(dirs []string) error {
	var count int
	if err := l.db.QueryRow(`SELECT COUNT(*) FROM song_dirs`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := l.AddSongDir(dir); err != nil {
			return err
		}
	}
	return nil
}

// pathPrefix returns dir with a trailing separator.
func pathPrefix(dir string) string {
	dir = filepath.Clean(dir)
	if strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir
	}
	return dir + string(filepath.Separator)
}

// isUnder reports whether path lies strictly below dir.
func isUnder(dir, path string) bool {
	return strings.HasPrefix(filepath.Clean(path), pathPrefix(dir))
}

// '!' is the LIKE escape character; '\' would clash with Windows separators.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// likeUnder returns a LIKE pattern, to be used with ESCAPE '!', matching
// every path strictly below dir.
func likeUnder(dir string) string {
	return likeEscaper.Replace(pathPrefix(dir)) + "%"
}
