package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/llehouerou/songbrowser/internal/level"
)

// Delete removes a custom level from disk and from the cache.
func (l *Library) Delete(id string) error {
	if level.IsBuiltinID(id) {
		return fmt.Errorf("%w: %s", ErrNotCustom, id)
	}

	lv, err := l.Level(id)
	if err != nil {
		return err
	}

	if err := l.checkDeletable(lv.Path); err != nil {
		return err
	}
	if err := removePath(lv.Path); err != nil {
		return err
	}

	_, err = l.db.Exec(`DELETE FROM levels WHERE path = ?`, lv.Path)
	return err
}

// checkDeletable refuses folders whose removal would delete more than one
// level: a song dir itself, or a folder with other cached levels below it.
func (l *Library) checkDeletable(path string) error {
	dirs, err := l.SongDirs()
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if filepath.Clean(dir) == filepath.Clean(path) {
			return fmt.Errorf("%w: %s is a song dir", ErrSharedFolder, path)
		}
	}

	var nested int
	err = l.db.QueryRow(
		`SELECT COUNT(*) FROM levels WHERE path LIKE ? ESCAPE '!'`, likeUnder(path),
	).Scan(&nested)
	if err != nil {
		return err
	}
	if nested > 0 {
		return fmt.Errorf("%w: %s holds %d other level(s)", ErrSharedFolder, path, nested)
	}
	return nil
}

// removePath deletes a level folder, or a single file for levels that were
// installed as one. A path that is already gone is not an error.
func removePath(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}
