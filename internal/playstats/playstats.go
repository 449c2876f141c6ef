// Package playstats keeps per-level play counts in a JSON document:
//
//	{"levels": {"<level id>": {"plays": 3, "last_played": 1700000000}}}
package playstats

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const levelsKey = "levels"

// Stats is a play statistics document backed by a file.
type Stats struct {
	mu   sync.Mutex
	path string
	data []byte
}

// Load reads the stats file at path. A missing file yields empty stats.
func Load(path string) (*Stats, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &Stats{path: path, data: []byte(`{}`)}, nil
	case err != nil:
		return nil, err
	case len(data) == 0:
		return &Stats{path: path, data: []byte(`{}`)}, nil
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%s: invalid JSON", path)
	}
	return &Stats{path: path, data: data}, nil
}

// Plays returns how many times the level was played.
func (s *Stats) Plays(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int(gjson.GetBytes(s.data, levelPath(id, "plays")).Int())
}

// LastPlayed returns when the level was last played, zero if never.
func (s *Stats) LastPlayed(id string) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := gjson.GetBytes(s.data, levelPath(id, "last_played"))
	if !r.Exists() {
		return time.Time{}
	}
	return time.Unix(r.Int(), 0)
}

// Counts returns the play count of every level with at least one play.
func (s *Stats) Counts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int)
	gjson.GetBytes(s.data, levelsKey).ForEach(func(key, value gjson.Result) bool {
		if plays := value.Get("plays").Int(); plays > 0 {
			counts[key.String()] = int(plays)
		}
		return true
	})
	return counts
}

// Increment records a play of the level at now and writes the file.
// It returns the new play count.
func (s *Stats) Increment(id string, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plays := gjson.GetBytes(s.data, levelPath(id, "plays")).Int() + 1

	data, err := sjson.SetBytes(s.data, levelPath(id, "plays"), plays)
	if err != nil {
		return 0, err
	}
	data, err = sjson.SetBytes(data, levelPath(id, "last_played"), now.Unix())
	if err != nil {
		return 0, err
	}

	if err := writeFile(s.path, data); err != nil {
		return 0, err
	}
	s.data = data
	return int(plays), nil
}

// Forget removes a level from the statistics, e.g. after it was deleted.
func (s *Stats) Forget(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := levelsKey + "." + escapeKey(id)
	if !gjson.GetBytes(s.data, path).Exists() {
		return nil
	}
	data, err := sjson.DeleteBytes(s.data, path)
	if err != nil {
		return err
	}
	if err := writeFile(s.path, data); err != nil {
		return err
	}
	s.data = data
	return nil
}

// writeFile replaces path atomically.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func levelPath(id, field string) string {
	return levelsKey + "." + escapeKey(id) + "." + field
}

// escapeKey escapes the characters that have a meaning in gjson paths.
func escapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%', ':':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
