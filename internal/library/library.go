// Package library caches the custom levels found in the song folders.
package library

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/llehouerou/songbrowser/internal/level"
)

var (
	// ErrNotFound is returned when no level has the requested ID.
	ErrNotFound = errors.New("level not found")
	// ErrNotCustom is returned when trying to delete a built-in level.
	ErrNotCustom = errors.New("built-in levels cannot be deleted")
	// ErrSharedFolder is returned when a level folder is a song dir or holds
	// other levels, so removing it would take them along.
	ErrSharedFolder = errors.New("level folder is shared with other levels")
)

// PlayCounts reports how many times each level was played.
type PlayCounts interface {
	Plays(id string) int
}

type Library struct {
	db       *sql.DB
	plays    PlayCounts
	excludes []string
}

// New returns a library backed by db. plays may be nil, in which case every
// level reports zero plays.
func New(db *sql.DB, plays PlayCounts) *Library {
	return &Library{db: db, plays: plays}
}

// SetExcludes sets the doublestar patterns of folders to skip while
// scanning. Patterns are matched against paths relative to each song dir.
func (l *Library) SetExcludes(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	l.excludes = patterns
	return nil
}

const levelColumns = `id, path, song_name, song_sub_name, author_name, difficulties, created_at`

// AllLevels returns every cached level, ordered by folder path.
func (l *Library) AllLevels() ([]level.Level, error) {
	rows, err := l.db.Query(`SELECT ` + levelColumns + ` FROM levels ORDER BY path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []level.Level
	for rows.Next() {
		lv, err := l.scanLevel(rows)
		if err != nil {
			return nil, err
		}
		levels = append(levels, lv)
	}
	return levels, rows.Err()
}

// Level returns the level with the given ID.
func (l *Library) Level(id string) (level.Level, error) {
	row := l.db.QueryRow(`SELECT `+levelColumns+` FROM levels WHERE id = ? ORDER BY path LIMIT 1`, id)
	lv, err := l.scanLevel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return level.Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return lv, err
}

// Count returns the number of cached levels.
func (l *Library) Count() (int, error) {
	var count int
	err := l.db.QueryRow(`SELECT COUNT(*) FROM levels`).Scan(&count)
	return count, err
}

type scanner interface {
	Scan(dest ...any) error
}

func (l *Library) scanLevel(s scanner) (level.Level, error) {
	var lv level.Level
	var subName, author sql.NullString
	var difficulties, createdAt int64

	if err := s.Scan(&lv.ID, &lv.Path, &lv.SongName, &subName, &author, &difficulties, &createdAt); err != nil {
		return level.Level{}, err
	}
	lv.SongSubName = subName.String
	lv.AuthorName = author.String
	lv.Difficulties = level.DifficultySet(difficulties) //nolint:gosec // stored from a DifficultySet
	lv.Created = time.Unix(createdAt, 0)
	if l.plays != nil {
		lv.PlayCount = l.plays.Plays(lv.ID)
	}
	return lv, nil
}
