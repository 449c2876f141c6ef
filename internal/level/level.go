// Package level defines the level records shared by the library, the sort
// engine and the browser.
package level

import (
	"strings"
	"time"
)

// BuiltinPrefix marks the IDs of levels shipped with the game.
// Those levels cannot be deleted.
const BuiltinPrefix = "Level"

// CustomPrefix is prepended to the content hash of a custom level.
const CustomPrefix = "custom_level_"

// Level is a single playable song. The sort engine never mutates a Level,
// it only reorders them.
type Level struct {
	ID           string
	SongName     string
	SongSubName  string
	AuthorName   string
	Path         string    // level folder on disk, empty for built-in levels
	Created      time.Time // first time the level was seen by the library
	PlayCount    int
	Difficulties DifficultySet
}

// IsBuiltinID reports whether id belongs to a level shipped with the game.
func IsBuiltinID(id string) bool {
	return strings.HasPrefix(id, BuiltinPrefix)
}

// IsCustom reports whether the level was installed by the user.
func (l Level) IsCustom() bool {
	return !IsBuiltinID(l.ID)
}

// DisplayName returns the song name followed by its sub name, if any.
func (l Level) DisplayName() string {
	if l.SongSubName == "" {
		return l.SongName
	}
	return l.SongName + " " + l.SongSubName
}

// IDs returns the identifiers of levels, in order.
func IDs(levels []Level) []string {
	ids := make([]string, len(levels))
	for i := range levels {
		ids[i] = levels[i].ID
	}
	return ids
}
