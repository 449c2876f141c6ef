// Package songsort orders levels for the song browser and resolves the
// remembered selection after a re-sort.
package songsort

import (
	"fmt"
	"strings"
)

// SortMode selects the comparator used by Sort.
type SortMode int

const (
	Default   SortMode = iota // song name
	Favorites                 // favorites first, then song name
	Author                    // author, then song name
	Original                  // creation order
	Newest                    // most recent first
	PlayCount                 // most played first
)

// modeCount is the total number of sort modes.
const modeCount = 6

var modeNames = [modeCount]string{"default", "favorites", "author", "original", "newest", "playcount"}

// buttonOrder is the order in which the sort buttons are laid out.
var buttonOrder = [modeCount]SortMode{Favorites, Default, Author, Original, Newest, PlayCount}

// Modes returns every sort mode in button order.
func Modes() []SortMode {
	out := make([]SortMode, modeCount)
	copy(out, buttonOrder[:])
	return out
}

// Valid reports whether m is one of the declared sort modes.
func (m SortMode) Valid() bool {
	return m >= 0 && m < modeCount
}

func (m SortMode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("SortMode(%d)", int(m))
	}
	return modeNames[m]
}

// Label is the caption shown on the sort button.
func (m SortMode) Label() string {
	switch m {
	case Favorites:
		return "Favorite"
	case Default:
		return "Song"
	case Author:
		return "Author"
	case Original:
		return "Original"
	case Newest:
		return "Newest"
	case PlayCount:
		return "PlayCount"
	}
	panic(fmt.Sprintf("songsort: unknown sort mode %d", int(m)))
}

// Next returns the mode of the following sort button, wrapping around.
func (m SortMode) Next() SortMode {
	for i, b := range buttonOrder {
		if b == m {
			return buttonOrder[(i+1)%modeCount]
		}
	}
	panic(fmt.Sprintf("songsort: unknown sort mode %d", int(m)))
}

// ParseSortMode parses a mode name. Button captions are accepted too,
// so "song" parses as Default.
func ParseSortMode(s string) (SortMode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if key == name {
			return SortMode(i), nil
		}
	}
	switch key {
	case "song", "title", "name":
		return Default, nil
	case "favorite", "fav":
		return Favorites, nil
	case "plays":
		return PlayCount, nil
	}
	return 0, fmt.Errorf("unknown sort mode %q", s)
}
