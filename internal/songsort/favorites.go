package songsort

import (
	"maps"
	"slices"
)

// FavoriteSet is a set of level IDs. Values are treated as immutable:
// ToggleFavorite returns a new set, so a snapshot handed to Sort is never
// modified behind its back.
type FavoriteSet map[string]struct{}

// NewFavorites builds a set from ids.
func NewFavorites(ids ...string) FavoriteSet {
	f := make(FavoriteSet, len(ids))
	for _, id := range ids {
		f[id] = struct{}{}
	}
	return f
}

// Has reports whether id is a favorite. A nil set has no members.
func (f FavoriteSet) Has(id string) bool {
	_, ok := f[id]
	return ok
}

// Len returns the number of favorites.
func (f FavoriteSet) Len() int {
	return len(f)
}

// IDs returns the favorite IDs in ascending order.
func (f FavoriteSet) IDs() []string {
	return slices.Sorted(maps.Keys(f))
}

// ToggleFavorite removes id from favorites if present, adds it otherwise.
// It returns the updated set and whether id is now a favorite. Persisting
// the result is left to the caller.
func ToggleFavorite(favorites FavoriteSet, id string) (FavoriteSet, bool) {
	next := maps.Clone(favorites)
	if next == nil {
		next = make(FavoriteSet, 1)
	}
	if next.Has(id) {
		delete(next, id)
		return next, false
	}
	next[id] = struct{}{}
	return next, true
}
