package songsort

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/llehouerou/songbrowser/internal/level"
)

// sortItem carries the precomputed keys of a level.
type sortItem struct {
	level    level.Level
	name     string // case-folded display name
	author   string // case-folded author name
	favorite bool
}

type compareFunc func(a, b *sortItem) int

// Sort returns levels ordered according to state. The input slice is left
// untouched. Equal keys keep their input order; when the state is inverted
// the whole ordered sequence is reversed.
//
// favorites is only consulted in Favorites mode and may be nil.
// Sort panics on a mode that is not one of the declared SortMode values.
func Sort(levels []level.Level, state SortState, favorites FavoriteSet) []level.Level {
	compare := comparator(state.Mode)

	fold := cases.Fold()
	items := make([]sortItem, len(levels))
	for i := range levels {
		items[i] = sortItem{
			level:    levels[i],
			name:     fold.String(levels[i].DisplayName()),
			author:   fold.String(levels[i].AuthorName),
			favorite: favorites.Has(levels[i].ID),
		}
	}

	slices.SortStableFunc(items, func(a, b sortItem) int {
		return compare(&a, &b)
	})

	out := make([]level.Level, len(items))
	for i := range items {
		out[i] = items[i].level
	}
	if state.Inverted {
		slices.Reverse(out)
	}
	return out
}

func comparator(mode SortMode) compareFunc {
	switch mode {
	case Default:
		return byName
	case Author:
		return func(a, b *sortItem) int {
			return cmp.Or(strings.Compare(a.author, b.author), byName(a, b))
		}
	case Original:
		return func(a, b *sortItem) int {
			return cmp.Or(a.level.Created.Compare(b.level.Created), byName(a, b))
		}
	case Newest:
		return func(a, b *sortItem) int {
			return cmp.Or(b.level.Created.Compare(a.level.Created), byName(a, b))
		}
	case PlayCount:
		return func(a, b *sortItem) int {
			return cmp.Or(cmp.Compare(b.level.PlayCount, a.level.PlayCount), byName(a, b))
		}
	case Favorites:
		return func(a, b *sortItem) int {
			return cmp.Or(compareFavorite(a.favorite, b.favorite), byName(a, b))
		}
	}
	panic(fmt.Sprintf("songsort: unknown sort mode %d", int(mode)))
}

func byName(a, b *sortItem) int {
	return strings.Compare(a.name, b.name)
}

// compareFavorite orders favorites before everything else.
func compareFavorite(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	default:
		return 1
	}
}
