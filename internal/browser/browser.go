// Package browser keeps the song list of a host view sorted and its
// selection stable across re-sorts.
package browser

import (
	"errors"
	"fmt"

	"github.com/llehouerou/songbrowser/internal/events"
	"github.com/llehouerou/songbrowser/internal/level"
	"github.com/llehouerou/songbrowser/internal/library"
	"github.com/llehouerou/songbrowser/internal/songsort"
	"github.com/llehouerou/songbrowser/internal/state"
)

var (
	// ErrNoSelection is returned by actions that need a selected level.
	ErrNoSelection = errors.New("no level selected")
	// ErrNotCustom is returned when deleting a built-in level.
	ErrNotCustom = library.ErrNotCustom
	// ErrDeleteUnsupported is returned by DeleteSelected without a Deleter.
	ErrDeleteUnsupported = errors.New("level deletion is not available")
)

// View is the list widget the browser drives.
type View interface {
	// CurrentLevels returns the full collection the host knows about.
	CurrentLevels() []level.Level
	SetDisplayedLevels(levels []level.Level)
	ScrollToIndex(i int)
}

// Store persists browser settings and favorites.
type Store interface {
	SaveSettings(s state.Settings)
	SaveFavorites(favorites songsort.FavoriteSet)
}

// Deleter removes a level from disk.
type Deleter interface {
	Delete(id string) error
}

// Options configures a Browser. Every field is optional.
type Options struct {
	Sort      songsort.SortState
	Favorites songsort.FavoriteSet
	Deleter   Deleter
	Bus       *events.Bus
}

// Browser is the controller behind the song list. It is not safe for
// concurrent use; hosts call it from their UI goroutine.
type Browser struct {
	view    View
	store   Store
	deleter Deleter
	bus     *events.Bus

	sort       songsort.SortState
	favorites  songsort.FavoriteSet
	selectedID string
	sorted     []level.Level
	cursor     int
}

// New returns a browser driving view and persisting to store.
func New(view View, store Store, opts Options) *Browser {
	return &Browser{
		view:      view,
		store:     store,
		deleter:   opts.Deleter,
		bus:       opts.Bus,
		sort:      opts.Sort,
		favorites: opts.Favorites,
		cursor:    songsort.NoSelection,
	}
}

// NewFromStore returns a browser using the settings and favorites saved in st.
func NewFromStore(view View, st state.Interface, deleter Deleter, bus *events.Bus) (*Browser, error) {
	opts := Options{Deleter: deleter, Bus: bus}

	settings, err := st.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if settings != nil {
		opts.Sort = settings.Sort
	}

	opts.Favorites, err = st.GetFavorites()
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}

	return New(view, st, opts), nil
}

// SortState returns the active sort mode and direction.
func (b *Browser) SortState() songsort.SortState { return b.sort }

// Favorites returns the current favorites set. Callers must not modify it.
func (b *Browser) Favorites() songsort.FavoriteSet { return b.favorites }

// Sorted returns the list produced by the last Update.
func (b *Browser) Sorted() []level.Level { return b.sorted }

// SelectedID returns the remembered selection, empty when there is none.
func (b *Browser) SelectedID() string { return b.selectedID }

// Cursor returns the highlighted row, or songsort.NoSelection.
func (b *Browser) Cursor() int { return b.cursor }

// Update re-sorts levels with the current sort state.
func (b *Browser) Update(levels []level.Level) {
	b.sorted = songsort.Sort(levels, b.sort, b.favorites)
}

// Refresh pushes the sorted list to the view and scrolls to the remembered
// selection, or to the first row when it is gone.
func (b *Browser) Refresh() {
	b.view.SetDisplayedLevels(b.sorted)

	b.cursor = songsort.ResolveSelection(b.sorted, b.selectedID)
	if b.cursor == songsort.NoSelection {
		b.selectedID = ""
		return
	}
	b.selectedID = b.sorted[b.cursor].ID
	b.view.ScrollToIndex(b.cursor)
}

// SelectSortMode handles a press on a sort button. Pressing the active
// mode again flips the direction.
func (b *Browser) SelectSortMode(mode songsort.SortMode) error {
	if !mode.Valid() {
		return fmt.Errorf("unknown sort mode %d", int(mode))
	}

	b.selectedID = ""
	b.sort = b.sort.Select(mode)
	b.store.SaveSettings(state.Settings{Sort: b.sort})

	b.Update(b.view.CurrentLevels())
	b.Refresh()
	return nil
}

// CycleSortMode moves to the next sort button.
func (b *Browser) CycleSortMode() error {
	return b.SelectSortMode(b.sort.Mode.Next())
}

// ReselectSortMode presses the active sort button again.
func (b *Browser) ReselectSortMode() error {
	return b.SelectSortMode(b.sort.Mode)
}

// SelectLevel remembers id as the selection and highlights its row.
func (b *Browser) SelectLevel(id string) {
	b.selectedID = id
	if i := indexOf(b.sorted, id); i >= 0 {
		b.cursor = i
	}
}

// MoveSelection moves the highlight by delta rows, wrapping at both ends.
func (b *Browser) MoveSelection(delta int) {
	n := len(b.sorted)
	if n == 0 {
		return
	}
	start := b.cursor
	if start < 0 {
		start = 0
		delta = 0
	}
	b.cursor = ((start+delta)%n + n) % n
	b.selectedID = b.sorted[b.cursor].ID
	b.view.ScrollToIndex(b.cursor)
}

// IsFavorite reports whether id is a favorite.
func (b *Browser) IsFavorite(id string) bool {
	return b.favorites.Has(id)
}

// ToggleFavorite flips the favorite flag of the selected level and returns
// whether it is now a favorite. The list is re-sorted in Favorites mode.
func (b *Browser) ToggleFavorite() (bool, error) {
	if b.selectedID == "" {
		return false, ErrNoSelection
	}

	var isFav bool
	b.favorites, isFav = songsort.ToggleFavorite(b.favorites, b.selectedID)
	b.store.SaveFavorites(b.favorites)

	if b.sort.Mode == songsort.Favorites {
		b.Update(b.view.CurrentLevels())
		b.Refresh()
	}
	return isFav, nil
}

// DeleteSelected deletes the selected custom level after confirm agrees.
// It reports whether the level was deleted. The row that takes the deleted
// one's place becomes the selection.
func (b *Browser) DeleteSelected(confirm func(level.Level) bool) (bool, error) {
	i := indexOf(b.sorted, b.selectedID)
	if b.selectedID == "" || i < 0 {
		return false, ErrNoSelection
	}
	lv := b.sorted[i]
	if !lv.IsCustom() {
		return false, fmt.Errorf("%w: %s", ErrNotCustom, lv.ID)
	}
	if b.deleter == nil {
		return false, ErrDeleteUnsupported
	}
	if confirm != nil && !confirm(lv) {
		return false, nil
	}

	if err := b.deleter.Delete(lv.ID); err != nil {
		return false, err
	}

	if b.favorites.Has(lv.ID) {
		b.favorites, _ = songsort.ToggleFavorite(b.favorites, lv.ID)
		b.store.SaveFavorites(b.favorites)
	}

	b.selectedID = ""
	if next := i + 1; next < len(b.sorted) {
		b.selectedID = b.sorted[next].ID
	} else if i > 0 {
		b.selectedID = b.sorted[i-1].ID
	}

	remaining := make([]level.Level, 0, len(b.view.CurrentLevels()))
	for _, l := range b.view.CurrentLevels() {
		if l.ID != lv.ID {
			remaining = append(remaining, l)
		}
	}
	b.Update(remaining)
	b.Refresh()
	return true, nil
}

// Enter tells observers the browser screen is showing.
func (b *Browser) Enter() {
	if b.bus != nil {
		b.bus.Navigate(events.ScreenBrowser)
	}
}

// Leave tells observers the host switched to screen.
func (b *Browser) Leave(screen events.Screen) {
	if b.bus != nil {
		b.bus.Navigate(screen)
	}
}

func indexOf(levels []level.Level, id string) int {
	if id == "" {
		return -1
	}
	for i := range levels {
		if levels[i].ID == id {
			return i
		}
	}
	return -1
}
