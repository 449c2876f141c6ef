package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/llehouerou/songbrowser/internal/browser"
	"github.com/llehouerou/songbrowser/internal/errmsg"
	"github.com/llehouerou/songbrowser/internal/search"
	"github.com/llehouerou/songbrowser/internal/songsort"
)

func newListCmd(opts *options) *cobra.Command {
	var (
		sortFlag string
		invert   bool
		selectID string
		filter   string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached levels in the saved sort order",
		Long: "List cached levels. --sort and --invert override the saved sort state " +
			"for this listing only; use 'songbrowser sort' to change it.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}
			return run(opts, func(a *app) error {
				b, view, err := loadBrowser(a)
				if err != nil {
					return err
				}

				state := b.SortState()
				if sortFlag != "" {
					mode, err := songsort.ParseSortMode(sortFlag)
					if err != nil {
						return failed(errmsg.OpSortSelect, err)
					}
					state = songsort.SortState{Mode: mode}
				}
				if invert {
					state = songsort.ToggleInvert(state)
				}
				if state != b.SortState() {
					// One-off ordering, not persisted
					b = browser.New(view, a.state, browser.Options{Sort: state, Favorites: b.Favorites()})
				}

				if filter != "" {
					view.levels = search.Filter(view.levels, filter)
				}
				if selectID != "" {
					b.SelectLevel(selectID)
				}
				b.Update(view.CurrentLevels())
				b.Refresh()

				l := listing{
					Sort:      b.SortState(),
					Levels:    view.displayed,
					Cursor:    view.cursor,
					Favorites: b.Favorites(),
				}
				if output == outputYAML {
					return writeYAML(cmd.OutOrStdout(), l)
				}
				return writeTable(cmd.OutOrStdout(), newStyles(cmd.OutOrStdout(), opts.noColor), l, time.Now())
			})
		},
	}

	cmd.Flags().StringVarP(&sortFlag, "sort", "s", "", "sort mode: favorites, default, author, original, newest, playcount")
	cmd.Flags().BoolVarP(&invert, "invert", "i", false, "reverse the order")
	cmd.Flags().StringVar(&selectID, "select", "", "level ID to highlight")
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only list levels matching this text (song, sub name or author)")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table or yaml")
	return cmd
}

// loadBrowser builds a browser over the cached levels with the saved sort
// state and favorites.
func loadBrowser(a *app) (*browser.Browser, *listView, error) {
	levels, err := a.lib.AllLevels()
	if err != nil {
		return nil, nil, failed(errmsg.OpLibraryLoad, err)
	}
	view := newListView(levels)

	b, err := browser.NewFromStore(view, a.state, a.lib, nil)
	if err != nil {
		return nil, nil, failed(errmsg.OpSettingsLoad, err)
	}
	return b, view, nil
}
