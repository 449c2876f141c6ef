package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/llehouerou/songbrowser/internal/errmsg"
	"github.com/llehouerou/songbrowser/internal/level"
)

func newFavCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "fav <level-id>",
		Short: "Toggle a level in the favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return run(opts, func(a *app) error {
				name := id
				if !level.IsBuiltinID(id) {
					lv, err := a.lib.Level(id)
					if err != nil {
						return failedWith(errmsg.OpFavoriteToggle, id, err)
					}
					name = lv.DisplayName()
				}

				b, view, err := loadBrowser(a)
				if err != nil {
					return err
				}
				b.Update(view.CurrentLevels())
				b.SelectLevel(id)

				isFav, err := b.ToggleFavorite()
				if err != nil {
					return failedWith(errmsg.OpFavoriteToggle, id, err)
				}

				st := newStyles(cmd.OutOrStdout(), opts.noColor)
				if isFav {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s added to favorites\n", st.Favorite.Render(favoriteMark), sanitize(name))
				} else {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s removed from favorites\n", sanitize(name))
				}
				return nil
			})
		},
	}
}
