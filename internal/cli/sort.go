package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llehouerou/songbrowser/internal/errmsg"
	"github.com/llehouerou/songbrowser/internal/songsort"
)

func newSortCmd(opts *options) *cobra.Command {
	var next bool

	cmd := &cobra.Command{
		Use:   "sort [MODE]",
		Short: "Press a sort button",
		Long: "Press a sort button and save the result. Pressing the active mode again " +
			"reverses the order. Without MODE the active button is pressed again.\n\n" +
			"Modes: " + modeList(),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, func(a *app) error {
				b, _, err := loadBrowser(a)
				if err != nil {
					return err
				}

				switch {
				case next:
					err = b.CycleSortMode()
				case len(args) == 0:
					err = b.ReselectSortMode()
				default:
					var mode songsort.SortMode
					mode, err = songsort.ParseSortMode(args[0])
					if err == nil {
						err = b.SelectSortMode(mode)
					}
				}
				if err != nil {
					return failed(errmsg.OpSortSelect, err)
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sorted by %s\n", sortCaption(b.SortState()))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&next, "next", false, "move to the next sort button")
	return cmd
}

func modeList() string {
	names := make([]string, 0, len(songsort.Modes()))
	for _, m := range songsort.Modes() {
		names = append(names, m.String())
	}
	return strings.Join(names, ", ")
}
