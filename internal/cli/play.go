package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/songbrowser/internal/errmsg"
	"github.com/llehouerou/songbrowser/internal/level"
)

func newPlayCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "play <level-id>",
		Short: "Record a play of a level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return run(opts, func(a *app) error {
				if !level.IsBuiltinID(id) {
					if _, err := a.lib.Level(id); err != nil {
						return failedWith(errmsg.OpStatsRecord, id, err)
					}
				}

				plays, err := a.stats.Increment(id, time.Now())
				if err != nil {
					return failedWith(errmsg.OpStatsRecord, id, err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s played %s\n", id, playedTimes(plays))
				return nil
			})
		},
	}
}

func playedTimes(n int) string {
	if n == 1 {
		return "once"
	}
	return humanize.Comma(int64(n)) + " times"
}
