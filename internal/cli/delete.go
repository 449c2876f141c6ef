package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llehouerou/songbrowser/internal/browser"
	"github.com/llehouerou/songbrowser/internal/errmsg"
	"github.com/llehouerou/songbrowser/internal/level"
)

func newDeleteCmd(opts *options) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <level-id>",
		Short: "Delete a custom level from disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if level.IsBuiltinID(id) {
				return failedWith(errmsg.OpLibraryDelete, id, browser.ErrNotCustom)
			}
			return run(opts, func(a *app) error {
				if _, err := a.lib.Level(id); err != nil {
					return failedWith(errmsg.OpLibraryDelete, id, err)
				}
				b, view, err := loadBrowser(a)
				if err != nil {
					return err
				}
				b.Update(view.CurrentLevels())
				b.SelectLevel(id)

				confirm := func(lv level.Level) bool {
					if yes {
						return true
					}
					return askConfirm(cmd.InOrStdin(), cmd.ErrOrStderr(),
						fmt.Sprintf("Delete %q by %s from disk?", sanitize(lv.DisplayName()), sanitize(lv.AuthorName)))
				}

				deleted, err := b.DeleteSelected(confirm)
				if err != nil {
					return failedWith(errmsg.OpLibraryDelete, id, err)
				}
				if !deleted {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
					return nil
				}

				if err := a.stats.Forget(id); err != nil {
					infof(cmd, opts, "%s", errmsg.FormatWith(errmsg.OpStatsRecord, id, err))
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// askConfirm prompts on out and reads a yes/no answer from in. Anything but
// y or yes is a no.
func askConfirm(in io.Reader, out io.Writer, question string) bool {
	_, _ = fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
