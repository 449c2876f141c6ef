package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/songbrowser/internal/errmsg"
)

func newDirsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dirs",
		Short: "Manage the song dirs that are scanned for levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(opts, func(a *app) error {
				dirs, err := a.lib.SongDirs()
				if err != nil {
					return failed(errmsg.OpLibraryLoad, err)
				}
				st := newStyles(cmd.OutOrStdout(), opts.noColor)
				for _, dir := range dirs {
					n, err := a.lib.LevelCountByDir(dir)
					if err != nil {
						return failed(errmsg.OpLibraryLoad, err)
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", dir, st.Muted.Render(humanize.Comma(int64(n))+" levels"))
				}
				return nil
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <path>",
		Short: "Add a song dir",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", path)
			}
			return run(opts, func(a *app) error {
				if err := a.lib.AddSongDir(path); err != nil {
					return failedWith(errmsg.OpLibraryScan, path, err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", path)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <path>",
		Short: "Remove a song dir and forget its levels (files are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			return run(opts, func(a *app) error {
				if err := a.lib.RemoveSongDir(path); err != nil {
					return failedWith(errmsg.OpLibraryScan, path, err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", path)
				return nil
			})
		},
	})
	return cmd
}
