package cli

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/llehouerou/songbrowser/internal/errmsg"
	"github.com/llehouerou/songbrowser/internal/events"
	"github.com/llehouerou/songbrowser/internal/library"
	"github.com/llehouerou/songbrowser/internal/notify"
	"github.com/llehouerou/songbrowser/internal/status"
)

var errNoSongDirs = errors.New("no song dirs configured (set song_dirs or run 'songbrowser dirs add')")

func newScanCmd(opts *options) *cobra.Command {
	var full, desktop bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Rescan the song dirs and update the level cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(opts, func(a *app) error {
				stats, err := scanLibrary(cmd, opts, a, full, desktop)
				if err != nil {
					return err
				}

				st := newStyles(cmd.OutOrStdout(), opts.noColor)
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), st.Success.Render(status.FinishedMessage(stats.Total)))
				printScanDetails(cmd, opts, st, stats)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "reparse every level, ignoring modification times")
	cmd.Flags().BoolVar(&desktop, "notify", false, "also show progress as a desktop notification")
	return cmd
}

// scanLibrary refreshes the cache while the status overlay reports progress
// on stderr.
func scanLibrary(cmd *cobra.Command, opts *options, a *app, full, desktop bool) (*library.ScanStats, error) {
	dirs, err := a.lib.SongDirs()
	if err != nil {
		return nil, failed(errmsg.OpLibraryScan, err)
	}
	if len(dirs) == 0 {
		return nil, failed(errmsg.OpLibraryScan, errNoSongDirs)
	}

	bus := events.NewBus()
	defer bus.Close()

	overlay := status.New(a.cfg.DismissAfter())
	var notifier *notify.Notifier
	if desktop {
		notifier = notify.New(a.cfg.DismissAfter())
		defer func() {
			if err := notifier.Close(); err != nil {
				log.Printf("closing desktop notification: %v", err)
			}
		}()
	}
	var last string
	overlay.OnChange(func(s status.State) {
		if notifier != nil {
			if err := notifier.Update(s); err != nil {
				log.Printf("desktop notification failed: %v", err)
			}
		}
		if !s.Visible {
			return
		}
		line := s.Message
		if s.Progress && s.Total > 0 {
			line = s.Message + " " + status.ProgressText(s.Current, s.Total)
		}
		if line != last {
			last = line
			infof(cmd, opts, "%s", line)
		}
	})
	release := overlay.Attach(bus)
	defer release()

	bus.PublishLoadStarted()

	progress := make(chan library.ScanProgress)
	errCh := make(chan error, 1)
	go func() {
		if full {
			errCh <- a.lib.FullRefresh(cmd.Context(), dirs, progress)
		} else {
			errCh <- a.lib.Refresh(cmd.Context(), dirs, progress)
		}
	}()

	var stats *library.ScanStats
	for p := range progress {
		switch p.Phase {
		case library.PhaseProcessing:
			bus.PublishLoadProgress(p.Current, p.Total)
		case library.PhaseDone:
			stats = p.Stats
		}
	}
	if err := <-errCh; err != nil {
		return nil, failed(errmsg.OpLibraryScan, err)
	}

	bus.PublishLoadFinished(stats.Total)
	return stats, nil
}

func printScanDetails(cmd *cobra.Command, opts *options, st *styles, stats *library.ScanStats) {
	if opts.quiet {
		return
	}
	w := cmd.OutOrStdout()
	for _, f := range stats.Added {
		_, _ = fmt.Fprintln(w, st.Success.Render("+ "+f))
	}
	for _, f := range stats.Updated {
		_, _ = fmt.Fprintln(w, st.Muted.Render("~ "+f))
	}
	for _, f := range stats.Removed {
		_, _ = fmt.Fprintln(w, st.Error.Render("- "+f))
	}
	for _, f := range stats.Failed {
		_, _ = fmt.Fprintln(w, st.Error.Render("! "+f+" (unreadable info file)"))
	}
}
