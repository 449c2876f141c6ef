// Package cli contains the cobra command tree of the songbrowser binary.
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
)

// options holds the persistent flags of one command tree.
type options struct {
	config  string
	noColor bool
	verbose bool
	quiet   bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "songbrowser",
		Short: "Sort, filter and manage custom rhythm game levels",
		Long: "songbrowser keeps a cache of the custom levels in your song folders and " +
			"lists them with the same sort buttons as the in-game browser.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
				opts.noColor = true
			}
			log.SetPrefix("songbrowser: ")
			log.SetFlags(0)
			if opts.verbose {
				log.SetOutput(cmd.ErrOrStderr())
			} else {
				log.SetOutput(io.Discard)
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.config, "config", "", "override config file path")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log background errors to stderr")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress progress output")

	root.AddCommand(
		newScanCmd(opts),
		newListCmd(opts),
		newSortCmd(opts),
		newFavCmd(opts),
		newDeleteCmd(opts),
		newPlayCmd(opts),
		newDirsCmd(opts),
	)
	return root
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), err)
		return 1
	}
	return 0
}

func infof(cmd *cobra.Command, opts *options, format string, args ...any) {
	if opts.quiet {
		return
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}
