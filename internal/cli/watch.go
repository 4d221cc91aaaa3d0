package cli

import (
	"fmt"
	"time"

	"github.com/addonrepo/addonrepo/internal/archive"
	"github.com/addonrepo/addonrepo/internal/config"
	"github.com/addonrepo/addonrepo/internal/repo"
	"github.com/addonrepo/addonrepo/internal/watch"
	"github.com/spf13/cobra"
)

var (
	watchFlags    runFlags
	watchDebounce time.Duration
)

func init() {
	addRunFlags(watchCmd, &watchFlags)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "Quiet period before re-running (default 500ms)")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch [archive-dir]",
	Short: "Re-run update whenever archives change",
	Long: `Runs update once, then watches the archive directory and runs it again
each time archives are added or replaced. Stop with Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Current()
		if err != nil {
			return err
		}
		opts, err := resolveRunOptions(cmd, &watchFlags, args, s)
		if err != nil {
			return err
		}
		debounce := s.Debounce
		if cmd.Flags().Changed("debounce") {
			debounce = watchDebounce
		}

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		run := func() error {
			report, err := repo.Run(ctx, opts, out)
			if err != nil {
				return fmt.Errorf("updating repository: %w", err)
			}
			printReport(cmd, report, opts.DryRun)
			return nil
		}

		if err := run(); err != nil {
			return err
		}

		exts := opts.Extensions
		if len(exts) == 0 {
			exts = archive.DefaultExtensions
		}
		fmt.Fprintf(out, "Watching %s for changes...\n", opts.ArchiveDir)
		return watch.Watch(ctx, opts.ArchiveDir, debounce, run, out, watch.WithFilter(func(path string) bool {
			return archive.HasExtension(path, exts)
		}))
	},
}
