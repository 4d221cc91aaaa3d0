package cli

import (
	"fmt"

	"github.com/addonrepo/addonrepo/internal/config"
	"github.com/addonrepo/addonrepo/internal/repo"
	"github.com/spf13/cobra"
)

var updateFlags runFlags

func init() {
	addRunFlags(updateCmd, &updateFlags)
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update [archive-dir]",
	Short: "Merge archive manifests into the repository index",
	Long: `Walks the archive directory, reads the manifest from every archive and
merges it into the repository index, then rewrites the index and its MD5
checksum file. Archives that cannot be read are reported and skipped.

  addonrepo update                       # archives and addons.xml in .
  addonrepo update ./zips --index addons.xml
  addonrepo update --dry-run --strict-names`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Current()
		if err != nil {
			return err
		}
		opts, err := resolveRunOptions(cmd, &updateFlags, args, s)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		report, err := repo.Run(cmd.Context(), opts, out)
		if err != nil {
			return fmt.Errorf("updating repository: %w", err)
		}
		printReport(cmd, report, opts.DryRun)
		return nil
	},
}

func printReport(cmd *cobra.Command, report *repo.Report, dryRun bool) {
	out := cmd.OutOrStdout()
	report.Summary(out)
	switch {
	case dryRun:
		fmt.Fprintf(out, "Dry run: nothing written (checksum would be %s)\n", report.Checksum)
	case report.Written:
		fmt.Fprintf(out, "  ✓ %s\n", report.IndexPath)
		fmt.Fprintf(out, "  ✓ %s (%s)\n", report.ChecksumPath, report.Checksum)
	}
}
