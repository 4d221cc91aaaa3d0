package cli

import (
	"fmt"
	"path/filepath"

	"github.com/addonrepo/addonrepo/internal/branding"
	"github.com/addonrepo/addonrepo/internal/checksum"
	"github.com/addonrepo/addonrepo/internal/config"
	"github.com/spf13/cobra"
)

var checksumVerify bool

func init() {
	checksumCmd.Flags().BoolVar(&checksumVerify, "verify", false, "Check the checksum file instead of rewriting it")
	rootCmd.AddCommand(checksumCmd)
}

var checksumCmd = &cobra.Command{
	Use:   "checksum [index]",
	Short: "Rewrite or verify the index checksum file",
	Long: `Recomputes <index>.md5 from the current index file, or with --verify
checks that it is up to date.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Current()
		if err != nil {
			return err
		}
		indexPath := s.Index
		if len(args) > 0 {
			indexPath = args[0]
		}
		if indexPath == "" {
			indexPath = filepath.Join(s.Archives, branding.IndexFile())
		}
		sumPath := s.Checksum
		if sumPath == "" {
			sumPath = indexPath + ".md5"
		}

		out := cmd.OutOrStdout()
		if checksumVerify {
			if err := checksum.Verify(indexPath, sumPath); err != nil {
				return err
			}
			fmt.Fprintf(out, "  ✓ %s matches %s\n", sumPath, indexPath)
			return nil
		}

		sum, err := checksum.WriteFor(indexPath, sumPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  ✓ %s (%s)\n", sumPath, sum)
		return nil
	},
}
