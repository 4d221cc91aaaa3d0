package cli

import (
	"fmt"
	"os"

	"github.com/addonrepo/addonrepo/internal/archive"
	"github.com/addonrepo/addonrepo/internal/config"
	"github.com/addonrepo/addonrepo/internal/repo"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	validateStrictNames  bool
	validateManifestName string
)

var printer = message.NewPrinter(language.English)

func init() {
	validateCmd.Flags().BoolVar(&validateStrictNames, "strict-names", false, "Also require archives to be named <id>-<version>.zip")
	validateCmd.Flags().StringVar(&validateManifestName, "manifest-name", "", "Manifest file name inside archives (default addon.xml)")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <archive|dir|addon.xml>...",
	Short: "Check archive manifests without touching the index",
	Long: `Reads and validates the manifest of each archive. Directories are walked
for archives the same way update does. Exits non-zero when any manifest
fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Current()
		if err != nil {
			return err
		}
		manifestName := s.ManifestName
		if cmd.Flags().Changed("manifest-name") {
			manifestName = validateManifestName
		}
		strict := s.StrictNames
		if cmd.Flags().Changed("strict-names") {
			strict = validateStrictNames
		}

		paths, err := expandArchives(args, archive.WalkOptions{Extensions: s.Extensions, Exclude: s.Exclude})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		failed := 0
		for _, p := range paths {
			checked, err := repo.Check(p, manifestName, strict)
			if err != nil {
				failed++
				fmt.Fprintf(out, "  ✗ %s: %v\n", p, err)
				continue
			}
			fmt.Fprintf(out, "  ✓ %s %s\n", checked.Addon.ID(), checked.Addon.Version())
			for _, w := range checked.Warnings {
				fmt.Fprintf(out, "  ⚠ %s: %s\n", checked.Addon.ID(), w)
			}
		}

		printer.Fprintf(out, "%d manifests checked, %d failed\n", len(paths), failed)
		if failed > 0 {
			return fmt.Errorf("%d of %d manifests failed validation", failed, len(paths))
		}
		return nil
	},
}

// expandArchives replaces directory arguments with the archives found in them.
func expandArchives(args []string, opts archive.WalkOptions) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		found, err := archive.Walk(arg, opts)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	return paths, nil
}
