package cli

import (
	"fmt"

	"github.com/addonrepo/addonrepo/internal/config"
	"github.com/addonrepo/addonrepo/internal/manifest"
	"github.com/addonrepo/addonrepo/internal/repo"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var inspectRaw bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectRaw, "raw", false, "Print the manifest XML instead of a summary")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <archive|addon.xml>",
	Short: "Show the manifest of an archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Current()
		if err != nil {
			return err
		}
		raw, a, err := repo.ReadManifest(args[0], s.ManifestName)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if inspectRaw {
			_, err := out.Write(raw)
			return err
		}

		data, err := yaml.Marshal(manifest.Describe(a))
		if err != nil {
			return fmt.Errorf("marshaling manifest summary: %w", err)
		}
		fmt.Fprint(out, string(data))
		return nil
	},
}
