package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/addonrepo/addonrepo/internal/branding"
	"github.com/addonrepo/addonrepo/internal/config"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` keeps an ` + branding.IndexFile() + ` repository index in sync with a
directory of packaged add-ons. Each archive's ` + branding.ManifestFile() + ` is merged into the
index and an MD5 checksum file is written next to it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags.
// SIGINT and SIGTERM cancel the command context.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
