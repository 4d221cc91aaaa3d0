package cli

import (
	"github.com/addonrepo/addonrepo/internal/config"
	"github.com/addonrepo/addonrepo/internal/repo"
	"github.com/spf13/cobra"
)

// runFlags holds the flags shared by update and watch.
type runFlags struct {
	index        string
	checksum     string
	manifestName string
	exts         []string
	exclude      []string
	sidecar      bool
	commit       string
	strictNames  bool
	create       bool
	dryRun       bool
	quiet        bool
	indent       int
}

func addRunFlags(cmd *cobra.Command, f *runFlags) {
	flags := cmd.Flags()
	flags.StringVar(&f.index, "index", "", "Repository index file (default <archive-dir>/addons.xml)")
	flags.StringVar(&f.checksum, "checksum", "", "Checksum file (default <index>.md5)")
	flags.StringVar(&f.manifestName, "manifest-name", "", "Manifest file name inside archives (default addon.xml)")
	flags.StringSliceVar(&f.exts, "ext", nil, "Archive extensions to process (default .zip)")
	flags.StringSliceVar(&f.exclude, "exclude", nil, "Glob patterns of paths to skip, relative to the archive dir")
	flags.BoolVar(&f.sidecar, "sidecar", false, "Write or merge the manifest next to each archive")
	flags.StringVar(&f.commit, "commit", "", "When to write the index: end or each (default end)")
	flags.BoolVar(&f.strictNames, "strict-names", false, "Skip archives not named <id>-<version>.zip")
	flags.BoolVar(&f.create, "create", false, "Start an empty index if the index file does not exist")
	flags.BoolVar(&f.dryRun, "dry-run", false, "Process archives but write nothing")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "Only print failures and the summary")
	flags.IntVar(&f.indent, "indent", 0, "Spaces per indentation level in the index (default 2)")
}

// resolveRunOptions layers flags that were set explicitly over config values.
func resolveRunOptions(cmd *cobra.Command, f *runFlags, args []string, s config.Settings) (repo.Options, error) {
	opts := repo.Options{
		ArchiveDir:   s.Archives,
		IndexPath:    s.Index,
		ChecksumPath: s.Checksum,
		ManifestName: s.ManifestName,
		Extensions:   s.Extensions,
		Exclude:      s.Exclude,
		Sidecar:      s.Sidecar,
		StrictNames:  s.StrictNames,
		Indent:       s.Indent,
		Create:       f.create,
		DryRun:       f.dryRun,
		Quiet:        f.quiet,
	}
	commit := s.Commit

	if len(args) > 0 {
		opts.ArchiveDir = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("index") {
		opts.IndexPath = f.index
	}
	if flags.Changed("checksum") {
		opts.ChecksumPath = f.checksum
	}
	if flags.Changed("manifest-name") {
		opts.ManifestName = f.manifestName
	}
	if flags.Changed("ext") {
		opts.Extensions = f.exts
	}
	if flags.Changed("exclude") {
		opts.Exclude = f.exclude
	}
	if flags.Changed("sidecar") {
		opts.Sidecar = f.sidecar
	}
	if flags.Changed("strict-names") {
		opts.StrictNames = f.strictNames
	}
	if flags.Changed("indent") {
		opts.Indent = f.indent
	}
	if flags.Changed("commit") {
		commit = f.commit
	}

	mode, err := repo.ParseCommitMode(commit)
	if err != nil {
		return repo.Options{}, err
	}
	opts.Commit = mode
	return opts, nil
}
