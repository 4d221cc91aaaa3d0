package repo

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/addonrepo/addonrepo/internal/archive"
	"github.com/addonrepo/addonrepo/internal/branding"
	"github.com/addonrepo/addonrepo/internal/index"
)

// CommitMode selects when the index and checksum are written.
type CommitMode string

const (
	// CommitAtEnd writes once after every archive was processed.
	CommitAtEnd CommitMode = "end"
	// CommitEach writes after every archive that changed the index.
	CommitEach CommitMode = "each"
)

// ParseCommitMode validates a commit mode string. Empty means CommitAtEnd.
func ParseCommitMode(s string) (CommitMode, error) {
	switch CommitMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", CommitAtEnd:
		return CommitAtEnd, nil
	case CommitEach:
		return CommitEach, nil
	}
	return "", fmt.Errorf("unknown commit mode %q (want %q or %q)", s, CommitAtEnd, CommitEach)
}

// Options configures a Run.
type Options struct {
	ArchiveDir   string
	IndexPath    string // defaults to <ArchiveDir>/addons.xml
	ChecksumPath string // defaults to <IndexPath>.md5
	ManifestName string // defaults to addon.xml
	Extensions   []string
	Exclude      []string

	// Sidecar writes or merges the manifest next to each archive.
	Sidecar bool
	// StrictNames skips archives whose file name is not <id>-<version>.<ext>
	// or whose id disagrees with the manifest.
	StrictNames bool
	// Create starts from an empty index when IndexPath does not exist.
	Create bool
	// DryRun processes everything but writes nothing.
	DryRun bool
	// Quiet suppresses per-archive lines.
	Quiet bool

	Commit CommitMode
	Indent int
}

// withDefaults fills unset fields.
func (o Options) withDefaults() Options {
	if o.ArchiveDir == "" {
		o.ArchiveDir = "."
	}
	if o.IndexPath == "" {
		o.IndexPath = filepath.Join(o.ArchiveDir, branding.IndexFile())
	}
	if o.ChecksumPath == "" {
		o.ChecksumPath = o.IndexPath + ".md5"
	}
	if o.ManifestName == "" {
		o.ManifestName = branding.ManifestFile()
	}
	if len(o.Extensions) == 0 {
		o.Extensions = archive.DefaultExtensions
	}
	if o.Commit == "" {
		o.Commit = CommitAtEnd
	}
	if o.Indent <= 0 {
		o.Indent = index.DefaultIndent
	}
	return o
}
