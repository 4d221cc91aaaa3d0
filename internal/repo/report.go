package repo

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/addonrepo/addonrepo/internal/index"
)

var printer = message.NewPrinter(language.English)

// Skip records an archive that was not applied to the index.
type Skip struct {
	Path string
	Err  error
}

func (s Skip) String() string {
	return fmt.Sprintf("%s: %v", s.Path, s.Err)
}

// Report summarizes a Run.
type Report struct {
	Processed int
	Added     int
	Updated   int
	Unchanged int
	Skipped   []Skip
	Changes   []index.Change

	IndexPath    string
	ChecksumPath string

	// Created is set when the run started from an empty index.
	Created bool
	// Written is set when the index and checksum were written at least once.
	Written  bool
	Checksum string
}

func (r *Report) record(c index.Change) {
	r.Processed++
	r.Changes = append(r.Changes, c)
	switch c.Action {
	case index.ActionAdded:
		r.Added++
	case index.ActionUpdated:
		r.Updated++
	default:
		r.Unchanged++
	}
}

func (r *Report) skip(path string, err error) {
	r.Skipped = append(r.Skipped, Skip{Path: path, Err: err})
}

// Changed reports whether any archive added or updated an entry.
func (r *Report) Changed() bool { return r.Added+r.Updated > 0 }

// Summary writes the one-line count summary.
func (r *Report) Summary(w io.Writer) {
	printer.Fprintf(w, "%d archives: %d added, %d updated, %d unchanged, %d skipped\n",
		r.Processed+len(r.Skipped), r.Added, r.Updated, r.Unchanged, len(r.Skipped))
}
