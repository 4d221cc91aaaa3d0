package repo

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/addonrepo/addonrepo/internal/archive"
	"github.com/addonrepo/addonrepo/internal/checksum"
	"github.com/addonrepo/addonrepo/internal/index"
	"github.com/addonrepo/addonrepo/internal/version"
)

// Run performs one pass over opts.ArchiveDir and returns what happened.
// A non-nil error means the run was aborted; per-archive failures are
// recorded in Report.Skipped instead.
func Run(ctx context.Context, opts Options, out io.Writer) (*Report, error) {
	opts = opts.withDefaults()
	mode, err := ParseCommitMode(string(opts.Commit))
	if err != nil {
		return nil, err
	}
	opts.Commit = mode

	ix, created, err := index.LoadOrCreate(opts.IndexPath, opts.Create)
	if err != nil {
		return nil, err
	}

	r := &runner{opts: opts, out: out, ix: ix, report: &Report{
		IndexPath:    opts.IndexPath,
		ChecksumPath: opts.ChecksumPath,
		Created:      created,
	}}
	if created && !opts.Quiet {
		fmt.Fprintf(out, "  ⚠ %s does not exist, starting an empty index\n", opts.IndexPath)
	}
	for _, id := range ix.Duplicates() {
		r.warnf("%s appears more than once in %s; only the first entry is updated", id, opts.IndexPath)
	}

	paths, err := archive.Walk(opts.ArchiveDir, archive.WalkOptions{
		Extensions: opts.Extensions,
		Exclude:    opts.Exclude,
	})
	if err != nil {
		return r.report, err
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return r.report, fmt.Errorf("update interrupted: %w", err)
		}

		change, err := r.process(p)
		if err != nil {
			r.report.skip(p, err)
			fmt.Fprintf(out, "  ✗ %s: %v\n", r.rel(p), err)
			continue
		}
		r.report.record(change)
		if !opts.Quiet {
			fmt.Fprintf(out, "  ✓ %s %s (%s)\n", change.ID, version.Describe(change.OldVersion, change.NewVersion), change.Action)
		}

		if opts.Commit == CommitEach && change.Action != index.ActionUnchanged {
			if err := r.commit(); err != nil {
				return r.report, err
			}
		}
	}

	if opts.Commit == CommitAtEnd || !r.report.Written {
		if err := r.commit(); err != nil {
			return r.report, err
		}
	}
	return r.report, nil
}

type runner struct {
	opts   Options
	out    io.Writer
	ix     *index.Index
	report *Report
}

// process applies one archive to the in-memory index.
func (r *runner) process(path string) (index.Change, error) {
	checked, err := Check(path, r.opts.ManifestName, r.opts.StrictNames)
	if err != nil {
		return index.Change{}, err
	}
	a := checked.Addon
	for _, w := range checked.Warnings {
		r.warnf("%s: %s", a.ID(), w)
	}

	change, err := r.ix.Upsert(a)
	if err != nil {
		return change, err
	}

	if r.opts.Sidecar && !r.opts.DryRun {
		sidecar := filepath.Join(filepath.Dir(path), r.opts.ManifestName)
		if err := writeSidecar(sidecar, checked.Raw, a, r.opts.Indent); err != nil {
			r.warnf("%v", err)
		}
	}
	return change, nil
}

// commit writes the index and then its checksum, computed from the exact
// bytes written. Dry runs only compute the checksum.
func (r *runner) commit() error {
	if r.opts.DryRun {
		data, err := r.ix.Bytes(r.opts.Indent)
		if err != nil {
			return err
		}
		r.report.Checksum = checksum.Sum(data)
		return nil
	}

	data, err := r.ix.Save(r.opts.IndexPath, r.opts.Indent)
	if err != nil {
		return err
	}
	sum, err := checksum.Write(r.opts.ChecksumPath, data)
	if err != nil {
		return err
	}
	r.report.Checksum = sum
	r.report.Written = true
	return nil
}

func (r *runner) warnf(format string, args ...any) {
	if r.opts.Quiet {
		return
	}
	fmt.Fprintf(r.out, "  ⚠ "+format+"\n", args...)
}

func (r *runner) rel(path string) string {
	if rel, err := filepath.Rel(r.opts.ArchiveDir, path); err == nil {
		return rel
	}
	return path
}
