// Package watch re-runs a function whenever files under a directory tree
// change. Bursts of events are collapsed into one call per quiet period and
// calls never overlap.
package watch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when none is given.
const DefaultDebounce = 500 * time.Millisecond

// Option configures Watch.
type Option func(*settings)

type settings struct {
	filter func(path string) bool
}

// WithFilter limits the files whose changes trigger a run. Directory
// creation is always tracked so new subdirectories get watched.
func WithFilter(filter func(path string) bool) Option {
	return func(s *settings) { s.filter = filter }
}

// Watch blocks until ctx is done, calling fn after changes settle for
// debounce. Errors from fn are printed and do not stop the watch.
func Watch(ctx context.Context, root string, debounce time.Duration, fn func() error, out io.Writer, opts ...Option) error {
	s := settings{filter: func(string) bool { return true }}
	for _, opt := range opts {
		opt(&s)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	if err := addTree(w, root); err != nil {
		return err
	}

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addTree(w, ev.Name); err != nil {
						fmt.Fprintf(out, "  ⚠ %v\n", err)
					}
					fire = time.After(debounce)
					continue
				}
			}
			if ev.Op == fsnotify.Chmod || !s.filter(ev.Name) {
				continue
			}
			fire = time.After(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(out, "  ⚠ watch error: %v\n", err)

		case <-fire:
			fire = nil
			if err := fn(); err != nil {
				fmt.Fprintf(out, "  ✗ %v\n", err)
			}
		}
	}
}

// addTree watches dir and every non-hidden directory below it.
func addTree(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("watching %s: %w", dir, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}
