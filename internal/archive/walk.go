package archive

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExtensions are the archive extensions considered when none are configured.
var DefaultExtensions = []string{".zip"}

// WalkOptions controls which files Walk reports.
type WalkOptions struct {
	Extensions []string // e.g. ".zip"; matched case-insensitively
	Exclude    []string // doublestar patterns matched against slash paths relative to root
}

// Walk returns the archives under root in lexical traversal order.
// Hidden directories are skipped; unreadable entries are ignored.
func Walk(root string, opts WalkOptions) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading archive directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("archive directory %s is not a directory", root)
	}

	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	patterns := normalizePatterns(opts.Exclude)

	var result []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if rel != "." && matchesAny(patterns, rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !HasExtension(d.Name(), exts) || matchesAny(patterns, rel) {
			return nil
		}
		result = append(result, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return result, nil
}

// HasExtension reports whether name ends in one of exts (case-insensitive).
func HasExtension(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func normalizePatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(filepath.ToSlash(p))
		p = strings.TrimPrefix(p, "./")
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
