// Package version compares add-on version strings for change reports.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Compare compares two version strings using semver.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
// Handles "v" prefix tolerance (strips leading "v" before parsing).
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	bv, err := parse(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return av.Compare(bv), nil
}

// Describe renders a version transition for console output, e.g.
// "1.0.0 → 1.1.0" or "2.0.0 → 1.9.0 (downgrade)".
func Describe(old, next string) string {
	switch {
	case old == "":
		return next
	case old == next:
		return next
	}

	s := old + " → " + next
	cmp, err := Compare(old, next)
	switch {
	case err != nil:
		return s + " (unparsed)"
	case cmp == 1:
		return s + " (downgrade)"
	}
	return s
}

// parse strips a leading "v" and parses the version string.
func parse(v string) (*semver.Version, error) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	return semver.NewVersion(v)
}
