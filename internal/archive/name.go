package archive

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrBadName is returned by ParseName for names that do not follow the
// "<id>-<version>.<ext>" convention.
var ErrBadName = errors.New("archive name does not match <id>-<version>")

// Name is the id and version encoded in an archive file name.
type Name struct {
	ID      string
	Version string
}

// ParseName splits an archive file name such as
// "plugin.video.foo-1.2.3.zip" into id and version. The version starts after
// the last '-' that is followed by a digit, so ids may contain dashes.
func ParseName(filename string) (Name, error) {
	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	if ext == "" {
		return Name{}, fmt.Errorf("%q: %w: no extension", base, ErrBadName)
	}
	stem := strings.TrimSuffix(base, ext)

	for i := len(stem) - 1; i > 0; i-- {
		if stem[i] != '-' {
			continue
		}
		version := stem[i+1:]
		if version == "" || version[0] < '0' || version[0] > '9' {
			continue
		}
		id := stem[:i]
		if strings.TrimSpace(id) == "" {
			break
		}
		return Name{ID: id, Version: version}, nil
	}
	return Name{}, fmt.Errorf("%q: %w", base, ErrBadName)
}

// String formats the name back into its "<id>-<version>" stem.
func (n Name) String() string {
	return n.ID + "-" + n.Version
}
