package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/addonrepo/addonrepo/internal/archive"
	"github.com/addonrepo/addonrepo/internal/manifest"
)

// Checked is a manifest that parsed and passed schema validation.
type Checked struct {
	Addon    *manifest.Addon
	Raw      []byte
	Warnings []string
}

// ReadManifest returns the raw and parsed manifest of an archive. A path
// ending in .xml is read as a bare manifest file.
func ReadManifest(path, manifestName string) ([]byte, *manifest.Addon, error) {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", path, err)
		}
	} else {
		data, err = archive.ReadManifest(path, manifestName)
		if err != nil {
			return nil, nil, err
		}
	}

	a, err := manifest.Parse(data, path)
	if err != nil {
		return nil, nil, err
	}
	return data, a, nil
}

// Check reads and validates the manifest at path. With strictNames the
// archive file name must be <id>-<version>.<ext> and agree with the
// manifest id.
func Check(path, manifestName string, strictNames bool) (*Checked, error) {
	var name archive.Name
	if strictNames {
		var err error
		if name, err = archive.ParseName(filepath.Base(path)); err != nil {
			return nil, err
		}
	}

	raw, a, err := ReadManifest(path, manifestName)
	if err != nil {
		return nil, err
	}

	if strictNames && name.ID != a.ID() {
		return nil, fmt.Errorf("%w: file name says %s, manifest says %s", archive.ErrBadName, name.ID, a.ID())
	}

	result, err := manifest.Validate(a)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		issues := make([]string, 0, len(result.Issues))
		for _, issue := range result.Issues {
			issues = append(issues, issue.String())
		}
		return nil, fmt.Errorf("%w: %s", manifest.ErrInvalidManifest, strings.Join(issues, "; "))
	}
	return &Checked{Addon: a, Raw: raw, Warnings: result.Warnings}, nil
}
