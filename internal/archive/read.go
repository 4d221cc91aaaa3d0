package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// ErrNoManifest is returned when an archive has no manifest entry.
var ErrNoManifest = errors.New("manifest not found in archive")

// MaxManifestSize caps how much of a manifest entry is read.
const MaxManifestSize = 1 << 20

// ReadManifest returns the bytes of the manifest entry named manifestName.
// When several entries carry that base name, the shallowest path wins, so
// "plugin.id/addon.xml" is preferred over "plugin.id/resources/addon.xml".
func ReadManifest(archivePath, manifestName string) ([]byte, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("opening zip archive %s: %w", archivePath, err)
	}
	defer r.Close()

	entry := findManifest(r.File, manifestName)
	if entry == nil {
		return nil, fmt.Errorf("%s: %w (%s)", archivePath, ErrNoManifest, manifestName)
	}
	if entry.UncompressedSize64 > MaxManifestSize {
		return nil, fmt.Errorf("%s: manifest %s is %d bytes, limit is %d", archivePath, entry.Name, entry.UncompressedSize64, MaxManifestSize)
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("opening zip entry %s: %w", entry.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, MaxManifestSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading zip entry %s: %w", entry.Name, err)
	}
	if len(data) > MaxManifestSize {
		return nil, fmt.Errorf("%s: manifest %s exceeds %d bytes", archivePath, entry.Name, MaxManifestSize)
	}
	return data, nil
}

func findManifest(files []*zip.File, manifestName string) *zip.File {
	var best *zip.File
	bestDepth := -1
	for _, f := range files {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if strings.HasSuffix(name, "/") || path.Base(name) != manifestName {
			continue
		}
		depth := strings.Count(strings.Trim(name, "/"), "/")
		if best == nil || depth < bestDepth {
			best = f
			bestDepth = depth
		}
	}
	return best
}
