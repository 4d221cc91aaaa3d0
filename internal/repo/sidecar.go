package repo

import (
	"fmt"
	"os"

	"github.com/beevik/etree"

	"github.com/addonrepo/addonrepo/internal/manifest"
	"github.com/addonrepo/addonrepo/internal/merge"
	"github.com/addonrepo/addonrepo/internal/platform"
)

const xmlDeclaration = `version="1.0" encoding="UTF-8" standalone="yes"`

// writeSidecar keeps a copy of the manifest next to its archive. A missing
// file gets the raw manifest bytes; an existing one is merged the same way
// index entries are.
func writeSidecar(path string, raw []byte, incoming *manifest.Addon, indent int) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := platform.WriteFileAtomic(path, raw, 0644); err != nil {
			return fmt.Errorf("writing sidecar %s: %w", path, err)
		}
		return nil
	}

	existing, err := manifest.ParseFile(path)
	if err != nil {
		return fmt.Errorf("reading sidecar: %w", err)
	}
	root := existing.Root()
	if err := merge.Entry(root, incoming.Root()); err != nil {
		return fmt.Errorf("merging sidecar %s: %w", path, err)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", xmlDeclaration)
	doc.SetRoot(root.Copy())
	doc.Indent(indent)
	data, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("serializing sidecar %s: %w", path, err)
	}
	if err := platform.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("writing sidecar %s: %w", path, err)
	}
	return nil
}
