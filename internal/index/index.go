package index

import (
	"errors"
	"fmt"
	"os"

	"github.com/addonrepo/addonrepo/internal/manifest"
	"github.com/addonrepo/addonrepo/internal/merge"
	"github.com/addonrepo/addonrepo/internal/platform"
	"github.com/beevik/etree"
)

// ErrIndexUnreadable is returned when the index file cannot be read or
// parsed. Callers must abort the run without writing anything.
var ErrIndexUnreadable = errors.New("repository index unreadable")

// DefaultIndent is the number of spaces used when pretty-printing.
const DefaultIndent = 2

const xmlDeclaration = `version="1.0" encoding="UTF-8" standalone="yes"`

// Index is an in-memory repository index.
type Index struct {
	root *etree.Element
}

// Action describes what Upsert did to an entry.
type Action string

const (
	ActionAdded     Action = "added"
	ActionUpdated   Action = "updated"
	ActionUnchanged Action = "unchanged"
)

// Change captures the outcome of one Upsert.
type Change struct {
	ID         string
	Action     Action
	OldVersion string // empty when the entry was added
	NewVersion string
}

// New returns an empty index.
func New() *Index {
	doc := etree.NewDocument()
	return &Index{root: doc.CreateElement(manifest.TagAddons)}
}

// Parse parses index bytes. source names the origin for error messages.
func Parse(data []byte, source string) (*Index, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing index %s: %w: %w", source, ErrIndexUnreadable, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("parsing index %s: %w: no root element", source, ErrIndexUnreadable)
	}
	if root.Tag != manifest.TagAddons {
		return nil, fmt.Errorf("parsing index %s: %w: root element is <%s>, want <%s>", source, ErrIndexUnreadable, root.Tag, manifest.TagAddons)
	}
	return &Index{root: root}, nil
}

// Load reads and parses the index file at path.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading index %s: %w: %w", path, ErrIndexUnreadable, err)
	}
	return Parse(data, path)
}

// LoadOrCreate behaves like Load, except that a missing file yields an empty
// index when create is set. The boolean reports whether the index is new.
func LoadOrCreate(path string, create bool) (*Index, bool, error) {
	if create {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return New(), true, nil
		}
	}
	ix, err := Load(path)
	return ix, false, err
}

// Entries returns the <addon> entries in document order.
func (ix *Index) Entries() []*etree.Element {
	return ix.root.SelectElements(manifest.TagAddon)
}

// Len returns the number of entries.
func (ix *Index) Len() int { return len(ix.Entries()) }

// IDs returns entry ids in document order.
func (ix *Index) IDs() []string {
	var ids []string
	for _, e := range ix.Entries() {
		ids = append(ids, e.SelectAttrValue(manifest.AttrID, ""))
	}
	return ids
}

// Find returns the first entry with the given id, or nil.
func (ix *Index) Find(id string) *etree.Element {
	for _, e := range ix.Entries() {
		if e.SelectAttrValue(manifest.AttrID, "") == id {
			return e
		}
	}
	return nil
}

// Duplicates returns ids that appear on more than one entry. Only the first
// entry for such an id is ever updated.
func (ix *Index) Duplicates() []string {
	seen := make(map[string]int)
	var dups []string
	for _, id := range ix.IDs() {
		seen[id]++
		if seen[id] == 2 {
			dups = append(dups, id)
		}
	}
	return dups
}

// Upsert merges a manifest into the entry with the same id, or appends a
// copy of the manifest when the id is not indexed yet. Repeating an Upsert
// with the same manifest reports ActionUnchanged.
func (ix *Index) Upsert(a *manifest.Addon) (Change, error) {
	change := Change{ID: a.ID(), NewVersion: a.Version()}

	existing := ix.Find(a.ID())
	if existing == nil {
		// Merging the copy with its source collapses duplicate keys.
		entry := a.Root().Copy()
		if err := merge.Entry(entry, a.Root()); err != nil {
			return change, fmt.Errorf("adding %s: %w", a.ID(), err)
		}
		ix.root.AddChild(entry)
		change.Action = ActionAdded
		return change, nil
	}

	change.OldVersion = existing.SelectAttrValue(manifest.AttrVersion, "")
	before := canonical(existing)
	if err := merge.Entry(existing, a.Root()); err != nil {
		return change, fmt.Errorf("updating %s: %w", a.ID(), err)
	}

	change.Action = ActionUpdated
	if canonical(existing) == before {
		change.Action = ActionUnchanged
	}
	return change, nil
}

// Bytes serializes the index with an XML declaration, pretty-printed with
// indent spaces per level.
func (ix *Index) Bytes(indent int) ([]byte, error) {
	out := etree.NewDocument()
	out.CreateProcInst("xml", xmlDeclaration)
	out.SetRoot(ix.root.Copy())
	out.Indent(indent)
	data, err := out.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializing index: %w", err)
	}
	return data, nil
}

// Save writes the index to path atomically and returns the bytes written,
// so a checksum can be computed from exactly what landed on disk.
func (ix *Index) Save(path string, indent int) ([]byte, error) {
	data, err := ix.Bytes(indent)
	if err != nil {
		return nil, err
	}
	if err := platform.WriteFileAtomic(path, data, 0644); err != nil {
		return nil, fmt.Errorf("writing index %s: %w", path, err)
	}
	return data, nil
}

// canonical renders an element with normalized whitespace for comparisons.
func canonical(el *etree.Element) string {
	doc := etree.NewDocument()
	doc.SetRoot(el.Copy())
	doc.Indent(DefaultIndent)
	s, err := doc.WriteToString()
	if err != nil {
		return ""
	}
	return s
}
