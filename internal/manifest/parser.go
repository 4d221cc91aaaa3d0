package manifest

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/beevik/etree"
)

// ErrInvalidManifest is returned when a manifest cannot be parsed or lacks
// the attributes every entry needs.
var ErrInvalidManifest = errors.New("invalid manifest")

// Addon is a parsed addon.xml document. It is read-only by convention: the
// merge and index packages copy its root before inserting it elsewhere.
type Addon struct {
	root   *etree.Element
	source string
}

// Parse parses manifest bytes. source names the origin (archive path, file
// path) for error messages.
func Parse(data []byte, source string) (*Addon, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w: %w", source, ErrInvalidManifest, err)
	}
	return FromElement(doc.Root(), source)
}

// ParseFile reads and parses a standalone manifest file.
func ParseFile(path string) (*Addon, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// FromElement wraps an existing <addon> element, checking the attributes
// required to key it in an index.
func FromElement(root *etree.Element, source string) (*Addon, error) {
	if root == nil {
		return nil, fmt.Errorf("parsing manifest %s: %w: no root element", source, ErrInvalidManifest)
	}
	if root.Tag != TagAddon {
		return nil, fmt.Errorf("parsing manifest %s: %w: root element is <%s>, want <%s>", source, ErrInvalidManifest, root.Tag, TagAddon)
	}
	for _, attr := range []string{AttrID, AttrVersion} {
		if strings.TrimSpace(root.SelectAttrValue(attr, "")) == "" {
			return nil, fmt.Errorf("parsing manifest %s: %w: missing %q attribute", source, ErrInvalidManifest, attr)
		}
	}
	return &Addon{root: root, source: source}, nil
}

// Root returns the underlying <addon> element.
func (a *Addon) Root() *etree.Element { return a.root }

// Source returns where the manifest was read from.
func (a *Addon) Source() string { return a.source }

// ID returns the add-on identifier.
func (a *Addon) ID() string { return a.root.SelectAttrValue(AttrID, "") }

// Version returns the declared version.
func (a *Addon) Version() string { return a.root.SelectAttrValue(AttrVersion, "") }

// Name returns the display name, if any.
func (a *Addon) Name() string { return a.root.SelectAttrValue(AttrName, "") }

// Provider returns the provider-name attribute, if any.
func (a *Addon) Provider() string { return a.root.SelectAttrValue(AttrProvider, "") }

// Requires returns the <requires> element or nil.
func (a *Addon) Requires() *etree.Element { return a.root.SelectElement(TagRequires) }

// Imports returns the declared dependencies in document order.
func (a *Addon) Imports() []Import {
	req := a.Requires()
	if req == nil {
		return nil
	}
	var imports []Import
	for _, el := range req.SelectElements(TagImport) {
		imports = append(imports, ImportOf(el))
	}
	return imports
}

// Extensions returns every <extension>, including the metadata one.
func (a *Addon) Extensions() []Extension {
	var exts []Extension
	for _, el := range a.root.SelectElements(TagExtension) {
		exts = append(exts, ExtensionOf(el))
	}
	return exts
}

// Metadata returns the metadata extension element or nil.
func (a *Addon) Metadata() *etree.Element { return MetadataOf(a.root) }

// Localized returns the language variants of a metadata field.
func (a *Addon) Localized(field string) []Localized {
	meta := a.Metadata()
	if meta == nil {
		return nil
	}
	var out []Localized
	for _, el := range meta.SelectElements(field) {
		out = append(out, Localized{Lang: LangOf(el), Text: strings.TrimSpace(el.Text())})
	}
	return out
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
