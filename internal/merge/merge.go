package merge

import (
	"errors"
	"fmt"

	"github.com/addonrepo/addonrepo/internal/manifest"
	"github.com/beevik/etree"
)

// ErrIDMismatch is returned by Entry when the two elements describe
// different add-ons.
var ErrIDMismatch = errors.New("add-on id mismatch")

// Entry updates an index entry from an incoming manifest root. Attributes
// are overwritten wholesale, then requires, metadata and the remaining
// extensions are synchronized in that order. The entry's id never changes.
func Entry(existing, incoming *etree.Element) error {
	exID := existing.SelectAttrValue(manifest.AttrID, "")
	inID := incoming.SelectAttrValue(manifest.AttrID, "")
	if exID != inID {
		return fmt.Errorf("merging %q into %q: %w", inID, exID, ErrIDMismatch)
	}

	replaceAttrs(existing, incoming)
	Requires(existing, incoming)

	if inMeta := manifest.MetadataOf(incoming); inMeta != nil {
		if exMeta := manifest.MetadataOf(existing); exMeta != nil {
			Metadata(exMeta, inMeta)
		} else {
			existing.AddChild(inMeta.Copy())
		}
	}

	Extensions(existing, incoming)
	return nil
}

// replaceAttrs makes dst carry exactly the attributes of src, in src order.
func replaceAttrs(dst, src *etree.Element) {
	dst.Attr = nil
	for _, a := range src.Attr {
		dst.CreateAttr(a.FullKey(), a.Value)
	}
}

// Requires synchronizes the <requires> list of existing with incoming.
// Dependencies missing from incoming are dropped, new ones are appended and
// shared ones take the incoming attributes in place. An entry without a
// <requires> list gets an empty one as its first child, filled the same
// way, so duplicate ids in incoming collapse to one.
func Requires(existing, incoming *etree.Element) {
	inReq := incoming.SelectElement(manifest.TagRequires)
	exReq := existing.SelectElement(manifest.TagRequires)

	if inReq == nil {
		if exReq != nil {
			existing.RemoveChild(exReq)
		}
		return
	}
	if exReq == nil {
		exReq = shallowCopy(inReq)
		existing.InsertChildAt(0, exReq)
	}

	incomingImports := inReq.SelectElements(manifest.TagImport)
	wanted := make(map[string]bool, len(incomingImports))
	for _, imp := range incomingImports {
		wanted[importKey(imp)] = true
	}

	view := newKeyedChildren(exReq, exReq.SelectElements(manifest.TagImport), importKey)
	view.retain(func(id string) bool { return wanted[id] })
	for _, imp := range incomingImports {
		view.upsert(imp.Copy())
	}
}

// shallowCopy returns el's tag and attributes without children.
func shallowCopy(el *etree.Element) *etree.Element {
	out := etree.NewElement(el.FullTag())
	for _, a := range el.Attr {
		out.CreateAttr(a.FullKey(), a.Value)
	}
	return out
}

func importKey(el *etree.Element) string {
	return el.SelectAttrValue(manifest.AttrAddon, "")
}

// Metadata merges the incoming metadata extension into the existing one.
//
// Localized fields are merged per language: an incoming text replaces the
// existing text for the same language or is appended, except that "en" never
// lands on a field that already had an "en_GB" variant before the merge.
// Every other incoming element replaces the existing elements with its tag,
// taking the position of the first one.
func Metadata(existing, incoming *etree.Element) {
	for _, field := range manifest.LocalizedFields {
		mergeLocalized(existing, incoming, field)
	}

	for _, el := range incoming.ChildElements() {
		if manifest.IsLocalizedField(el.Tag) || el.Tag == manifest.TagImport {
			continue
		}
		replaceByTag(existing, el)
	}
}

func mergeLocalized(existing, incoming *etree.Element, field string) {
	view := newKeyedChildren(existing, existing.SelectElements(field), manifest.LangOf)
	_, hadBritish := view.get(manifest.LangBritishEnglish)

	for _, in := range incoming.SelectElements(field) {
		lang := manifest.LangOf(in)
		if lang == manifest.LangEnglish && hadBritish {
			continue
		}
		if cur, ok := view.get(lang); ok {
			cur.SetText(in.Text())
			continue
		}
		view.upsert(in.Copy())
	}
}

// replaceByTag puts a copy of el where the first child of parent with the
// same tag sits and drops any later ones. el is appended when no child has
// its tag.
func replaceByTag(parent, el *etree.Element) {
	tag := el.FullTag()
	var first *etree.Element
	for _, old := range parent.ChildElements() {
		if old.FullTag() != tag {
			continue
		}
		if first == nil {
			first = old
			continue
		}
		parent.RemoveChild(old)
	}
	if first == nil {
		parent.AddChild(el.Copy())
		return
	}
	idx := first.Index()
	parent.RemoveChildAt(idx)
	parent.InsertChildAt(idx, el.Copy())
}

// Extensions synchronizes the non-metadata <extension> elements keyed by
// (point, library). Extensions absent from incoming are removed, shared
// keys are replaced in place and new keys are appended. Metadata
// extensions are left to Metadata.
func Extensions(existing, incoming *etree.Element) {
	incomingExts := nonMetadata(incoming.SelectElements(manifest.TagExtension))
	wanted := make(map[manifest.ExtensionKey]bool, len(incomingExts))
	for _, ext := range incomingExts {
		wanted[extensionKey(ext)] = true
	}

	view := newKeyedChildren(existing, nonMetadata(existing.SelectElements(manifest.TagExtension)), extensionKey)
	view.retain(func(k manifest.ExtensionKey) bool { return wanted[k] })
	for _, ext := range incomingExts {
		view.upsert(ext.Copy())
	}
}

func extensionKey(el *etree.Element) manifest.ExtensionKey {
	return manifest.ExtensionOf(el).Key()
}

func nonMetadata(exts []*etree.Element) []*etree.Element {
	var out []*etree.Element
	for _, ext := range exts {
		if !manifest.IsMetadataPoint(ext.SelectAttrValue(manifest.AttrPoint, "")) {
			out = append(out, ext)
		}
	}
	return out
}
