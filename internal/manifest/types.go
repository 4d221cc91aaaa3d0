package manifest

import "github.com/beevik/etree"

// Element and attribute names used by addon.xml and addons.xml.
const (
	TagAddon     = "addon"
	TagAddons    = "addons"
	TagRequires  = "requires"
	TagImport    = "import"
	TagExtension = "extension"

	AttrID       = "id"
	AttrVersion  = "version"
	AttrName     = "name"
	AttrProvider = "provider-name"
	AttrAddon    = "addon"
	AttrOptional = "optional"
	AttrPoint    = "point"
	AttrLibrary  = "library"
	AttrLang     = "lang"
)

// Localized field names inside the metadata extension.
const (
	FieldSummary     = "summary"
	FieldDescription = "description"
	FieldDisclaimer  = "disclaimer"
)

// LocalizedFields lists the metadata fields merged per language tag.
var LocalizedFields = []string{
	FieldSummary,
	FieldDescription,
	FieldDisclaimer,
}

// Language tags with special precedence during a merge.
const (
	LangEnglish        = "en"
	LangBritishEnglish = "en_GB"
)

// MetadataPoints are the extension points that carry the metadata block.
var MetadataPoints = []string{
	"xbmc.addon.metadata",
	"kodi.addon.metadata",
}

// Import represents one dependency declared under <requires>.
type Import struct {
	Addon    string `yaml:"addon"`
	Version  string `yaml:"version,omitempty"`
	Optional bool   `yaml:"optional,omitempty"`
}

// Extension represents an <extension> element keyed by point and library.
type Extension struct {
	Point   string `yaml:"point"`
	Library string `yaml:"library,omitempty"`
}

// Key identifies an extension for deduplication during a merge.
func (e Extension) Key() ExtensionKey {
	return ExtensionKey{Point: e.Point, Library: e.Library}
}

// ExtensionKey is the (point, library) pair that identifies an extension.
type ExtensionKey struct {
	Point   string
	Library string
}

// Localized is one language variant of a summary, description or disclaimer.
type Localized struct {
	Lang string `yaml:"lang"`
	Text string `yaml:"text"`
}

// IsMetadataPoint reports whether point names the metadata extension.
func IsMetadataPoint(point string) bool {
	for _, p := range MetadataPoints {
		if p == point {
			return true
		}
	}
	return false
}

// IsLocalizedField reports whether tag is one of the per-language fields.
func IsLocalizedField(tag string) bool {
	for _, f := range LocalizedFields {
		if f == tag {
			return true
		}
	}
	return false
}

// ExtensionOf returns the typed view of an <extension> element.
func ExtensionOf(el *etree.Element) Extension {
	return Extension{
		Point:   el.SelectAttrValue(AttrPoint, ""),
		Library: el.SelectAttrValue(AttrLibrary, ""),
	}
}

// ImportOf returns the typed view of an <import> element.
func ImportOf(el *etree.Element) Import {
	return Import{
		Addon:    el.SelectAttrValue(AttrAddon, ""),
		Version:  el.SelectAttrValue(AttrVersion, ""),
		Optional: el.SelectAttrValue(AttrOptional, "") == "true",
	}
}

// LangOf returns the language tag of a localized element. A missing lang
// attribute yields the empty tag.
func LangOf(el *etree.Element) string {
	return el.SelectAttrValue(AttrLang, "")
}

// MetadataOf returns the first metadata extension under an <addon> element,
// or nil if there is none.
func MetadataOf(root *etree.Element) *etree.Element {
	for _, ext := range root.SelectElements(TagExtension) {
		if IsMetadataPoint(ext.SelectAttrValue(AttrPoint, "")) {
			return ext
		}
	}
	return nil
}
