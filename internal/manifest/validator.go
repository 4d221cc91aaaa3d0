package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/beevik/etree"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/addon.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid    bool
	Issues   []ValidationIssue
	Warnings []string // non-fatal findings such as unknown language tags
}

// ValidationIssue represents a single validation error from the schema.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/id", "/requires/0/addon")
	Message string // Human-readable error message
	Keyword string // Schema keyword location that failed
}

// String formats the issue for console output.
func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("addon.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("addon.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Validate checks a parsed manifest against the embedded schema.
// The error return is for schema compilation or conversion failures.
// Validation issues are returned in the ValidationResult.
func Validate(a *Addon) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	jsonData, err := json.Marshal(toDocument(a.Root()))
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	result := &ValidationResult{Valid: true, Warnings: langWarnings(a)}

	err = schema.Validate(inst)
	if err == nil {
		return result, nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	result.Valid = false
	result.Issues = extractIssues(validationErr)
	return result, nil
}

// toDocument converts an <addon> element into the JSON-compatible shape the
// schema describes. Absent attributes are omitted rather than emitted empty.
func toDocument(root *etree.Element) map[string]interface{} {
	doc := map[string]interface{}{}
	copyAttr(doc, root, AttrID, "id")
	copyAttr(doc, root, AttrVersion, "version")
	copyAttr(doc, root, AttrName, "name")
	copyAttr(doc, root, AttrProvider, "provider")

	if req := root.SelectElement(TagRequires); req != nil {
		imports := []interface{}{}
		for _, el := range req.SelectElements(TagImport) {
			imp := map[string]interface{}{}
			copyAttr(imp, el, AttrAddon, "addon")
			copyAttr(imp, el, AttrVersion, "version")
			copyAttr(imp, el, AttrOptional, "optional")
			imports = append(imports, imp)
		}
		doc["requires"] = imports
	}

	exts := []interface{}{}
	for _, el := range root.SelectElements(TagExtension) {
		ext := map[string]interface{}{}
		copyAttr(ext, el, AttrPoint, "point")
		copyAttr(ext, el, AttrLibrary, "library")
		exts = append(exts, ext)
	}
	if len(exts) > 0 {
		doc["extensions"] = exts
	}

	if meta := MetadataOf(root); meta != nil {
		m := map[string]interface{}{}
		for _, field := range LocalizedFields {
			var entries []interface{}
			for _, el := range meta.SelectElements(field) {
				entries = append(entries, map[string]interface{}{
					"lang": LangOf(el),
					"text": el.Text(),
				})
			}
			if len(entries) > 0 {
				m[field] = entries
			}
		}
		doc["metadata"] = m
	}

	return doc
}

func copyAttr(dst map[string]interface{}, el *etree.Element, attr, key string) {
	if a := el.SelectAttr(attr); a != nil {
		dst[key] = a.Value
	}
}

// langWarnings reports language tags that do not parse as BCP 47 tags.
// Underscore separators ("en_GB") are accepted.
func langWarnings(a *Addon) []string {
	meta := a.Metadata()
	if meta == nil {
		return nil
	}
	var warnings []string
	for _, field := range LocalizedFields {
		for _, el := range meta.SelectElements(field) {
			lang := LangOf(el)
			if lang == "" {
				continue
			}
			if _, err := language.Parse(strings.ReplaceAll(lang, "_", "-")); err != nil {
				warnings = append(warnings, fmt.Sprintf("%s: unknown language tag %q", field, lang))
			}
		}
	}
	return warnings
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectValidationIssues(ve, &issues)

	if len(issues) == 0 {
		return []ValidationIssue{{
			Message: ve.Error(),
		}}
	}
	return deduplicateIssues(issues)
}

// collectValidationIssues recursively walks the error tree to find leaf errors
// with specific property information.
func collectValidationIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			path = ""
		}

		keyword := ""
		if ve.ErrorKind != nil {
			kwPath := ve.ErrorKind.KeywordPath()
			if len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
		}

		msg := ""
		if ve.ErrorKind != nil {
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		// Skip generic container errors that aren't informative.
		if keyword == "allOf" || keyword == "$ref" || keyword == "" {
			return
		}

		*issues = append(*issues, ValidationIssue{
			Path:    path,
			Message: msg,
			Keyword: keyword,
		})
		return
	}

	for _, cause := range ve.Causes {
		collectValidationIssues(cause, issues)
	}
}

// deduplicateIssues removes duplicate issues (same path + keyword + message).
func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var result []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}
