package manifest

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, data string) *Addon {
	t.Helper()
	a, err := Parse([]byte(data), "test")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return a
}

func TestValidate_Valid(t *testing.T) {
	result, err := Validate(mustParse(t, fooManifest))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if !result.Valid {
		t.Errorf("expected valid, got invalid with %d issues:", len(result.Issues))
		for _, issue := range result.Issues {
			t.Errorf("  path=%s keyword=%s message=%s", issue.Path, issue.Keyword, issue.Message)
		}
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		path    string
		keyword string
	}{
		{
			name:    "id with spaces",
			data:    `<addon id="plugin video" version="1.0.0"/>`,
			path:    "/id",
			keyword: "pattern",
		},
		{
			name:    "non numeric version",
			data:    `<addon id="plugin.video.foo" version="latest"/>`,
			path:    "/version",
			keyword: "pattern",
		},
		{
			name:    "import without addon",
			data:    `<addon id="plugin.video.foo" version="1.0.0"><requires><import version="1.0.0"/></requires></addon>`,
			path:    "/requires/0",
			keyword: "required",
		},
		{
			name:    "extension without point",
			data:    `<addon id="plugin.video.foo" version="1.0.0"><extension library="x.py"/></addon>`,
			path:    "/extensions/0",
			keyword: "required",
		},
		{
			name:    "bad optional flag",
			data:    `<addon id="plugin.video.foo" version="1.0.0"><requires><import addon="a" optional="yes"/></requires></addon>`,
			path:    "/requires/0/optional",
			keyword: "enum",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate(mustParse(t, tt.data))
			if err != nil {
				t.Fatalf("Validate error: %v", err)
			}
			if result.Valid {
				t.Fatal("expected invalid, got valid")
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Path == tt.path && issue.Keyword == tt.keyword {
					found = true
				}
				if issue.Message == "" {
					t.Errorf("issue at %s has empty message", issue.Path)
				}
			}
			if !found {
				t.Errorf("no issue with path=%s keyword=%s in %+v", tt.path, tt.keyword, result.Issues)
			}
		})
	}
}

func TestValidate_LangWarnings(t *testing.T) {
	data := `<addon id="plugin.video.foo" version="1.0.0">
  <extension point="xbmc.addon.metadata">
    <summary lang="en_GB">ok</summary>
    <summary>no lang</summary>
    <description lang="not a tag">bad</description>
  </extension>
</addon>`
	result, err := Validate(mustParse(t, data))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid, got issues %+v", result.Issues)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly 1", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], "not a tag") {
		t.Errorf("warning %q does not name the bad tag", result.Warnings[0])
	}
}

func TestValidationIssue_String(t *testing.T) {
	issue := ValidationIssue{Path: "/id", Message: "does not match pattern"}
	if got := issue.String(); got != "/id: does not match pattern" {
		t.Errorf("String() = %q", got)
	}
	if got := (ValidationIssue{Message: "bad"}).String(); got != "bad" {
		t.Errorf("String() = %q", got)
	}
}
