package manifest

// Info is a flat, serializable description of a manifest used for
// reporting (e.g. the inspect command's YAML output).
type Info struct {
	ID          string      `yaml:"id"`
	Version     string      `yaml:"version"`
	Name        string      `yaml:"name,omitempty"`
	Provider    string      `yaml:"provider,omitempty"`
	Source      string      `yaml:"source,omitempty"`
	Requires    []Import    `yaml:"requires,omitempty"`
	Extensions  []Extension `yaml:"extensions,omitempty"`
	Summary     []Localized `yaml:"summary,omitempty"`
	Description []Localized `yaml:"description,omitempty"`
	Disclaimer  []Localized `yaml:"disclaimer,omitempty"`
}

// Describe builds the Info view of a manifest.
func Describe(a *Addon) Info {
	return Info{
		ID:          a.ID(),
		Version:     a.Version(),
		Name:        a.Name(),
		Provider:    a.Provider(),
		Source:      a.Source(),
		Requires:    a.Imports(),
		Extensions:  a.Extensions(),
		Summary:     a.Localized(FieldSummary),
		Description: a.Localized(FieldDescription),
		Disclaimer:  a.Localized(FieldDisclaimer),
	}
}
