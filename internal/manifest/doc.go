// Package manifest handles parsing and validation of add-on manifests
// (addon.xml). A manifest is kept as an etree element tree so unknown
// elements and attribute order survive a merge; typed views such as Import
// and Extension are derived on demand. Validation runs the manifest through
// an embedded JSON Schema after converting it to a JSON-compatible document.
package manifest
