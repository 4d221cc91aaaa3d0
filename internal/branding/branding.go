// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package before building; Go's
// //go:embed bakes it into the binary.
package branding

import (
	_ "embed"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	HomeDir      string `yaml:"home_dir"`
	EnvPrefix    string `yaml:"env_prefix"`
	IndexFile    string `yaml:"index_file"`
	ManifestFile string `yaml:"manifest_file"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:      "addonrepo",
			DisplayName:  "AddonRepo",
			Description:  "Maintains addons.xml repository indexes from packaged add-on archives",
			HomeDir:      ".addonrepo",
			EnvPrefix:    "ADDONREPO",
			IndexFile:    "addons.xml",
			ManifestFile: "addon.xml",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "addonrepo").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "AddonRepo").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".addonrepo").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "ADDONREPO").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// IndexFile returns the default repository index file name (e.g., "addons.xml").
func IndexFile() string { load(); return defaults.IndexFile }

// ManifestFile returns the manifest file name looked up inside archives.
func ManifestFile() string { load(); return defaults.ManifestFile }
