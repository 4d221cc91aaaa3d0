package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/addonrepo/addonrepo/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyIndex        = "index"
	KeyChecksum     = "checksum"
	KeyArchives     = "archives"
	KeyManifestName = "manifest_name"
	KeyExtensions   = "extensions"
	KeyExclude      = "exclude"
	KeySidecar      = "sidecar"
	KeyCommit       = "commit"
	KeyStrictNames  = "strict_names"
	KeyIndent       = "indent"
	KeyDebounce     = "debounce"
)

// defaults for every known key.
var defaults = map[string]any{
	KeyIndex:        "",
	KeyChecksum:     "",
	KeyArchives:     ".",
	KeyManifestName: branding.ManifestFile(),
	KeyExtensions:   []string{".zip"},
	KeyExclude:      []string{},
	KeySidecar:      false,
	KeyCommit:       "end",
	KeyStrictNames:  false,
	KeyIndent:       2,
	KeyDebounce:     "500ms",
}

// Keys returns the known setting keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsKey reports whether key is a known setting.
func IsKey(key string) bool {
	_, ok := defaults[key]
	return ok
}

// Settings is the resolved configuration.
type Settings struct {
	Index        string        `yaml:"index"`
	Checksum     string        `yaml:"checksum"`
	Archives     string        `yaml:"archives"`
	ManifestName string        `yaml:"manifest_name"`
	Extensions   []string      `yaml:"extensions"`
	Exclude      []string      `yaml:"exclude"`
	Sidecar      bool          `yaml:"sidecar"`
	Commit       string        `yaml:"commit"`
	StrictNames  bool          `yaml:"strict_names"`
	Indent       int           `yaml:"indent"`
	Debounce     time.Duration `yaml:"debounce"`
}

// Dir returns the path to the config directory (~/.addonrepo/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the global config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// ProjectFile returns the per-directory config file name (addonrepo.yaml).
func ProjectFile() string {
	return branding.CLIName() + "." + fileType
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper from defaults, the global config file, the project
// config file and the environment. Missing files are not an error; malformed
// ones are.
func Load() error {
	viper.Reset()
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	for _, path := range []string{FilePath(), ProjectFile()} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		viper.SetConfigFile(path)
		if err := viper.MergeInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", path, err)
		}
	}
	return nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	if isList(key) {
		return strings.Join(splitList(viper.GetStringSlice(key)), ",")
	}
	return viper.GetString(key)
}

// Current returns the resolved settings.
func Current() (Settings, error) {
	debounce, err := time.ParseDuration(viper.GetString(KeyDebounce))
	if err != nil {
		return Settings{}, fmt.Errorf("parsing %s: %w", KeyDebounce, err)
	}
	return Settings{
		Index:        viper.GetString(KeyIndex),
		Checksum:     viper.GetString(KeyChecksum),
		Archives:     viper.GetString(KeyArchives),
		ManifestName: viper.GetString(KeyManifestName),
		Extensions:   splitList(viper.GetStringSlice(KeyExtensions)),
		Exclude:      splitList(viper.GetStringSlice(KeyExclude)),
		Sidecar:      viper.GetBool(KeySidecar),
		Commit:       viper.GetString(KeyCommit),
		StrictNames:  viper.GetBool(KeyStrictNames),
		Indent:       viper.GetInt(KeyIndent),
		Debounce:     debounce,
	}, nil
}

// Set writes a config key-value pair to the global config file. List keys
// take a comma-separated value.
func Set(key, value string) error {
	if !IsKey(key) {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	var stored any = value
	if isList(key) {
		stored = splitList([]string{value})
	}

	// Write through a separate instance so project and env values are not
	// copied into the global file.
	configFile := FilePath()
	file := viper.New()
	file.SetConfigType(fileType)
	if _, err := os.Stat(configFile); err == nil {
		file.SetConfigFile(configFile)
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}
	file.Set(key, stored)
	if err := file.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	viper.Set(key, stored)
	return nil
}

func isList(key string) bool {
	return key == KeyExtensions || key == KeyExclude
}

// splitList flattens comma-separated items and drops empties.
func splitList(items []string) []string {
	out := []string{}
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
