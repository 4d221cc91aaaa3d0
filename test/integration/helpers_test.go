//go:build integration

package integration_test

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // HOME, holds .addonrepo/config.yaml
	RepoDir    string // archive directory, also holds addons.xml
	ProjectDir string // working directory for project config
}

// setupTestEnv creates isolated temp directories and points HOME and the
// working directory at them. Both are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		RepoDir:    t.TempDir(),
		ProjectDir: t.TempDir(),
	}
	t.Setenv("HOME", env.HomeDir)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(env.ProjectDir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return env
}

// addonManifest renders a manifest with one summary in each given language.
func addonManifest(id, version string, requires []string, summaries map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(&b, "<addon id=%q name=%q version=%q provider-name=\"integration\">\n", id, id, version)
	b.WriteString("  <requires>\n")
	for _, r := range requires {
		fmt.Fprintf(&b, "    <import addon=%q/>\n", r)
	}
	b.WriteString("  </requires>\n")
	b.WriteString("  <extension point=\"xbmc.python.pluginsource\" library=\"default.py\"/>\n")
	b.WriteString("  <extension point=\"xbmc.addon.metadata\">\n")
	for _, lang := range []string{"en", "en_GB", "de_DE"} {
		if text, ok := summaries[lang]; ok {
			fmt.Fprintf(&b, "    <summary lang=%q>%s</summary>\n", lang, text)
		}
	}
	b.WriteString("    <platform>all</platform>\n")
	b.WriteString("  </extension>\n")
	b.WriteString("</addon>\n")
	return b.String()
}

// writeArchive packages manifest as <repo>/<id>/<id>-<version>.zip and
// returns its path.
func writeArchive(t *testing.T, repoDir, id, version, manifest string) string {
	t.Helper()
	path := filepath.Join(repoDir, id, fmt.Sprintf("%s-%s.zip", id, version))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range map[string]string{
		id + "/addon.xml":  manifest,
		id + "/default.py": "import xbmc\n",
	} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("adding %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing %s: %v", path, err)
	}
	return path
}

// writeFile creates parent directories and writes content to path.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// assertFileNotContains fails if the file contains substr.
func assertFileNotContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if strings.Contains(string(data), substr) {
		t.Errorf("file %s unexpectedly contains %q.\nContents:\n%s", path, substr, string(data))
	}
}
