package repo

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// addonXML renders a minimal manifest with an en summary.
func addonXML(id, ver, summary string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<addon id="%s" name="%s" version="%s" provider-name="tester">
  <requires>
    <import addon="xbmc.python" version="3.0.0"/>
  </requires>
  <extension point="xbmc.python.pluginsource" library="default.py"/>
  <extension point="xbmc.addon.metadata">
    <summary lang="en">%s</summary>
    <platform>all</platform>
  </extension>
</addon>
`, id, id, ver, summary)
}

// writeArchive creates <dir>/<id>/<file> holding <id>/addon.xml.
func writeArchive(t *testing.T, dir, id, file, manifestXML string) string {
	t.Helper()
	path := filepath.Join(dir, id, file)
	writeZip(t, path, map[string]string{
		id + "/addon.xml":  manifestXML,
		id + "/default.py": "print('hi')\n",
	})
	return path
}

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
