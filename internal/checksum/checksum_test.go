package checksum

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSum(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "d41d8cd98f00b204e9800998ecf8427e"},
		{"abc", "900150983cd24fb0d6963f7d28e17f72"},
	}
	for _, tt := range tests {
		if got := Sum([]byte(tt.input)); got != tt.want {
			t.Errorf("Sum(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestWriteAndVerify(t *testing.T) {
	dir := t.TempDir()
	indexPath := filepath.Join(dir, "addons.xml")
	sumPath := filepath.Join(dir, "addons.xml.md5")

	content := []byte("<addons/>")
	if err := os.WriteFile(indexPath, content, 0644); err != nil {
		t.Fatal(err)
	}

	sum, err := Write(sumPath, content)
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if sum != Sum(content) {
		t.Errorf("Write returned %s, want %s", sum, Sum(content))
	}

	stored, err := os.ReadFile(sumPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(stored) != sum {
		t.Errorf("file holds %q, want %q", stored, sum)
	}

	if err := Verify(indexPath, sumPath); err != nil {
		t.Errorf("Verify error: %v", err)
	}

	if err := os.WriteFile(indexPath, []byte("<addons></addons>"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Verify(indexPath, sumPath); !errors.Is(err, ErrMismatch) {
		t.Errorf("Verify after edit = %v, want ErrMismatch", err)
	}

	if _, err := WriteFor(indexPath, sumPath); err != nil {
		t.Fatalf("WriteFor error: %v", err)
	}
	if err := Verify(indexPath, sumPath); err != nil {
		t.Errorf("Verify after WriteFor error: %v", err)
	}
}

func TestRead_Md5sumFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "addons.xml.md5")
	if err := os.WriteFile(path, []byte("900150983CD24FB0D6963F7D28E17F72  addons.xml\n"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if got != "900150983cd24fb0d6963f7d28e17f72" {
		t.Errorf("Read = %q", got)
	}
}

func TestVerify_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	if err := Verify(filepath.Join(dir, "addons.xml"), filepath.Join(dir, "addons.xml.md5")); err == nil {
		t.Fatal("expected error for missing files, got nil")
	}
}
