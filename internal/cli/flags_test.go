package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/addonrepo/addonrepo/internal/archive"
	"github.com/addonrepo/addonrepo/internal/config"
	"github.com/addonrepo/addonrepo/internal/repo"
	"github.com/spf13/cobra"
)

func newRunCmd(t *testing.T, args ...string) (*cobra.Command, *runFlags) {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	f := &runFlags{}
	addRunFlags(cmd, f)
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("parsing flags %v: %v", args, err)
	}
	return cmd, f
}

func TestResolveRunOptions(t *testing.T) {
	settings := config.Settings{
		Archives:     "/srv/zips",
		Index:        "/srv/addons.xml",
		ManifestName: "addon.xml",
		Extensions:   []string{".zip"},
		Exclude:      []string{"old/**"},
		Sidecar:      true,
		Commit:       "each",
		Indent:       4,
	}

	tests := []struct {
		name  string
		flags []string
		args  []string
		check func(t *testing.T, opts repo.Options)
	}{
		{
			name:  "config values when no flags are set",
			flags: nil,
			check: func(t *testing.T, opts repo.Options) {
				if opts.ArchiveDir != "/srv/zips" || opts.IndexPath != "/srv/addons.xml" {
					t.Errorf("paths = %q, %q", opts.ArchiveDir, opts.IndexPath)
				}
				if !opts.Sidecar || opts.Commit != repo.CommitEach || opts.Indent != 4 {
					t.Errorf("opts = %+v", opts)
				}
			},
		},
		{
			name:  "argument overrides archive dir",
			args:  []string{"./local"},
			check: func(t *testing.T, opts repo.Options) {
				if opts.ArchiveDir != "./local" {
					t.Errorf("ArchiveDir = %q, want ./local", opts.ArchiveDir)
				}
			},
		},
		{
			name:  "explicit flags win",
			flags: []string{"--index", "x.xml", "--sidecar=false", "--commit", "end", "--indent", "1", "--ext", ".zip,.kpkg", "--exclude", "tmp/**"},
			check: func(t *testing.T, opts repo.Options) {
				if opts.IndexPath != "x.xml" || opts.Sidecar || opts.Commit != repo.CommitAtEnd || opts.Indent != 1 {
					t.Errorf("opts = %+v", opts)
				}
				if len(opts.Extensions) != 2 || opts.Extensions[1] != ".kpkg" {
					t.Errorf("Extensions = %v", opts.Extensions)
				}
				if len(opts.Exclude) != 1 || opts.Exclude[0] != "tmp/**" {
					t.Errorf("Exclude = %v", opts.Exclude)
				}
			},
		},
		{
			name:  "run-only flags",
			flags: []string{"--dry-run", "--create", "-q"},
			check: func(t *testing.T, opts repo.Options) {
				if !opts.DryRun || !opts.Create || !opts.Quiet {
					t.Errorf("opts = %+v", opts)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, f := newRunCmd(t, tt.flags...)
			opts, err := resolveRunOptions(cmd, f, tt.args, settings)
			if err != nil {
				t.Fatalf("resolveRunOptions error: %v", err)
			}
			tt.check(t, opts)
		})
	}
}

func TestResolveRunOptions_BadCommit(t *testing.T) {
	cmd, f := newRunCmd(t, "--commit", "never")
	if _, err := resolveRunOptions(cmd, f, nil, config.Settings{}); err == nil {
		t.Fatal("expected error for unknown commit mode, got nil")
	}
}

func TestExpandArchives(t *testing.T) {
	dir := t.TempDir()
	for _, rel := range []string{"a/a-1.0.0.zip", "b/b-1.0.0.zip", "b/notes.txt"} {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	single := filepath.Join(dir, "b", "notes.txt")

	paths, err := expandArchives([]string{dir, single}, archive.WalkOptions{})
	if err != nil {
		t.Fatalf("expandArchives error: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a", "a-1.0.0.zip"),
		filepath.Join(dir, "b", "b-1.0.0.zip"),
		single,
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}

	if _, err := expandArchives([]string{filepath.Join(dir, "missing")}, archive.WalkOptions{}); err == nil {
		t.Error("expected error for missing path, got nil")
	}
}
