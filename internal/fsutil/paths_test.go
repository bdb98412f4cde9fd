package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCanonical(t *testing.T) {
	tmpDir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("EvalSymlinks failed: %v", err)
	}
	data := filepath.Join(tmpDir, "data")
	if err := os.MkdirAll(data, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	link := filepath.Join(tmpDir, "link")
	if err := os.Symlink(data, link); err != nil {
		t.Fatalf("Symlink failed: %v", err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"existing dir", data, data},
		{"dot segments", filepath.Join(data, "..", "data"), data},
		{"symlink", link, data},
		{"missing file under symlink", filepath.Join(link, "new", "V06643A.json"), filepath.Join(data, "new", "V06643A.json")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Canonical(tt.path)
			if err != nil {
				t.Fatalf("Canonical(%q) failed: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("Canonical(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestSameDir(t *testing.T) {
	tmpDir := t.TempDir()
	meta := filepath.Join(tmpDir, "meta")
	if err := os.MkdirAll(meta, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	alias := filepath.Join(tmpDir, "alias")
	if err := os.Symlink(meta, alias); err != nil {
		t.Fatalf("Symlink failed: %v", err)
	}

	same, err := SameDir(meta, alias)
	if err != nil || !same {
		t.Errorf("SameDir(meta, alias) = %v, %v; want true", same, err)
	}
	same, err = SameDir(meta, filepath.Join(tmpDir, "out"))
	if err != nil || same {
		t.Errorf("SameDir(meta, out) = %v, %v; want false", same, err)
	}
}
