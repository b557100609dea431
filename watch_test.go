package magenta

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsAtlasFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"orc.png", true},
		{"sprites/ORC.PNG", true},
		{"orc.png.bak", false},
		{"manifest.yaml", false},
		{"png", false},
	}
	for _, tt := range tests {
		if got := IsAtlasFile(tt.path); got != tt.want {
			t.Errorf("IsAtlasFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIsManifestFile(t *testing.T) {
	for _, p := range []string{"m.yaml", "m.yml", "dir/M.YAML"} {
		if !IsManifestFile(p) {
			t.Errorf("IsManifestFile(%q) = false", p)
		}
	}
	for _, p := range []string{"m.json", "m.png", "yaml"} {
		if IsManifestFile(p) {
			t.Errorf("IsManifestFile(%q) = true", p)
		}
	}
}

func TestWatcher_ReportsAtlasWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	atlas := filepath.Join(dir, "orc.png")
	if err := os.WriteFile(atlas, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-w.Events:
		if p != atlas {
			t.Errorf("event = %q, want %q", p, atlas)
		}
	case err := <-w.Errors:
		t.Fatal(err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for atlas write")
	}
}

func TestWatcher_CloseClosesEvents(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
	select {
	case _, ok := <-w.Events:
		if ok {
			t.Error("Events delivered after Close")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Events not closed")
	}
	if got := w.Poll(); len(got) != 0 {
		t.Errorf("Poll after Close = %v", got)
	}
}

func TestNewWatcher_MissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for a missing directory")
	}
}
