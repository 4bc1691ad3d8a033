package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStorageWrite(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(filepath.Join(dir, "uploads"))
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	path, err := s.Write("scan.glb", []byte("mesh-bytes"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "mesh-bytes" {
		t.Errorf("content = %q, want %q", data, "mesh-bytes")
	}
}

func TestLocalStorageOverwrite(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	first, err := s.Write("scan.obj", []byte("v1"))
	if err != nil {
		t.Fatalf("first write: %v", err)
	}
	second, err := s.Write("scan.obj", []byte("v2"))
	if err != nil {
		t.Fatalf("second write: %v", err)
	}
	if first != second {
		t.Errorf("same key produced different paths: %s vs %s", first, second)
	}

	data, _ := os.ReadFile(second)
	if string(data) != "v2" {
		t.Errorf("content = %q, want %q", data, "v2")
	}
}

func TestSafeName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"scan.glb", "scan.glb"},
		{"../../etc/passwd", "passwd"},
		{"dir/sub/file.ply", "file.ply"},
		{"windows\\path\\scan.stl", "scan.stl"},
		{"", "unnamed"},
		{".", "unnamed"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := SafeName(tt.key); got != tt.want {
				t.Errorf("SafeName(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
