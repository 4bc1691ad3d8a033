package scan

import (
	"strings"
	"testing"
)

func TestIsAccepted(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     bool
	}{
		{"mesh glb", "workspace.glb", true},
		{"mesh obj", "room.obj", true},
		{"point cloud e57", "site.e57", true},
		{"uppercase extension", "SCAN.STL", true},
		{"mixed case", "Factory.PlY", true},
		{"dotted name", "my.workspace.v2.ply", true},
		{"document", "document.pdf", false},
		{"image", "photo.png", false},
		{"no extension", "README", false},
		{"trailing dot", "weird.", false},
		{"extension only", ".glb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAccepted(tt.filename); got != tt.want {
				t.Errorf("IsAccepted(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestExtensionListCoversAcceptedSet(t *testing.T) {
	list := ExtensionList()
	for ext := range AcceptedExtensions {
		if !strings.Contains(list, ext) {
			t.Errorf("ExtensionList() missing %q: %s", ext, list)
		}
	}
	if strings.Contains(list, "  ") {
		t.Errorf("ExtensionList() has double spacing: %q", list)
	}
}
