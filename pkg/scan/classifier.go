package scan

import (
	"sort"
	"strings"
)

// AcceptedExtensions is the fixed set of 3D mesh / point-cloud formats
// the assistant accepts as workspace scans. Classification is by suffix
// only; no content sniffing.
var AcceptedExtensions = map[string]bool{
	".obj":  true,
	".stl":  true,
	".ply":  true,
	".glb":  true,
	".gltf": true,
	".fbx":  true,
	".las":  true,
	".laz":  true,
	".e57":  true,
	".xyz":  true,
	".ptx":  true,
	".pts":  true,
}

// IsAccepted reports whether filename carries an accepted scan
// extension (case-insensitive).
func IsAccepted(filename string) bool {
	lower := strings.ToLower(filename)
	idx := strings.LastIndex(lower, ".")
	if idx == -1 {
		return false
	}
	return AcceptedExtensions[lower[idx:]]
}

// ExtensionList returns the accepted extensions sorted, for user-facing
// rejection messages.
func ExtensionList() string {
	exts := make([]string, 0, len(AcceptedExtensions))
	for ext := range AcceptedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, " ")
}
