package metrics

import (
	"os"
	"path/filepath"
	"testing"
)

func writeScoreFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scores.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write score file: %v", err)
	}
	return path
}

func TestReaderRead(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		subjectIndex int
		want         map[string]float64
		absent       []string
	}{
		{
			name:         "scalar values",
			content:      `{"LI": 0.87, "RWL": 11.4, "SSPP_L4L5": 2100}`,
			subjectIndex: 0,
			want:         map[string]float64{KeyLI: 0.87, KeyRWL: 11.4, KeyBackForce: 2100},
		},
		{
			name:         "array values pick subject",
			content:      `{"LI": [0.9, 1.4], "RWL": [11.4, 9.8], "SSPP_L4L5": [2100, 3900]}`,
			subjectIndex: 1,
			want:         map[string]float64{KeyLI: 1.4, KeyRWL: 9.8, KeyBackForce: 3900},
		},
		{
			name:         "subject index out of range",
			content:      `{"LI": [0.9], "SSPP_L4L5": 2100}`,
			subjectIndex: 5,
			want:         map[string]float64{KeyBackForce: 2100},
			absent:       []string{KeyLI, KeyRWL},
		},
		{
			name:         "malformed value shapes are absent",
			content:      `{"LI": "high", "RWL": {"v": 1}, "SSPP_L4L5": 2100}`,
			subjectIndex: 0,
			want:         map[string]float64{KeyBackForce: 2100},
			absent:       []string{KeyLI, KeyRWL},
		},
		{
			name:         "unknown keys are ignored",
			content:      `{"LI": 0.5, "SSPP_L4L5": 900, "EXTRA": 42}`,
			subjectIndex: 0,
			want:         map[string]float64{KeyLI: 0.5, KeyBackForce: 900},
			absent:       []string{"EXTRA"},
		},
		{
			name:         "not a json object",
			content:      `[1, 2, 3]`,
			subjectIndex: 0,
			want:         map[string]float64{},
			absent:       []string{KeyLI, KeyRWL, KeyBackForce},
		},
	}

	r := NewReader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScoreFile(t, tt.content)
			set := r.Read(path, tt.subjectIndex)

			for key, want := range tt.want {
				got, ok := set.Get(key)
				if !ok {
					t.Errorf("key %s absent, want %v", key, want)
					continue
				}
				if got != want {
					t.Errorf("key %s = %v, want %v", key, got, want)
				}
			}
			for _, key := range tt.absent {
				if v, ok := set.Get(key); ok {
					t.Errorf("key %s present with %v, want absent", key, v)
				}
			}
		})
	}
}

func TestReaderMissingFile(t *testing.T) {
	r := NewReader()
	set := r.Read(filepath.Join(t.TempDir(), "nope.json"), 0)
	if len(set) != 0 {
		t.Errorf("missing file produced %d metrics, want 0", len(set))
	}
}

func TestReaderRereadsOnEachCall(t *testing.T) {
	r := NewReader()
	path := writeScoreFile(t, `{"LI": 0.5, "SSPP_L4L5": 1000}`)

	first := r.Read(path, 0)
	if v, _ := first.Get(KeyLI); v != 0.5 {
		t.Fatalf("LI = %v, want 0.5", v)
	}

	if err := os.WriteFile(path, []byte(`{"LI": 2.0, "SSPP_L4L5": 4000}`), 0644); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}

	second := r.Read(path, 0)
	if v, _ := second.Get(KeyLI); v != 2.0 {
		t.Errorf("LI after rewrite = %v, want 2.0 (stale cache?)", v)
	}
}
