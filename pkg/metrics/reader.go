package metrics

import (
	"encoding/json"
	"os"
)

// Metric keys known to the reader. The score file may carry more; only
// these are surfaced to callers.
const (
	KeyLI        = "LI"
	KeyRWL       = "RWL"
	KeyBackForce = "SSPP_L4L5"
)

// MetricSet is a read-only snapshot of named ergonomic metrics. Keys
// whose source values were missing or malformed are simply absent.
type MetricSet map[string]float64

// Get returns the metric value and whether it is present.
func (s MetricSet) Get(key string) (float64, bool) {
	v, ok := s[key]
	return v, ok
}

// Reader loads metric snapshots from a JSON score file. The file is a
// flat object mapping metric names to either a number or an array of
// numbers (one per subject):
//
//	{"LI": 0.87, "RWL": [11.4, 9.8], "SSPP_L4L5": [2100, 3900]}
//
// Reads are best-effort: an unreadable file, a wrong-shape value, or an
// out-of-range subject index degrades to an absent key, never an error.
type Reader struct {
	keys []string
}

func NewReader() *Reader {
	return &Reader{
		keys: []string{KeyLI, KeyRWL, KeyBackForce},
	}
}

// Read produces a fresh MetricSet from the score file at path, picking
// element subjectIndex out of any array-valued metric. Nothing is
// cached between calls.
func (r *Reader) Read(path string, subjectIndex int) MetricSet {
	set := MetricSet{}

	data, err := os.ReadFile(path)
	if err != nil {
		return set
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return set
	}

	for _, key := range r.keys {
		field, ok := raw[key]
		if !ok {
			continue
		}
		if v, ok := decodeMetric(field, subjectIndex); ok {
			set[key] = v
		}
	}

	return set
}

// decodeMetric accepts a bare number or an array of numbers indexed by
// subject. Anything else counts as absent.
func decodeMetric(field json.RawMessage, subjectIndex int) (float64, bool) {
	var scalar float64
	if err := json.Unmarshal(field, &scalar); err == nil {
		return scalar, true
	}

	var array []float64
	if err := json.Unmarshal(field, &array); err == nil {
		if subjectIndex >= 0 && subjectIndex < len(array) {
			return array[subjectIndex], true
		}
	}

	return 0, false
}
