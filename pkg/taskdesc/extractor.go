package taskdesc

import (
	"encoding/json"
	"fmt"
	"strings"

	"ergo-assist-be/pkg/storage"
)

// TaskRecord is the structured task description. The shipped extractor
// performs no real field extraction; it records the raw text next to a
// fixed placeholder record. A structured-NLU collaborator can implement
// Extractor later without touching the session engine.
type TaskRecord struct {
	TaskKind      string     `json:"task_kind"`
	ObjectType    string     `json:"object_type"`
	HandleType    string     `json:"handle_type"`
	WeightKg      float64    `json:"weight_kg"`
	SizeM         [3]float64 `json:"size_m"`
	StartHeightM  float64    `json:"start_height_m"`
	StartLocation [2]float64 `json:"start_location_m"`
	RawText       string     `json:"raw_text"`
}

// Extractor turns a free-text task description into a persisted record
// and returns the record plus its storage path.
type Extractor interface {
	Extract(text string) (*TaskRecord, string, error)
}

// StubExtractor persists the raw text with placeholder fields. The
// placeholder values mirror a generic box lift so downstream consumers
// have a complete record shape to work with.
type StubExtractor struct {
	store storage.Storage
	key   string
}

func NewStubExtractor(store storage.Storage, recordKey string) *StubExtractor {
	return &StubExtractor{
		store: store,
		key:   recordKey,
	}
}

func (e *StubExtractor) Extract(text string) (*TaskRecord, string, error) {
	record := &TaskRecord{
		TaskKind:      "lift",
		ObjectType:    "box",
		HandleType:    "none",
		WeightKg:      10,
		SizeM:         [3]float64{0.4, 0.4, 0.4},
		StartHeightM:  0.75,
		StartLocation: [2]float64{0.5, 0},
		RawText:       strings.TrimSpace(text),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode task record: %w", err)
	}

	path, err := e.store.Write(e.key, data)
	if err != nil {
		return nil, "", err
	}

	return record, path, nil
}

// Summary renders the record for the assistant echo message.
func (r *TaskRecord) Summary() string {
	return fmt.Sprintf("%s a %.0fkg %s (%.2fx%.2fx%.2fm) from height %.2fm",
		r.TaskKind, r.WeightKg, r.ObjectType,
		r.SizeM[0], r.SizeM[1], r.SizeM[2], r.StartHeightM)
}
