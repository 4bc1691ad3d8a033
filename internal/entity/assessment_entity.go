package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Assessment is the persisted audit record of a completed safety evaluation.
type Assessment struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	UserId        uuid.UUID
	Verdict       string
	Metrics       map[string]float64
	TaskRecord    json.RawMessage
	ScanPath      string
	CreatedAt     time.Time
}
