package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "VERDICT_COMPUTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is a generic implementation used when no dedicated event type exists.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewVerdictComputedEvent wraps the outcome of a completed assessment so it
// can be fanned out to external consumers.
func NewVerdictComputedEvent(sessionID, userID, verdict string, metrics map[string]float64) Event {
	data := map[string]interface{}{
		"session_id": sessionID,
		"user_id":    userID,
		"verdict":    verdict,
	}
	for k, v := range metrics {
		data["metric_"+k] = v
	}
	return BaseEvent{
		Type:       "VERDICT_COMPUTED",
		Data:       data,
		OccurredAt: time.Now(),
	}
}
