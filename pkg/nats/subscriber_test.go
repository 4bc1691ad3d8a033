package nats

import (
	"strings"
	"testing"
	"time"

	"ergo-assist-be/pkg/events"
)

func TestFormatEventLine(t *testing.T) {
	at := time.Date(2025, time.March, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		name  string
		event events.Event
		want  string
	}{
		{
			name: "payload keys sorted",
			event: events.BaseEvent{
				Type:       "events.VERDICT_COMPUTED",
				Data:       map[string]interface{}{"verdict": "SAFE", "session_id": "s-1", "metric_LI": 0.8},
				OccurredAt: at,
			},
			want: "2025-03-14T09:26:53Z events.VERDICT_COMPUTED metric_LI=0.8 session_id=s-1 verdict=SAFE",
		},
		{
			name: "empty payload",
			event: events.BaseEvent{
				Type:       "events.USER_LOGIN",
				OccurredAt: at,
			},
			want: "2025-03-14T09:26:53Z events.USER_LOGIN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatEventLine(tt.event); got != tt.want {
				t.Errorf("FormatEventLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatEventLineDeterministic(t *testing.T) {
	event := events.NewVerdictComputedEvent("s-1", "u-1", "UNSAFE", map[string]float64{
		"LI": 1.6, "RWL": 8.1, "SSPP_L4L5": 4200,
	})

	first := FormatEventLine(event)
	for i := 0; i < 5; i++ {
		if got := FormatEventLine(event); got != first {
			t.Fatalf("line changed between calls: %q then %q", first, got)
		}
	}
	for _, fragment := range []string{"VERDICT_COMPUTED", "session_id=s-1", "metric_LI=1.6"} {
		if !strings.Contains(first, fragment) {
			t.Errorf("line %q missing %q", first, fragment)
		}
	}
}
