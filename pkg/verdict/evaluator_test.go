package verdict

import (
	"testing"

	"ergo-assist-be/pkg/metrics"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		set  metrics.MetricSet
		want Verdict
	}{
		{
			name: "both at threshold is safe",
			set:  metrics.MetricSet{metrics.KeyLI: 1.0, metrics.KeyBackForce: 3400.0},
			want: VerdictSafe,
		},
		{
			name: "comfortably safe",
			set:  metrics.MetricSet{metrics.KeyLI: 0.5, metrics.KeyBackForce: 1200},
			want: VerdictSafe,
		},
		{
			name: "lifting index just over threshold",
			set:  metrics.MetricSet{metrics.KeyLI: 1.0001, metrics.KeyBackForce: 3400.0},
			want: VerdictUnsafe,
		},
		{
			name: "back force just over threshold",
			set:  metrics.MetricSet{metrics.KeyLI: 1.0, metrics.KeyBackForce: 3400.01},
			want: VerdictUnsafe,
		},
		{
			name: "both over threshold",
			set:  metrics.MetricSet{metrics.KeyLI: 2.4, metrics.KeyBackForce: 5100},
			want: VerdictUnsafe,
		},
		{
			name: "missing lifting index",
			set:  metrics.MetricSet{metrics.KeyBackForce: 1200},
			want: VerdictIndeterminate,
		},
		{
			name: "missing back force",
			set:  metrics.MetricSet{metrics.KeyLI: 0.5},
			want: VerdictIndeterminate,
		},
		{
			name: "empty set",
			set:  metrics.MetricSet{},
			want: VerdictIndeterminate,
		},
		{
			name: "rwl alone does not decide",
			set:  metrics.MetricSet{metrics.KeyRWL: 11.2},
			want: VerdictIndeterminate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.set)
			if got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	set := metrics.MetricSet{metrics.KeyLI: 0.9, metrics.KeyBackForce: 3000}
	first := Evaluate(set)
	for i := 0; i < 10; i++ {
		if got := Evaluate(set); got != first {
			t.Fatalf("Evaluate() changed between calls: %v then %v", first, got)
		}
	}
}
