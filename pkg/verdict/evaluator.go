package verdict

import "ergo-assist-be/pkg/metrics"

// Safety thresholds for the two-criterion lifting rule.
// LIMax is the NIOSH lifting index ceiling; BackForceMaxN is the
// 3DSSPP L4/L5 compression limit in newtons.
const (
	LIMax         = 1.0
	BackForceMaxN = 3400.0
)

// Verdict classifies a lifting task.
type Verdict string

const (
	VerdictSafe          Verdict = "SAFE"
	VerdictUnsafe        Verdict = "UNSAFE"
	VerdictIndeterminate Verdict = "INDETERMINATE"
)

// Evaluate applies the fixed two-threshold rule to a metric snapshot.
// A missing LI or back-compression value yields Indeterminate; the
// evaluation holds no state, so repeated calls on the same set always
// agree.
func Evaluate(set metrics.MetricSet) Verdict {
	li, liOk := set.Get(metrics.KeyLI)
	force, forceOk := set.Get(metrics.KeyBackForce)

	if !liOk || !forceOk {
		return VerdictIndeterminate
	}

	if li <= LIMax && force <= BackForceMaxN {
		return VerdictSafe
	}
	return VerdictUnsafe
}
