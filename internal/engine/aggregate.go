package engine

import "github.com/roach88/gavel/internal/schema"

// AggregateFunc folds graded check outcomes into a verdict.
//
// The engine calls the aggregator exactly once per evaluation, after
// every check has been graded. Implementations must preserve the checks
// slice order and uphold the verdict invariant: Passed is true exactly
// when PassedChecks equals TotalChecks.
type AggregateFunc func(checks []schema.CheckOutcome) schema.Verdict

// Aggregate is the default aggregator: all-or-nothing conjunction.
//
// A verdict with zero checks passes vacuously - a verifier that demands
// nothing is satisfied by anything.
func Aggregate(checks []schema.CheckOutcome) schema.Verdict {
	if checks == nil {
		checks = []schema.CheckOutcome{}
	}

	passed := 0
	for _, c := range checks {
		if c.Success {
			passed++
		}
	}

	return schema.Verdict{
		Checks:       checks,
		Passed:       passed == len(checks),
		TotalChecks:  len(checks),
		PassedChecks: passed,
	}
}
