package schema

import (
	"encoding/json"
	"fmt"
)

// CheckKind labels one graded check in a verdict.
type CheckKind string

const (
	CheckMutation    CheckKind = "mutation"
	CheckReturnValue CheckKind = "return_value"
	CheckFinalURL    CheckKind = "final_url"
	CheckAgentError  CheckKind = "agent_error"
)

// CheckOutcome is one graded check.
//
// For mutation checks, Expected holds the Expectation and Actual holds
// the first matching event (nil when none matched). For outcome checks,
// Expected holds the ValueSpec and Actual the observed value.
type CheckOutcome struct {
	Kind     CheckKind `json:"kind"`
	Success  bool      `json:"success"`
	Expected any       `json:"expected"`
	Actual   any       `json:"actual"`
}

// Verdict is the graded output for one verifier/bundle pair.
//
// Passed is true exactly when PassedChecks equals TotalChecks; a verdict
// with zero checks passes vacuously.
type Verdict struct {
	Checks       []CheckOutcome `json:"checks"`
	Passed       bool           `json:"passed"`
	TotalChecks  int            `json:"totalChecks"`
	PassedChecks int            `json:"passedChecks"`
}

// StableJSON renders the verdict in stable form for snapshots and
// digests: two equal verdicts produce byte-identical output.
func (v *Verdict) StableJSON() ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal verdict: %w", err)
	}
	return CanonicalizeJSON(data)
}
