package harness

import "github.com/roach88/gavel/internal/schema"

// FixtureResult is the outcome of running one fixture.
type FixtureResult struct {
	// Name identifies the fixture.
	Name string `json:"name"`

	// Pass indicates the fixture met its expectations.
	Pass bool `json:"pass"`

	// Errors contains failure messages: load errors, evaluation
	// rejections, and expectation mismatches. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Verdict is the graded verdict. Nil when evaluation was rejected
	// before grading.
	Verdict *schema.Verdict `json:"verdict,omitempty"`

	// Digest is the content digest of the verdict, empty when there is
	// no verdict.
	Digest string `json:"digest,omitempty"`
}

// NewFixtureResult creates a passing result for the named fixture.
// Used as the starting point for a run.
func NewFixtureResult(name string) *FixtureResult {
	return &FixtureResult{
		Name: name,
		Pass: true,
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *FixtureResult) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Report aggregates fixture results for one harness run.
type Report struct {
	// SchemaVersion is the verdict schema version the run graded against.
	SchemaVersion string `json:"schemaVersion"`

	// RunToken correlates every result in this run.
	RunToken string `json:"runToken"`

	// Results holds per-fixture outcomes in run order.
	Results []FixtureResult `json:"results"`

	// Passed, Failed, and Total count fixtures, not checks.
	Passed int `json:"passed"`
	Failed int `json:"failed"`
	Total  int `json:"total"`
}

// AllPassed reports whether every fixture in the run passed.
func (r *Report) AllPassed() bool {
	return r.Failed == 0
}
