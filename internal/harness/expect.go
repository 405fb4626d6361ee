package harness

import (
	"fmt"

	"github.com/roach88/gavel/internal/schema"
)

// ExpectationError is returned when a pinned verdict field doesn't hold.
type ExpectationError struct {
	Field    string // Verdict field name
	Expected any    // Pinned value from the fixture
	Actual   any    // Value the verdict produced
}

// Error implements the error interface.
func (e *ExpectationError) Error() string {
	return fmt.Sprintf("expected %s=%v, got %v", e.Field, e.Expected, e.Actual)
}

// CheckExpected compares a verdict against a fixture's expected block.
//
// This is a subset match - only pinned fields are compared. A nil
// expected block is the common "this fixture should grade clean" case
// and requires the verdict to pass.
//
// All mismatches are collected rather than stopping at the first, so a
// failing fixture reports everything wrong at once.
func CheckExpected(expected *ExpectedVerdict, verdict *schema.Verdict) []error {
	var errs []error

	if expected == nil {
		if !verdict.Passed {
			errs = append(errs, &ExpectationError{Field: "passed", Expected: true, Actual: verdict.Passed})
		}
		return errs
	}

	if expected.Passed != nil && *expected.Passed != verdict.Passed {
		errs = append(errs, &ExpectationError{Field: "passed", Expected: *expected.Passed, Actual: verdict.Passed})
	}
	if expected.PassedChecks != nil && *expected.PassedChecks != verdict.PassedChecks {
		errs = append(errs, &ExpectationError{Field: "passedChecks", Expected: *expected.PassedChecks, Actual: verdict.PassedChecks})
	}
	if expected.TotalChecks != nil && *expected.TotalChecks != verdict.TotalChecks {
		errs = append(errs, &ExpectationError{Field: "totalChecks", Expected: *expected.TotalChecks, Actual: verdict.TotalChecks})
	}

	return errs
}
