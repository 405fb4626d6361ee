package harness

import (
	"fmt"

	"github.com/roach88/gavel/internal/schema"
)

// LintFixture reports suspicious but legal fixture constructions.
//
// Warnings never block a run - a vacuous fixture still grades and still
// passes. They exist to catch fixtures that test less than their author
// thinks they do.
func LintFixture(fx *Fixture) []string {
	var warnings []string

	warnings = append(warnings, LintVerifier(fx.Verifier)...)

	if fx.Expected != nil {
		warnings = append(warnings, lintExpected(fx.Expected, fx.Verifier)...)
	}

	return warnings
}

// LintVerifier reports verifiers that grade less than they appear to.
func LintVerifier(spec *schema.VerifierSpec) []string {
	var warnings []string

	if spec == nil {
		return warnings
	}

	if len(spec.Mutations) == 0 && spec.ReturnValue == nil && spec.FinalURL == nil && spec.AgentError == nil {
		warnings = append(warnings, "verifier declares no checks: every execution passes")
	}

	for i, exp := range spec.Mutations {
		if len(exp.Values) == 0 && len(exp.Where) == 0 {
			warnings = append(warnings,
				fmt.Sprintf("mutations[%d]: no values or where constraints, any %s on %q matches",
					i, exp.Action, exp.Table))
		}
		if exp.Action == schema.ActionInsert && len(exp.Where) > 0 {
			warnings = append(warnings,
				fmt.Sprintf("mutations[%d]: INSERT with a where block can never match, insert events carry no where fields", i))
		}
		if exp.Action == schema.ActionDelete && len(exp.Values) > 0 {
			warnings = append(warnings,
				fmt.Sprintf("mutations[%d]: DELETE with a values block can never match, delete events carry no record fields", i))
		}
	}

	return warnings
}

// lintExpected flags expected blocks no verdict can satisfy.
func lintExpected(expected *ExpectedVerdict, spec *schema.VerifierSpec) []string {
	var warnings []string

	total := declaredChecks(spec)

	if expected.TotalChecks != nil && *expected.TotalChecks != total {
		warnings = append(warnings,
			fmt.Sprintf("expected.totalChecks=%d but the verifier declares %d checks", *expected.TotalChecks, total))
	}
	if expected.PassedChecks != nil && *expected.PassedChecks > total {
		warnings = append(warnings,
			fmt.Sprintf("expected.passedChecks=%d exceeds the %d declared checks", *expected.PassedChecks, total))
	}
	if expected.Passed != nil && expected.PassedChecks != nil {
		allPass := *expected.PassedChecks == total
		if *expected.Passed != allPass {
			warnings = append(warnings,
				"expected.passed contradicts expected.passedChecks: no verdict can satisfy both")
		}
	}

	return warnings
}

// declaredChecks counts the checks a verifier will produce.
func declaredChecks(spec *schema.VerifierSpec) int {
	if spec == nil {
		return 0
	}

	total := len(spec.Mutations)
	if spec.ReturnValue != nil {
		total++
	}
	if spec.FinalURL != nil {
		total++
	}
	if spec.AgentError != nil {
		total++
	}
	return total
}
