// Package harness runs grading fixtures as executable contract tests.
//
// A fixture pairs a verifier with an observed result bundle and
// optionally pins what the verdict must look like. The harness loads
// fixtures, grades them through the engine, and folds the outcomes
// into a run report.
//
// # Fixture Format
//
// Fixtures are JSON or YAML files with the following structure:
//
//	name: fixture_name
//	description: "What this fixture exercises"
//	verifier:
//	  kind: state_mutation_match
//	  mutations:
//	    - action: INSERT
//	      table: orders
//	      values: { status: pending }
//	results:
//	  mutations:
//	    - method: insert
//	      table: orders
//	      record: { id: 1, status: pending }
//	expected:
//	  passed: true
//	  passedChecks: 1
//	  totalChecks: 1
//
// The expected block is a subset match: only the fields it names are
// pinned. A fixture without an expected block requires the verdict to
// pass.
//
// # Strictness
//
// The fixture envelope rejects unknown fields, catching typos like
// "expect:" for "expected:". The verifier and results documents inside
// it follow the schema package's rules: unknown spec tags and methods
// are fatal, unknown object keys are tolerated.
//
// # Deterministic Runs
//
// Grading is deterministic, so the only run-to-run variance in a report
// is its run token. Tests pin that with testutil.FixedTokenGenerator
// and compare whole reports or golden verdict snapshots byte for byte.
package harness
