// Package engine grades observed agent executions against declared
// expectations.
//
// The engine is the heart of gavel - it takes a verifier (what should
// have happened) and a result bundle (what did happen), grades each
// expectation, and aggregates the outcomes into a verdict.
//
// GRADING MODEL:
//
// Two-layer strictness:
// Decoding is strict - an unknown value spec tag or mutation method is a
// fatal input error, surfaced as *InputError before any grading starts.
// Matching is total - once documents decode, every comparison yields a
// plain boolean and grading always runs to completion. A malformed regex
// or mismatched type is a failed check, never an error.
//
// Evaluation flow:
//  1. Evaluate() validates both documents, rejecting bad input whole
//  2. Each mutation expectation scans observed events in order,
//     first match wins, events are not consumed
//  3. Outcome checks (return value, final URL, agent error) run for
//     each spec the verifier declares
//  4. The aggregator folds check outcomes into the verdict
//
// Checks appear in the verdict in declaration order: mutations first,
// then return value, final URL, agent error. Field comparisons within
// an expectation run in sorted key order. No randomness, no map
// iteration order, no non-determinism.
//
// Pluggable strategies:
// Variable specs (mutation_variable, semantic_match_variable) delegate
// to VariableBinder and SemanticJudge. The defaults accept any present
// value, so a bare engine grades on structure alone. Callers with a
// recording binder or an external judge swap them in via options.
package engine
