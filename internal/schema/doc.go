// Package schema defines the wire formats for verdict grading.
//
// This package contains type definitions and (de)serialization only. All
// other internal packages import schema; schema imports nothing internal.
// This ensures the wire layer remains foundational with no circular
// dependencies.
//
// Three document families live here:
//   - VerifierSpec: the declared expectations (value specs, expected
//     row-level mutations, optional run-outcome checks)
//   - ResultBundle: the observed execution (ordered mutation events plus
//     observed run outcomes)
//   - Verdict: the graded output (one outcome per check plus aggregate
//     counts)
//
// Decoding is strict wherever the wire format is tagged: an unrecognized
// value-spec type or event method is an error, never a silent literal.
// Verifier and bundle documents tolerate extra keys, matching the
// instrumentation that produces them.
package schema
