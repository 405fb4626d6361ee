package engine

// VariableBinder decides whether an observed value is acceptable for a
// named mutation variable.
//
// Variable specs declare "some value goes here, call it X" rather than
// a concrete expectation. The binder sees every candidate value during
// grading and can record bindings, enforce cross-field consistency, or
// reject values outright.
//
// Implementations must be safe for repeated calls with the same name:
// a non-consuming event scan may present the same variable several
// times before an expectation settles on its match.
type VariableBinder interface {
	// BindVariable reports whether actual is acceptable for the named
	// variable. Returning false fails the enclosing field comparison.
	BindVariable(name string, actual any) bool
}

// SemanticJudge decides whether an observed value satisfies a prose
// description from a semantic match spec.
//
// The engine treats the judge as an oracle: it passes the description
// and the observed value through unchanged and folds the boolean into
// the field comparison.
type SemanticJudge interface {
	JudgeSemantic(description string, actual any) bool
}

// AcceptAllBinder accepts every observed value for every variable.
//
// This is the default binder: a variable spec then only requires the
// field to be present on the observed event.
//
// Thread-safety: AcceptAllBinder is stateless and safe for concurrent use.
type AcceptAllBinder struct{}

// BindVariable always reports true.
func (AcceptAllBinder) BindVariable(name string, actual any) bool {
	return true
}

// AcceptAllJudge accepts every observed value for every description.
//
// This is the default judge. Grading with it checks structure only;
// wire a real judge in via WithJudge to grade meaning.
//
// Thread-safety: AcceptAllJudge is stateless and safe for concurrent use.
type AcceptAllJudge struct{}

// JudgeSemantic always reports true.
func (AcceptAllJudge) JudgeSemantic(description string, actual any) bool {
	return true
}
