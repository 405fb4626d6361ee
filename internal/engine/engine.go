package engine

import (
	"io"
	"log/slog"

	"github.com/roach88/gavel/internal/schema"
)

// Engine grades verifier/bundle pairs into verdicts.
//
// An Engine is configured once and reused across evaluations. Grading
// is deterministic: expectations are evaluated in declaration order,
// events are scanned in observed order, and field comparisons run in
// sorted key order.
//
// Thread-safety: Evaluate is safe for concurrent use as long as the
// configured binder and judge are. The defaults are stateless.
type Engine struct {
	binder    VariableBinder
	judge     SemanticJudge
	aggregate AggregateFunc
	logger    *slog.Logger
	matcher   *Matcher
}

// Option configures an Engine.
type Option func(*Engine)

// WithBinder sets the strategy for mutation variable specs.
func WithBinder(binder VariableBinder) Option {
	return func(e *Engine) {
		e.binder = binder
	}
}

// WithJudge sets the strategy for semantic match specs.
func WithJudge(judge SemanticJudge) Option {
	return func(e *Engine) {
		e.judge = judge
	}
}

// WithAggregator replaces the default all-or-nothing aggregator.
func WithAggregator(fn AggregateFunc) Option {
	return func(e *Engine) {
		e.aggregate = fn
	}
}

// WithLogger sets the logger for grading diagnostics. The default
// discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine. With no options it grades on structure alone:
// variable and semantic specs accept any present value, and the verdict
// is the conjunction of all checks.
func New(opts ...Option) *Engine {
	e := &Engine{
		binder:    AcceptAllBinder{},
		judge:     AcceptAllJudge{},
		aggregate: Aggregate,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.matcher = NewMatcher(e.binder, e.judge)
	return e
}

// Evaluate grades one observed execution against one verifier.
//
// Invalid input is rejected whole with *InputError before any grading
// starts, so a returned verdict always reflects real check results.
// Checks land in the verdict in declaration order: one per expectation,
// then return value, final URL, and agent error for whichever specs the
// verifier declares.
func (e *Engine) Evaluate(spec *schema.VerifierSpec, bundle *schema.ResultBundle) (*schema.Verdict, error) {
	if spec == nil {
		return nil, NewSpecError("verifier is nil", nil)
	}
	if bundle == nil {
		return nil, NewBundleError("result bundle is nil", nil)
	}
	if spec.Kind != schema.KindStateMutationMatch {
		return nil, NewUnknownKindError(spec.Kind)
	}
	if err := spec.Validate(); err != nil {
		return nil, NewSpecError("invalid verifier", err)
	}
	if err := bundle.Validate(); err != nil {
		return nil, NewBundleError("invalid result bundle", err)
	}

	checks := make([]schema.CheckOutcome, 0, len(spec.Mutations)+3)

	for i, exp := range spec.Mutations {
		event, matched := e.findMatch(exp, bundle.Mutations)

		var actual any
		if matched {
			actual = event
		}
		checks = append(checks, schema.CheckOutcome{
			Kind:     schema.CheckMutation,
			Success:  matched,
			Expected: exp,
			Actual:   actual,
		})

		e.logger.Debug("graded expectation",
			"index", i,
			"action", string(exp.Action),
			"table", exp.Table,
			"matched", matched)
	}

	if spec.ReturnValue != nil {
		checks = append(checks, e.checkOutcome(schema.CheckReturnValue, spec.ReturnValue, bundle.ReturnValue))
	}
	if spec.FinalURL != nil {
		checks = append(checks, e.checkOutcome(schema.CheckFinalURL, spec.FinalURL, bundle.FinalURL))
	}
	if spec.AgentError != nil {
		checks = append(checks, e.checkOutcome(schema.CheckAgentError, spec.AgentError, bundle.AgentError))
	}

	verdict := e.aggregate(checks)

	e.logger.Debug("verdict aggregated",
		"passed", verdict.Passed,
		"passedChecks", verdict.PassedChecks,
		"totalChecks", verdict.TotalChecks)

	return &verdict, nil
}

// findMatch scans observed events in order and returns the first one
// the expectation matches. Events are not consumed: two expectations
// may settle on the same event.
func (e *Engine) findMatch(exp schema.Expectation, events []schema.Mutation) (schema.Mutation, bool) {
	for _, event := range events {
		if e.matcher.MatchMutation(exp, event) {
			return event, true
		}
	}
	return nil, false
}

// checkOutcome grades one top-level outcome field. The check runs even
// when the bundle carries no value: the verifier declared an
// expectation, so nil is simply what was observed.
func (e *Engine) checkOutcome(kind schema.CheckKind, spec schema.ValueSpec, actual any) schema.CheckOutcome {
	success := e.matcher.MatchValue(spec, actual)

	e.logger.Debug("graded outcome", "kind", string(kind), "success", success)

	return schema.CheckOutcome{
		Kind:     kind,
		Success:  success,
		Expected: spec,
		Actual:   actual,
	}
}
