package harness

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/roach88/gavel/internal/engine"
	"github.com/roach88/gavel/internal/schema"
)

// Runner grades fixtures through an engine and folds the outcomes into
// reports.
type Runner struct {
	engine *engine.Engine
	tokens TokenGenerator
	logger *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithEngine replaces the default bare engine.
func WithEngine(e *engine.Engine) RunnerOption {
	return func(r *Runner) {
		r.engine = e
	}
}

// WithTokenGenerator replaces the UUIDv7 run token generator.
// Tests use testutil.FixedTokenGenerator for byte-stable reports.
func WithTokenGenerator(gen TokenGenerator) RunnerOption {
	return func(r *Runner) {
		r.tokens = gen
	}
}

// WithLogger sets the logger for run diagnostics. The default discards
// everything.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a Runner. The defaults grade with a bare engine and
// stamp reports with UUIDv7 run tokens.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		engine: engine.New(),
		tokens: UUIDv7Generator{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RunFixture grades one fixture.
//
// Evaluation rejections land in the result's Errors rather than
// aborting: one malformed fixture in a directory shouldn't take down
// the whole run.
func (r *Runner) RunFixture(fx *Fixture) *FixtureResult {
	result := NewFixtureResult(fx.Name)

	verdict, err := r.engine.Evaluate(fx.Verifier, fx.Results)
	if err != nil {
		result.AddError(fmt.Sprintf("evaluate: %v", err))
		return result
	}
	result.Verdict = verdict

	digest, err := schema.VerdictDigest(verdict)
	if err != nil {
		result.AddError(fmt.Sprintf("digest: %v", err))
	} else {
		result.Digest = digest
	}

	for _, expErr := range CheckExpected(fx.Expected, verdict) {
		result.AddError(expErr.Error())
	}

	r.logger.Debug("fixture graded",
		"name", fx.Name,
		"pass", result.Pass,
		"digest", result.Digest)

	return result
}

// RunFile loads and grades one fixture file. Load failures produce a
// failed result named after the file, so directory runs report them
// alongside grading failures.
func (r *Runner) RunFile(path string) *FixtureResult {
	fx, err := LoadFixture(path)
	if err != nil {
		base := filepath.Base(path)
		result := NewFixtureResult(strings.TrimSuffix(base, filepath.Ext(base)))
		result.AddError(fmt.Sprintf("load: %v", err))
		return result
	}
	return r.RunFixture(fx)
}

// RunDir grades every fixture under dir and returns the aggregated
// report. A non-empty pattern filters fixture base names.
func (r *Runner) RunDir(dir, pattern string) (*Report, error) {
	files, err := FindFixtureFiles(dir, pattern)
	if err != nil {
		return nil, fmt.Errorf("find fixtures: %w", err)
	}

	report := &Report{
		SchemaVersion: schema.SchemaVersion,
		RunToken:      r.tokens.Generate(),
		Results:       make([]FixtureResult, 0, len(files)),
	}

	for _, path := range files {
		result := r.RunFile(path)
		report.Results = append(report.Results, *result)
		report.Total++
		if result.Pass {
			report.Passed++
		} else {
			report.Failed++
		}
	}

	r.logger.Debug("run complete",
		"token", report.RunToken,
		"passed", report.Passed,
		"failed", report.Failed)

	return report, nil
}
