package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gavel/internal/engine"
	"github.com/roach88/gavel/internal/schema"
	"github.com/roach88/gavel/internal/testutil"
)

func TestRunFixture_Pass(t *testing.T) {
	fx, err := LoadFixture(filepath.Join("testdata", "fixtures", "insert_pass.json"))
	require.NoError(t, err)

	result := NewRunner().RunFixture(fx)

	assert.True(t, result.Pass)
	assert.Empty(t, result.Errors)
	require.NotNil(t, result.Verdict)
	assert.True(t, result.Verdict.Passed)
	assert.Len(t, result.Digest, 64, "digest is hex SHA-256")
}

func TestRunFixture_PinnedFailureCountsAsPass(t *testing.T) {
	fx, err := LoadFixture(filepath.Join("testdata", "fixtures", "return_value_fail.json"))
	require.NoError(t, err)

	result := NewRunner().RunFixture(fx)

	assert.True(t, result.Pass, "the failing verdict is exactly what the fixture pinned")
	require.NotNil(t, result.Verdict)
	assert.False(t, result.Verdict.Passed)
}

func TestRunFixture_ExpectationMismatch(t *testing.T) {
	fx := &Fixture{
		Name: "mismatch",
		Verifier: &schema.VerifierSpec{
			Kind:        schema.KindStateMutationMatch,
			ReturnValue: schema.LiteralSpec{Value: "ok"},
		},
		Results:  &schema.ResultBundle{ReturnValue: "nope"},
		Expected: &ExpectedVerdict{Passed: boolPtr(true)},
	}

	result := NewRunner().RunFixture(fx)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected passed=true, got false")
	assert.NotNil(t, result.Verdict, "the verdict is still reported for debugging")
}

func TestRunFixture_EvaluationRejection(t *testing.T) {
	fx := &Fixture{
		Name:     "badkind",
		Verifier: &schema.VerifierSpec{Kind: "screenshot_match"},
		Results:  &schema.ResultBundle{},
	}

	result := NewRunner().RunFixture(fx)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "evaluate: UNKNOWN_KIND")
	assert.Nil(t, result.Verdict)
	assert.Empty(t, result.Digest)
}

func TestRunFile_LoadErrorBecomesResult(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": `), 0o644))

	result := NewRunner().RunFile(path)

	assert.Equal(t, "broken", result.Name, "named after the file when the envelope is unreadable")
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "load:")
}

func TestRunDir_Report(t *testing.T) {
	runner := NewRunner(
		WithTokenGenerator(testutil.NewFixedTokenGenerator("run-0001")),
	)

	report, err := runner.RunDir(filepath.Join("testdata", "fixtures"), "")
	require.NoError(t, err)

	assert.Equal(t, schema.SchemaVersion, report.SchemaVersion)
	assert.Equal(t, "run-0001", report.RunToken)
	assert.Equal(t, 5, report.Total)
	assert.Equal(t, 5, report.Passed)
	assert.Equal(t, 0, report.Failed)
	assert.True(t, report.AllPassed())

	names := make([]string, len(report.Results))
	for i, r := range report.Results {
		names[i] = r.Name
	}
	assert.Equal(t, []string{
		"delete_session",
		"insert_missing",
		"insert_pass",
		"return_value_fail",
		"update_where",
	}, names, "results follow sorted file order")
}

func TestRunDir_Pattern(t *testing.T) {
	runner := NewRunner(WithTokenGenerator(testutil.NewFixedTokenGenerator("")))

	report, err := runner.RunDir(filepath.Join("testdata", "fixtures"), "insert_*")
	require.NoError(t, err)

	assert.Equal(t, "test-run-default", report.RunToken)
	assert.Equal(t, 2, report.Total)
}

func TestRunDir_CountsFailures(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fails.json"), []byte(`{
		"name": "fails",
		"verifier": {"kind": "state_mutation_match", "return_value": "ok"},
		"results": {"mutations": []}
	}`), 0o644))

	report, err := NewRunner().RunDir(dir, "")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Total)
	assert.Equal(t, 0, report.Passed)
	assert.Equal(t, 1, report.Failed)
	assert.False(t, report.AllPassed())
}

func TestRunDir_MissingDir(t *testing.T) {
	_, err := NewRunner().RunDir(filepath.Join(t.TempDir(), "absent"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "find fixtures")
}

type rejectingJudge struct{}

func (rejectingJudge) JudgeSemantic(description string, actual any) bool { return false }

func TestRunner_CustomEngine(t *testing.T) {
	// A judge that rejects everything flips semantic checks to failures.
	rejectAll := engine.New(engine.WithJudge(rejectingJudge{}))

	fx := &Fixture{
		Name: "semantic",
		Verifier: &schema.VerifierSpec{
			Kind:       schema.KindStateMutationMatch,
			AgentError: schema.SemanticSpec{Description: "a timeout complaint"},
		},
		Results:  &schema.ResultBundle{AgentError: "timed out"},
		Expected: &ExpectedVerdict{Passed: boolPtr(false)},
	}

	result := NewRunner(WithEngine(rejectAll)).RunFixture(fx)

	assert.True(t, result.Pass, "rejecting judge fails the check, matching the pinned verdict")
}
