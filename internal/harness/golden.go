package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/gavel/internal/engine"
	"github.com/roach88/gavel/internal/schema"
)

// goldenDirName is the snapshot subdirectory name, used both by tests
// (testdata/golden) and by CLI runs that keep golden files next to the
// fixtures they grade.
const goldenDirName = "golden"

// RunWithGolden grades a fixture and compares the verdict against a
// golden file stored in testdata/golden/{fixture.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files hold the verdict's stable JSON form, so any change to
// grading semantics or wire shape shows up as a byte diff.
//
// Returns error if grading is rejected. Test failure (via goldie)
// occurs if the verdict doesn't match the golden file.
func RunWithGolden(t *testing.T, fx *Fixture) error {
	t.Helper()

	verdict, err := engine.New().Evaluate(fx.Verifier, fx.Results)
	if err != nil {
		return err
	}

	return AssertGolden(t, fx.Name, verdict)
}

// AssertGolden compares a verdict against a golden file without
// re-grading. Useful when the test already holds a verdict.
func AssertGolden(t *testing.T, name string, verdict *schema.Verdict) error {
	t.Helper()

	stable, err := verdict.StableJSON()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, stable)

	return nil
}
