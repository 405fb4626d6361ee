package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoldenVerdicts(t *testing.T) {
	testCases := []string{
		"delete_session",
		"insert_missing",
	}

	for _, name := range testCases {
		t.Run(name, func(t *testing.T) {
			fx, err := LoadFixture(filepath.Join("testdata", "fixtures", name+".json"))
			require.NoError(t, err)

			require.NoError(t, RunWithGolden(t, fx))
		})
	}
}
