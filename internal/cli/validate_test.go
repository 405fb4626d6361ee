package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureYAML = `name: login
verifier:
  kind: state_mutation_match
  mutations:
    - action: INSERT
      table: sessions
      values:
        user_id: 7
results:
  mutations:
    - method: insert
      table: sessions
      record:
        user_id: 7
`

func TestValidateCommandMissingArgs(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestValidateVerifierValid(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeTempFile(t, tmpDir, "verifier.json", passingVerifier)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ verifier valid")
	assert.NotContains(t, buf.String(), "warning")
}

func TestValidateVerifierWarnings(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeTempFile(t, tmpDir, "verifier.json", `{"kind": "state_mutation_match"}`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err, "warnings never fail validation")

	output := buf.String()
	assert.Contains(t, output, "✓ verifier valid")
	assert.Contains(t, output, "1 warning(s):")
	assert.Contains(t, output, "verifier declares no checks")
}

func TestValidateVerifierInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeTempFile(t, tmpDir, "verifier.json", `{"kind": "screenshot_match"}`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error [E_INVALID_INPUT]")
	assert.Contains(t, err.Error(), "screenshot_match")
}

func TestValidateVerifierUnknownSpecTag(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeTempFile(t, tmpDir, "verifier.json", `{
		"kind": "state_mutation_match",
		"mutations": [
			{"action": "INSERT", "table": "orders", "values": {"id": {"type": "fuzzy_match"}}}
		]
	}`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `unknown value spec type "fuzzy_match"`)
}

func TestValidateVerifierUnreadable(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "absent.json")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to read verifier")
}

func TestValidateFixture(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeTempFile(t, tmpDir, "login.yaml", fixtureYAML)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--fixture", path})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ fixture valid")
}

func TestValidateFixtureUnknownEnvelopeKey(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeTempFile(t, tmpDir, "login.yaml", fixtureYAML+"bogus: true\n")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--fixture", path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidateFixtureImpossibleShape(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeTempFile(t, tmpDir, "shape.json", `{
		"name": "shape",
		"verifier": {
			"kind": "state_mutation_match",
			"mutations": [
				{"action": "INSERT", "table": "orders", "where": {"id": 1}}
			]
		},
		"results": {"mutations": []}
	}`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--fixture", path})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "✓ fixture valid")
	assert.Contains(t, output, "INSERT with a where block can never match")
}

func TestValidateJSONOutput(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeTempFile(t, tmpDir, "verifier.json", `{"kind": "state_mutation_match"}`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["valid"])

	warnings, ok := data["warnings"].([]interface{})
	require.True(t, ok)
	assert.Len(t, warnings, 1)
}

func TestValidateJSONInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeTempFile(t, tmpDir, "verifier.json", `{"kind": "screenshot_match"}`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalidInput, resp.Error.Code)
}
