package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/gavel/internal/schema"
)

// Fixture pairs a verifier with an observed result bundle and pins what
// the verdict must look like.
type Fixture struct {
	// Name uniquely identifies this fixture.
	Name string

	// Description explains what this fixture exercises.
	Description string

	// Verifier declares the expected mutations and outcomes.
	Verifier *schema.VerifierSpec

	// Results is the observed execution being graded.
	Results *schema.ResultBundle

	// Expected pins verdict fields. Nil means the verdict must pass.
	Expected *ExpectedVerdict
}

// ExpectedVerdict pins fields of the graded verdict.
// This is a subset match - only non-nil fields are validated.
type ExpectedVerdict struct {
	Passed       *bool `json:"passed,omitempty" yaml:"passed,omitempty"`
	PassedChecks *int  `json:"passedChecks,omitempty" yaml:"passedChecks,omitempty"`
	TotalChecks  *int  `json:"totalChecks,omitempty" yaml:"totalChecks,omitempty"`
}

// fixtureFile is the on-disk envelope. Verifier and Results stay
// untyped here and route through the schema decoders, so JSON and YAML
// fixtures share one strictness policy.
type fixtureFile struct {
	Name        string           `json:"name" yaml:"name"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Verifier    any              `json:"verifier" yaml:"verifier"`
	Results     any              `json:"results" yaml:"results"`
	Expected    *ExpectedVerdict `json:"expected,omitempty" yaml:"expected,omitempty"`
}

// LoadFixture reads and parses a fixture file, dispatching on the file
// extension. Returns an error if the file doesn't exist, is malformed,
// contains unknown envelope fields (typos), or is missing required
// fields.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}

	var file fixtureFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields() // Reject unknown fields
		if err := decoder.Decode(&file); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true) // Reject unknown fields
		if err := decoder.Decode(&file); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported fixture extension %q", filepath.Ext(path))
	}

	fixture, err := file.toFixture()
	if err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}
	return fixture, nil
}

// toFixture validates required fields and decodes the inner documents.
//
// The untyped verifier and results values re-encode to JSON before
// decoding, so YAML fixtures hit the exact same strict tag dispatch as
// JSON ones.
func (f *fixtureFile) toFixture() (*Fixture, error) {
	if f.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if f.Verifier == nil {
		return nil, fmt.Errorf("verifier is required")
	}
	if f.Results == nil {
		return nil, fmt.Errorf("results is required")
	}

	verifierJSON, err := json.Marshal(f.Verifier)
	if err != nil {
		return nil, fmt.Errorf("re-encode verifier: %w", err)
	}
	verifier, err := schema.DecodeVerifier(verifierJSON)
	if err != nil {
		return nil, fmt.Errorf("verifier: %w", err)
	}

	resultsJSON, err := json.Marshal(f.Results)
	if err != nil {
		return nil, fmt.Errorf("re-encode results: %w", err)
	}
	results, err := schema.DecodeBundle(resultsJSON)
	if err != nil {
		return nil, fmt.Errorf("results: %w", err)
	}

	return &Fixture{
		Name:        f.Name,
		Description: f.Description,
		Verifier:    verifier,
		Results:     results,
		Expected:    f.Expected,
	}, nil
}

// FindFixtureFiles lists fixture files under dir in sorted order.
//
// Golden snapshot subdirectories are skipped. A non-empty pattern
// filters base names with filepath.Match semantics, e.g. "update_*".
func FindFixtureFiles(dir, pattern string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == goldenDirName && path != dir {
				return filepath.SkipDir
			}
			return nil
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".json", ".yaml", ".yml":
		default:
			return nil
		}

		if pattern != "" {
			ok, err := filepath.Match(pattern, d.Name())
			if err != nil {
				return fmt.Errorf("bad pattern %q: %w", pattern, err)
			}
			if !ok {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)
	return files, nil
}
