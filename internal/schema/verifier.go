package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// KindStateMutationMatch is the only verifier kind this engine grades.
const KindStateMutationMatch = "state_mutation_match"

// VerifierSpec declares what a graded run must have done.
//
// Mutations are graded in declaration order. The three outcome specs are
// optional; a JSON null on the wire is treated as absent, so a verifier
// cannot require that an outcome be null.
type VerifierSpec struct {
	Kind        string
	Mutations   []Expectation
	ReturnValue ValueSpec
	FinalURL    ValueSpec
	AgentError  ValueSpec
}

// DecodeVerifier decodes and structurally validates a VerifierSpec
// document.
func DecodeVerifier(data []byte) (*VerifierSpec, error) {
	var spec VerifierSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// UnmarshalJSON decodes the wire form. Extra keys are tolerated;
// malformed expectations and value specs are not.
func (s *VerifierSpec) UnmarshalJSON(data []byte) error {
	var raw struct {
		Kind        string            `json:"kind"`
		Mutations   []json.RawMessage `json:"mutations"`
		ReturnValue json.RawMessage   `json:"return_value"`
		FinalURL    json.RawMessage   `json:"final_url"`
		AgentError  json.RawMessage   `json:"agent_error"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Kind = raw.Kind
	s.Mutations = make([]Expectation, len(raw.Mutations))
	for i, m := range raw.Mutations {
		if err := json.Unmarshal(m, &s.Mutations[i]); err != nil {
			return fmt.Errorf("mutations[%d]: %w", i, err)
		}
	}

	var err error
	if s.ReturnValue, err = decodeOptionalSpec(raw.ReturnValue); err != nil {
		return fmt.Errorf("return_value: %w", err)
	}
	if s.FinalURL, err = decodeOptionalSpec(raw.FinalURL); err != nil {
		return fmt.Errorf("final_url: %w", err)
	}
	if s.AgentError, err = decodeOptionalSpec(raw.AgentError); err != nil {
		return fmt.Errorf("agent_error: %w", err)
	}
	return nil
}

// decodeOptionalSpec treats a missing or null field as absent. Nulls
// nested inside values/where maps are ordinary literals; only top-level
// outcome checks carry the null-means-absent convention.
func decodeOptionalSpec(data json.RawMessage) (ValueSpec, error) {
	if len(data) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, nil
	}
	return DecodeValueSpec(data)
}

// Validate checks the kind and every expectation. Mutations may be
// empty; a verifier that produces zero checks grades as passing.
func (s *VerifierSpec) Validate() error {
	if s.Kind == "" {
		return fmt.Errorf("missing kind")
	}
	if s.Kind != KindStateMutationMatch {
		return fmt.Errorf("unknown kind %q", s.Kind)
	}
	for i, exp := range s.Mutations {
		if err := exp.Validate(); err != nil {
			return fmt.Errorf("mutations[%d]: %w", i, err)
		}
	}
	return nil
}
