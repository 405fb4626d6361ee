package schema

import (
	"encoding/json"
	"fmt"
)

// ResultBundle is the observed execution a verdict grades.
//
// Mutations preserve observed order; grading scans them front to back.
// ReturnValue, FinalURL, and AgentError are nil when the run reported
// nothing; an explicit JSON null decodes the same way, matching the
// instrumentation's contract.
type ResultBundle struct {
	Mutations   []Mutation
	ReturnValue any
	FinalURL    any
	AgentError  any
}

// DecodeBundle decodes and structurally validates a ResultBundle
// document.
func DecodeBundle(data []byte) (*ResultBundle, error) {
	var bundle ResultBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, err
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	return &bundle, nil
}

// UnmarshalJSON decodes the wire form. The mutations key is required
// (an empty array is fine); each event must carry a known method and a
// table name.
func (b *ResultBundle) UnmarshalJSON(data []byte) error {
	var raw struct {
		Mutations   *[]json.RawMessage `json:"mutations"`
		ReturnValue any                `json:"return_value"`
		FinalURL    any                `json:"final_url"`
		AgentError  any                `json:"agent_error"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Mutations == nil {
		return fmt.Errorf("missing mutations")
	}

	b.Mutations = make([]Mutation, len(*raw.Mutations))
	for i, m := range *raw.Mutations {
		mut, err := DecodeMutation(m)
		if err != nil {
			return fmt.Errorf("mutations[%d]: %w", i, err)
		}
		b.Mutations[i] = mut
	}
	b.ReturnValue = raw.ReturnValue
	b.FinalURL = raw.FinalURL
	b.AgentError = raw.AgentError
	return nil
}

// Validate checks bundle structure beyond decoding: final_url must be a
// string when present.
func (b *ResultBundle) Validate() error {
	if b.FinalURL != nil {
		if _, ok := b.FinalURL.(string); !ok {
			return fmt.Errorf("final_url must be a string, got %T", b.FinalURL)
		}
	}
	return nil
}
