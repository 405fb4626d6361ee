package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Wire tags for typed value specs. A JSON object carrying a "type" key is
// always a typed spec; objects without one decode as literals.
const (
	TagRegex    = "regex"
	TagCapture  = "mutation_variable"
	TagSemantic = "semantic_match_variable"
)

// ValueSpec is a sealed interface representing one field-matching rule.
// Only LiteralSpec, RegexSpec, CaptureSpec, and SemanticSpec implement it.
type ValueSpec interface {
	valueSpec() // Sealed - only these types implement it
}

// LiteralSpec matches by deep equality against the observed value.
// Value holds plain decoded JSON: nil, bool, float64, string, []any, or
// map[string]any. Nested values inside a literal are data, not specs.
type LiteralSpec struct {
	Value any
}

func (LiteralSpec) valueSpec() {}

// RegexSpec matches string values against a prefix-anchored pattern:
// the match must begin at the start of the string and may end anywhere.
// Non-string values never match.
type RegexSpec struct {
	Pattern string
}

func (RegexSpec) valueSpec() {}

// CaptureSpec is a named placeholder for binding an observed value.
// Acceptance is delegated to the configured binder; the default accepts
// everything, so a capture reserves a slot without constraining the run.
type CaptureSpec struct {
	Name string
}

func (CaptureSpec) valueSpec() {}

// SemanticSpec is a placeholder for similarity-based comparison against
// a natural-language description. Acceptance is delegated to the
// configured judge; the default accepts everything.
type SemanticSpec struct {
	Description string
}

func (SemanticSpec) valueSpec() {}

// DecodeValueSpec decodes a JSON value into a ValueSpec.
//
// A JSON object with a "type" key dispatches on the tag. An unrecognized
// tag is an error so a misspelled spec fails loudly instead of degrading
// into a literal comparison that can never match. Everything else,
// including objects without a "type" key, decodes as a literal.
func DecodeValueSpec(data []byte) (ValueSpec, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty value spec")
	}
	if trimmed[0] != '{' {
		return decodeLiteralSpec(data)
	}

	var probe struct {
		Type *string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	if probe.Type == nil {
		return decodeLiteralSpec(data)
	}

	switch *probe.Type {
	case TagRegex:
		var raw struct {
			Regex *string `json:"regex"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		if raw.Regex == nil {
			return nil, fmt.Errorf("regex spec: missing regex field")
		}
		return RegexSpec{Pattern: *raw.Regex}, nil

	case TagCapture:
		var raw struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return CaptureSpec{Name: raw.Name}, nil

	case TagSemantic:
		var raw struct {
			Description string `json:"description"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return SemanticSpec{Description: raw.Description}, nil

	default:
		return nil, fmt.Errorf("unknown value spec type %q", *probe.Type)
	}
}

// decodeLiteralSpec decodes any JSON value as a literal.
func decodeLiteralSpec(data []byte) (ValueSpec, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return LiteralSpec{Value: v}, nil
}

// MarshalJSON renders the literal's underlying value.
func (s LiteralSpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Value)
}

// MarshalJSON emits the tagged wire form.
func (s RegexSpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Regex string `json:"regex"`
	}{TagRegex, s.Pattern})
}

// MarshalJSON emits the tagged wire form.
func (s CaptureSpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}{TagCapture, s.Name})
}

// MarshalJSON emits the tagged wire form.
func (s SemanticSpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        string `json:"type"`
		Description string `json:"description"`
	}{TagSemantic, s.Description})
}

// SpecMap maps field names to the value specs they must satisfy.
// An empty or nil map imposes no constraint.
type SpecMap map[string]ValueSpec

// UnmarshalJSON decodes each field through DecodeValueSpec.
func (m *SpecMap) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(SpecMap, len(raw))
	for k, v := range raw {
		spec, err := DecodeValueSpec(v)
		if err != nil {
			return fmt.Errorf("field %q: %w", k, err)
		}
		out[k] = spec
	}
	*m = out
	return nil
}

// SortedKeys returns field names in RFC 8785 canonical order (UTF-16
// code units) for deterministic iteration.
func (m SpecMap) SortedKeys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortKeysRFC8785(keys)
	return keys
}
