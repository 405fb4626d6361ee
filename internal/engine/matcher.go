package engine

import (
	"encoding/json"
	"reflect"
	"regexp"

	"github.com/roach88/gavel/internal/schema"
)

// Matcher evaluates value specs against observed values.
//
// All matching is total: a Matcher never returns an error. Malformed
// patterns, type mismatches, and unrecognized spec variants are
// non-matches, so grading always runs to completion once the input
// documents have decoded.
type Matcher struct {
	binder VariableBinder
	judge  SemanticJudge
}

// NewMatcher creates a Matcher with the given strategies.
// Nil strategies fall back to the accept-all defaults.
func NewMatcher(binder VariableBinder, judge SemanticJudge) *Matcher {
	if binder == nil {
		binder = AcceptAllBinder{}
	}
	if judge == nil {
		judge = AcceptAllJudge{}
	}
	return &Matcher{binder: binder, judge: judge}
}

// MatchValue checks one observed value against a spec.
//
// The match is determined by variant:
//  1. Literal: deep equality, with numeric widths unified first
//  2. Regex: anchored pattern match over strings
//  3. Capture: delegated to the variable binder
//  4. Semantic: delegated to the semantic judge
//
// A nil or unrecognized spec never matches.
func (m *Matcher) MatchValue(spec schema.ValueSpec, actual any) bool {
	switch s := spec.(type) {
	case schema.LiteralSpec:
		return valuesEqual(s.Value, actual)
	case schema.RegexSpec:
		return matchRegex(s.Pattern, actual)
	case schema.CaptureSpec:
		return m.binder.BindVariable(s.Name, actual)
	case schema.SemanticSpec:
		return m.judge.JudgeSemantic(s.Description, actual)
	}
	return false
}

// MatchMutation checks one observed event against an expectation.
//
// The match is determined by:
//  1. Action gate: the expectation's action maps to the event method
//  2. Table gate: exact table name equality
//  3. Values: every spec matches the event's record fields
//  4. Where: every spec matches the event's where fields
//
// Returns true only if ALL conditions are satisfied. Where participates
// whenever present, even when Values is empty.
func (m *Matcher) MatchMutation(exp schema.Expectation, event schema.Mutation) bool {
	method, ok := exp.Action.Method()
	if !ok {
		return false
	}
	if event.Method() != method {
		return false
	}
	if event.Table() != exp.Table {
		return false
	}

	record, where := eventFields(event)
	if !m.matchFields(exp.Values, record) {
		return false
	}
	return m.matchFields(exp.Where, where)
}

// eventFields splits an event into its record and where views. Inserts
// carry no where clause and deletes no record, so constraints on the
// missing side can never match.
func eventFields(event schema.Mutation) (record, where schema.FieldMap) {
	switch ev := event.(type) {
	case schema.InsertMutation:
		return ev.Record, nil
	case schema.UpdateMutation:
		return ev.Record, ev.Where
	case schema.DeleteMutation:
		return nil, ev.Where
	}
	return nil, nil
}

// matchFields checks every spec against the corresponding observed
// field. A missing field is a non-match regardless of spec variant:
// there is no value to bind or judge. Keys are visited in sorted order
// so stateful binders observe a stable sequence.
func (m *Matcher) matchFields(specs schema.SpecMap, fields schema.FieldMap) bool {
	for _, key := range specs.SortedKeys() {
		actual, ok := fields[key]
		if !ok {
			return false
		}
		if !m.MatchValue(specs[key], actual) {
			return false
		}
	}
	return true
}

// matchRegex matches pattern against actual with an implied anchor at
// the start of the string: a match must begin at the first character
// but need not span the whole value. Non-strings and patterns that fail
// to compile never match.
func matchRegex(pattern string, actual any) bool {
	s, ok := actual.(string)
	if !ok {
		return false
	}
	re, err := regexp.Compile(`\A(?:` + pattern + `)`)
	if err != nil {
		return false
	}
	return re.MatchString(s)
}

// valuesEqual compares an expected literal against an observed value.
//
// Numbers compare by value across widths, because the two documents
// rarely agree on representation: one side may decode 42 as int and the
// other as float64. Everything else falls back to deep equality.
func valuesEqual(expected, actual any) bool {
	if ef, ok := toFloat64(expected); ok {
		af, ok := toFloat64(actual)
		return ok && ef == af
	}
	return reflect.DeepEqual(expected, actual)
}

// toFloat64 widens any numeric decode output to float64.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
