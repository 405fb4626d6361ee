package schema

import (
	"encoding/json"
	"fmt"
)

// Action identifies the kind of row change an expectation requires.
// Actions are uppercase on the wire; observed events carry the lowercase
// Method counterpart.
type Action string

const (
	ActionInsert Action = "INSERT"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// Method returns the observed-event method this action corresponds to.
// ok is false for unrecognized actions.
func (a Action) Method() (Method, bool) {
	switch a {
	case ActionInsert:
		return MethodInsert, true
	case ActionUpdate:
		return MethodUpdate, true
	case ActionDelete:
		return MethodDelete, true
	default:
		return "", false
	}
}

// Method identifies the kind of row change an observed event reports.
type Method string

const (
	MethodInsert Method = "insert"
	MethodUpdate Method = "update"
	MethodDelete Method = "delete"
)

// FieldMap holds observed row fields as plain decoded JSON values.
type FieldMap map[string]any

// Expectation describes one expected row-level change.
//
// Action and Table gate the match and are required. Values constrains
// the written fields and Where constrains the row selector; both are
// optional and conjunctive.
type Expectation struct {
	Action Action  `json:"action"`
	Table  string  `json:"table"`
	Values SpecMap `json:"values,omitempty"`
	Where  SpecMap `json:"where,omitempty"`
}

// Validate checks the structural requirements: a recognized action and a
// non-empty table name.
func (e Expectation) Validate() error {
	if e.Action == "" {
		return fmt.Errorf("missing action")
	}
	if _, ok := e.Action.Method(); !ok {
		return fmt.Errorf("unknown action %q", e.Action)
	}
	if e.Table == "" {
		return fmt.Errorf("missing table")
	}
	return nil
}

// Mutation is a sealed interface over observed row-change events.
// Only InsertMutation, UpdateMutation, and DeleteMutation implement it.
type Mutation interface {
	mutation() // Sealed - only these types implement it

	// Method reports the event's change kind.
	Method() Method

	// Table reports the table the event touched.
	Table() string
}

// InsertMutation records a row insertion: the written record.
type InsertMutation struct {
	TableName string
	Record    FieldMap
}

func (InsertMutation) mutation() {}

// Method implements Mutation.
func (InsertMutation) Method() Method { return MethodInsert }

// Table implements Mutation.
func (m InsertMutation) Table() string { return m.TableName }

// MarshalJSON emits the tagged wire form.
func (m InsertMutation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Method Method   `json:"method"`
		Table  string   `json:"table"`
		Record FieldMap `json:"record,omitempty"`
	}{MethodInsert, m.TableName, m.Record})
}

// UpdateMutation records a row update: the written fields plus the
// selector the store used to pick rows.
type UpdateMutation struct {
	TableName string
	Where     FieldMap
	Record    FieldMap
}

func (UpdateMutation) mutation() {}

// Method implements Mutation.
func (UpdateMutation) Method() Method { return MethodUpdate }

// Table implements Mutation.
func (m UpdateMutation) Table() string { return m.TableName }

// MarshalJSON emits the tagged wire form.
func (m UpdateMutation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Method Method   `json:"method"`
		Table  string   `json:"table"`
		Record FieldMap `json:"record,omitempty"`
		Where  FieldMap `json:"where,omitempty"`
	}{MethodUpdate, m.TableName, m.Record, m.Where})
}

// DeleteMutation records a row deletion: the selector only.
type DeleteMutation struct {
	TableName string
	Where     FieldMap
}

func (DeleteMutation) mutation() {}

// Method implements Mutation.
func (DeleteMutation) Method() Method { return MethodDelete }

// Table implements Mutation.
func (m DeleteMutation) Table() string { return m.TableName }

// MarshalJSON emits the tagged wire form.
func (m DeleteMutation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Method Method   `json:"method"`
		Table  string   `json:"table"`
		Where  FieldMap `json:"where,omitempty"`
	}{MethodDelete, m.TableName, m.Where})
}

// DecodeMutation decodes one observed event, dispatching on its method
// tag. Unknown methods and missing table names are errors: an event the
// grader cannot interpret must fail the whole evaluation, not silently
// never match.
func DecodeMutation(data []byte) (Mutation, error) {
	var raw struct {
		Method *string  `json:"method"`
		Table  *string  `json:"table"`
		Record FieldMap `json:"record"`
		Where  FieldMap `json:"where"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw.Method == nil {
		return nil, fmt.Errorf("missing method")
	}
	if raw.Table == nil || *raw.Table == "" {
		return nil, fmt.Errorf("missing table")
	}

	switch Method(*raw.Method) {
	case MethodInsert:
		return InsertMutation{TableName: *raw.Table, Record: raw.Record}, nil
	case MethodUpdate:
		return UpdateMutation{TableName: *raw.Table, Where: raw.Where, Record: raw.Record}, nil
	case MethodDelete:
		return DeleteMutation{TableName: *raw.Table, Where: raw.Where}, nil
	default:
		return nil, fmt.Errorf("unknown method %q", *raw.Method)
	}
}
