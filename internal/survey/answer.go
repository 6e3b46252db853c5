// internal/survey/answer.go
// Typed survey answers. Raw response values are stored as JSON and only
// become one of these variants after decoding against the question's
// declared type, so the matching engine never sees an untagged value.

package survey

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Importance is a user's stated weight for one question.
type Importance string

const (
	ImportanceNotImportant Importance = "not_important"
	ImportanceSomewhat     Importance = "somewhat"
	ImportanceImportant    Importance = "important"
	ImportanceDealbreaker  Importance = "dealbreaker"
)

// ValidImportance reports whether s is a recognized importance level.
func ValidImportance(s Importance) bool {
	switch s {
	case ImportanceNotImportant, ImportanceSomewhat, ImportanceImportant, ImportanceDealbreaker:
		return true
	}
	return false
}

// Value is the tagged variant over answer payloads. Exactly one concrete
// type exists per QuestionType.
type Value interface {
	isValue()
}

// EnumValue is a single choice from an enum question's options.
type EnumValue string

// LikertValue is a point on a likert question's integer scale, 1-based.
type LikertValue int

// MultiSelectValue is the chosen subset of a multiselect question's options.
type MultiSelectValue []string

// TextValue is free-form text. Not comparable by the matching engine.
type TextValue string

func (EnumValue) isValue()        {}
func (LikertValue) isValue()      {}
func (MultiSelectValue) isValue() {}
func (TextValue) isValue()        {}

// Answer is one user's response to one catalog question.
type Answer struct {
	QuestionID int        `json:"question_id"`
	Section    int        `json:"section"`
	Value      Value      `json:"value"`
	Importance Importance `json:"importance_weight"`
	Confidence int        `json:"confidence"`
}

// AnswerSet is a user's sparse answer map keyed by question id. Question
// ids are unique across sections, so the (section, question) pair the
// storage layer uses collapses to the id here; Section is kept on the
// Answer for round-tripping.
type AnswerSet map[int]Answer

// DecodeValue parses a raw JSON payload into the variant demanded by the
// question's declared type. Values that don't fit the declared shape are
// rejected here, at the data-feed boundary.
func DecodeValue(q Question, raw json.RawMessage) (Value, error) {
	switch q.Type {
	case TypeEnum:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("question %d: enum value must be a string: %w", q.ID, err)
		}
		if !q.hasOption(s) {
			return nil, fmt.Errorf("question %d: %q is not one of the options", q.ID, s)
		}
		return EnumValue(s), nil

	case TypeLikert:
		var n int
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, fmt.Errorf("question %d: likert value must be an integer: %w", q.ID, err)
		}
		if n < 1 || n > q.LikertScale() {
			return nil, fmt.Errorf("question %d: likert value %d outside 1-%d", q.ID, n, q.LikertScale())
		}
		return LikertValue(n), nil

	case TypeMultiSelect:
		var items []string
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("question %d: multiselect value must be a string array: %w", q.ID, err)
		}
		seen := make(map[string]bool, len(items))
		out := make([]string, 0, len(items))
		for _, item := range items {
			if !q.hasOption(item) {
				return nil, fmt.Errorf("question %d: %q is not one of the options", q.ID, item)
			}
			if !seen[item] {
				seen[item] = true
				out = append(out, item)
			}
		}
		sort.Strings(out)
		return MultiSelectValue(out), nil

	case TypeText:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("question %d: text value must be a string: %w", q.ID, err)
		}
		return TextValue(s), nil
	}
	return nil, fmt.Errorf("question %d: unsupported question type %q", q.ID, q.Type)
}

// EncodeValue renders a typed value back to its stored JSON form.
func EncodeValue(v Value) (json.RawMessage, error) {
	switch val := v.(type) {
	case EnumValue:
		return json.Marshal(string(val))
	case LikertValue:
		return json.Marshal(int(val))
	case MultiSelectValue:
		return json.Marshal([]string(val))
	case TextValue:
		return json.Marshal(string(val))
	}
	return nil, fmt.Errorf("unsupported value type %T", v)
}

func (q Question) hasOption(s string) bool {
	for _, opt := range q.Options {
		if opt == s {
			return true
		}
	}
	return false
}
