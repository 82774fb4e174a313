// internal/models/assessment.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Reserved response keys for captured contact details.
const (
	ResponseKeyEmail = "email"
	ResponseKeyName  = "name"
)

type QuestionType string

const (
	QuestionTypeSingle      QuestionType = "single"
	QuestionTypeMultiple    QuestionType = "multiple"
	QuestionTypeScale       QuestionType = "scale"
	QuestionTypeVisualCards QuestionType = "visual-cards"
)

type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

type PredicateOperator string

const (
	OpEquals    PredicateOperator = "eq"
	OpNotEquals PredicateOperator = "neq"
	OpIn        PredicateOperator = "in"
	OpNotIn     PredicateOperator = "not_in"
	OpEmpty     PredicateOperator = "empty"
	OpNotEmpty  PredicateOperator = "not_empty"
)

// Predicate is a serializable condition over the accumulated responses.
type Predicate struct {
	Field    string            `json:"field"`
	Operator PredicateOperator `json:"operator"`
	Value    string            `json:"value,omitempty"`
	Values   []string          `json:"values,omitempty"`
}

type Question struct {
	ID       string       `json:"id"`
	Prompt   string       `json:"question"`
	Type     QuestionType `json:"type"`
	Options  []Option     `json:"options"`
	Required bool         `json:"required"`
	// SkipWhen hides the question when any predicate holds.
	SkipWhen []Predicate `json:"skipWhen,omitempty"`
}

// Accepts reports whether a is a usable answer to q. Only multiple-choice
// questions take a list.
func (q Question) Accepts(a Answer) bool {
	if a.IsEmpty() {
		return false
	}
	return !a.Multi || q.Type == QuestionTypeMultiple
}

// Answer holds either a single value or, for multiple-choice questions, a list.
type Answer struct {
	Value  string
	Values []string
	Multi  bool
}

func SingleAnswer(v string) Answer {
	return Answer{Value: v}
}

func MultiAnswer(vs ...string) Answer {
	out := make([]string, len(vs))
	copy(out, vs)
	return Answer{Values: out, Multi: true}
}

// IsEmpty reports whether the answer carries nothing usable: an empty list, or a
// string that is blank after trimming.
func (a Answer) IsEmpty() bool {
	if a.Multi {
		return len(a.Values) == 0
	}
	return strings.TrimSpace(a.Value) == ""
}

// String returns the single value, or the list joined with commas.
func (a Answer) String() string {
	if a.Multi {
		return strings.Join(a.Values, ",")
	}
	return a.Value
}

func (a Answer) List() []string {
	if a.Multi {
		return a.Values
	}
	if a.Value == "" {
		return nil
	}
	return []string{a.Value}
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Multi {
		if a.Values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.Values)
	}
	return json.Marshal(a.Value)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Answer{}
		return nil
	}

	switch data[0] {
	case '[':
		var raw []interface{}
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		values := make([]string, 0, len(raw))
		for _, item := range raw {
			s, err := scalarString(item)
			if err != nil {
				return err
			}
			values = append(values, s)
		}
		*a = Answer{Values: values, Multi: true}
		return nil
	default:
		var raw interface{}
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		s, err := scalarString(raw)
		if err != nil {
			return err
		}
		*a = Answer{Value: s}
		return nil
	}
}

func scalarString(v interface{}) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		return "", fmt.Errorf("unsupported answer value %T", v)
	}
}

// AssessmentResponses maps question ids (plus the reserved contact keys) to answers.
type AssessmentResponses map[string]Answer

// Get returns the single string value for id, or "" when absent.
func (r AssessmentResponses) Get(id string) string {
	if r == nil {
		return ""
	}
	a, ok := r[id]
	if !ok || a.Multi {
		return ""
	}
	return a.Value
}

func (r AssessmentResponses) Has(id string) bool {
	if r == nil {
		return false
	}
	_, ok := r[id]
	return ok
}

func (r AssessmentResponses) Email() string { return r.Get(ResponseKeyEmail) }
func (r AssessmentResponses) Name() string { return r.Get(ResponseKeyName) }

func (r AssessmentResponses) Clone() AssessmentResponses {
	out := make(AssessmentResponses, len(r))
	for k, v := range r {
		if v.Multi {
			out[k] = MultiAnswer(v.Values...)
			continue
		}
		out[k] = v
	}
	return out
}

type EligibilityStatus string

const (
	StatusHighlyLikely EligibilityStatus = "highly_likely"
	StatusLikely       EligibilityStatus = "likely"
	StatusPossible     EligibilityStatus = "possible"
	StatusEducational  EligibilityStatus = "educational"
)

type EligibilityScore struct {
	Status             EligibilityStatus `json:"status"`
	Confidence         int               `json:"confidence"`
	Reasoning          []string          `json:"reasoning"`
	RecommendedActions []string          `json:"recommendedActions"`
}

type ScoreBreakdown struct {
	ConditionMatch  int `json:"conditionMatch"`
	BudgetAlignment int `json:"budgetAlignment"`
	FormatMatch     int `json:"formatMatch"`
	Timeline        int `json:"timeline"`
	SuccessRate     int `json:"successRate"`
}

type ClinicMatchScore struct {
	ClinicID   string         `json:"clinicId"`
	ClinicName string         `json:"clinicName"`
	Score      int            `json:"score"`
	Percentage int            `json:"percentage"`
	Reasons    []string       `json:"reasons"`
	Breakdown  ScoreBreakdown `json:"breakdown"`
}

type AssessmentResult struct {
	AssessmentID  string              `json:"assessmentId,omitempty"`
	Eligibility   EligibilityScore    `json:"eligibility"`
	ClinicMatches []ClinicMatchScore  `json:"clinicMatches"`
	Responses     AssessmentResponses `json:"responses"`
	CompletedAt   time.Time           `json:"completedAt"`
}

type AssessmentProgress struct {
	SessionID   string              `json:"sessionId"`
	CurrentStep int                 `json:"currentStep"`
	Responses   AssessmentResponses `json:"responses"`
	SavedAt     time.Time           `json:"savedAt"`
}
