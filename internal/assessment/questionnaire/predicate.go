// internal/assessment/questionnaire/predicate.go
package questionnaire

import (
	"fmt"
	"strings"

	"eligibility-workers/internal/models"
)

// Evaluate interprets a skip predicate against the accumulated responses. It never
// mutates responses. Unknown operators evaluate to false so a malformed rule cannot
// hide a question.
func Evaluate(p models.Predicate, responses models.AssessmentResponses) bool {
	answer, ok := responses[p.Field]

	switch p.Operator {
	case models.OpEquals:
		return ok && matchesAny(answer, []string{p.Value})
	case models.OpNotEquals:
		return !ok || !matchesAny(answer, []string{p.Value})
	case models.OpIn:
		return ok && matchesAny(answer, p.Values)
	case models.OpNotIn:
		return !ok || !matchesAny(answer, p.Values)
	case models.OpEmpty:
		return !ok || answer.IsEmpty()
	case models.OpNotEmpty:
		return ok && !answer.IsEmpty()
	default:
		return false
	}
}

// ShouldSkip reports whether any of the question's skip predicates hold.
func ShouldSkip(q models.Question, responses models.AssessmentResponses) bool {
	for _, p := range q.SkipWhen {
		if Evaluate(p, responses) {
			return true
		}
	}
	return false
}

// ValidatePredicate rejects descriptors the interpreter cannot evaluate.
func ValidatePredicate(p models.Predicate) error {
	if strings.TrimSpace(p.Field) == "" {
		return fmt.Errorf("predicate field is required")
	}
	switch p.Operator {
	case models.OpEquals, models.OpNotEquals:
		return nil
	case models.OpIn, models.OpNotIn:
		if len(p.Values) == 0 {
			return fmt.Errorf("predicate %q on %s needs values", p.Operator, p.Field)
		}
		return nil
	case models.OpEmpty, models.OpNotEmpty:
		return nil
	default:
		return fmt.Errorf("unknown predicate operator %q", p.Operator)
	}
}

func matchesAny(answer models.Answer, candidates []string) bool {
	for _, v := range answer.List() {
		for _, c := range candidates {
			if v == c {
				return true
			}
		}
	}
	return false
}
