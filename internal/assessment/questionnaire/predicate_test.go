// internal/assessment/questionnaire/predicate_test.go
package questionnaire

import (
	"testing"

	"eligibility-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	responses := models.AssessmentResponses{
		QuestionTreatmentStatus: models.SingleAnswer(TreatmentStatusNone),
		QuestionLifestyleImpact: models.MultiAnswer("sleep", "mood"),
		QuestionDuration:        models.SingleAnswer(" "),
	}

	tests := []struct {
		name string
		pred models.Predicate
		want bool
	}{
		{"eq match", models.Predicate{Field: QuestionTreatmentStatus, Operator: models.OpEquals, Value: TreatmentStatusNone}, true},
		{"eq mismatch", models.Predicate{Field: QuestionTreatmentStatus, Operator: models.OpEquals, Value: "nhs-inadequate"}, false},
		{"eq absent field", models.Predicate{Field: QuestionCondition, Operator: models.OpEquals, Value: "anxiety"}, false},
		{"eq against list element", models.Predicate{Field: QuestionLifestyleImpact, Operator: models.OpEquals, Value: "mood"}, true},
		{"neq match", models.Predicate{Field: QuestionTreatmentStatus, Operator: models.OpNotEquals, Value: "nhs-inadequate"}, true},
		{"neq absent field", models.Predicate{Field: QuestionCondition, Operator: models.OpNotEquals, Value: "anxiety"}, true},
		{"in match", models.Predicate{Field: QuestionTreatmentStatus, Operator: models.OpIn, Values: []string{"a", TreatmentStatusNone}}, true},
		{"in mismatch", models.Predicate{Field: QuestionTreatmentStatus, Operator: models.OpIn, Values: []string{"a", "b"}}, false},
		{"not in list", models.Predicate{Field: QuestionLifestyleImpact, Operator: models.OpNotIn, Values: []string{"minimal"}}, true},
		{"not in overlap", models.Predicate{Field: QuestionLifestyleImpact, Operator: models.OpNotIn, Values: []string{"sleep"}}, false},
		{"empty blank", models.Predicate{Field: QuestionDuration, Operator: models.OpEmpty}, true},
		{"empty absent", models.Predicate{Field: QuestionCondition, Operator: models.OpEmpty}, true},
		{"not empty", models.Predicate{Field: QuestionLifestyleImpact, Operator: models.OpNotEmpty}, true},
		{"unknown operator", models.Predicate{Field: QuestionTreatmentStatus, Operator: "regex"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.pred, responses))
		})
	}

	// evaluation never writes to the response map
	assert.Len(t, responses, 3)
}

func TestValidatePredicate(t *testing.T) {
	tests := []struct {
		name    string
		pred    models.Predicate
		wantErr bool
	}{
		{"valid eq", models.Predicate{Field: "x", Operator: models.OpEquals, Value: "y"}, false},
		{"valid empty", models.Predicate{Field: "x", Operator: models.OpEmpty}, false},
		{"missing field", models.Predicate{Operator: models.OpEquals}, true},
		{"in without values", models.Predicate{Field: "x", Operator: models.OpIn}, true},
		{"unknown operator", models.Predicate{Field: "x", Operator: "gt"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePredicate(tt.pred)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
