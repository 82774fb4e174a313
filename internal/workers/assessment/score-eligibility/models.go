// internal/workers/assessment/score-eligibility/models.go
package scoreeligibility

import (
	"eligibility-workers/internal/assessment/questionnaire"
	"eligibility-workers/internal/common/validation"
	"eligibility-workers/internal/models"
)

type Input struct {
	Responses models.AssessmentResponses `json:"responses"`
}

type Output struct {
	Eligibility models.EligibilityScore `json:"eligibility"`
}

var InputSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"responses": validation.ResponsesProperty(questionnaire.SingleValueQuestions()...),
	},
	Required: []string{"responses"},
}
