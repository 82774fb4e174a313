// internal/workers/assessment/submit-assessment/models.go
package submitassessment

import (
	"eligibility-workers/internal/assessment/questionnaire"
	"eligibility-workers/internal/common/validation"
	"eligibility-workers/internal/models"
)

type Input struct {
	SessionID string                     `json:"sessionId"`
	Responses models.AssessmentResponses `json:"responses"`
}

// Output is the assessment result. AssessmentID is empty when the result
// could not be recorded.
type Output struct {
	models.AssessmentResult
}

var InputSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"sessionId": validation.SessionIDProperty(),
		"responses": validation.ResponsesProperty(questionnaire.SingleValueQuestions()...),
	},
	Required: []string{"responses"},
}
