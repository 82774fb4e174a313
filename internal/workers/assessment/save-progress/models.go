// internal/workers/assessment/save-progress/models.go
package saveprogress

import (
	"eligibility-workers/internal/assessment/questionnaire"
	"eligibility-workers/internal/common/validation"
	"eligibility-workers/internal/models"
)

// Input is the state to persist. An empty SessionID starts a new session.
type Input struct {
	SessionID string                     `json:"sessionId"`
	Step      int                        `json:"step"`
	Responses models.AssessmentResponses `json:"responses"`
}

type Output struct {
	Saved     bool   `json:"saved"`
	SessionID string `json:"sessionId"`
}

var InputSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"sessionId": {Type: "string", MaxLength: validation.SessionIDProperty().MaxLength},
		"step":      validation.StepProperty(),
		"responses": validation.ResponsesProperty(questionnaire.SingleValueQuestions()...),
	},
	Required: []string{"step", "responses"},
}
