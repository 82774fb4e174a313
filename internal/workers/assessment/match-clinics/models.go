// internal/workers/assessment/match-clinics/models.go
package matchclinics

import (
	"eligibility-workers/internal/assessment/questionnaire"
	"eligibility-workers/internal/common/validation"
	"eligibility-workers/internal/models"
)

// Input carries the responses to rank against. Clinics is optional; when the
// process already holds the directory it can pass it and skip the lookup.
type Input struct {
	Responses models.AssessmentResponses `json:"responses"`
	Clinics   []models.ClinicProfile     `json:"clinics,omitempty"`
}

type Output struct {
	ClinicMatches []models.ClinicMatchScore `json:"clinicMatches"`
}

var InputSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"responses": validation.ResponsesProperty(questionnaire.SingleValueQuestions()...),
		"clinics": {
			Type:  "array",
			Items: &validation.Property{Type: "object"},
		},
	},
	Required: []string{"responses"},
}
