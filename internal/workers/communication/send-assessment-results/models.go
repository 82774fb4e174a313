// internal/workers/communication/send-assessment-results/models.go
package sendassessmentresults

import (
	"eligibility-workers/internal/common/validation"
	"eligibility-workers/internal/models"
)

type Input struct {
	Email         string                    `json:"email"`
	Name          string                    `json:"name"`
	Eligibility   models.EligibilityScore   `json:"eligibility"`
	ClinicMatches []models.ClinicMatchScore `json:"clinicMatches"`
}

type Output struct {
	Sent      bool   `json:"sent"`
	MessageID string `json:"messageId,omitempty"`
}

var InputSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"email": {Type: "string", MaxLength: intPtr(254)},
		"name":  {Type: "string", MaxLength: intPtr(200)},
		"eligibility": {
			Type: "object",
			Properties: map[string]validation.Property{
				"status": {
					Type: "string",
					Enum: []string{
						string(models.StatusHighlyLikely), string(models.StatusLikely),
						string(models.StatusPossible), string(models.StatusEducational),
					},
				},
				"confidence": {Type: "integer"},
			},
			Required: []string{"status", "confidence"},
		},
		"clinicMatches": {
			Type:     "array",
			MaxItems: intPtr(5),
			Items:    &validation.Property{Type: "object"},
		},
	},
	Required: []string{"eligibility"},
}

func intPtr(i int) *int { return &i }
