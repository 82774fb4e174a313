// internal/workers/assessment/assessment-navigate/models.go
package assessmentnavigate

import (
	"time"

	"eligibility-workers/internal/assessment/questionnaire"
	"eligibility-workers/internal/common/validation"
	"eligibility-workers/internal/models"
)

type Action string

const (
	ActionCurrent        Action = ""
	ActionNext           Action = "next"
	ActionBack           Action = "back"
	ActionCaptureContact Action = "capture-contact"
	ActionSkipContact    Action = "skip-contact"
	ActionRestart        Action = "restart"
	ActionResume         Action = "resume"
)

type Contact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Input is the flow state the process carries between calls plus the action
// to apply to it.
type Input struct {
	SessionID     string                     `json:"sessionId"`
	Action        Action                     `json:"action"`
	CurrentStep   int                        `json:"currentStep"`
	Responses     models.AssessmentResponses `json:"responses"`
	Answer        *models.Answer             `json:"answer,omitempty"`
	Contact       *Contact                   `json:"contact,omitempty"`
	EmailCaptured bool                       `json:"emailCaptured"`
	NeedsContact  bool                       `json:"needsContact"`
	StepStartedAt time.Time                  `json:"stepStartedAt"`
}

type Output struct {
	SessionID     string                     `json:"sessionId"`
	Step          int                        `json:"step"`
	Total         int                        `json:"total"`
	Question      *models.Question           `json:"question,omitempty"`
	Section       questionnaire.Section      `json:"section"`
	Progress      int                        `json:"progress"`
	NeedsContact  bool                       `json:"needsContact"`
	ReadyToSubmit bool                       `json:"readyToSubmit"`
	EmailCaptured bool                       `json:"emailCaptured"`
	Responses     models.AssessmentResponses `json:"responses"`
	DwellMs       int64                      `json:"dwellMs"`
	StepStartedAt time.Time                  `json:"stepStartedAt"`
	Resumed       bool                       `json:"resumed"`
}

var InputSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"sessionId": {Type: "string", MaxLength: validation.SessionIDProperty().MaxLength},
		"action": {
			Type: "string",
			Enum: []string{
				string(ActionCurrent), string(ActionNext), string(ActionBack),
				string(ActionCaptureContact), string(ActionSkipContact),
				string(ActionRestart), string(ActionResume),
			},
		},
		"currentStep":   validation.StepProperty(),
		"responses":     validation.ResponsesProperty(questionnaire.SingleValueQuestions()...),
		"answer":        validation.AnswerProperty(),
		"emailCaptured": {Type: "boolean"},
		"needsContact":  {Type: "boolean"},
		"stepStartedAt": {Type: "string"},
		"contact": {
			Type: "object",
			Properties: map[string]validation.Property{
				"email": {Type: "string"},
				"name":  {Type: "string"},
			},
			Required: []string{"email"},
		},
	},
}
