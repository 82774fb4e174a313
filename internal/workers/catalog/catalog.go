// Package catalog describes every task type the worker manager serves, for
// publishing to the activity registry.
package catalog

import (
	"encoding/json"
	"time"

	"eligibility-workers/internal/common/config"
	"eligibility-workers/internal/common/errors"
	"eligibility-workers/internal/common/validation"
	"eligibility-workers/pkg/registry"

	an "eligibility-workers/internal/workers/assessment/assessment-navigate"
	mc "eligibility-workers/internal/workers/assessment/match-clinics"
	sp "eligibility-workers/internal/workers/assessment/save-progress"
	se "eligibility-workers/internal/workers/assessment/score-eligibility"
	sa "eligibility-workers/internal/workers/assessment/submit-assessment"
	sar "eligibility-workers/internal/workers/communication/send-assessment-results"
)

const activityVersion = "1.0.0"

type entry struct {
	taskType    string
	displayName string
	description string
	category    string
	schema      validation.JSONSchema
	outputs     []string
	errorCodes  []errors.ErrorCode
	tags        []string
}

var entries = []entry{
	{
		taskType:    an.TaskType,
		displayName: "Assessment Navigate",
		description: "Applies one questionnaire action and returns the question to show next",
		category:    "assessment",
		schema:      an.InputSchema,
		outputs: []string{"sessionId", "step", "total", "question", "section", "progress",
			"needsContact", "readyToSubmit", "emailCaptured", "responses", "dwellMs", "stepStartedAt", "resumed"},
		errorCodes: []errors.ErrorCode{errors.ErrCodeInvalidInput, errors.ErrCodeInvalidNavigation, errors.ErrCodeInvalidContact},
		tags:       []string{"questionnaire", "redis"},
	},
	{
		taskType:    se.TaskType,
		displayName: "Score Eligibility",
		description: "Scores questionnaire responses into an eligibility status and confidence",
		category:    "assessment",
		schema:      se.InputSchema,
		outputs:     []string{"eligibility"},
		errorCodes:  []errors.ErrorCode{errors.ErrCodeInvalidInput},
		tags:        []string{"scoring"},
	},
	{
		taskType:    mc.TaskType,
		displayName: "Match Clinics",
		description: "Ranks the clinic directory against questionnaire responses",
		category:    "assessment",
		schema:      mc.InputSchema,
		outputs:     []string{"clinicMatches"},
		errorCodes:  []errors.ErrorCode{errors.ErrCodeInvalidInput, errors.ErrCodeClinicsUnavailable},
		tags:        []string{"matching", "clinics"},
	},
	{
		taskType:    sa.TaskType,
		displayName: "Submit Assessment",
		description: "Scores, matches and records a completed assessment",
		category:    "assessment",
		schema:      sa.InputSchema,
		outputs:     []string{"assessmentId", "eligibility", "clinicMatches", "responses", "completedAt"},
		errorCodes: []errors.ErrorCode{errors.ErrCodeInvalidInput, errors.ErrCodeMissingRequiredAnswer,
			errors.ErrCodeClinicsUnavailable},
		tags: []string{"scoring", "matching", "postgres"},
	},
	{
		taskType:    sp.TaskType,
		displayName: "Save Progress",
		description: "Stores an in-flight assessment so it can be resumed within a day",
		category:    "assessment",
		schema:      sp.InputSchema,
		outputs:     []string{"saved", "sessionId"},
		errorCodes:  []errors.ErrorCode{errors.ErrCodeInvalidInput},
		tags:        []string{"redis"},
	},
	{
		taskType:    sar.TaskType,
		displayName: "Send Assessment Results",
		description: "Emails the respondent a summary of their eligibility and top clinics",
		category:    "communication",
		schema:      sar.InputSchema,
		outputs:     []string{"sent", "messageId"},
		errorCodes:  []errors.ErrorCode{errors.ErrCodeInvalidInput, errors.ErrCodeNotificationSendFailed},
		tags:        []string{"email", "ses"},
	},
}

// TaskTypes lists every task type in registration order.
func TaskTypes() []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.taskType
	}
	return out
}

// Activities builds registry entries using the worker limits from cfg.
func Activities(cfg *config.Config) ([]registry.Activity, error) {
	out := make([]registry.Activity, 0, len(entries))
	for _, e := range entries {
		schema, err := schemaMap(e.schema)
		if err != nil {
			return nil, err
		}
		wcfg := config.GetWorkerConfig(cfg, e.taskType)

		codes := make([]string, len(e.errorCodes))
		for i, c := range e.errorCodes {
			codes[i] = errors.BPMNErrorMapping[c]
		}

		status := "completed"
		if !wcfg.Enabled {
			status = "disabled"
		}

		out = append(out, registry.Activity{
			ID:                   e.taskType,
			DisplayName:          e.displayName,
			Description:          e.description,
			Category:             e.category,
			Version:              activityVersion,
			TaskType:             e.taskType,
			ImplementationStatus: status,
			InputSchema:          schema,
			OutputFields:         e.outputs,
			ErrorCodes:           codes,
			Timeout:              config.GetDuration(wcfg.Timeout).String(),
			Retries:              wcfg.MaxRetries,
			Tags:                 e.tags,
		})
	}
	return out, nil
}

// Registry is a fresh registry holding every activity.
func Registry(cfg *config.Config, now time.Time) (*registry.ActivityRegistry, error) {
	activities, err := Activities(cfg)
	if err != nil {
		return nil, err
	}
	reg := &registry.ActivityRegistry{Version: activityVersion}
	registry.Merge(reg, activities, now)
	return reg, nil
}

func schemaMap(schema validation.JSONSchema) (map[string]interface{}, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
