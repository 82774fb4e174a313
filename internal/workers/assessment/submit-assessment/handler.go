// internal/workers/assessment/submit-assessment/handler.go
package submitassessment

import (
	"context"
	"time"

	"eligibility-workers/internal/assessment/eligibility"
	"eligibility-workers/internal/assessment/matching"
	"eligibility-workers/internal/assessment/progress"
	"eligibility-workers/internal/assessment/questionnaire"
	"eligibility-workers/internal/assessment/results"
	"eligibility-workers/internal/clinics"
	"eligibility-workers/internal/common/camunda"
	"eligibility-workers/internal/common/errors"
	"eligibility-workers/internal/common/logger"
	"eligibility-workers/internal/common/metrics"
	"eligibility-workers/internal/common/observability"
	"eligibility-workers/internal/common/validation"
	"eligibility-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "submit-assessment"

type Handler struct {
	config   *Config
	source   clinics.Source
	progress *progress.Store
	recorder *results.Recorder
	matcher  *matching.Matcher
	runner   *camunda.JobRunner
	logger   logger.Logger
	now      func() time.Time
}

// NewHandler wires the submission pipeline. store and recorder may be nil, in
// which case progress is left alone and nothing is recorded.
func NewHandler(config *Config, source clinics.Source, store *progress.Store, recorder *results.Recorder,
	log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		source:   source,
		progress: store,
		recorder: recorder,
		matcher:  matching.NewMatcher(matching.WithMaxResults(config.MaxMatches)),
		runner: camunda.NewJobRunner(TaskType, log,
			camunda.WithValidator(validation.MustValidator(InputSchema)),
			camunda.WithObservability(obs),
		),
		logger: log,
		now:    time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Run(h.runner, client, job, h.config.Timeout, h.execute)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if missing := questionnaire.MissingAnswers(input.Responses); len(missing) > 0 {
		return nil, errors.NewMissingRequiredAnswerError(missing)
	}

	score := eligibility.Score(input.Responses)
	metrics.EligibilityOutcomes.WithLabelValues(string(score.Status)).Inc()

	directory, err := clinics.Load(ctx, h.source)
	if err != nil {
		return nil, err
	}
	matches := h.matcher.Match(input.Responses, directory)
	metrics.ClinicMatchResults.Observe(float64(len(matches)))

	completedAt := h.now().UTC()
	result := models.AssessmentResult{
		Eligibility:   score,
		ClinicMatches: matches,
		Responses:     input.Responses,
		CompletedAt:   completedAt,
	}

	result.AssessmentID = h.record(ctx, input, result)
	h.clearProgress(ctx, input.SessionID)

	h.logger.Info("assessment submitted", map[string]interface{}{
		"sessionId":    input.SessionID,
		"assessmentId": result.AssessmentID,
		"status":       string(score.Status),
		"confidence":   score.Confidence,
		"matches":      len(matches),
	})

	return &Output{AssessmentResult: result}, nil
}

// record stores the result and returns its id, or "" when recording is off or
// fails. A failure never fails the submission.
func (h *Handler) record(ctx context.Context, input *Input, result models.AssessmentResult) string {
	if !h.config.RecordResults || h.recorder == nil {
		return ""
	}

	var completion time.Duration
	if h.progress != nil && input.SessionID != "" {
		completion = h.progress.CompletionTime(ctx, input.SessionID, result.CompletedAt)
	}

	id, err := h.recorder.Record(ctx, results.RecordInput{
		SessionID:      input.SessionID,
		Responses:      input.Responses,
		Eligibility:    result.Eligibility,
		Matches:        result.ClinicMatches,
		CompletedAt:    result.CompletedAt,
		CompletionTime: completion,
		TotalSteps:     len(questionnaire.Questions()),
	})
	if err != nil {
		metrics.RecordPersistenceFailure("record_assessment")
		h.logger.Warn("failed to record assessment", map[string]interface{}{
			"sessionId": input.SessionID,
			"error":     err,
		})
		return ""
	}
	return id
}

func (h *Handler) clearProgress(ctx context.Context, sessionID string) {
	if h.progress == nil || sessionID == "" {
		return
	}
	h.progress.Clear(ctx, sessionID)
}
