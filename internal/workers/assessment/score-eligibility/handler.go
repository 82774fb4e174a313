// internal/workers/assessment/score-eligibility/handler.go
package scoreeligibility

import (
	"context"

	"eligibility-workers/internal/assessment/eligibility"
	"eligibility-workers/internal/common/camunda"
	"eligibility-workers/internal/common/logger"
	"eligibility-workers/internal/common/metrics"
	"eligibility-workers/internal/common/observability"
	"eligibility-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "score-eligibility"

type Handler struct {
	config *Config
	runner *camunda.JobRunner
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		runner: camunda.NewJobRunner(TaskType, log,
			camunda.WithValidator(validation.MustValidator(InputSchema)),
			camunda.WithObservability(obs),
		),
		logger: log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Run(h.runner, client, job, h.config.Timeout, h.execute)
}

// Execute scores responses without a broker round trip.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	score := eligibility.Score(input.Responses)
	metrics.EligibilityOutcomes.WithLabelValues(string(score.Status)).Inc()

	h.logger.Info("eligibility scored", map[string]interface{}{
		"condition":  input.Responses.Get("condition"),
		"status":     string(score.Status),
		"confidence": score.Confidence,
	})

	return &Output{Eligibility: score}, nil
}
