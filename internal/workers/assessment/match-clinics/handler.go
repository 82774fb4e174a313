// internal/workers/assessment/match-clinics/handler.go
package matchclinics

import (
	"context"

	"eligibility-workers/internal/assessment/matching"
	"eligibility-workers/internal/clinics"
	"eligibility-workers/internal/common/camunda"
	"eligibility-workers/internal/common/logger"
	"eligibility-workers/internal/common/metrics"
	"eligibility-workers/internal/common/observability"
	"eligibility-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "match-clinics"

type Handler struct {
	config  *Config
	source  clinics.Source
	matcher *matching.Matcher
	runner  *camunda.JobRunner
	logger  logger.Logger
}

func NewHandler(config *Config, source clinics.Source, log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		source:  source,
		matcher: matching.NewMatcher(matching.WithMaxResults(config.MaxMatches)),
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	var src clinics.Source = h.source
	if len(input.Clinics) > 0 {
		src = clinics.StaticSource(input.Clinics)
	}

	directory, err := clinics.Load(ctx, src)
	if err != nil {
		return nil, err
	}

	matches := h.matcher.Match(input.Responses, directory)
	metrics.ClinicMatchResults.Observe(float64(len(matches)))

	h.logger.Info("clinics matched", map[string]interface{}{
		"directorySize": len(directory),
		"matches":       len(matches),
	})

	return &Output{ClinicMatches: matches}, nil
}
