// internal/workers/assessment/save-progress/handler.go
package saveprogress

import (
	"context"

	"eligibility-workers/internal/assessment/progress"
	"eligibility-workers/internal/common/camunda"
	"eligibility-workers/internal/common/logger"
	"eligibility-workers/internal/common/observability"
	"eligibility-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "save-progress"

type Handler struct {
	config *Config
	store  *progress.Store
	runner *camunda.JobRunner
	logger logger.Logger
}

func NewHandler(config *Config, store *progress.Store, log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		store:  store,
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

// execute never fails the job: a save that did not land is reported as
// saved=false and the process carries on.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = progress.NewSessionID()
	}

	step := input.Step
	if step < 1 {
		step = 1
	}

	saved := h.store.Save(ctx, sessionID, step, input.Responses)

	h.logger.Debug("progress saved", map[string]interface{}{
		"sessionId": sessionID,
		"step":      step,
		"saved":     saved,
	})

	return &Output{Saved: saved, SessionID: sessionID}, nil
}
