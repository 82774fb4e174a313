// internal/workers/communication/send-assessment-results/handler.go
package sendassessmentresults

import (
	"context"

	"eligibility-workers/internal/assessment/notify"
	"eligibility-workers/internal/common/camunda"
	"eligibility-workers/internal/common/logger"
	"eligibility-workers/internal/common/metrics"
	"eligibility-workers/internal/common/observability"
	"eligibility-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "send-assessment-results"

type Handler struct {
	config   *Config
	notifier *notify.Notifier
	runner   *camunda.JobRunner
	logger   logger.Logger
}

func NewHandler(config *Config, sender notify.Sender, log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		notifier: notify.NewNotifier(sender),
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
	if input.Email != "" && !validation.IsEmail(input.Email) {
		h.logger.Warn("skipping results email, address is malformed", nil)
		return &Output{}, nil
	}

	sent, messageID, err := h.notifier.Send(ctx, input.Email, notify.Summary{
		Name:        input.Name,
		Eligibility: input.Eligibility,
		Matches:     input.ClinicMatches,
	})
	if err != nil {
		if h.config.FailOnSendError {
			return nil, err
		}
		metrics.RecordPersistenceFailure("send_results_email")
		h.logger.Warn("results email not sent", map[string]interface{}{
			"error": err,
		})
		return &Output{}, nil
	}

	if sent {
		h.logger.Info("results email sent", map[string]interface{}{
			"messageId": messageID,
			"status":    string(input.Eligibility.Status),
		})
	}
	return &Output{Sent: sent, MessageID: messageID}, nil
}
