// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eligibility-workers/internal/common/config"
	"eligibility-workers/internal/common/errors"
	"eligibility-workers/internal/common/logger"
	"eligibility-workers/internal/common/metrics"
	"eligibility-workers/internal/common/observability"
	"eligibility-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"
)

// StartWorker opens a job worker for taskType with the limits from cfg.
func StartWorker(client zbc.Client, taskType string, cfg config.WorkerConfig, handler worker.JobHandler, log *zap.Logger) worker.JobWorker {
	jw := client.NewJobWorker().
		JobType(taskType).
		Handler(handler).
		MaxJobsActive(cfg.MaxJobsActive).
		Timeout(config.GetDuration(cfg.Timeout)).
		Name(fmt.Sprintf("%s-worker", taskType)).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", cfg.MaxJobsActive),
		zap.Int("timeoutMs", cfg.Timeout),
	)
	return jw
}

// JobRunner holds what every handler does around its own logic: decoding and
// validating variables, completing or failing the job, and recording metrics.
type JobRunner struct {
	taskType   string
	validator  *validation.Validator
	errHandler *errors.ErrorHandler
	logger     logger.Logger
	obs        *observability.Observability
	retry      *RetryConfig
}

type RunnerOption func(*JobRunner)

func WithValidator(v *validation.Validator) RunnerOption {
	return func(r *JobRunner) { r.validator = v }
}

func WithObservability(obs *observability.Observability) RunnerOption {
	return func(r *JobRunner) { r.obs = obs }
}

func WithRetryConfig(cfg *RetryConfig) RunnerOption {
	return func(r *JobRunner) { r.retry = cfg }
}

func NewJobRunner(taskType string, log logger.Logger, opts ...RunnerOption) *JobRunner {
	r := &JobRunner{
		taskType:   taskType,
		errHandler: errors.NewErrorHandler(log),
		logger:     log,
		retry:      DefaultRetryConfig,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Decode validates the raw variables against the runner's schema and then
// unmarshals them into v. Both failures are INVALID_INPUT.
func (r *JobRunner) Decode(variables string, v interface{}) error {
	if r.validator != nil {
		result, err := r.validator.ValidateJSON(variables)
		if err != nil {
			return errors.NewInvalidInputError(err.Error())
		}
		if !result.Valid {
			return errors.NewInvalidInputError(result.Error()).
				WithMetadata("validationErrors", result.Errors)
		}
	}
	if variables == "" {
		variables = "{}"
	}
	if err := json.Unmarshal([]byte(variables), v); err != nil {
		return errors.NewInvalidInputError(fmt.Sprintf("decode variables: %v", err))
	}
	return nil
}

// Run decodes the job into in, calls exec and reports the outcome to the
// broker. in must be a pointer.
func Run[In any, Out any](r *JobRunner, client worker.JobClient, job entities.Job, timeout time.Duration, exec func(context.Context, *In) (*Out, error)) {
	start := time.Now()
	done := metrics.TrackActive(r.taskType)
	defer done()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var in In
	if err := r.Decode(job.Variables, &in); err != nil {
		r.Fail(ctx, client, job, start, err)
		return
	}

	out, err := exec(ctx, &in)
	if err != nil {
		r.Fail(ctx, client, job, start, err)
		return
	}
	r.Complete(ctx, client, job, start, out)
}

func (r *JobRunner) Complete(ctx context.Context, client worker.JobClient, job entities.Job, start time.Time, out interface{}) {
	err := SendWithRetry(ctx, r.retry, "complete-job", func(ctx context.Context) error {
		cmd, err := client.NewCompleteJobCommand().JobKey(job.Key).VariablesFromObject(out)
		if err != nil {
			return err
		}
		_, err = cmd.Send(ctx)
		return err
	})
	if err != nil {
		r.logger.Error("Failed to complete job", map[string]interface{}{
			"taskType": r.taskType,
			"jobKey":   job.Key,
			"error":    err,
		})
		r.record(ctx, start, string(errors.Normalize(err, r.taskType).Code))
		return
	}

	r.logger.Info("Job completed", map[string]interface{}{
		"taskType": r.taskType,
		"jobKey":   job.Key,
		"duration": time.Since(start).String(),
	})
	r.record(ctx, start, "")
}

func (r *JobRunner) Fail(ctx context.Context, client worker.JobClient, job entities.Job, start time.Time, err error) {
	d := r.errHandler.HandleJobError(ctx, client, job, err)
	r.record(ctx, start, d.BPMNError.Code)
}

// record updates both the Prometheus metrics and the OpenTelemetry meter.
// An empty errorCode marks a completed job.
func (r *JobRunner) record(ctx context.Context, start time.Time, errorCode string) {
	metrics.ObserveJob(r.taskType, start, errorCode)

	status := "completed"
	if errorCode != "" {
		status = "failed"
	}
	r.obs.RecordJobProcessed(ctx, r.taskType, status)
	r.obs.RecordJobDuration(ctx, r.taskType, time.Since(start), status)
}
