// internal/common/errors/handler.go
package errors

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// ErrorHandler reports a failed job back to the broker, either as a failure
// with retries or as a BPMN error for the process to catch.
type ErrorHandler struct {
	logger Logger
}

// Logger is the subset of logger.Logger the handler needs.
type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Decision describes what HandleJobError did with a job.
type Decision struct {
	BPMNError *BPMNError
	Retry     bool
	Retries   int
}

// Decide normalizes err and works out whether the job is retried. It does
// not talk to the broker.
func (h *ErrorHandler) Decide(job entities.Job, err error) (Decision, *StandardError) {
	stdErr := Normalize(err, job.Type)
	bpmnErr := ConvertToBPMNError(stdErr)

	d := Decision{BPMNError: bpmnErr}
	if bpmnErr.Retries > 0 && job.Retries > 0 {
		d.Retry = true
		d.Retries = bpmnErr.Retries
		// job.Retries is what the broker has left; never hand back more
		if int(job.Retries) < d.Retries {
			d.Retries = int(job.Retries)
		}
	}
	return d, stdErr
}

// HandleJobError fails or throws the job depending on the error code.
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) Decision {
	d, stdErr := h.Decide(job, err)
	h.logError(job, stdErr, d)

	if d.Retry {
		h.failJobWithRetries(ctx, client, job, d.BPMNError, d.Retries)
	} else {
		h.throwBPMNError(ctx, client, job, d.BPMNError)
	}
	return d
}

func (h *ErrorHandler) failJobWithRetries(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError, retries int) {
	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(int32(retries)).
		ErrorMessage(bpmnErr.Message)

	if varsJSON, err := json.Marshal(bpmnErr.ToErrorVariables()); err == nil {
		if withVars, err := cmd.VariablesFromString(string(varsJSON)); err == nil {
			_, _ = withVars.Send(ctx)
			return
		}
	}
	_, _ = cmd.Send(ctx)
}

func (h *ErrorHandler) throwBPMNError(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	if varsJSON, err := json.Marshal(bpmnErr.ToErrorVariables()); err == nil {
		if withVars, err := cmd.VariablesFromString(string(varsJSON)); err == nil {
			_, _ = withVars.Send(ctx)
			return
		}
	}
	_, _ = cmd.Send(ctx)
}

func (h *ErrorHandler) logError(job entities.Job, stdErr *StandardError, d Decision) {
	h.logger.Error("Job failed", map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"errorCode":        string(stdErr.Code),
		"bpmnErrorCode":    d.BPMNError.Code,
		"message":          d.BPMNError.Message,
		"details":          stdErr.Details,
		"retryable":        stdErr.Retryable,
		"retry":            d.Retry,
		"retries":          d.Retries,
		"errorCategory":    GetErrorCategory(stdErr.Code),
		"workflowInstance": job.ProcessInstanceKey,
	})
}
