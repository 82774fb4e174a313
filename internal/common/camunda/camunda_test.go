package camunda

import (
	"context"
	goerrors "errors"
	"testing"
	"time"

	"eligibility-workers/internal/common/errors"
	"eligibility-workers/internal/common/logger"
	"eligibility-workers/internal/common/metrics"
	"eligibility-workers/internal/common/validation"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastRetry = &RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

// ==========================
// Retry
// ==========================

func TestSendWithRetry_TransientThenSuccess(t *testing.T) {
	calls := 0
	err := SendWithRetry(context.Background(), fastRetry, "complete-job", func(context.Context) error {
		calls++
		if calls < 3 {
			return goerrors.New("rpc error: code = Unavailable")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestSendWithRetry_GivesUp(t *testing.T) {
	calls := 0
	err := SendWithRetry(context.Background(), fastRetry, "complete-job", func(context.Context) error {
		calls++
		return goerrors.New("connection refused")
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInternalError))
}

func TestSendWithRetry_NonTransientStopsImmediately(t *testing.T) {
	calls := 0
	err := SendWithRetry(context.Background(), fastRetry, "complete-job", func(context.Context) error {
		calls++
		return goerrors.New("NOT_FOUND: job 42 not found")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestSendWithRetry_DeadlineMapsToTimeout(t *testing.T) {
	err := SendWithRetry(context.Background(), &RetryConfig{MaxRetries: 0}, "complete-job", func(context.Context) error {
		return goerrors.New("context deadline exceeded")
	})
	assert.True(t, errors.HasCode(err, errors.ErrCodeJobTimeout))
}

func TestSendWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	slow := &RetryConfig{MaxRetries: 5, BaseDelay: time.Hour, MaxDelay: time.Hour}
	err := SendWithRetry(ctx, slow, "complete-job", func(context.Context) error {
		return goerrors.New("unavailable")
	})
	assert.True(t, errors.HasCode(err, errors.ErrCodeJobTimeout))
}

func TestBackoff(t *testing.T) {
	cfg := &RetryConfig{BaseDelay: time.Second, MaxDelay: 5 * time.Second}
	assert.Equal(t, time.Second, backoff(cfg, 0))
	assert.Equal(t, 2*time.Second, backoff(cfg, 1))
	assert.Equal(t, 4*time.Second, backoff(cfg, 2))
	assert.Equal(t, 5*time.Second, backoff(cfg, 3))
}

func TestIsRetryableZeebeError(t *testing.T) {
	assert.True(t, isRetryableZeebeError(goerrors.New("Connection Reset by peer")))
	assert.True(t, isRetryableZeebeError(goerrors.New("broken pipe")))
	assert.False(t, isRetryableZeebeError(goerrors.New("invalid argument")))
}

// ==========================
// JobRunner
// ==========================

type navigateVars struct {
	SessionID string `json:"sessionId"`
	Step      int    `json:"step"`
}

func newRunner(t *testing.T) *JobRunner {
	schema := validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"sessionId": validation.SessionIDProperty(),
			"step":      validation.StepProperty(),
		},
		Required: []string{"sessionId"},
	}
	return NewJobRunner("runner-test", logger.NewTestLogger(t),
		WithValidator(validation.MustValidator(schema)),
		WithRetryConfig(fastRetry),
	)
}

func TestJobRunner_Decode(t *testing.T) {
	r := newRunner(t)

	var vars navigateVars
	require.NoError(t, r.Decode(`{"sessionId":"session_1","step":4}`, &vars))
	assert.Equal(t, "session_1", vars.SessionID)
	assert.Equal(t, 4, vars.Step)

	err := r.Decode(`{"step":4}`, &vars)
	require.Error(t, err)
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidInput, stdErr.Code)
	assert.NotNil(t, stdErr.Metadata["validationErrors"])

	err = r.Decode(`{"sessionId":`, &vars)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
}

func TestJobRunner_DecodeWithoutValidator(t *testing.T) {
	r := NewJobRunner("runner-test", logger.NewNoOpLogger())

	var vars navigateVars
	require.NoError(t, r.Decode("", &vars))
	assert.Equal(t, "", vars.SessionID)
}

func TestJobRunner_Record(t *testing.T) {
	r := NewJobRunner("runner-record", logger.NewNoOpLogger())
	completed := testutil.ToFloat64(metrics.WorkerJobsCompleted.WithLabelValues("runner-record"))

	r.record(context.Background(), time.Now(), "")
	r.record(context.Background(), time.Now(), "CLINICS_UNAVAILABLE")

	assert.Equal(t, completed+1, testutil.ToFloat64(metrics.WorkerJobsCompleted.WithLabelValues("runner-record")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.WorkerJobsFailed.WithLabelValues("runner-record", "CLINICS_UNAVAILABLE")))
}
