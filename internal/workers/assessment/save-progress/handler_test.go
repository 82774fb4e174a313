// internal/workers/assessment/save-progress/handler_test.go
package saveprogress

import (
	"context"
	"strings"
	"testing"

	"eligibility-workers/internal/assessment/progress"
	"eligibility-workers/internal/common/database"
	"eligibility-workers/internal/common/errors"
	"eligibility-workers/internal/common/logger"
	"eligibility-workers/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T) (*Handler, *progress.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store := progress.NewStore(
		database.NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()})),
		logger.NewNoOpLogger(),
	)
	return NewHandler(LoadConfig(), store, logger.NewTestLogger(t), nil), store, mr
}

func sampleResponses() models.AssessmentResponses {
	return models.AssessmentResponses{
		"condition": models.SingleAnswer("insomnia"),
		"duration":  models.SingleAnswer("1-2-years"),
	}
}

// ==========================
// Execute Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		step      int
		wantStep  int
	}{
		{"existing session", "session_abc", 3, 3},
		{"step zero clamps to first", "session_zero", 0, 1},
		{"new session", "", 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, store, _ := createTestHandler(t)
			ctx := context.Background()

			out, err := h.Execute(ctx, &Input{SessionID: tt.sessionID, Step: tt.step, Responses: sampleResponses()})
			require.NoError(t, err)
			assert.True(t, out.Saved)

			if tt.sessionID != "" {
				assert.Equal(t, tt.sessionID, out.SessionID)
			} else {
				assert.True(t, strings.HasPrefix(out.SessionID, "session_"))
			}

			loaded := store.Load(ctx, out.SessionID)
			require.NotNil(t, loaded)
			assert.Equal(t, tt.wantStep, loaded.CurrentStep)
			assert.Equal(t, "insomnia", loaded.Responses.Get("condition"))
		})
	}
}

func TestHandler_Execute_OverwritesPreviousSave(t *testing.T) {
	h, store, _ := createTestHandler(t)
	ctx := context.Background()

	_, err := h.Execute(ctx, &Input{SessionID: "session_1", Step: 2, Responses: sampleResponses()})
	require.NoError(t, err)

	responses := sampleResponses()
	responses["severity"] = models.SingleAnswer("6")
	_, err = h.Execute(ctx, &Input{SessionID: "session_1", Step: 3, Responses: responses})
	require.NoError(t, err)

	loaded := store.Load(ctx, "session_1")
	require.NotNil(t, loaded)
	assert.Equal(t, 3, loaded.CurrentStep)
	assert.Equal(t, "6", loaded.Responses.Get("severity"))
}

func TestHandler_Execute_StoreDown(t *testing.T) {
	h, _, mr := createTestHandler(t)
	mr.Close()

	out, err := h.Execute(context.Background(), &Input{SessionID: "session_1", Step: 2, Responses: sampleResponses()})
	require.NoError(t, err)
	assert.False(t, out.Saved)
	assert.Equal(t, "session_1", out.SessionID)
}

// ==========================
// Input Decoding Tests
// ==========================

func TestHandler_DecodeInput(t *testing.T) {
	h, _, _ := createTestHandler(t)

	var in Input
	require.NoError(t, h.runner.Decode(`{"step":4,"responses":{"condition":"ptsd"}}`, &in))
	assert.Equal(t, 4, in.Step)
	assert.Empty(t, in.SessionID)

	err := h.runner.Decode(`{"step":-1,"responses":{}}`, &in)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))

	err = h.runner.Decode(`{"step":"two","responses":{}}`, &in)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
}
