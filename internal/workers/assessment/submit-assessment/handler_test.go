// internal/workers/assessment/submit-assessment/handler_test.go
package submitassessment

import (
	"context"
	goerrors "errors"
	"testing"
	"time"

	"eligibility-workers/internal/assessment/progress"
	"eligibility-workers/internal/assessment/results"
	"eligibility-workers/internal/clinics"
	"eligibility-workers/internal/common/database"
	"eligibility-workers/internal/common/errors"
	"eligibility-workers/internal/common/logger"
	"eligibility-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

var startedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type failingSource struct{}

func (failingSource) List(context.Context) ([]models.ClinicProfile, error) {
	return nil, goerrors.New("connection refused")
}

// completeResponses answers every required question. Treatment history is
// "none", so the three treatment follow-ups are skipped.
func completeResponses() models.AssessmentResponses {
	return models.AssessmentResponses{
		"condition":               models.SingleAnswer("chronic-pain"),
		"duration":                models.SingleAnswer("over-10-years"),
		"severity":                models.SingleAnswer("8"),
		"treatment-status":        models.SingleAnswer("no-treatment"),
		"medication-concerns":     models.MultiAnswer("not-taking"),
		"lifestyle-impact":        models.MultiAnswer("sleep", "work-study"),
		"work-situation":          models.SingleAnswer("full-time"),
		"treatment-goals":         models.MultiAnswer("quality-of-life"),
		"consultation-preference": models.SingleAnswer("video"),
		"budget":                  models.SingleAnswer("100-200"),
		"timeline":                models.SingleAnswer("asap"),
		"information-source":      models.SingleAnswer("healthcare-professional"),
		"email":                   models.SingleAnswer("jane@example.com"),
	}
}

func testDirectory() clinics.StaticSource {
	return clinics.StaticSource{
		{
			Overview: models.ClinicOverview{ID: "c-pain", Name: "Pain Clinic"},
			Services: &models.ClinicServices{Conditions: []string{"Chronic Pain"}, ConsultationTypes: []string{"video"}},
		},
		{
			Overview: models.ClinicOverview{ID: "c-general", Name: "General Clinic"},
		},
	}
}

type fixture struct {
	handler *Handler
	store   *progress.Store
	redis   *miniredis.Miniredis
	db      sqlmock.Sqlmock
}

func newFixture(t *testing.T, src clinics.Source) *fixture {
	t.Helper()

	mr := miniredis.RunT(t)
	rc := database.NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	store := progress.NewStore(rc, logger.NewNoOpLogger(), progress.WithClock(func() time.Time { return startedAt }))

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	recorder := results.NewRecorder(database.NewPostgresFromDB(db))

	h := NewHandler(LoadConfig(), src, store, recorder, logger.NewTestLogger(t), nil)
	h.now = func() time.Time { return startedAt.Add(10 * time.Minute) }

	return &fixture{handler: h, store: store, redis: mr, db: mock}
}

func expectRecord(mock sqlmock.Sqlmock, matches int, completionSeconds int64) {
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO eligibility_assessments").
		WithArgs(
			sqlmock.AnyArg(), "session_1", sqlmock.AnyArg(),
			"jane@example.com", nil, "chronic-pain", int64(8),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), 15, sqlmock.AnyArg(), completionSeconds,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	for i := 0; i < matches; i++ {
		mock.ExpectExec("INSERT INTO assessment_clinic_matches").
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()
}

// ==========================
// Execute Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	f := newFixture(t, testDirectory())
	ctx := context.Background()

	require.True(t, f.store.Save(ctx, "session_1", 12, completeResponses()))
	expectRecord(f.db, 2, 600)

	out, err := f.handler.Execute(ctx, &Input{SessionID: "session_1", Responses: completeResponses()})
	require.NoError(t, err)

	assert.NotEmpty(t, out.AssessmentID)
	assert.Equal(t, models.StatusLikely, out.Eligibility.Status)
	require.Len(t, out.ClinicMatches, 2)
	assert.Equal(t, "c-pain", out.ClinicMatches[0].ClinicID)
	assert.Equal(t, startedAt.Add(10*time.Minute), out.CompletedAt)
	assert.Equal(t, "chronic-pain", out.Responses.Get("condition"))

	assert.False(t, f.redis.Exists("assessment:progress:session_1"))
	assert.False(t, f.redis.Exists("assessment:started:session_1"))
	assert.NoError(t, f.db.ExpectationsWereMet())
}

func TestHandler_Execute_MissingAnswers(t *testing.T) {
	f := newFixture(t, testDirectory())

	responses := completeResponses()
	delete(responses, "budget")
	delete(responses, "timeline")

	_, err := f.handler.Execute(context.Background(), &Input{SessionID: "session_1", Responses: responses})
	require.Error(t, err)

	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeMissingRequiredAnswer, stdErr.Code)
	assert.False(t, stdErr.Retryable)
	assert.Equal(t, []string{"budget", "timeline"}, stdErr.Metadata["missing"])
	assert.NoError(t, f.db.ExpectationsWereMet())
}

func TestHandler_Execute_ClinicsUnavailable(t *testing.T) {
	tests := []struct {
		name string
		src  clinics.Source
	}{
		{"lookup fails", failingSource{}},
		{"directory empty", clinics.StaticSource{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.src)
			ctx := context.Background()
			require.True(t, f.store.Save(ctx, "session_1", 12, completeResponses()))

			_, err := f.handler.Execute(ctx, &Input{SessionID: "session_1", Responses: completeResponses()})
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrCodeClinicsUnavailable))

			// progress survives so a retry can still compute completion time
			assert.True(t, f.redis.Exists("assessment:progress:session_1"))
		})
	}
}

func TestHandler_Execute_RecordFailureIsBestEffort(t *testing.T) {
	f := newFixture(t, testDirectory())
	ctx := context.Background()
	require.True(t, f.store.Save(ctx, "session_1", 12, completeResponses()))

	f.db.ExpectBegin().WillReturnError(goerrors.New("too many connections"))

	out, err := f.handler.Execute(ctx, &Input{SessionID: "session_1", Responses: completeResponses()})
	require.NoError(t, err)
	assert.Empty(t, out.AssessmentID)
	assert.Len(t, out.ClinicMatches, 2)
	assert.False(t, f.redis.Exists("assessment:progress:session_1"))
}

func TestHandler_Execute_WithoutStartMarker(t *testing.T) {
	f := newFixture(t, testDirectory())
	expectRecord(f.db, 2, 0)

	out, err := f.handler.Execute(context.Background(), &Input{SessionID: "session_1", Responses: completeResponses()})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AssessmentID)
	assert.NoError(t, f.db.ExpectationsWereMet())
}

func TestHandler_Execute_RecordingDisabled(t *testing.T) {
	cfg := LoadConfig()
	cfg.RecordResults = false
	h := NewHandler(cfg, testDirectory(), nil, nil, logger.NewNoOpLogger(), nil)

	out, err := h.Execute(context.Background(), &Input{Responses: completeResponses()})
	require.NoError(t, err)
	assert.Empty(t, out.AssessmentID)
	assert.Equal(t, models.StatusLikely, out.Eligibility.Status)
}

// ==========================
// Input Decoding Tests
// ==========================

func TestHandler_DecodeInput(t *testing.T) {
	h := NewHandler(LoadConfig(), testDirectory(), nil, nil, logger.NewNoOpLogger(), nil)

	var in Input
	require.NoError(t, h.runner.Decode(`{"sessionId":"session_1","responses":{"condition":"anxiety"}}`, &in))
	assert.Equal(t, "session_1", in.SessionID)

	err := h.runner.Decode(`{"sessionId":""}`, &in)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
}
