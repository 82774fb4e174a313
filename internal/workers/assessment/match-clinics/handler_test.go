// internal/workers/assessment/match-clinics/handler_test.go
package matchclinics

import (
	"context"
	goerrors "errors"
	"fmt"
	"testing"

	"eligibility-workers/internal/clinics"
	"eligibility-workers/internal/common/errors"
	"eligibility-workers/internal/common/logger"
	"eligibility-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type failingSource struct{ err error }

func (f failingSource) List(context.Context) ([]models.ClinicProfile, error) {
	return nil, f.err
}

func createTestResponses() models.AssessmentResponses {
	return models.AssessmentResponses{
		"condition":               models.SingleAnswer("chronic-pain"),
		"severity":                models.SingleAnswer("8"),
		"budget":                  models.SingleAnswer("100-200"),
		"consultation-preference": models.SingleAnswer("video"),
		"timeline":                models.SingleAnswer("asap"),
	}
}

func createClinic(id string, conditions ...string) models.ClinicProfile {
	return models.ClinicProfile{
		Overview: models.ClinicOverview{ID: id, Name: "Clinic " + id},
		Services: &models.ClinicServices{
			Conditions:        conditions,
			ConsultationTypes: []string{"video"},
		},
		PatientExperience: &models.PatientExperience{OverallRating: 4.5, TotalReviews: 100},
	}
}

func createTestHandler(t *testing.T, src clinics.Source) *Handler {
	return NewHandler(LoadConfig(), src, logger.NewTestLogger(t), nil)
}

// ==========================
// Execute Tests
// ==========================

func TestHandler_Execute_RanksDirectory(t *testing.T) {
	src := clinics.StaticSource{
		createClinic("c-general"),
		createClinic("c-pain", "Chronic Pain"),
	}
	h := createTestHandler(t, src)

	out, err := h.Execute(context.Background(), &Input{Responses: createTestResponses()})
	require.NoError(t, err)
	require.Len(t, out.ClinicMatches, 2)
	assert.Equal(t, "c-pain", out.ClinicMatches[0].ClinicID)
	assert.GreaterOrEqual(t, out.ClinicMatches[0].Score, out.ClinicMatches[1].Score)
}

func TestHandler_Execute_CapsResults(t *testing.T) {
	var src clinics.StaticSource
	for i := 0; i < 8; i++ {
		src = append(src, createClinic(fmt.Sprintf("c-%d", i), "Chronic Pain"))
	}
	h := createTestHandler(t, src)

	out, err := h.Execute(context.Background(), &Input{Responses: createTestResponses()})
	require.NoError(t, err)
	assert.Len(t, out.ClinicMatches, 5)
}

func TestHandler_Execute_InlineClinicsSkipLookup(t *testing.T) {
	h := createTestHandler(t, failingSource{err: goerrors.New("should not be called")})

	out, err := h.Execute(context.Background(), &Input{
		Responses: createTestResponses(),
		Clinics:   []models.ClinicProfile{createClinic("inline", "Chronic Pain")},
	})
	require.NoError(t, err)
	require.Len(t, out.ClinicMatches, 1)
	assert.Equal(t, "inline", out.ClinicMatches[0].ClinicID)
}

func TestHandler_Execute_DirectoryUnavailable(t *testing.T) {
	tests := []struct {
		name string
		src  clinics.Source
	}{
		{"lookup fails", failingSource{err: goerrors.New("connection refused")}},
		{"directory empty", clinics.StaticSource{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := createTestHandler(t, tt.src)
			_, err := h.Execute(context.Background(), &Input{Responses: createTestResponses()})
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrCodeClinicsUnavailable))
		})
	}
}

// ==========================
// Input Decoding Tests
// ==========================

func TestHandler_DecodeInput(t *testing.T) {
	h := createTestHandler(t, clinics.StaticSource{})

	var in Input
	require.NoError(t, h.runner.Decode(
		`{"responses":{"condition":"anxiety"},"clinics":[{"overview":{"id":"c1","name":"One"}}]}`, &in))
	require.Len(t, in.Clinics, 1)
	assert.Equal(t, "c1", in.Clinics[0].Overview.ID)

	err := h.runner.Decode(`{"responses":{},"clinics":"all"}`, &in)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
}
