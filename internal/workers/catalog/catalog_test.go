package catalog

import (
	"path/filepath"
	"testing"
	"time"

	"eligibility-workers/internal/common/config"
	"eligibility-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestActivities(t *testing.T) {
	cfg := &config.Config{Workers: map[string]config.WorkerConfig{
		"save-progress": {Enabled: false, Timeout: 3000, MaxRetries: 1},
	}}

	activities, err := Activities(cfg)
	require.NoError(t, err)
	require.Len(t, activities, 6)

	byID := map[string]registry.Activity{}
	for _, a := range activities {
		byID[a.ID] = a
	}

	save := byID["save-progress"]
	assert.Equal(t, "disabled", save.ImplementationStatus)
	assert.Equal(t, "3s", save.Timeout)
	assert.Equal(t, 1, save.Retries)

	submit := byID["submit-assessment"]
	assert.Equal(t, "completed", submit.ImplementationStatus)
	assert.Equal(t, "30s", submit.Timeout)
	assert.Contains(t, submit.ErrorCodes, "MISSING_REQUIRED_ANSWER")
	assert.Equal(t, "object", submit.InputSchema["type"])
	assert.Contains(t, submit.InputSchema["properties"], "responses")
}

func TestRegistry_ValidatesAndRoundTrips(t *testing.T) {
	reg, err := Registry(&config.Config{}, now)
	require.NoError(t, err)
	require.NoError(t, registry.Validate(reg))
	assert.Equal(t, "2026-03-01T12:00:00Z", reg.LastUpdated)
	assert.Len(t, TaskTypes(), len(reg.Activities))

	path := filepath.Join(t.TempDir(), "configs", "activity-registry.json")
	require.NoError(t, registry.Save(reg, path))

	loaded, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, reg.Activities[0].ID, loaded.Activities[0].ID)
	assert.Len(t, loaded.Activities, 6)
}

func TestMerge_KeepsHandSetStatus(t *testing.T) {
	reg := &registry.ActivityRegistry{Activities: []registry.Activity{
		{ID: "match-clinics", ImplementationStatus: "verified"},
		{ID: "legacy-task", DisplayName: "Legacy", TaskType: "legacy-task", Category: "other"},
	}}
	generated, err := Activities(&config.Config{})
	require.NoError(t, err)

	registry.Merge(reg, generated, now)

	require.Len(t, reg.Activities, 7)
	for _, a := range reg.Activities {
		if a.ID == "match-clinics" {
			assert.Equal(t, "verified", a.ImplementationStatus)
			assert.Equal(t, "Match Clinics", a.DisplayName)
		}
	}
	assert.NoError(t, registry.Validate(reg))
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name       string
		activities []registry.Activity
		wantErr    string
	}{
		{"empty", nil, "no activities"},
		{"duplicate id", []registry.Activity{
			{ID: "a", DisplayName: "A", TaskType: "a", Category: "c"},
			{ID: "a", DisplayName: "A", TaskType: "b", Category: "c"},
		}, "duplicate activity ID"},
		{"shared task type", []registry.Activity{
			{ID: "a", DisplayName: "A", TaskType: "t", Category: "c"},
			{ID: "b", DisplayName: "B", TaskType: "t", Category: "c"},
		}, "registered twice"},
		{"missing category", []registry.Activity{
			{ID: "a", DisplayName: "A", TaskType: "a"},
		}, "Category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := registry.Validate(&registry.ActivityRegistry{Activities: tt.activities})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
