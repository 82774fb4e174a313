package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitSchema() JSONSchema {
	return JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"sessionId": SessionIDProperty(),
			"step":      StepProperty(),
			"responses": ResponsesProperty(),
			"action":    {Type: "string", Enum: []string{"next", "back"}},
		},
		Required: []string{"sessionId", "responses"},
	}
}

func TestValidator_ValidateJSON(t *testing.T) {
	v := MustValidator(submitSchema())

	tests := []struct {
		name      string
		document  string
		wantValid bool
		wantField string
	}{
		{
			name:      "valid single and multi answers",
			document:  `{"sessionId":"session_1","step":3,"responses":{"condition":"chronic-pain","treatment-goals":["reduce-pain","sleep-better"]}}`,
			wantValid: true,
		},
		{
			name:      "missing responses",
			document:  `{"sessionId":"session_1"}`,
			wantValid: false,
			wantField: "(root)",
		},
		{
			name:      "answer of wrong type",
			document:  `{"sessionId":"session_1","responses":{"severity":7}}`,
			wantValid: false,
			wantField: "responses.severity",
		},
		{
			name:      "list with non string",
			document:  `{"sessionId":"session_1","responses":{"treatment-goals":["a",2]}}`,
			wantValid: false,
			wantField: "responses.treatment-goals.1",
		},
		{
			name:      "negative step",
			document:  `{"sessionId":"session_1","step":-1,"responses":{}}`,
			wantValid: false,
			wantField: "step",
		},
		{
			name:      "unknown action",
			document:  `{"sessionId":"s","responses":{},"action":"jump"}`,
			wantValid: false,
			wantField: "action",
		},
		{
			name:      "empty session id",
			document:  `{"sessionId":"","responses":{}}`,
			wantValid: false,
			wantField: "sessionId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := v.ValidateJSON(tt.document)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.Valid)
			if !tt.wantValid {
				require.NotEmpty(t, result.Errors)
				assert.Equal(t, tt.wantField, result.Errors[0].Field)
				assert.NotEmpty(t, result.Error())
			}
		})
	}
}

func TestValidator_EmptyDocument(t *testing.T) {
	v := MustValidator(JSONSchema{Type: "object", Properties: map[string]Property{"responses": ResponsesProperty()}})
	result, err := v.ValidateJSON("")
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidator_MalformedDocument(t *testing.T) {
	v := MustValidator(submitSchema())
	_, err := v.ValidateJSON("{not json")
	assert.Error(t, err)
}

func TestValidateInput_OneShot(t *testing.T) {
	result, err := ValidateInput(map[string]interface{}{
		"sessionId": "session_1",
		"responses": map[string]interface{}{"condition": "migraine"},
	}, submitSchema())
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestIsEmail(t *testing.T) {
	tests := map[string]bool{
		"jane@example.com":        true,
		"j.doe+pain@clinic.co.uk": true,
		"":                        false,
		"jane":                    false,
		"jane@example":            false,
		"jane doe@example.com":    false,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, IsEmail(in))
		})
	}
}

func TestDescribe(t *testing.T) {
	assert.Contains(t, Describe(submitSchema()), `"additionalProperties"`)
}

func TestResponsesProperty_SingleValued(t *testing.T) {
	v := MustValidator(JSONSchema{
		Type:       "object",
		Properties: map[string]Property{"responses": ResponsesProperty("condition", "severity")},
	})

	tests := []struct {
		name      string
		document  string
		wantValid bool
		wantField string
	}{
		{"string for single", `{"responses":{"condition":"chronic-pain","severity":"7"}}`, true, ""},
		{"list for single", `{"responses":{"condition":["chronic-pain"]}}`, false, "responses.condition"},
		{"list for other id", `{"responses":{"treatment-goals":["reduce-pain"]}}`, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := v.ValidateJSON(tt.document)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.Valid)
			if !tt.wantValid {
				require.NotEmpty(t, result.Errors)
				assert.Equal(t, tt.wantField, result.Errors[0].Field)
			}
		})
	}
}
