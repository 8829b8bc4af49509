package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const questionSchema = `{
  "type": "object",
  "required": ["question"],
  "properties": {
    "question": {"type": "string", "minLength": 1, "maxLength": 500}
  }
}`

func TestSchema_ValidateJSON(t *testing.T) {
	s := MustNewSchema(questionSchema)

	tests := []struct {
		name      string
		document  string
		valid     bool
		wantField string
	}{
		{"valid", `{"question": "genre of Titanic?"}`, true, ""},
		{"extra process variables allowed", `{"question": "genre of Titanic?", "requestId": "r-1"}`, true, ""},
		{"missing question", `{}`, false, "question"},
		{"empty question", `{"question": ""}`, false, "question"},
		{"wrong type", `{"question": 42}`, false, "question"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.ValidateJSON(tt.document)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid)
			if !tt.valid {
				require.NotEmpty(t, result.Errors)
				assert.Contains(t, result.Error(), tt.wantField)
				assert.NotEmpty(t, result.Errors[0].Code)
			}
		})
	}
}

func TestSchema_ValidateJSON_Malformed(t *testing.T) {
	_, err := MustNewSchema(questionSchema).ValidateJSON(`{"question":`)
	assert.Error(t, err)
}

func TestSchema_ValidateObject(t *testing.T) {
	s := MustNewSchema(questionSchema)

	result, err := s.ValidateObject(map[string]interface{}{"question": "rating of Heat?"})
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestNewSchema_Invalid(t *testing.T) {
	_, err := NewSchema(`{"type": 12}`)
	assert.Error(t, err)
	assert.Panics(t, func() { MustNewSchema(`not json`) })
}
