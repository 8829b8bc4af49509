// internal/workers/movie-qa/render-movie-answer/handler_test.go
package rendermovieanswer

import (
	"context"
	"errors"
	"testing"
	"time"

	"movie-graph-workers/internal/common/logger"
	"movie-graph-workers/internal/intent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func str(s string) *string { return &s }

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(&Config{Timeout: time.Second}, intent.DefaultTable(), nil, logger.NewTestLogger(t))
}

const clarification = "I'm not sure how to answer that. Please ask about the genre, actors, director, rating, or overview of a specific movie."

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name     string
		input    *Input
		expected string
	}{
		{
			name:     "genre",
			input:    &Input{Intent: "genre", Subject: "Titanic", Results: []*string{str("Drama, Romance")}},
			expected: "The genre of Titanic is Drama, Romance.",
		},
		{
			name:     "actors joined in order",
			input:    &Input{Intent: "actors", Subject: "Heat", Results: []*string{str("Al Pacino"), nil, str("Robert De Niro")}},
			expected: "The actors in Heat are Al Pacino, Robert De Niro.",
		},
		{
			name:     "director",
			input:    &Input{Intent: "director", Subject: "Inception", Results: []*string{str("Christopher Nolan")}},
			expected: "The director of Inception is Christopher Nolan.",
		},
		{
			name:     "rating uses first value",
			input:    &Input{Intent: "rating", Subject: "Heat", Results: []*string{str("8.3"), str("9.9")}},
			expected: "The rating of Heat is 8.3.",
		},
		{
			name:     "null rating",
			input:    &Input{Intent: "rating", Subject: "Titanic", Results: []*string{nil}},
			expected: "No rating found for Titanic.",
		},
		{
			name:     "overview without rows",
			input:    &Input{Intent: "overview", Subject: "Heat"},
			expected: "No overview found for Heat.",
		},
		{
			name:     "genre without rows",
			input:    &Input{Intent: "genre", Subject: "Heat", Results: []*string{}},
			expected: "Sorry, I couldn't find any information about Heat.",
		},
		{
			name:     "store failure",
			input:    &Input{Intent: "director", Subject: "Inception", Failure: "Error: Unable to connect to the database"},
			expected: "Sorry, I couldn't find any information about Inception. Error: Unable to connect to the database",
		},
		{
			name:     "no intent",
			input:    &Input{},
			expected: clarification,
		},
		{
			name:     "unsupported intent",
			input:    &Input{Intent: "plot", Subject: "Heat", Results: []*string{str("x")}},
			expected: clarification,
		},
	}

	handler := createTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := handler.Execute(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, output.Answer)
		})
	}
}

// ==========================
// Input Parsing Tests
// ==========================

func TestParseInput(t *testing.T) {
	input, err := parseInput(`{"intent":"rating","subject":"Heat","results":[null,"8.3"],"failure":null,"question":"rating of Heat?"}`)
	require.NoError(t, err)
	assert.Equal(t, "rating", input.Intent)
	require.Len(t, input.Results, 2)
	assert.Nil(t, input.Results[0])
	assert.Equal(t, "8.3", *input.Results[1])

	input, err = parseInput(`{"matched":false}`)
	require.NoError(t, err)
	assert.Empty(t, input.Intent)

	for _, variables := range []string{`{"results":"Drama"}`, `{"results":[1]}`, `{"intent":5}`} {
		_, err := parseInput(variables)
		assert.True(t, errors.Is(err, ErrInvalidInput), variables)
	}
}
