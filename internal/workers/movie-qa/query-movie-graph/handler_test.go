// internal/workers/movie-qa/query-movie-graph/handler_test.go
package querymoviegraph

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"movie-graph-workers/internal/common/config"
	"movie-graph-workers/internal/common/database"
	apperrors "movie-graph-workers/internal/common/errors"
	"movie-graph-workers/internal/common/logger"
	"movie-graph-workers/internal/intent"
	"movie-graph-workers/internal/models"
	"movie-graph-workers/internal/qa"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func str(s string) *string { return &s }

func createTestConfig() *Config {
	return &Config{Timeout: time.Second}
}

func createTestStore(t *testing.T) *qa.MemoryStore {
	t.Helper()
	store := qa.NewMemoryStore()
	store.LoadMovies(intent.DefaultTable(), []models.Movie{
		{
			Title:    "Titanic",
			Genre:    "Drama, Romance",
			Director: "James Cameron",
			Actors:   []string{"Leonardo DiCaprio", "Kate Winslet"},
		},
	})
	return store
}

func createTestHandler(t *testing.T, cfg *Config, store qa.Store, cache *database.ResultCache) *Handler {
	log := logger.NewTestLogger(t)
	return NewHandler(cfg, qa.NewService(intent.DefaultTable(), store, log), cache, log)
}

func createMiniredisCache(t *testing.T) (*database.ResultCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return database.NewResultCache(client, "movie:graph", time.Hour), mr
}

func values(out *Output) []string {
	res := make([]string, 0, len(out.Results))
	for _, v := range out.Results {
		if v == nil {
			res = append(res, "<nil>")
			continue
		}
		res = append(res, *v)
	}
	return res
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		name     string
		input    *Input
		expected []string
	}{
		{name: "genre", input: &Input{Intent: "genre", Subject: "Titanic"}, expected: []string{"Drama, Romance"}},
		{name: "actors in order", input: &Input{Intent: "actors", Subject: "Titanic"}, expected: []string{"Leonardo DiCaprio", "Kate Winslet"}},
		{name: "intent case insensitive", input: &Input{Intent: " Director ", Subject: " Titanic "}, expected: []string{"James Cameron"}},
		{name: "null rating", input: &Input{Intent: "rating", Subject: "Titanic"}, expected: []string{"<nil>"}},
		{name: "unknown movie", input: &Input{Intent: "genre", Subject: "Heat"}, expected: []string{}},
	}

	handler := createTestHandler(t, createTestConfig(), createTestStore(t), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := handler.Execute(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Empty(t, output.Failure)
			assert.False(t, output.Cached)
			assert.NotNil(t, output.Results)
			assert.Equal(t, tt.expected, values(output))
		})
	}
}

func TestHandler_Execute_InputErrors(t *testing.T) {
	handler := createTestHandler(t, createTestConfig(), createTestStore(t), nil)

	_, err := handler.Execute(context.Background(), &Input{Intent: "plot", Subject: "Titanic"})
	assert.True(t, errors.Is(err, ErrUnknownIntent))

	_, err = handler.Execute(context.Background(), &Input{Intent: "genre", Subject: "   "})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

// ==========================
// Store Failure Tests
// ==========================

func TestHandler_Execute_StoreFailureInOutput(t *testing.T) {
	tests := []struct {
		name     string
		storeErr error
		failure  string
	}{
		{
			name:     "unavailable",
			storeErr: fmt.Errorf("connect: %w", models.ErrStoreUnavailable),
			failure:  "Error: Unable to connect to the database",
		},
		{
			name:     "query error",
			storeErr: errors.New("Invalid input 'MATC'"),
			failure:  "Database query error: Invalid input 'MATC'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := qa.NewMemoryStore()
			store.FailWith(tt.storeErr)
			handler := createTestHandler(t, createTestConfig(), store, nil)

			output, err := handler.Execute(context.Background(), &Input{Intent: "genre", Subject: "Titanic"})
			require.NoError(t, err)
			assert.Equal(t, tt.failure, output.Failure)
			assert.Empty(t, output.Results)
		})
	}
}

func TestHandler_Execute_FailFast(t *testing.T) {
	tests := []struct {
		name     string
		storeErr error
		code     apperrors.ErrorCode
	}{
		{name: "unavailable", storeErr: models.ErrStoreUnavailable, code: apperrors.ErrCodeGraphConnectionFailed},
		{name: "timeout", storeErr: context.DeadlineExceeded, code: apperrors.ErrCodeGraphQueryTimeout},
		{name: "query", storeErr: errors.New("syntax error"), code: apperrors.ErrCodeGraphQueryFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := qa.NewMemoryStore()
			store.FailWith(tt.storeErr)
			cfg := createTestConfig()
			cfg.FailFast = true
			handler := createTestHandler(t, cfg, store, nil)

			_, err := handler.Execute(context.Background(), &Input{Intent: "genre", Subject: "Titanic"})
			require.Error(t, err)

			stdErr, ok := apperrors.AsStandardError(toStandardError("genre", err))
			require.True(t, ok)
			assert.Equal(t, tt.code, stdErr.Code)
			assert.True(t, stdErr.Retryable)
		})
	}
}

func TestToStandardError_InputErrors(t *testing.T) {
	stdErr, _ := apperrors.AsStandardError(toStandardError("plot", fmt.Errorf("%w: plot", ErrUnknownIntent)))
	assert.Equal(t, apperrors.ErrCodeUnknownIntent, stdErr.Code)
	assert.False(t, stdErr.Retryable)

	stdErr, _ = apperrors.AsStandardError(toStandardError("genre", fmt.Errorf("%w: blank", ErrInvalidInput)))
	assert.Equal(t, apperrors.ErrCodeInvalidInput, stdErr.Code)
}

// ==========================
// Cache Tests
// ==========================

func TestHandler_Execute_CachesSuccessfulResults(t *testing.T) {
	cache, mr := createMiniredisCache(t)
	store := createTestStore(t)
	handler := createTestHandler(t, createTestConfig(), store, cache)
	input := &Input{Intent: "genre", Subject: "Titanic"}

	first, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.True(t, mr.Exists("movie:graph:genre:Titanic"))

	second, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, values(first), values(second))
	assert.Equal(t, 1, store.Calls())

	mr.FastForward(2 * time.Hour)
	third, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.Equal(t, 2, store.Calls())
}

func TestHandler_Execute_DoesNotCacheFailures(t *testing.T) {
	cache, mr := createMiniredisCache(t)
	store := qa.NewMemoryStore()
	store.FailWith(models.ErrStoreUnavailable)
	handler := createTestHandler(t, createTestConfig(), store, cache)

	output, err := handler.Execute(context.Background(), &Input{Intent: "genre", Subject: "Titanic"})
	require.NoError(t, err)
	assert.NotEmpty(t, output.Failure)
	assert.Empty(t, mr.Keys())
}

func TestHandler_Execute_CacheErrorsIgnored(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := database.NewResultCache(client, "movie:graph", time.Hour)
	mock.ExpectGet("movie:graph:genre:Titanic").SetErr(errors.New("connection refused"))

	handler := createTestHandler(t, createTestConfig(), createTestStore(t), cache)

	output, err := handler.Execute(context.Background(), &Input{Intent: "genre", Subject: "Titanic"})
	require.NoError(t, err)
	assert.False(t, output.Cached)
	assert.Equal(t, []string{"Drama, Romance"}, values(output))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Input Parsing & Config Tests
// ==========================

func TestParseInput(t *testing.T) {
	input, err := parseInput(`{"intent":"genre","subject":"Titanic","question":"genre of Titanic?"}`)
	require.NoError(t, err)
	assert.Equal(t, &Input{Intent: "genre", Subject: "Titanic"}, input)

	for _, variables := range []string{`{"intent":"genre"}`, `{"intent":"","subject":"Titanic"}`, `{"intent":1,"subject":"x"}`} {
		_, err := parseInput(variables)
		assert.True(t, errors.Is(err, ErrInvalidInput), variables)
	}
}

func TestLoadConfig(t *testing.T) {
	cfg := &config.Config{
		Graph: config.GraphConfig{QueryTimeout: 2500},
		Workers: map[string]config.WorkerConfig{
			TaskType: {Enabled: true, Timeout: 30000, FailFast: true},
		},
	}

	loaded := LoadConfig(cfg)
	assert.Equal(t, 2500*time.Millisecond, loaded.Timeout)
	assert.True(t, loaded.FailFast)

	cfg.Graph.QueryTimeout = 0
	assert.Equal(t, 30*time.Second, LoadConfig(cfg).Timeout)
}
