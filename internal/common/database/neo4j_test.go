package database

import (
	"context"
	"errors"
	"testing"

	"movie-graph-workers/internal/common/config"
	"movie-graph-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringValue(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want *string
	}{
		{"nil", nil, nil},
		{"string", "Drama, Romance", ptr("Drama, Romance")},
		{"empty string", "", ptr("")},
		{"float", 8.1, ptr("8.1")},
		{"int", int64(1997), ptr("1997")},
		{"list", []any{"Drama", nil, "Romance"}, ptr("Drama, Romance")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stringValue(tt.raw))
		})
	}
}

func TestNeo4jClient_Nil(t *testing.T) {
	var c *Neo4jClient
	ctx := context.Background()

	_, err := c.Execute(ctx, "MATCH (m:Movie {title: $title}) RETURN m.genre AS result", map[string]string{"title": "Heat"})
	assert.True(t, errors.Is(err, models.ErrStoreUnavailable))
	assert.True(t, errors.Is(c.Ping(ctx), models.ErrStoreUnavailable))
	assert.True(t, errors.Is(c.ExecuteWrite(ctx, "RETURN 1", nil), models.ErrStoreUnavailable))
	assert.NoError(t, c.Close(ctx))

	rows := models.ResultSetFromError(err)
	assert.Equal(t, models.UnavailableDetail, rows.Failure)
}

func TestNewNeo4j_InvalidURI(t *testing.T) {
	_, err := NewNeo4j(configWithURI("not a uri"))
	require.Error(t, err)
}

func TestToAnyParams(t *testing.T) {
	assert.Equal(t, map[string]any{"title": "Heat"}, toAnyParams(map[string]string{"title": "Heat"}))
	assert.Empty(t, toAnyParams(nil))
}

func ptr(s string) *string { return &s }

func configWithURI(uri string) config.GraphConfig {
	return config.GraphConfig{URI: uri, Username: "neo4j", Password: "test", QueryTimeout: 1000}
}
