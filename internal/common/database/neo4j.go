// internal/common/database/neo4j.go
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"movie-graph-workers/internal/common/config"
	"movie-graph-workers/internal/models"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ResultColumn is the column read from every record returned by Execute.
const ResultColumn = "result"

// Neo4jClient runs parameterized movie queries against Neo4j.
type Neo4jClient struct {
	driver   neo4j.DriverWithContext
	database string
	timeout  time.Duration
}

// NewNeo4j creates the driver. It does not contact the server; use Ping for that.
func NewNeo4j(cfg config.GraphConfig) (*Neo4jClient, error) {
	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
		func(c *neo4j.Config) {
			if cfg.MaxConnections > 0 {
				c.MaxConnectionPoolSize = cfg.MaxConnections
			}
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	return &Neo4jClient{
		driver:   driver,
		database: cfg.Database,
		timeout:  config.GetDuration(cfg.QueryTimeout),
	}, nil
}

// Ping verifies the server is reachable with the configured credentials.
func (c *Neo4jClient) Ping(ctx context.Context) error {
	if c == nil || c.driver == nil {
		return models.ErrStoreUnavailable
	}
	if err := c.driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return nil
}

// Close closes the driver
func (c *Neo4jClient) Close(ctx context.Context) error {
	if c == nil || c.driver == nil {
		return nil
	}
	return c.driver.Close(ctx)
}

// Execute runs a read query and returns the "result" column of every record in
// order. Null values come back as nil entries.
func (c *Neo4jClient) Execute(ctx context.Context, cypher string, params map[string]string) ([]*string, error) {
	if c == nil || c.driver == nil {
		return nil, models.ErrStoreUnavailable
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: c.database,
	})
	defer session.Close(ctx)

	result, err := session.Run(ctx, cypher, toAnyParams(params))
	if err != nil {
		return nil, classifyNeo4jError(err)
	}

	var values []*string
	for result.Next(ctx) {
		raw, ok := result.Record().Get(ResultColumn)
		if !ok {
			return nil, fmt.Errorf("query returned no %q column", ResultColumn)
		}
		values = append(values, stringValue(raw))
	}
	if err := result.Err(); err != nil {
		return nil, classifyNeo4jError(err)
	}

	return values, nil
}

// ExecuteWrite runs a write statement inside a managed transaction.
func (c *Neo4jClient) ExecuteWrite(ctx context.Context, cypher string, params map[string]any) error {
	if c == nil || c.driver == nil {
		return models.ErrStoreUnavailable
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: c.database,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		return res.Consume(ctx)
	})
	if err != nil {
		return classifyNeo4jError(err)
	}
	return nil
}

func (c *Neo4jClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func classifyNeo4jError(err error) error {
	if neo4j.IsConnectivityError(err) {
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return err
}

func toAnyParams(params map[string]string) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}

// stringValue renders one column value. Lists are joined with ", ".
func stringValue(raw any) *string {
	var s string
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		s = v
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if p := stringValue(item); p != nil {
				parts = append(parts, *p)
			}
		}
		s = strings.Join(parts, ", ")
	default:
		s = fmt.Sprintf("%v", v)
	}
	return &s
}
