// internal/workers/movie-qa/query-movie-graph/config.go
package querymoviegraph

import (
	"time"

	"movie-graph-workers/internal/common/config"
)

type Config struct {
	Timeout  time.Duration
	FailFast bool
}

// LoadConfig bounds each job by the graph query timeout.
func LoadConfig(cfg *config.Config) *Config {
	wcfg := config.GetWorkerConfig(cfg, TaskType)

	timeout := config.GetDuration(cfg.Graph.QueryTimeout)
	if timeout <= 0 {
		timeout = config.GetDuration(wcfg.Timeout)
	}

	return &Config{
		Timeout:  timeout,
		FailFast: wcfg.FailFast,
	}
}
