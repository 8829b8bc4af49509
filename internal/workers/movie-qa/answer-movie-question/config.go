// internal/workers/movie-qa/answer-movie-question/config.go
package answermoviequestion

import (
	"time"

	"movie-graph-workers/internal/common/config"
)

type Config struct {
	Timeout       time.Duration
	RecordHistory bool
}

func LoadConfig(cfg *config.Config) *Config {
	wcfg := config.GetWorkerConfig(cfg, TaskType)

	timeout := config.GetDuration(wcfg.Timeout)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Config{
		Timeout:       timeout,
		RecordHistory: cfg.History.Enabled,
	}
}
