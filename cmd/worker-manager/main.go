// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"movie-graph-workers/internal/common/camunda"
	"movie-graph-workers/internal/common/config"
	"movie-graph-workers/internal/common/database"
	"movie-graph-workers/internal/common/logger"
	"movie-graph-workers/internal/common/observability"
	"movie-graph-workers/internal/history"
	"movie-graph-workers/internal/intent"
	"movie-graph-workers/internal/qa"

	amq "movie-graph-workers/internal/workers/movie-qa/answer-movie-question"
	mmi "movie-graph-workers/internal/workers/movie-qa/match-movie-intent"
	qmg "movie-graph-workers/internal/workers/movie-qa/query-movie-graph"
	rma "movie-graph-workers/internal/workers/movie-qa/render-movie-answer"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	if err := config.ValidateForWorkers(cfg); err != nil {
		zapLog.Fatal("invalid worker configuration", zap.Error(err))
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientFromConfig(cfg.Camunda)
		if err != nil {
			return err
		}
		return zeebe.HealthCheck(ctx)
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init Neo4j with retry ---
	graph, err := database.NewNeo4j(cfg.Graph)
	if err != nil {
		zapLog.Fatal("neo4j driver creation failed", zap.Error(err))
	}
	defer graph.Close(context.Background())

	err = retryWithBackoff(func() error {
		return graph.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "Neo4j connection")
	if err != nil {
		// Jobs still complete with the unavailable answer while the graph is down.
		zapLog.Error("neo4j unreachable, answers will report the outage", zap.Error(err))
	} else {
		zapLog.Info("Neo4j connected successfully")
	}

	// --- Init Redis answer cache ---
	var cache *database.ResultCache
	if cfg.Cache.Enabled {
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		cache = database.NewResultCache(redis.Client, cfg.Cache.KeyPrefix, time.Duration(cfg.Cache.TTL)*time.Second)
		zapLog.Info("Redis connected successfully")
	}

	// --- Init PostgreSQL question history ---
	var recorder amq.HistoryRecorder
	if cfg.History.Enabled {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()

		rec, err := history.NewRecorder(pg, cfg.History.Table)
		if err != nil {
			zapLog.Fatal("history recorder", zap.Error(err))
		}
		if err := rec.EnsureSchema(ctx); err != nil {
			zapLog.Fatal("history schema", zap.Error(err))
		}
		recorder = rec
		zapLog.Info("PostgreSQL connected successfully", zap.String("table", cfg.History.Table))
	}

	// --- Register workers ---
	table := intent.DefaultTable()
	service := qa.NewService(table, graph, log)
	client := zeebe.GetClient()

	workers := []*camunda.CamundaWorker{
		camunda.StartWorker(client, mmi.TaskType, config.GetWorkerConfig(cfg, mmi.TaskType),
			mmi.NewHandler(mmi.LoadConfig(config.GetWorkerConfig(cfg, mmi.TaskType)), table, log), obs, log),
		camunda.StartWorker(client, qmg.TaskType, config.GetWorkerConfig(cfg, qmg.TaskType),
			qmg.NewHandler(qmg.LoadConfig(cfg), service, cache, log), obs, log),
		camunda.StartWorker(client, rma.TaskType, config.GetWorkerConfig(cfg, rma.TaskType),
			rma.NewHandler(rma.LoadConfig(config.GetWorkerConfig(cfg, rma.TaskType)), table, obs, log), obs, log),
		camunda.StartWorker(client, amq.TaskType, config.GetWorkerConfig(cfg, amq.TaskType),
			amq.NewHandler(amq.LoadConfig(cfg), service, recorder, obs, log), obs, log),
	}
	zapLog.Info("Movie Q&A workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	server := &http.Server{Addr: cfg.Metrics.Address}
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy", nil)
	})
	http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		pingCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := graph.Ping(pingCtx); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "not ready", err)
			return
		}
		writeStatus(w, http.StatusOK, "ready", nil)
	})
	if cfg.Metrics.Enabled {
		http.Handle("/metrics", promhttp.Handler())
	}

	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping Health/Metrics server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func writeStatus(w http.ResponseWriter, code int, status string, err error) {
	body := map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	}
	if err != nil {
		body["error"] = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
