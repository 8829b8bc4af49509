// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"movie-graph-workers/internal/common/config"
	apperrors "movie-graph-workers/internal/common/errors"
	"movie-graph-workers/internal/common/logger"
	"movie-graph-workers/internal/common/metrics"
	"movie-graph-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler completes the job itself and returns an error when it could not.
// Returned errors are reported to the broker by the runner.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job) error
}

// Runner adapts a JobHandler to the Zeebe handler signature, adding metrics and
// standardized error reporting.
type Runner struct {
	taskType   string
	handler    JobHandler
	errHandler *apperrors.ErrorHandler
	obs        *observability.Observability
	logger     logger.Logger
}

func NewRunner(taskType string, handler JobHandler, obs *observability.Observability, log logger.Logger) *Runner {
	log = log.WithFields(map[string]interface{}{"taskType": taskType})
	return &Runner{
		taskType:   taskType,
		handler:    handler,
		errHandler: apperrors.NewErrorHandler(log),
		obs:        obs,
		logger:     log,
	}
}

// Run is registered with the job worker.
func (r *Runner) Run(client worker.JobClient, job entities.Job) {
	err := Instrument(context.Background(), r.taskType, r.obs, func() error {
		return r.handler.Handle(client, job)
	})
	if err != nil {
		r.errHandler.HandleJobError(context.Background(), client, job, err)
	}
}

// Instrument runs fn and records job count, duration and failures for taskType.
func Instrument(ctx context.Context, taskType string, obs *observability.Observability, fn func() error) error {
	metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	status := "completed"
	if err != nil {
		status = "failed"
		code := apperrors.Normalize(err).Code
		metrics.WorkerJobsFailed.WithLabelValues(taskType, string(code)).Inc()
	} else {
		metrics.WorkerJobsCompleted.WithLabelValues(taskType).Inc()
	}
	metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())

	obs.RecordJobProcessed(ctx, taskType, status)
	obs.RecordJobDuration(ctx, taskType, elapsed, status)
	return err
}

// CompleteJob sends the output variables for job.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if _, err := cmd.Send(ctx); err != nil {
		return apperrors.NewExternalServiceError("zeebe", err)
	}
	return nil
}

type CamundaWorker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

// StartWorker opens a job worker for taskType. It returns nil when the worker is disabled.
func StartWorker(
	client zbc.Client,
	taskType string,
	wcfg config.WorkerConfig,
	handler JobHandler,
	obs *observability.Observability,
	log logger.Logger,
) *CamundaWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return nil
	}

	runner := NewRunner(taskType, handler, obs, log)
	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(runner.Run).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})

	return &CamundaWorker{
		worker:   jobWorker,
		logger:   log,
		taskType: taskType,
	}
}

func (w *CamundaWorker) Stop() {
	if w == nil {
		return
	}
	w.logger.Info("stopping worker", map[string]interface{}{"taskType": w.taskType})
	w.worker.Close()
	w.worker.AwaitClose()
}
