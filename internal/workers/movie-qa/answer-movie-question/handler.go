// internal/workers/movie-qa/answer-movie-question/handler.go
package answermoviequestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"movie-graph-workers/internal/common/camunda"
	apperrors "movie-graph-workers/internal/common/errors"
	"movie-graph-workers/internal/common/logger"
	"movie-graph-workers/internal/common/metrics"
	"movie-graph-workers/internal/common/observability"
	"movie-graph-workers/internal/common/validation"
	"movie-graph-workers/internal/history"
	"movie-graph-workers/internal/qa"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "answer-movie-question"

var ErrInvalidInput = errors.New("INVALID_INPUT")

var schema = validation.MustNewSchema(inputSchema)

// HistoryRecorder is satisfied by *history.Recorder.
type HistoryRecorder interface {
	Record(ctx context.Context, e history.Entry) (string, error)
}

type Handler struct {
	config   *Config
	service  *qa.Service
	recorder HistoryRecorder
	obs      *observability.Observability
	logger   logger.Logger
}

// NewHandler builds the handler. recorder may be nil when history is disabled.
func NewHandler(config *Config, service *qa.Service, recorder HistoryRecorder, obs *observability.Observability, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		service:  service,
		recorder: recorder,
		obs:      obs,
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	input, err := parseInput(job.Variables)
	if err != nil {
		return apperrors.NewInvalidInputError(err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, input)
	if err != nil {
		return err
	}
	return camunda.CompleteJob(ctx, client, job, output)
}

func parseInput(variables string) (*Input, error) {
	result, err := schema.ValidateJSON(variables)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, result.Error())
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return &input, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	ans := h.service.Ask(ctx, input.Question)
	h.obs.RecordAnswer(ctx, ans.Descriptor.Intent.String(), ans.Matched)

	output := &Output{
		Answer:  ans.Text,
		Matched: ans.Matched,
		Intent:  ans.Descriptor.Intent.String(),
		Subject: ans.Descriptor.Subject,
	}
	output.HistoryID = h.record(ctx, ans)

	h.logger.Info("question answered", map[string]interface{}{
		"matched": ans.Matched,
		"intent":  output.Intent,
		"subject": output.Subject,
		"failed":  ans.Results.Failed(),
	})

	return output, nil
}

// record writes the history row. Failures are logged and never reach the answer.
func (h *Handler) record(ctx context.Context, ans *qa.Answer) string {
	if !h.config.RecordHistory || h.recorder == nil {
		return ""
	}

	id, err := h.recorder.Record(ctx, history.Entry{
		Question: ans.Question,
		Intent:   ans.Descriptor.Intent.String(),
		Subject:  ans.Descriptor.Subject,
		Matched:  ans.Matched,
		Answer:   ans.Text,
	})
	if err != nil {
		metrics.HistoryWriteFailures.Inc()
		h.logger.Warn("failed to record question history", map[string]interface{}{
			"error": err.Error(),
		})
		return ""
	}
	return id
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
