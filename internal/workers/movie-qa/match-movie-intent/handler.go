// internal/workers/movie-qa/match-movie-intent/handler.go
package matchmovieintent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"movie-graph-workers/internal/answer"
	"movie-graph-workers/internal/common/camunda"
	apperrors "movie-graph-workers/internal/common/errors"
	"movie-graph-workers/internal/common/logger"
	"movie-graph-workers/internal/common/metrics"
	"movie-graph-workers/internal/common/validation"
	"movie-graph-workers/internal/intent"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "match-movie-intent"

var ErrInvalidInput = errors.New("INVALID_INPUT")

var schema = validation.MustNewSchema(inputSchema)

type Handler struct {
	config      *Config
	matcher     *intent.Matcher
	synthesizer *answer.Synthesizer
	logger      logger.Logger
}

func NewHandler(config *Config, table *intent.Table, log logger.Logger) *Handler {
	return &Handler{
		config:      config,
		matcher:     intent.NewMatcher(table),
		synthesizer: answer.NewSynthesizer(table),
		logger:      log.WithFields(map[string]interface{}{"taskType": TaskType}),
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

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	d, ok := h.matcher.Match(input.Question)
	if !ok {
		metrics.QuestionsTotal.WithLabelValues("", "unmatched").Inc()
		h.logger.Info("question not recognized", map[string]interface{}{
			"question": input.Question,
		})
		return &Output{Clarification: h.synthesizer.Clarification()}, nil
	}

	metrics.QuestionsTotal.WithLabelValues(d.Intent.String(), "matched").Inc()
	h.logger.Info("intent matched", map[string]interface{}{
		"intent":  d.Intent.String(),
		"subject": d.Subject,
	})

	return &Output{
		Matched: true,
		Intent:  d.Intent.String(),
		Subject: d.Subject,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
