// internal/workers/movie-qa/render-movie-answer/handler.go
package rendermovieanswer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"movie-graph-workers/internal/answer"
	"movie-graph-workers/internal/common/camunda"
	apperrors "movie-graph-workers/internal/common/errors"
	"movie-graph-workers/internal/common/logger"
	"movie-graph-workers/internal/common/observability"
	"movie-graph-workers/internal/common/validation"
	"movie-graph-workers/internal/intent"
	"movie-graph-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "render-movie-answer"

var ErrInvalidInput = errors.New("INVALID_INPUT")

var schema = validation.MustNewSchema(inputSchema)

type Handler struct {
	config      *Config
	synthesizer *answer.Synthesizer
	obs         *observability.Observability
	logger      logger.Logger
}

func NewHandler(config *Config, table *intent.Table, obs *observability.Observability, log logger.Logger) *Handler {
	return &Handler{
		config:      config,
		synthesizer: answer.NewSynthesizer(table),
		obs:         obs,
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	d := models.QueryDescriptor{Subject: input.Subject}
	if i, ok := models.ParseIntent(input.Intent); ok {
		d.Intent = i
	}

	rows := models.ResultSet{Values: input.Results}
	if input.Failure != "" {
		rows = models.FailedResultSet(input.Failure)
	}

	text := h.synthesizer.Render(d, rows)
	h.obs.RecordAnswer(ctx, d.Intent.String(), d.Intent != "")

	h.logger.Info("answer rendered", map[string]interface{}{
		"intent":  d.Intent.String(),
		"subject": d.Subject,
		"failed":  rows.Failed(),
	})

	return &Output{Answer: text}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
