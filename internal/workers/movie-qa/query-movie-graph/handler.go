// internal/workers/movie-qa/query-movie-graph/handler.go
package querymoviegraph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"movie-graph-workers/internal/common/camunda"
	"movie-graph-workers/internal/common/database"
	apperrors "movie-graph-workers/internal/common/errors"
	"movie-graph-workers/internal/common/logger"
	"movie-graph-workers/internal/common/metrics"
	"movie-graph-workers/internal/common/validation"
	"movie-graph-workers/internal/models"
	"movie-graph-workers/internal/qa"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "query-movie-graph"

var (
	ErrInvalidInput  = errors.New("INVALID_INPUT")
	ErrUnknownIntent = errors.New("UNKNOWN_INTENT")
)

var schema = validation.MustNewSchema(inputSchema)

type Handler struct {
	config  *Config
	service *qa.Service
	cache   *database.ResultCache
	logger  logger.Logger
}

// NewHandler builds the handler. cache may be nil.
func NewHandler(config *Config, service *qa.Service, cache *database.ResultCache, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		service: service,
		cache:   cache,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		return toStandardError(input.Intent, err)
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
	i, ok := models.ParseIntent(input.Intent)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIntent, input.Intent)
	}
	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		return nil, fmt.Errorf("%w: subject is blank", ErrInvalidInput)
	}
	d := models.QueryDescriptor{Intent: i, Subject: subject}

	if rows, found := h.lookupCache(ctx, d); found {
		return &Output{Results: rows.Values, Cached: true}, nil
	}

	rows, err := h.service.Lookup(ctx, d)
	if err != nil {
		if h.config.FailFast {
			return nil, err
		}
		rows = models.ResultSetFromError(err)
		return &Output{Results: []*string{}, Failure: rows.Failure}, nil
	}

	h.storeCache(ctx, d, rows)

	h.logger.Info("graph queried", map[string]interface{}{
		"intent":  d.Intent.String(),
		"subject": d.Subject,
		"rows":    len(rows.Values),
	})

	values := rows.Values
	if values == nil {
		values = []*string{}
	}
	return &Output{Results: values}, nil
}

func (h *Handler) lookupCache(ctx context.Context, d models.QueryDescriptor) (models.ResultSet, bool) {
	if h.cache == nil {
		return models.ResultSet{}, false
	}

	rows, found, err := h.cache.Get(ctx, d)
	switch {
	case err != nil:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		h.logger.Warn("cache lookup failed", map[string]interface{}{
			"key":   h.cache.Key(d),
			"error": err.Error(),
		})
		return models.ResultSet{}, false
	case found:
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return rows, true
	default:
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return models.ResultSet{}, false
	}
}

func (h *Handler) storeCache(ctx context.Context, d models.QueryDescriptor, rows models.ResultSet) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Set(ctx, d, rows); err != nil {
		h.logger.Warn("cache store failed", map[string]interface{}{
			"key":   h.cache.Key(d),
			"error": err.Error(),
		})
	}
}

// toStandardError maps execute errors to the codes the BPMN error handler understands.
func toStandardError(intentName string, err error) error {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return apperrors.NewInvalidInputError(err.Error())
	case errors.Is(err, ErrUnknownIntent):
		return apperrors.NewUnknownIntentError(intentName)
	case models.IsUnavailable(err):
		return apperrors.NewGraphConnectionFailedError(err)
	case models.IsTimeout(err):
		return apperrors.NewGraphQueryTimeoutError(intentName)
	default:
		return apperrors.NewGraphQueryFailedError(intentName, err)
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
