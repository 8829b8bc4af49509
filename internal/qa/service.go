// Package qa answers free-form movie questions end to end: match, query, render.
package qa

import (
	"context"
	"time"

	"movie-graph-workers/internal/answer"
	"movie-graph-workers/internal/common/logger"
	"movie-graph-workers/internal/common/metrics"
	"movie-graph-workers/internal/intent"
	"movie-graph-workers/internal/models"
)

// Store executes a parameterized graph query and returns the "result" column.
type Store interface {
	Execute(ctx context.Context, cypher string, params map[string]string) ([]*string, error)
}

// Answer is the outcome of one question.
type Answer struct {
	Question   string                 `json:"question"`
	Matched    bool                   `json:"matched"`
	Descriptor models.QueryDescriptor `json:"descriptor"`
	Results    models.ResultSet       `json:"results"`
	Text       string                 `json:"answer"`
}

// Service composes the matcher, the store and the synthesizer. It never returns
// an error: a question it cannot answer gets a clarification or an apology.
type Service struct {
	table       *intent.Table
	matcher     *intent.Matcher
	synthesizer *answer.Synthesizer
	store       Store
	logger      logger.Logger
}

func NewService(table *intent.Table, store Store, log logger.Logger) *Service {
	return &Service{
		table:       table,
		matcher:     intent.NewMatcher(table),
		synthesizer: answer.NewSynthesizer(table),
		store:       store,
		logger:      log,
	}
}

// Match classifies a question without touching the store.
func (s *Service) Match(question string) (models.QueryDescriptor, bool) {
	d, ok := s.matcher.Match(question)
	if ok {
		metrics.QuestionsTotal.WithLabelValues(d.Intent.String(), "matched").Inc()
	} else {
		metrics.QuestionsTotal.WithLabelValues("", "unmatched").Inc()
	}
	return d, ok
}

// Ask answers one question.
func (s *Service) Ask(ctx context.Context, question string) *Answer {
	d, ok := s.Match(question)
	if !ok {
		s.logger.Debug("question not recognized", map[string]interface{}{"question": question})
		return &Answer{Question: question, Text: s.synthesizer.Clarification()}
	}

	rows, err := s.Lookup(ctx, d)
	if err != nil {
		rows = models.ResultSetFromError(err)
	}

	return &Answer{
		Question:   question,
		Matched:    true,
		Descriptor: d,
		Results:    rows,
		Text:       s.synthesizer.Render(d, rows),
	}
}

// Lookup runs the graph query bound to d. Store errors are returned as is.
func (s *Service) Lookup(ctx context.Context, d models.QueryDescriptor) (models.ResultSet, error) {
	q, err := s.table.Query(d)
	if err != nil {
		return models.ResultSet{}, err
	}

	start := time.Now()
	values, err := s.store.Execute(ctx, q.Cypher, q.Params)
	metrics.GraphQueryDuration.WithLabelValues(d.Intent.String()).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GraphQueryFailures.WithLabelValues(d.Intent.String(), failureReason(err)).Inc()
		s.logger.Warn("graph query failed", map[string]interface{}{
			"intent":  d.Intent.String(),
			"subject": d.Subject,
			"error":   err.Error(),
		})
		return models.ResultSet{}, err
	}

	return models.ResultSet{Values: values}, nil
}

// Render delegates to the synthesizer.
func (s *Service) Render(d models.QueryDescriptor, rows models.ResultSet) string {
	return s.synthesizer.Render(d, rows)
}

// Clarification is the reply for unrecognized questions.
func (s *Service) Clarification() string {
	return s.synthesizer.Clarification()
}

func failureReason(err error) string {
	switch {
	case models.IsUnavailable(err):
		return "unavailable"
	case models.IsTimeout(err):
		return "timeout"
	default:
		return "query"
	}
}
