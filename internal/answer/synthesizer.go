// Package answer renders the sentence returned for a matched movie question.
package answer

import (
	"fmt"
	"strings"

	"movie-graph-workers/internal/intent"
	"movie-graph-workers/internal/models"
)

const (
	notFoundFormat   = "Sorry, I couldn't find any information about %s."
	clarificationFmt = "I'm not sure how to answer that. Please ask about the %s of a specific movie."
)

// Synthesizer turns a descriptor and its result set into prose. It is read-only
// after construction.
type Synthesizer struct {
	table         *intent.Table
	clarification string
}

func NewSynthesizer(table *intent.Table) *Synthesizer {
	return &Synthesizer{
		table:         table,
		clarification: fmt.Sprintf(clarificationFmt, joinOr(table.Fields())),
	}
}

// Clarification is the reply for questions no rule recognizes.
func (s *Synthesizer) Clarification() string {
	return s.clarification
}

// Render produces the answer for d. Store failures are reported inside an apology,
// descriptors with an intent outside the table get the clarification.
func (s *Synthesizer) Render(d models.QueryDescriptor, rows models.ResultSet) string {
	rule, ok := s.table.Rule(d.Intent)
	if !ok || strings.TrimSpace(d.Subject) == "" {
		return s.clarification
	}

	if rows.Failed() {
		return fmt.Sprintf(notFoundFormat, d.Subject) + " " + rows.Failure
	}

	switch rule.Kind {
	case intent.KindScalar:
		value := strings.TrimSpace(rows.First())
		if value == "" {
			return fmt.Sprintf(rule.Empty, d.Subject)
		}
		return phrase(rule.Success, d.Subject, value)
	default:
		values := rows.NonEmpty()
		if len(values) == 0 {
			return fmt.Sprintf(notFoundFormat, d.Subject)
		}
		return phrase(rule.Success, d.Subject, strings.Join(values, ", "))
	}
}

// phrase fills a success template, dropping a value's own full stop when the
// template already ends the sentence.
func phrase(template, subject, value string) string {
	if strings.HasSuffix(template, ".") {
		value = strings.TrimSuffix(value, ".")
	}
	return fmt.Sprintf(template, subject, value)
}

func joinOr(items []string) string {
	switch len(items) {
	case 0:
		return "details"
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", or " + items[len(items)-1]
}
