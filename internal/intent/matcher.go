package intent

import (
	"strings"

	"movie-graph-workers/internal/models"
)

// Matcher classifies questions against a Table. It holds no mutable state and is
// safe for concurrent use.
type Matcher struct {
	table *Table
}

func NewMatcher(table *Table) *Matcher {
	return &Matcher{table: table}
}

// Match returns the descriptor of the first rule, in table order, whose title slot
// captures a non-blank span. ok is false when the question is out of scope.
func (m *Matcher) Match(question string) (d models.QueryDescriptor, ok bool) {
	for _, rule := range m.table.rules {
		for _, loc := range rule.re.FindAllStringSubmatchIndex(question, -1) {
			if loc[2] < 0 {
				continue
			}
			terminated := loc[1] < len(question) && question[loc[1]] == '?'
			subject := normalizeSubject(question[loc[2]:loc[3]], terminated)
			if subject == "" {
				continue
			}
			return models.QueryDescriptor{Intent: rule.Intent, Subject: subject}, true
		}
	}
	return models.QueryDescriptor{}, false
}

// normalizeSubject trims the captured title. When the question did not end the
// title with "?", trailing sentence punctuation is dropped as well.
func normalizeSubject(raw string, terminated bool) string {
	s := strings.TrimSpace(raw)
	if !terminated {
		s = strings.TrimSpace(strings.TrimRight(s, ".!"))
	}
	return s
}
