// Package intent maps free-form movie questions to a fixed set of intents and
// the parameterized graph queries that answer them.
package intent

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"movie-graph-workers/internal/models"
)

var (
	ErrInvalidRule     = errors.New("invalid intent rule")
	ErrDuplicateIntent = errors.New("duplicate intent")
	ErrUnknownIntent   = errors.New("unknown intent")
)

// Kind tells the synthesizer how the result values of an intent are rendered.
type Kind int

const (
	// KindList joins every returned value.
	KindList Kind = iota
	// KindScalar uses the first returned value only.
	KindScalar
)

// Rule binds one intent to its recognition phrase, graph query and answer phrasing.
//
// Keyword is the phrase that precedes the movie title ("genre of"). Pattern may
// replace it with a custom expression holding exactly one capture group for the title.
// Success is a fmt template receiving the subject as %[1]s and the value(s) as %[2]s.
// Empty receives the subject as %[1]s and is required for scalar rules.
type Rule struct {
	Intent  models.Intent
	Keyword string
	Pattern string
	Cypher  string
	Kind    Kind
	Field   string
	Success string
	Empty   string
}

type compiledRule struct {
	Rule
	re *regexp.Regexp
}

// Table is an immutable, ordered set of intent rules. Order is matching priority.
type Table struct {
	rules []compiledRule
	index map[models.Intent]int
}

// NewTable validates and compiles rules. The rules are copied; later changes to
// the caller's slice do not affect the table.
func NewTable(rules ...Rule) (*Table, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: at least one rule is required", ErrInvalidRule)
	}

	t := &Table{
		rules: make([]compiledRule, 0, len(rules)),
		index: make(map[models.Intent]int, len(rules)),
	}

	for _, r := range rules {
		if err := validateRule(r); err != nil {
			return nil, err
		}
		if _, exists := t.index[r.Intent]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateIntent, r.Intent)
		}

		re, err := compilePattern(r)
		if err != nil {
			return nil, err
		}

		t.index[r.Intent] = len(t.rules)
		t.rules = append(t.rules, compiledRule{Rule: r, re: re})
	}

	return t, nil
}

// MustNewTable is NewTable for statically known rules.
func MustNewTable(rules ...Rule) *Table {
	t, err := NewTable(rules...)
	if err != nil {
		panic(err)
	}
	return t
}

func validateRule(r Rule) error {
	switch {
	case r.Intent == "":
		return fmt.Errorf("%w: intent is required", ErrInvalidRule)
	case strings.TrimSpace(r.Keyword) == "" && r.Pattern == "":
		return fmt.Errorf("%w: %s needs a keyword or pattern", ErrInvalidRule, r.Intent)
	case !strings.Contains(r.Cypher, "$"+models.TitleParam):
		return fmt.Errorf("%w: %s query must bind $%s", ErrInvalidRule, r.Intent, models.TitleParam)
	case r.Success == "":
		return fmt.Errorf("%w: %s has no success phrase", ErrInvalidRule, r.Intent)
	case r.Kind == KindScalar && r.Empty == "":
		return fmt.Errorf("%w: scalar intent %s has no empty phrase", ErrInvalidRule, r.Intent)
	case r.Field == "":
		return fmt.Errorf("%w: %s has no field label", ErrInvalidRule, r.Intent)
	}
	return nil
}

const separator = `[\s\p{Z}]+`

// compilePattern turns "director of" into `(?i)\bdirector[\s\p{Z}]+of[\s\p{Z}]+([^?]+)`.
// Unicode spaces count as separators. The title slot stops at the first question mark.
func compilePattern(r Rule) (*regexp.Regexp, error) {
	expr := r.Pattern
	if expr == "" {
		words := strings.Fields(r.Keyword)
		for i, w := range words {
			words[i] = regexp.QuoteMeta(w)
		}
		expr = `(?i)\b` + strings.Join(words, separator) + separator + `([^?]+)`
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s pattern: %v", ErrInvalidRule, r.Intent, err)
	}
	if re.NumSubexp() != 1 {
		return nil, fmt.Errorf("%w: %s pattern must have exactly one capture group", ErrInvalidRule, r.Intent)
	}
	return re, nil
}

// Rule returns the rule bound to an intent.
func (t *Table) Rule(i models.Intent) (Rule, bool) {
	idx, ok := t.index[i]
	if !ok {
		return Rule{}, false
	}
	return t.rules[idx].Rule, true
}

// Intents returns the table's intents in priority order.
func (t *Table) Intents() []models.Intent {
	out := make([]models.Intent, len(t.rules))
	for i, r := range t.rules {
		out[i] = r.Intent
	}
	return out
}

// Fields returns the answer field labels in priority order.
func (t *Table) Fields() []string {
	out := make([]string, len(t.rules))
	for i, r := range t.rules {
		out[i] = r.Field
	}
	return out
}

// Query builds the parameterized graph query for a descriptor.
func (t *Table) Query(d models.QueryDescriptor) (models.GraphQuery, error) {
	rule, ok := t.Rule(d.Intent)
	if !ok {
		return models.GraphQuery{}, fmt.Errorf("%w: %q", ErrUnknownIntent, d.Intent)
	}
	return models.GraphQuery{
		Cypher: rule.Cypher,
		Params: map[string]string{models.TitleParam: d.Subject},
	}, nil
}
