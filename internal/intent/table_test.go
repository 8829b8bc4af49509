package intent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-graph-workers/internal/models"
)

func validRule() Rule {
	return Rule{
		Intent:  models.IntentGenre,
		Keyword: "genre of",
		Cypher:  "MATCH (m:Movie {title: $title}) RETURN m.genre AS result",
		Kind:    KindList,
		Field:   "genre",
		Success: "The genre of %[1]s is %[2]s.",
	}
}

func TestNewTable_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Rule)
		wantErr error
	}{
		{"missing intent", func(r *Rule) { r.Intent = "" }, ErrInvalidRule},
		{"missing keyword and pattern", func(r *Rule) { r.Keyword = " " }, ErrInvalidRule},
		{"query without title parameter", func(r *Rule) { r.Cypher = "MATCH (m:Movie) RETURN m.genre AS result" }, ErrInvalidRule},
		{"missing success phrase", func(r *Rule) { r.Success = "" }, ErrInvalidRule},
		{"scalar without empty phrase", func(r *Rule) { r.Kind = KindScalar }, ErrInvalidRule},
		{"missing field", func(r *Rule) { r.Field = "" }, ErrInvalidRule},
		{"bad pattern", func(r *Rule) { r.Pattern = "(unclosed" }, ErrInvalidRule},
		{"pattern without group", func(r *Rule) { r.Pattern = "genre of .+" }, ErrInvalidRule},
		{"pattern with two groups", func(r *Rule) { r.Pattern = "(genre) of (.+)" }, ErrInvalidRule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRule()
			tt.mutate(&r)
			_, err := NewTable(r)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestNewTable_RejectsDuplicateIntent(t *testing.T) {
	_, err := NewTable(validRule(), validRule())
	assert.True(t, errors.Is(err, ErrDuplicateIntent))
}

func TestNewTable_RequiresRules(t *testing.T) {
	_, err := NewTable()
	assert.True(t, errors.Is(err, ErrInvalidRule))
}

func TestNewTable_CopiesRules(t *testing.T) {
	rules := []Rule{validRule()}
	table, err := NewTable(rules...)
	require.NoError(t, err)

	rules[0].Success = "changed"
	r, ok := table.Rule(models.IntentGenre)
	require.True(t, ok)
	assert.Equal(t, "The genre of %[1]s is %[2]s.", r.Success)
}

func TestDefaultTable_Order(t *testing.T) {
	table := DefaultTable()
	assert.Equal(t, models.SupportedIntents(), table.Intents())
	assert.Equal(t, []string{"genre", "actors", "director", "rating", "overview"}, table.Fields())
}

func TestTable_Query_BindsSubject(t *testing.T) {
	subject := `Titanic"}) DETACH DELETE m //`
	q, err := DefaultTable().Query(models.QueryDescriptor{Intent: models.IntentGenre, Subject: subject})
	require.NoError(t, err)

	assert.Equal(t, "MATCH (m:Movie {title: $title}) RETURN m.genre AS result", q.Cypher)
	assert.NotContains(t, q.Cypher, subject)
	assert.Equal(t, map[string]string{"title": subject}, q.Params)
}

func TestTable_Query_UnknownIntent(t *testing.T) {
	_, err := DefaultTable().Query(models.QueryDescriptor{Intent: "plot", Subject: "Heat"})
	assert.True(t, errors.Is(err, ErrUnknownIntent))
}

func TestDefaultRules_AllReturnResultColumn(t *testing.T) {
	for _, r := range DefaultRules() {
		assert.Contains(t, r.Cypher, "AS "+ResultColumn, r.Intent)
	}
}
