package answer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-graph-workers/internal/intent"
	"movie-graph-workers/internal/models"
)

func str(s string) *string { return &s }

func descriptor(i models.Intent, subject string) models.QueryDescriptor {
	return models.QueryDescriptor{Intent: i, Subject: subject}
}

func TestSynthesizer_Render_Success(t *testing.T) {
	tests := []struct {
		name string
		d    models.QueryDescriptor
		rows models.ResultSet
		want string
	}{
		{
			name: "genre",
			d:    descriptor(models.IntentGenre, "Titanic"),
			rows: models.NewResultSet("Drama, Romance"),
			want: "The genre of Titanic is Drama, Romance.",
		},
		{
			name: "genre as separate rows",
			d:    descriptor(models.IntentGenre, "Titanic"),
			rows: models.NewResultSet("Drama", "Romance"),
			want: "The genre of Titanic is Drama, Romance.",
		},
		{
			name: "actors",
			d:    descriptor(models.IntentActors, "Inception"),
			rows: models.NewResultSet("Leonardo DiCaprio", "Joseph Gordon-Levitt", "Elliot Page"),
			want: "The actors in Inception are Leonardo DiCaprio, Joseph Gordon-Levitt, Elliot Page.",
		},
		{
			name: "director",
			d:    descriptor(models.IntentDirector, "Pulp Fiction"),
			rows: models.NewResultSet("Quentin Tarantino"),
			want: "The director of Pulp Fiction is Quentin Tarantino.",
		},
		{
			name: "rating uses first value only",
			d:    descriptor(models.IntentRating, "The Godfather"),
			rows: models.NewResultSet("9.2", "1.0"),
			want: "The rating of The Godfather is 9.2.",
		},
		{
			name: "overview",
			d:    descriptor(models.IntentOverview, "Up"),
			rows: models.NewResultSet("An old man ties balloons to his house"),
			want: "Overview of Up: An old man ties balloons to his house.",
		},
		{
			name: "overview with own full stop",
			d:    descriptor(models.IntentOverview, "Up"),
			rows: models.NewResultSet("An old man ties balloons to his house."),
			want: "Overview of Up: An old man ties balloons to his house.",
		},
		{
			name: "list skips null and blank values",
			d:    descriptor(models.IntentActors, "Heat"),
			rows: models.ResultSet{Values: []*string{nil, str("Al Pacino"), str("  "), str("Robert De Niro")}},
			want: "The actors in Heat are Al Pacino, Robert De Niro.",
		},
	}

	s := NewSynthesizer(intent.DefaultTable())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Render(tt.d, tt.rows))
		})
	}
}

func TestSynthesizer_Render_ScalarEmpty(t *testing.T) {
	tests := []struct {
		name string
		rows models.ResultSet
	}{
		{"no rows", models.ResultSet{}},
		{"null value", models.ResultSet{Values: []*string{nil}}},
		{"empty string", models.NewResultSet("")},
		{"blank string", models.NewResultSet("   ")},
		{"null first value", models.ResultSet{Values: []*string{nil, str("8.0")}}},
	}

	s := NewSynthesizer(intent.DefaultTable())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "No rating found for Titanic.", s.Render(descriptor(models.IntentRating, "Titanic"), tt.rows))
			assert.Equal(t, "No overview found for Titanic.", s.Render(descriptor(models.IntentOverview, "Titanic"), tt.rows))
		})
	}
}

func TestSynthesizer_Render_ListEmpty(t *testing.T) {
	s := NewSynthesizer(intent.DefaultTable())

	for _, i := range []models.Intent{models.IntentGenre, models.IntentActors, models.IntentDirector} {
		t.Run(i.String(), func(t *testing.T) {
			assert.Equal(t, "Sorry, I couldn't find any information about Nope.",
				s.Render(descriptor(i, "Nope"), models.ResultSet{}))
			assert.Equal(t, "Sorry, I couldn't find any information about Nope.",
				s.Render(descriptor(i, "Nope"), models.ResultSet{Values: []*string{nil, str("")}}))
		})
	}
}

func TestSynthesizer_Render_Failure(t *testing.T) {
	s := NewSynthesizer(intent.DefaultTable())

	t.Run("unavailable", func(t *testing.T) {
		got := s.Render(descriptor(models.IntentDirector, "Inception"), models.FailedResultSet(models.UnavailableDetail))
		assert.Equal(t, "Sorry, I couldn't find any information about Inception. Error: Unable to connect to the database", got)
	})

	t.Run("query error", func(t *testing.T) {
		rows := models.FailedResultSet("Database query error: syntax error near MATCH")
		got := s.Render(descriptor(models.IntentDirector, "Inception"), rows)
		assert.Contains(t, got, "Inception")
		assert.Contains(t, got, "Database query error: syntax error near MATCH")
	})

	t.Run("scalar failure is not a missing value", func(t *testing.T) {
		got := s.Render(descriptor(models.IntentRating, "Inception"), models.FailedResultSet(models.UnavailableDetail))
		assert.NotContains(t, got, "No rating found")
	})
}

func TestSynthesizer_Render_Unrecognized(t *testing.T) {
	s := NewSynthesizer(intent.DefaultTable())
	want := "I'm not sure how to answer that. Please ask about the genre, actors, director, rating, or overview of a specific movie."

	assert.Equal(t, want, s.Clarification())
	assert.Equal(t, want, s.Render(models.QueryDescriptor{}, models.ResultSet{}))
	assert.Equal(t, want, s.Render(descriptor("plot", "Heat"), models.NewResultSet("x")))
	assert.Equal(t, want, s.Render(descriptor(models.IntentGenre, "  "), models.NewResultSet("x")))
}

func TestSynthesizer_Clarification_FollowsTable(t *testing.T) {
	rules := intent.DefaultRules()[:2]
	table, err := intent.NewTable(rules...)
	require.NoError(t, err)

	s := NewSynthesizer(table)
	assert.Equal(t, "I'm not sure how to answer that. Please ask about the genre or actors of a specific movie.", s.Clarification())
	assert.Equal(t, s.Clarification(), s.Render(descriptor(models.IntentRating, "Heat"), models.NewResultSet("8.3")))
}

func TestSynthesizer_Render_Deterministic(t *testing.T) {
	s := NewSynthesizer(intent.DefaultTable())
	d := descriptor(models.IntentActors, "Inception")
	rows := models.NewResultSet("A", "B", "C")

	first := s.Render(d, rows)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, s.Render(d, rows))
	}
}

func TestJoinOr(t *testing.T) {
	assert.Equal(t, "details", joinOr(nil))
	assert.Equal(t, "genre", joinOr([]string{"genre"}))
	assert.Equal(t, "genre or actors", joinOr([]string{"genre", "actors"}))
	assert.Equal(t, "a, b, or c", joinOr([]string{"a", "b", "c"}))
}
