package intent

import "movie-graph-workers/internal/models"

// ResultColumn is the column every movie query returns its values in.
const ResultColumn = "result"

// DefaultRules returns the movie intents in priority order: genre, actors,
// director, rating, overview. The first rule whose pattern captures a title wins.
func DefaultRules() []Rule {
	return []Rule{
		{
			Intent:  models.IntentGenre,
			Keyword: "genre of",
			Cypher:  "MATCH (m:Movie {title: $title}) RETURN m.genre AS result",
			Kind:    KindList,
			Field:   "genre",
			Success: "The genre of %[1]s is %[2]s.",
		},
		{
			Intent:  models.IntentActors,
			Keyword: "actors in",
			Cypher:  "MATCH (m:Movie {title: $title})<-[:ACTED_IN]-(a:Actor) RETURN a.name AS result",
			Kind:    KindList,
			Field:   "actors",
			Success: "The actors in %[1]s are %[2]s.",
		},
		{
			Intent:  models.IntentDirector,
			Keyword: "director of",
			Cypher:  "MATCH (m:Movie {title: $title})<-[:DIRECTED]-(d:Director) RETURN d.name AS result",
			Kind:    KindList,
			Field:   "director",
			Success: "The director of %[1]s is %[2]s.",
		},
		{
			Intent:  models.IntentRating,
			Keyword: "rating of",
			Cypher:  "MATCH (m:Movie {title: $title}) RETURN m.rating AS result",
			Kind:    KindScalar,
			Field:   "rating",
			Success: "The rating of %[1]s is %[2]s.",
			Empty:   "No rating found for %[1]s.",
		},
		{
			Intent:  models.IntentOverview,
			Keyword: "overview of",
			Cypher:  "MATCH (m:Movie {title: $title}) RETURN m.overview AS result",
			Kind:    KindScalar,
			Field:   "overview",
			Success: "Overview of %[1]s: %[2]s.",
			Empty:   "No overview found for %[1]s.",
		},
	}
}

var defaultTable = MustNewTable(DefaultRules()...)

// DefaultTable returns the shared, read-only movie intent table.
func DefaultTable() *Table {
	return defaultTable
}
