package catalog

import (
	"context"
	"fmt"

	"movie-graph-workers/internal/common/logger"
	"movie-graph-workers/internal/models"
)

// UpsertMovieCypher creates or updates one movie with its director and actors.
// A blank director creates no Director node.
const UpsertMovieCypher = `MERGE (m:Movie {title: $title})
SET m.released_year = $released_year, m.certificate = $certificate,
    m.runtime = $runtime, m.genre = $genre, m.rating = $rating,
    m.overview = $overview, m.meta_score = $meta_score,
    m.no_of_votes = $no_of_votes, m.gross = $gross
FOREACH (_ IN CASE WHEN $director = '' THEN [] ELSE [1] END |
    MERGE (d:Director {name: $director})
    MERGE (d)-[:DIRECTED]->(m)
)
FOREACH (actor IN $actors |
    MERGE (a:Actor {name: actor})
    MERGE (a)-[:ACTED_IN]->(m)
)`

// Writer runs one write statement. *database.Neo4jClient satisfies it.
type Writer interface {
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) error
}

type Loader struct {
	writer Writer
	logger logger.Logger
}

func NewLoader(writer Writer, log logger.Logger) *Loader {
	return &Loader{writer: writer, logger: log}
}

// Load upserts movies in order, one transaction each, and stops at the first
// failure. It returns how many movies were written.
func (l *Loader) Load(ctx context.Context, movies []models.Movie) (int, error) {
	for i, movie := range movies {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := l.writer.ExecuteWrite(ctx, UpsertMovieCypher, movie.GraphParams()); err != nil {
			return i, fmt.Errorf("load %q: %w", movie.Title, err)
		}
		if (i+1)%100 == 0 {
			l.logger.Info("catalogue progress", map[string]interface{}{"loaded": i + 1, "total": len(movies)})
		}
	}

	l.logger.Info("catalogue loaded", map[string]interface{}{"movies": len(movies)})
	return len(movies), nil
}
