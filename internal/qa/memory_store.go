package qa

import (
	"context"
	"strings"
	"sync"

	"movie-graph-workers/internal/intent"
	"movie-graph-workers/internal/models"
)

// MemoryStore is a Store backed by a map from (query, title) to values. Titles
// match exactly, like a property lookup in the graph.
type MemoryStore struct {
	mu    sync.RWMutex
	rows  map[string][]*string
	err   error
	calls int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[string][]*string)}
}

func memoryKey(cypher, title string) string {
	return cypher + "\x00" + title
}

// Put sets the values returned for cypher with $title bound to title.
func (m *MemoryStore) Put(cypher, title string, values ...*string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[memoryKey(cypher, title)] = values
}

// FailWith makes every Execute return err. A nil err restores normal behavior.
func (m *MemoryStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Execute ran.
func (m *MemoryStore) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

func (m *MemoryStore) Execute(ctx context.Context, cypher string, params map[string]string) ([]*string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.rows[memoryKey(cypher, params[models.TitleParam])], nil
}

// LoadMovies indexes movies under the queries of the table's intents. Blank
// fields are stored as null values.
func (m *MemoryStore) LoadMovies(table *intent.Table, movies []models.Movie) {
	for _, movie := range movies {
		for _, i := range table.Intents() {
			rule, _ := table.Rule(i)
			m.Put(rule.Cypher, movie.Title, movieValues(i, movie)...)
		}
	}
}

func movieValues(i models.Intent, movie models.Movie) []*string {
	switch i {
	case models.IntentGenre:
		return []*string{nullable(movie.Genre)}
	case models.IntentActors:
		out := make([]*string, 0, len(movie.Actors))
		for _, a := range movie.Actors {
			if v := nullable(a); v != nil {
				out = append(out, v)
			}
		}
		return out
	case models.IntentDirector:
		if v := nullable(movie.Director); v != nil {
			return []*string{v}
		}
		return nil
	case models.IntentRating:
		return []*string{nullable(movie.Rating)}
	case models.IntentOverview:
		return []*string{nullable(movie.Overview)}
	}
	return nil
}

func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
