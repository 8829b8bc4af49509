// internal/models/movie.go
package models

// Movie is one row of the IMDB catalogue as stored in the graph.
type Movie struct {
	Title        string   `json:"title"`
	ReleasedYear string   `json:"releasedYear"`
	Certificate  string   `json:"certificate"`
	Runtime      string   `json:"runtime"`
	Genre        string   `json:"genre"`
	Rating       string   `json:"rating"`
	Overview     string   `json:"overview"`
	MetaScore    string   `json:"metaScore"`
	Votes        string   `json:"votes"`
	Gross        string   `json:"gross"`
	Director     string   `json:"director"`
	Actors       []string `json:"actors"`
}

// GraphParams returns the parameters bound by the movie upsert statement.
func (m Movie) GraphParams() map[string]any {
	actors := make([]any, 0, len(m.Actors))
	for _, a := range m.Actors {
		if a != "" {
			actors = append(actors, a)
		}
	}
	return map[string]any{
		"title":         m.Title,
		"released_year": m.ReleasedYear,
		"certificate":   m.Certificate,
		"runtime":       m.Runtime,
		"genre":         m.Genre,
		"rating":        m.Rating,
		"overview":      m.Overview,
		"meta_score":    m.MetaScore,
		"no_of_votes":   m.Votes,
		"gross":         m.Gross,
		"director":      m.Director,
		"actors":        actors,
	}
}
