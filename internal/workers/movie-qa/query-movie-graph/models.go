// internal/workers/movie-qa/query-movie-graph/models.go
package querymoviegraph

type Input struct {
	Intent  string `json:"intent"`
	Subject string `json:"subject"`
}

type Output struct {
	Results []*string `json:"results"`
	Failure string    `json:"failure"`
	Cached  bool      `json:"cached"`
}

const inputSchema = `{
	"type": "object",
	"required": ["intent", "subject"],
	"properties": {
		"intent": {"type": "string", "minLength": 1},
		"subject": {"type": "string", "minLength": 1}
	}
}`
