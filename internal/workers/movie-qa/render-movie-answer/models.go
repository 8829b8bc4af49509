// internal/workers/movie-qa/render-movie-answer/models.go
package rendermovieanswer

// Input carries the output of match-movie-intent and query-movie-graph.
// A blank intent renders the clarification message.
type Input struct {
	Intent  string    `json:"intent"`
	Subject string    `json:"subject"`
	Results []*string `json:"results"`
	Failure string    `json:"failure"`
}

type Output struct {
	Answer string `json:"answer"`
}

const inputSchema = `{
	"type": "object",
	"properties": {
		"intent": {"type": ["string", "null"]},
		"subject": {"type": ["string", "null"]},
		"results": {
			"type": ["array", "null"],
			"items": {"type": ["string", "null"]}
		},
		"failure": {"type": ["string", "null"]}
	}
}`
