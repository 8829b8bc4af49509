// internal/workers/movie-qa/match-movie-intent/models.go
package matchmovieintent

type Input struct {
	Question string `json:"question"`
}

type Output struct {
	Matched       bool   `json:"matched"`
	Intent        string `json:"intent"`
	Subject       string `json:"subject"`
	Clarification string `json:"clarification,omitempty"`
}

// Zeebe passes every process variable, so unknown properties are allowed.
const inputSchema = `{
	"type": "object",
	"required": ["question"],
	"properties": {
		"question": {"type": "string"}
	}
}`
