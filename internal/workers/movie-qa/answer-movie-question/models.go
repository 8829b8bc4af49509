// internal/workers/movie-qa/answer-movie-question/models.go
package answermoviequestion

type Input struct {
	Question string `json:"question"`
}

type Output struct {
	Answer    string `json:"answer"`
	Matched   bool   `json:"matched"`
	Intent    string `json:"intent"`
	Subject   string `json:"subject"`
	HistoryID string `json:"historyId,omitempty"`
}

const inputSchema = `{
	"type": "object",
	"required": ["question"],
	"properties": {
		"question": {"type": "string"}
	}
}`
