// internal/models/intent.go
package models

import "strings"

// Intent is the category of question being asked about a movie.
type Intent string

const (
	IntentGenre    Intent = "genre"
	IntentActors   Intent = "actors"
	IntentDirector Intent = "director"
	IntentRating   Intent = "rating"
	IntentOverview Intent = "overview"
)

// SupportedIntents returns the closed set of intents in matching priority order.
func SupportedIntents() []Intent {
	return []Intent{IntentGenre, IntentActors, IntentDirector, IntentRating, IntentOverview}
}

// ParseIntent resolves a job variable or config value to an Intent.
func ParseIntent(s string) (Intent, bool) {
	candidate := Intent(strings.ToLower(strings.TrimSpace(s)))
	for _, i := range SupportedIntents() {
		if i == candidate {
			return i, true
		}
	}
	return "", false
}

func (i Intent) String() string {
	return string(i)
}

// QueryDescriptor is the outcome of matching one question: what is asked and about which movie.
type QueryDescriptor struct {
	Intent  Intent `json:"intent"`
	Subject string `json:"subject"`
}

// GraphQuery is a parameterized Cypher statement. The subject only ever travels in Params.
type GraphQuery struct {
	Cypher string
	Params map[string]string
}

// TitleParam is the parameter name every movie query binds the subject to.
const TitleParam = "title"
