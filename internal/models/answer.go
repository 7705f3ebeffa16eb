// ABOUTME: Answer model returned from question answering
// ABOUTME: Sources are always present and de-duplicated in first-seen order
package models

// Answer is the result of answering a question against the vector store
type Answer struct {
	Answer  string   `json:"answer" yaml:"answer"`
	Sources []string `json:"sources" yaml:"sources"`
}

// NewAnswer builds an Answer, normalising a nil source list to an empty one
func NewAnswer(text string, sources []string) Answer {
	if sources == nil {
		sources = []string{}
	}
	return Answer{Answer: text, Sources: sources}
}
