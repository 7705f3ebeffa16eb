// ABOUTME: Error values and types returned by the document assistant pipeline
// ABOUTME: Sentinels for state conditions and ExternalError for model service failures
package core

import (
	"errors"
	"fmt"
)

// NoVectorStoreMessage is the answer given when no index is loaded
const NoVectorStoreMessage = "No vector store loaded. Please load a vector store first."

// NoDocumentsMessage is reported when processing yields no chunks
const NoDocumentsMessage = "No valid documents to process."

var (
	// ErrNoVectorStore is returned when saving without a built or loaded index
	ErrNoVectorStore = errors.New("no vector store to save")
	// ErrDiscarded is returned by operations on a discarded assistant
	ErrDiscarded = errors.New("assistant has been discarded")
	// ErrEmbedderMismatch is returned when a saved index was built with a different embedding model
	ErrEmbedderMismatch = errors.New("vector store was built with a different embedding model")
	// ErrEmptyQuestion is returned for blank questions
	ErrEmptyQuestion = errors.New("question must not be empty")
)

// Service names carried by ExternalError
const (
	ServiceEmbedding  = "embedding"
	ServiceGeneration = "generation"
)

// ExternalError reports a failure of an embedding or generation service
type ExternalError struct {
	Service string
	Err     error
}

func (e *ExternalError) Error() string {
	return fmt.Sprintf("%s service failed: %v", e.Service, e.Err)
}

func (e *ExternalError) Unwrap() error {
	return e.Err
}

// IsExternal reports whether err came from an external model service
func IsExternal(err error) bool {
	var ext *ExternalError
	return errors.As(err, &ext)
}
