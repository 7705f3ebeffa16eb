// ABOUTME: Session pairs an Assistant with an ordered chat transcript
// ABOUTME: Used by interactive surfaces (terminal chat and MCP) to keep history
package core

import (
	"context"
	"sync"
	"time"

	"github.com/harper/document-assistant/internal/models"
)

// Session records questions and answers asked through one Assistant
type Session struct {
	assistant *Assistant

	mu      sync.Mutex
	history []models.Message
	now     func() time.Time
}

// NewSession creates a Session with an empty transcript
func NewSession(a *Assistant) *Session {
	return &Session{assistant: a, now: time.Now}
}

// Assistant returns the wrapped assistant
func (s *Session) Assistant() *Assistant {
	return s.assistant
}

// Ask answers question and records both sides of the exchange.
// Model failures are recorded as the assistant's reply and returned.
func (s *Session) Ask(ctx context.Context, question string) (models.Answer, error) {
	s.append(models.Message{Role: models.RoleUser, Content: question, Sources: []string{}})

	answer, err := s.assistant.Answer(ctx, question)
	if err != nil {
		s.append(models.Message{Role: models.RoleAssistant, Content: "Error: " + err.Error(), Sources: []string{}})
		return answer, err
	}

	s.append(models.Message{Role: models.RoleAssistant, Content: answer.Answer, Sources: answer.Sources})
	return answer, nil
}

// History returns a copy of the transcript
func (s *Session) History() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Message, len(s.history))
	copy(out, s.history)
	return out
}

// Clear empties the transcript; the index is untouched
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}

func (s *Session) append(m models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.Timestamp = s.now()
	s.history = append(s.history, m)
}
