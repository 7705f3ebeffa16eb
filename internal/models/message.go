// ABOUTME: Chat transcript message model
// ABOUTME: Used by interactive sessions to keep display history
package models

import "time"

// Role identifies who produced a transcript message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single transcript entry
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Sources   []string  `json:"sources"`
	Timestamp time.Time `json:"timestamp"`
}

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}
