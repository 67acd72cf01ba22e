package domain

import (
	"fmt"
	"strings"
	"time"
)

// Message roles within a conversation.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationMessage is one turn of a chat session.
type ConversationMessage struct {
	Role      string
	Content   string
	Timestamp time.Time

	// Sources lists the documents an assistant answer was grounded in.
	// Empty for user messages.
	Sources []string
}

// Session holds one user's chat history. It is owned by the client and
// never persisted server-side; the server stays stateless per request.
// A Session is not safe for concurrent use, matching its single-client
// ownership.
type Session struct {
	messages []ConversationMessage
}

// Append adds a message to the history.
func (s *Session) Append(msg ConversationMessage) {
	s.messages = append(s.messages, msg)
}

// Messages returns a copy of the history in order.
func (s *Session) Messages() []ConversationMessage {
	out := make([]ConversationMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages in the session.
func (s *Session) Len() int {
	return len(s.messages)
}

// Clear drops the entire history.
func (s *Session) Clear() {
	s.messages = nil
}

// Transcript renders the session as a plain-text document suitable for
// download. Assistant messages list their sources on a trailing line.
func (s *Session) Transcript() string {
	var b strings.Builder
	for _, msg := range s.messages {
		fmt.Fprintf(&b, "[%s] %s: %s\n", msg.Timestamp.Format("15:04"), msg.Role, msg.Content)
		if len(msg.Sources) > 0 {
			fmt.Fprintf(&b, "sources: %s\n", strings.Join(msg.Sources, ", "))
		}
	}
	return b.String()
}
