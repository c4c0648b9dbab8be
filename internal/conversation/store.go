package conversation

import (
	"strings"
	"sync"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Display capitalizes the role the way the export format shows it.
func (r Role) Display() string {
	if len(r) == 0 {
		return ""
	}
	return strings.ToUpper(string(r)[:1]) + string(r)[1:]
}

// Turn is one message of the conversation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Store is the append-only turn log of one browser session. It lives
// in memory only and is lost when the session ends.
type Store struct {
	mu    sync.Mutex
	turns []Turn
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Append(role Role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, Turn{Role: role, Content: content})
}

// Turns returns a copy of the log in order.
func (s *Store) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Export flattens the log as "Role: content" lines joined by blank
// lines. A pure read; the store is not mutated.
func (s *Store) Export() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := make([]string, len(s.turns))
	for i, turn := range s.turns {
		lines[i] = turn.Role.Display() + ": " + turn.Content
	}
	return strings.Join(lines, "\n\n")
}
