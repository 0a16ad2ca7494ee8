package geminiservice

import "sync"

// Role identifies who produced a turn. The values are the ones Gemini expects.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is a single message in a conversation.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Conversation is an append-only chat history owned by one session.
// Existing turns are never edited. Once the history exceeds maxTurns the
// oldest turns are dropped so the payload sent upstream stays bounded.
type Conversation struct {
	mu       sync.Mutex
	turns    []Turn
	maxTurns int
}

// NewConversation creates an empty history. maxTurns <= 0 disables the cap.
func NewConversation(maxTurns int) *Conversation {
	return &Conversation{maxTurns: maxTurns}
}

// Append adds a turn at the end of the history.
func (c *Conversation) Append(role Role, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.turns = append(c.turns, Turn{Role: role, Text: text})

	if c.maxTurns > 0 && len(c.turns) > c.maxTurns {
		drop := len(c.turns) - c.maxTurns
		// Keep the history opening on a user turn.
		for drop < len(c.turns)-1 && c.turns[drop].Role != RoleUser {
			drop++
		}
		c.turns = append([]Turn(nil), c.turns[drop:]...)
	}
}

// Turns returns a copy of the history.
func (c *Conversation) Turns() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Turn(nil), c.turns...)
}

// Len returns the number of stored turns.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.turns)
}

// Window returns the turns to send upstream: the stored history starting at
// its first user turn.
func (c *Conversation) Window() []Turn {
	turns := c.Turns()
	for i, t := range turns {
		if t.Role == RoleUser {
			return turns[i:]
		}
	}
	return nil
}
