package domain

// Role is the author of a conversation turn
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MaxHistoryTurns is the number of turns retained per sender
const MaxHistoryTurns = 20

// Turn represents one role-tagged utterance
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// History is the ordered turn log of one sender, most recent last
type History []Turn

// Append adds a turn and drops the oldest turns beyond limit
func (h History) Append(turn Turn, limit int) History {
	h = append(h, turn)
	return h.Truncate(limit)
}

// Truncate keeps only the last limit turns
func (h History) Truncate(limit int) History {
	if limit <= 0 || len(h) <= limit {
		return h
	}
	kept := make(History, limit)
	copy(kept, h[len(h)-limit:])
	return kept
}

// Clone returns an independent copy
func (h History) Clone() History {
	if h == nil {
		return nil
	}
	out := make(History, len(h))
	copy(out, h)
	return out
}

// Conversations maps sender ID to history
type Conversations map[string]History
