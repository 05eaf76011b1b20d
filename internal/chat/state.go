package chat

import (
	"github.com/sanchai/sanchai/internal/models"
)

// State is a snapshot of a chat session
type State struct {
	Draft   string
	History []models.Message
	Pending bool
}

// Clone returns a copy that shares no memory with s
func (s State) Clone() State {
	history := make([]models.Message, len(s.History))
	copy(history, s.History)
	return State{
		Draft:   s.Draft,
		History: history,
		Pending: s.Pending,
	}
}

// LastAgentMessage returns the most recent agent message, if any
func (s State) LastAgentMessage() (models.Message, bool) {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Sender == models.SenderAgent {
			return s.History[i], true
		}
	}
	return models.Message{}, false
}
