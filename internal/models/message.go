package models

// Sender identifies who produced a chat message.
type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

// Label returns the tag shown above a message bubble.
func (s Sender) Label() string {
	if s == SenderUser {
		return "You"
	}
	return "Agent"
}

// Message is a single entry of the chat history. Messages are never
// modified after they are appended.
type Message struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

// NewUserMessage creates a message sent by the user
func NewUserMessage(text string) Message {
	return Message{Sender: SenderUser, Text: text}
}

// NewAgentMessage creates a message attributed to the agent
func NewAgentMessage(text string) Message {
	return Message{Sender: SenderAgent, Text: text}
}
