// Package models contains data types and constants shared by the sanchai client.
package models

// DefaultBackendURL is the chat collaborator used when nothing else is configured.
const DefaultBackendURL = "http://127.0.0.1:8000"

// Collaborator endpoints, relative to the backend base URL
const (
	EndpointChat   = "/chat"
	EndpointStatus = "/status"
)

// Agent texts appended to the history when a submission does not yield a reply
const (
	NoResponseText     = "Error: No response received from agent."
	ConnectFailureText = "Error: Failed to connect to backend or LLM."
)

// UI copy
const (
	AppTitle         = "SanchAI Weather Agent"
	AppHint          = `Ask for the weather of any city (e.g., "weather of Pune today?").`
	WelcomeText      = "Type a message below to start!"
	ThinkingText     = "Thinking..."
	InputPlaceholder = "What's the weather of [City]?"
	SendLabel        = "Send"
	SendingLabel     = "Sending..."
)

// DefaultHeaders returns the headers sent with every collaborator request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
	}
}
