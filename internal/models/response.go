package models

import (
	"maps"
	"slices"
)

// ChatRequest is the body posted to the chat endpoint
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatReply is the decoded body of a successful chat call.
// Response is empty when the collaborator omitted the field or sent "".
type ChatReply struct {
	Response string
	Raw      string
}

// HasResponse reports whether the collaborator returned usable text
func (r *ChatReply) HasResponse() bool {
	return r != nil && r.Response != ""
}

// Status is the decoded body of the collaborator's status endpoint
type Status struct {
	Status     string          `json:"status"`
	KeysLoaded map[string]bool `json:"keys_loaded"`
}

// Running reports whether the collaborator described itself as running
func (s *Status) Running() bool {
	return s != nil && s.Status == "Running"
}

// MissingKeys returns the names of the keys the collaborator reports as not loaded
func (s *Status) MissingKeys() []string {
	if s == nil {
		return nil
	}
	var missing []string
	for _, name := range s.KeyNames() {
		if !s.KeysLoaded[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

// KeyNames returns the reported key names, sorted
func (s *Status) KeyNames() []string {
	if s == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(s.KeysLoaded))
}
