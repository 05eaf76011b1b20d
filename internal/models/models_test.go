package models

import (
	"testing"
)

func TestSenderLabel(t *testing.T) {
	tests := []struct {
		sender Sender
		want   string
	}{
		{SenderUser, "You"},
		{SenderAgent, "Agent"},
	}

	for _, tt := range tests {
		t.Run(string(tt.sender), func(t *testing.T) {
			if got := tt.sender.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewMessages(t *testing.T) {
	u := NewUserMessage("weather of Pune today?")
	if u.Sender != SenderUser || u.Text != "weather of Pune today?" {
		t.Errorf("NewUserMessage() = %+v", u)
	}

	a := NewAgentMessage("Sunny, 28°C")
	if a.Sender != SenderAgent || a.Text != "Sunny, 28°C" {
		t.Errorf("NewAgentMessage() = %+v", a)
	}
}

func TestDefaultHeaders(t *testing.T) {
	headers := DefaultHeaders()
	if len(headers) != 1 {
		t.Errorf("DefaultHeaders() = %v, want only Content-Type", headers)
	}
	if headers["Content-Type"] != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", headers["Content-Type"])
	}
}
