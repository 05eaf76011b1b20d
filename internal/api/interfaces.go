package api

import (
	"context"

	"github.com/sanchai/sanchai/internal/models"
)

// ChatClient is the collaborator surface the chat controller depends on
type ChatClient interface {
	Chat(ctx context.Context, message string) (*models.ChatReply, error)
}

// CollaboratorClient is the full client surface used by the commands
type CollaboratorClient interface {
	ChatClient
	Status(ctx context.Context) (*models.Status, error)
	BaseURL() string
	Close()
}

var _ CollaboratorClient = (*Client)(nil)
