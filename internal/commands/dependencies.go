package commands

import (
	"io"
	"os"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/sanchai/sanchai/internal/api"
	"github.com/sanchai/sanchai/internal/chat"
	"github.com/sanchai/sanchai/internal/config"
	"github.com/sanchai/sanchai/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(ctrl *chat.Controller, cfg config.Config, backend string, logger *zap.Logger) error
}

// ClientFactory builds the collaborator client for a resolved configuration.
type ClientFactory func(cfg config.Config, logger *zap.Logger) (api.CollaboratorClient, error)

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewClient creates the collaborator client.
	NewClient ClientFactory

	// TUI is the terminal user interface.
	TUI TUIInterface

	// Clipboard receives replies when copy_to_clipboard is enabled.
	Clipboard func(string) error

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(ctrl *chat.Controller, cfg config.Config, backend string, logger *zap.Logger) error {
	return tui.RunChat(ctrl, cfg, backend, logger)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewClient: newHTTPClient,
		TUI:       &DefaultTUI{},
		Clipboard: clipboard.WriteAll,
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}
}

func newHTTPClient(cfg config.Config, logger *zap.Logger) (api.CollaboratorClient, error) {
	return api.NewClient(
		api.WithBaseURL(cfg.BackendURL),
		api.WithTimeout(cfg.Timeout()),
		api.WithLogger(logger),
	)
}
