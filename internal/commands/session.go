package commands

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sanchai/sanchai/internal/api"
	"github.com/sanchai/sanchai/internal/chat"
	"github.com/sanchai/sanchai/internal/config"
	"github.com/sanchai/sanchai/internal/logging"
)

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	backend string
	logFile string
	debug   bool
}

// session bundles what a command needs to talk to the backend
type session struct {
	cfg    config.Config
	logger *zap.Logger
	client api.CollaboratorClient
}

// resolveConfig applies flags on top of environment, .env and the config file
func resolveConfig(opts *globalOptions) (config.Config, error) {
	cfg, err := config.Resolve()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	if opts.backend != "" {
		cfg.BackendURL = opts.backend
	}
	if opts.logFile != "" {
		cfg.LogFile = opts.logFile
	}
	return cfg, nil
}

func openSession(deps *Dependencies, opts *globalOptions) (*session, error) {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{File: cfg.LogFile, Debug: opts.debug})
	if err != nil {
		return nil, err
	}

	client, err := deps.NewClient(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	logger.Debug("session opened", zap.String("backend", client.BaseURL()), zap.Int("timeout_seconds", cfg.TimeoutSeconds))
	return &session{cfg: cfg, logger: logger, client: client}, nil
}

func (s *session) newController(opts ...chat.Option) *chat.Controller {
	opts = append([]chat.Option{chat.WithLogger(s.logger)}, opts...)
	return chat.NewController(s.client, opts...)
}

func (s *session) close() {
	s.client.Close()
	_ = s.logger.Sync()
}
