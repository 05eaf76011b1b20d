package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sanchai/sanchai/internal/chat"
	"github.com/sanchai/sanchai/internal/models"
)

// NewChatCmd creates the interactive chat command
func NewChatCmd(deps *Dependencies, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session with the weather agent.

History lives only for the length of the session. Press Ctrl+S to export it,
Ctrl+Y to copy the last reply and Esc or Ctrl+C to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(deps, opts)
		},
	}
}

func runChat(deps *Dependencies, opts *globalOptions) error {
	sess, err := openSession(deps, opts)
	if err != nil {
		return err
	}
	defer sess.close()

	logger := sess.logger
	ctrl := sess.newController(chat.WithObserver(func(msg models.Message) {
		logger.Debug("message appended",
			zap.String("sender", string(msg.Sender)),
			zap.Int("length", len(msg.Text)),
		)
	}))

	return deps.TUI.RunChat(ctrl, sess.cfg, sess.client.BaseURL(), logger)
}
