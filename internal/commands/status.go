package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatusCmd creates the backend health command
func NewStatusCmd(deps *Dependencies, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the chat backend",
		Long:  `Query GET <backend>/status and report whether the backend runs and which API keys it has loaded.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context(), deps, opts)
		},
	}
}

func runStatus(ctx context.Context, deps *Dependencies, opts *globalOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	sess, err := openSession(deps, opts)
	if err != nil {
		return err
	}
	defer sess.close()

	backend := sess.client.BaseURL()
	status, err := sess.client.Status(ctx)
	if err != nil {
		fmt.Fprintln(deps.Stderr, formatErrorMessage(err, "Backend unreachable"))
		return fmt.Errorf("status check failed: %w", err)
	}
	if status == nil {
		return fmt.Errorf("status check failed: empty response from %s", backend)
	}

	fmt.Fprintf(deps.Stdout, "Backend: %s\n", backend)
	if status.Running() {
		fmt.Fprintf(deps.Stdout, "Status:  %s\n", successStyle.Render(status.Status))
	} else {
		fmt.Fprintf(deps.Stdout, "Status:  %s\n", errorStyle.Render(status.Status))
	}

	for _, name := range status.KeyNames() {
		state := successStyle.Render("loaded")
		if !status.KeysLoaded[name] {
			state = errorStyle.Render("missing")
		}
		fmt.Fprintf(deps.Stdout, "  %-12s %s\n", name, state)
	}

	if missing := status.MissingKeys(); len(missing) > 0 {
		fmt.Fprintln(deps.Stderr, dimStyle.Render(fmt.Sprintf("Hint: the backend has no key for %v; replies may fail", missing)))
	}
	return nil
}
