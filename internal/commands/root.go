// Package commands provides CLI commands for sanchai.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sanchai/sanchai/internal/models"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// NewRootCmd builds the command tree around deps
func NewRootCmd(deps *Dependencies) *cobra.Command {
	opts := &globalOptions{}
	var (
		outputFlag string
		fileFlag   string
	)

	cmd := &cobra.Command{
		Use:   "sanchai [prompt]",
		Short: "Terminal client for the SanchAI weather agent",
		Long: `sanchai talks to a SanchAI chat backend over HTTP. Each message is sent
as POST <backend>/chat and the agent's reply is shown below it.

Examples:
  sanchai chat                           Start interactive chat
  sanchai "What's the weather of Pune?"  Send a single message
  sanchai -f question.md                 Read the message from a file
  echo "Weather in Delhi" | sanchai      Read the message from stdin
  sanchai "Mumbai?" -o reply.md          Save the reply to a file
  sanchai status                         Check the backend
  sanchai -b http://localhost:9000 chat  Use another backend`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Stdout, "sanchai %s (built %s)\n", Version, BuildTime)
				return nil
			}

			q := queryOptions{output: outputFlag, raw: !isTerminal(deps.Stdout)}

			if fileFlag != "" {
				data, err := os.ReadFile(fileFlag)
				if err != nil {
					return fmt.Errorf("failed to read file: %w", err)
				}
				return runQuery(cmd.Context(), deps, opts, string(data), q)
			}

			if len(args) > 0 {
				return runQuery(cmd.Context(), deps, opts, args[0], q)
			}

			if hasPipedInput(deps.Stdin) {
				data, err := io.ReadAll(deps.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				return runQuery(cmd.Context(), deps, opts, string(data), q)
			}

			return cmd.Help()
		},
	}

	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)

	cmd.PersistentFlags().StringVarP(&opts.backend, "backend", "b", "", "Backend base URL (default from config or "+models.DefaultBackendURL+")")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Write structured logs to this file")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Log at debug level (requires a log file)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save reply to file")
	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read message from file")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(NewChatCmd(deps, opts))
	cmd.AddCommand(NewStatusCmd(deps, opts))
	cmd.AddCommand(NewConfigCmd(deps, opts))

	return cmd
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// hasPipedInput reports whether r carries data that was not typed at a terminal
func hasPipedInput(r io.Reader) bool {
	if r == nil {
		return false
	}
	f, ok := r.(*os.File)
	if !ok {
		return true
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice == 0
}
