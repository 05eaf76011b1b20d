package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/sanchai/sanchai/internal/config"
	apierrors "github.com/sanchai/sanchai/internal/errors"
	"github.com/sanchai/sanchai/internal/models"
	"github.com/sanchai/sanchai/internal/render"
)

var (
	colorText    = lipgloss.Color("#c0caf5")
	colorTextDim = lipgloss.Color("#565f89")
	colorSuccess = lipgloss.Color("#9ece6a")
	colorError   = lipgloss.Color("#f7768e")
	colorPrimary = lipgloss.Color("#7aa2f7")
)

// Styles matching the chat TUI
var (
	agentLabelStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	agentBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginBottom(1)

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	dimStyle     = lipgloss.NewStyle().Foreground(colorTextDim)
)

// queryOptions controls how a one-shot reply is written
type queryOptions struct {
	// output, when set, receives the reply instead of stdout
	output string
	// raw prints the bare reply text without decoration
	raw bool
}

// runQuery sends a single message through a fresh chat session and writes
// the agent's reply
func runQuery(ctx context.Context, deps *Dependencies, opts *globalOptions, prompt string, q queryOptions) error {
	if strings.TrimSpace(prompt) == "" {
		return apierrors.ErrEmptyPrompt
	}
	if ctx == nil {
		ctx = context.Background()
	}

	sess, err := openSession(deps, opts)
	if err != nil {
		return err
	}
	defer sess.close()

	ctrl := sess.newController()
	ctrl.UpdateDraft(prompt)

	var spin *spinner
	if !q.raw {
		spin = newSpinner(deps.Stderr, "Asking the agent")
		spin.start()
	}

	result, ok := ctrl.Send(ctx)
	if !ok {
		if spin != nil {
			spin.stopWithError()
		}
		return apierrors.ErrEmptyPrompt
	}

	if result.Err != nil {
		if spin != nil {
			spin.stopWithError()
			fmt.Fprintln(deps.Stderr, formatErrorMessage(result.Err, "Request failed"))
		}
		return fmt.Errorf("request failed: %w", result.Err)
	}
	if spin != nil {
		spin.stopWithSuccess("Done")
	}

	return writeReply(deps, sess.cfg, result.Message().Text, q)
}

// writeReply prints or saves the agent reply
func writeReply(deps *Dependencies, cfg config.Config, text string, q queryOptions) error {
	if q.raw {
		if q.output != "" {
			return writeOutputFile(q.output, text)
		}
		fmt.Fprintln(deps.Stdout, text)
		return nil
	}

	fmt.Fprintln(deps.Stderr)

	if cfg.CopyToClipboard && deps.Clipboard != nil {
		if err := deps.Clipboard(text); err != nil {
			fmt.Fprintln(deps.Stderr, errorStyle.Render(fmt.Sprintf("! Failed to copy to clipboard: %v", err)))
		} else {
			fmt.Fprintln(deps.Stderr, successStyle.Render("ok Copied to clipboard"))
		}
	}

	if q.output != "" {
		if err := writeOutputFile(q.output, text); err != nil {
			return err
		}
		fmt.Fprintln(deps.Stderr, successStyle.Render("ok Reply saved to "+q.output))
		return nil
	}

	fmt.Fprintln(deps.Stdout, renderReply(cfg, text, getTerminalWidth(deps.Stdout)))
	return nil
}

func writeOutputFile(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// renderReply draws the reply the way the chat screen draws agent bubbles
func renderReply(cfg config.Config, text string, termWidth int) string {
	bubbleWidth := termWidth - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}
	contentWidth := bubbleWidth - 4

	label := agentLabelStyle.Render(models.SenderAgent.Label())
	rendered := render.Message(text, render.OptionsFromConfig(cfg, contentWidth))

	return label + "\n" + agentBubbleStyle.Width(bubbleWidth).Render(rendered)
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 80
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// isTerminal reports whether w is connected to a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// formatErrorMessage formats an error with additional context from structured errors
func formatErrorMessage(err error, action string) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("x %s: %v", action, err)))

	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}
	if endpoint := apierrors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	if body := apierrors.GetResponseBody(err); body != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n\n  %s", strings.ReplaceAll(body, "\n", "\n  "))))
		return sb.String()
	}

	switch {
	case apierrors.IsTimeoutError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Request timed out. Raise timeout_seconds or try again"))
	case apierrors.IsNetworkError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Run 'sanchai status' to check that the backend is reachable"))
	case apierrors.IsParseError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The backend did not answer with JSON"))
	}

	return sb.String()
}
