// Package tui provides the terminal chat screen for sanchai.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sanchai/sanchai/internal/errors"
	"github.com/sanchai/sanchai/internal/render"
)

// Color variables (updated from theme)
var (
	colorSurface lipgloss.Color
	colorBorder  lipgloss.Color

	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorWarning   lipgloss.Color
	colorError     lipgloss.Color

	colorText     lipgloss.Color
	colorTextDim  lipgloss.Color
	colorTextMute lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	headerStyle lipgloss.Style
	titleStyle  lipgloss.Style
	hintStyle   lipgloss.Style

	messagesAreaStyle lipgloss.Style

	userBubbleStyle  lipgloss.Style
	userLabelStyle   lipgloss.Style
	agentBubbleStyle lipgloss.Style
	agentLabelStyle  lipgloss.Style

	inputPanelStyle     lipgloss.Style
	buttonStyle         lipgloss.Style
	buttonDisabledStyle lipgloss.Style
	loadingStyle        lipgloss.Style
	welcomeStyle        lipgloss.Style
	noticeStyle         lipgloss.Style
	errorStyle          lipgloss.Style
	statusBarStyle      lipgloss.Style
	statusKeyStyle      lipgloss.Style
	statusDescStyle     lipgloss.Style
)

func init() {
	UpdateTheme()
}

// UpdateTheme refreshes all styles based on the current TUI theme
func UpdateTheme() {
	theme := render.GetTUITheme()

	colorSurface = theme.Surface
	colorBorder = theme.Border
	colorPrimary = theme.Primary
	colorSecondary = theme.Secondary
	colorAccent = theme.Accent
	colorWarning = theme.Warning
	colorError = theme.Error
	colorText = theme.Text
	colorTextDim = theme.TextDim
	colorTextMute = theme.TextMute

	rebuildStyles()
}

func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	hintStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)

	messagesAreaStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	// user messages sit on the right, agent messages on the left
	userBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorSecondary).
		Foreground(colorText).
		Padding(0, 1).
		MarginLeft(4)

	userLabelStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true).
		MarginLeft(4)

	agentBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Foreground(colorText).
		Padding(0, 1).
		MarginRight(4)

	agentLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
		Foreground(colorSurface).
		Background(colorPrimary).
		Bold(true).
		Padding(0, 2)

	buttonDisabledStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Background(colorSurface).
		Padding(0, 2)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	welcomeStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Italic(true).
		Align(lipgloss.Center)

	noticeStyle = lipgloss.NewStyle().
		Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)
}

// FormatError returns a styled error message with details pulled from the
// typed errors of the client.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("x %v", err)))

	if status := errors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}
	if endpoint := errors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	if body := errors.GetResponseBody(err); body != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n\n  %s", strings.ReplaceAll(body, "\n", "\n  "))))
		return sb.String()
	}

	switch {
	case errors.IsTimeoutError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: the backend did not answer in time; raise timeout_seconds or try again"))
	case errors.IsNetworkError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: check that the backend is running and --backend points at it"))
	case errors.IsParseError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: the backend answered with something other than JSON"))
	}

	return sb.String()
}
