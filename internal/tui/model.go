package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/sanchai/sanchai/internal/chat"
	"github.com/sanchai/sanchai/internal/config"
	"github.com/sanchai/sanchai/internal/history"
	"github.com/sanchai/sanchai/internal/models"
	"github.com/sanchai/sanchai/internal/render"
)

// Message types for the TUI
type (
	// resultMsg carries a finished task back to the update loop
	resultMsg struct {
		task   *chat.Task
		result chat.Result
	}
	exportedMsg struct {
		path string
		err  error
	}
	copiedMsg struct {
		err error
	}
)

// Model is the bubbletea model of the chat screen. All chat state lives in
// the controller; the model only mirrors the draft into the text input.
type Model struct {
	ctrl    *chat.Controller
	cfg     config.Config
	backend string
	logger  *zap.Logger

	// ctx is handed to every task. Nothing cancels it: quitting the
	// program abandons an outstanding request instead.
	ctx context.Context

	copyFn    func(string) error
	exportDir func() (string, error)

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	ready bool
	// notice is a one-line status; noticeErr replaces it with a formatted error.
	notice    string
	noticeErr error

	width  int
	height int
}

// NewChatModel creates the chat screen for ctrl
func NewChatModel(ctrl *chat.Controller, cfg config.Config, backend string, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = models.InputPlaceholder
	ti.CharLimit = 0
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorText)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(colorTextDim)
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = loadingStyle

	return Model{
		ctrl:    ctrl,
		cfg:     cfg,
		backend: backend,
		logger:  logger,
		ctx:     context.Background(),
		copyFn:  clipboard.WriteAll,
		exportDir: func() (string, error) {
			return config.GetTranscriptDir(cfg)
		},
		input:   ti,
		spinner: s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4
		inputHeight := 3
		statusHeight := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - 2
		if vpHeight < 5 {
			vpHeight = 5
		}
		contentWidth := m.contentWidth()

		if !m.ready {
			m.viewport = viewport.New(contentWidth-4, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth - 4
			m.viewport.Height = vpHeight
		}
		m.input.Width = contentWidth - 20
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			return m.submit()

		case "ctrl+y":
			return m, m.copyLastReply()

		case "ctrl+s":
			return m, m.exportTranscript()

		case "up", "down", "pgup", "pgdown":
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		// Typing is accepted while a request is pending.
		m.input, cmd = m.input.Update(msg)
		m.ctrl.UpdateDraft(m.input.Value())
		return m, cmd

	case resultMsg:
		m.ctrl.Resolve(msg.task, msg.result)
		m.refresh()
		m.viewport.GotoBottom()
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("copy failed: %w", msg.err))
		} else {
			m.setNotice("Copied last reply to clipboard")
		}
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("export failed: %w", msg.err))
		} else {
			m.setNotice("Transcript saved to " + msg.path)
		}
		return m, nil

	case spinner.TickMsg:
		if m.ctrl.Pending() {
			m.spinner, cmd = m.spinner.Update(msg)
			m.refresh()
			return m, cmd
		}
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit hands the draft to the controller. A rejected submit leaves the
// screen untouched.
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.ctrl.UpdateDraft(m.input.Value())

	task, ok := m.ctrl.Submit()
	if !ok {
		return m, nil
	}

	m.input.Reset()
	m.setNotice("")
	m.refresh()
	m.viewport.GotoBottom()

	return m, tea.Batch(m.runTask(task), m.spinner.Tick)
}

func (m Model) runTask(task *chat.Task) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return resultMsg{task: task, result: task.Run(ctx)}
	}
}

func (m Model) copyLastReply() tea.Cmd {
	last, ok := m.ctrl.Snapshot().LastAgentMessage()
	if !ok {
		return func() tea.Msg {
			return copiedMsg{err: fmt.Errorf("no agent reply yet")}
		}
	}

	copyFn := m.copyFn
	return func() tea.Msg {
		return copiedMsg{err: copyFn(last.Text)}
	}
}

func (m Model) exportTranscript() tea.Cmd {
	snap := m.ctrl.Snapshot()
	transcript := history.NewTranscript(m.ctrl.ID(), m.backend, snap.History)
	exportDir := m.exportDir
	logger := m.logger
	formatName := m.cfg.TranscriptFormat

	return func() tea.Msg {
		if len(transcript.Messages) == 0 {
			return exportedMsg{err: fmt.Errorf("nothing to export")}
		}
		format, err := history.ParseExportFormat(formatName)
		if err != nil {
			return exportedMsg{err: err}
		}
		dir, err := exportDir()
		if err != nil {
			return exportedMsg{err: err}
		}
		path, err := transcript.Write(dir, format)
		if err != nil {
			return exportedMsg{err: err}
		}
		logger.Info("transcript exported",
			zap.String("path", path),
			zap.String("format", string(format)),
			zap.Int("messages", len(transcript.Messages)))
		return exportedMsg{path: path}
	}
}

func (m *Model) setNotice(text string) {
	m.notice = text
	m.noticeErr = nil
}

func (m *Model) setError(err error) {
	m.notice = ""
	m.noticeErr = err
}

func (m Model) contentWidth() int {
	if m.width < 24 {
		return 20
	}
	return m.width - 4
}

// refresh redraws the viewport from the controller state
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	view := chat.Render(m.ctrl.Snapshot())
	m.viewport.SetContent(m.renderBody(view))
}

func (m Model) renderBody(view chat.View) string {
	if view.Welcome != "" && view.Loading == nil {
		return welcomeStyle.Width(m.viewport.Width).Render("\n" + view.Welcome)
	}

	bubbleWidth := m.viewport.Width - 6
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}
	mdOpts := render.OptionsFromConfig(m.cfg, bubbleWidth-4)

	var content strings.Builder
	for i, b := range view.Bubbles {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(renderBubble(b, bubbleWidth, mdOpts))
		content.WriteString("\n")
	}

	if view.Loading != nil {
		if len(view.Bubbles) > 0 {
			content.WriteString("\n")
		}
		label := agentLabelStyle.Render(view.Loading.Tag)
		body := loadingStyle.Render(m.spinner.View() + " " + view.Loading.Text)
		content.WriteString(label + "\n" + agentBubbleStyle.Width(bubbleWidth).Render(body) + "\n")
	}

	return content.String()
}

func renderBubble(b chat.Bubble, width int, mdOpts render.Options) string {
	if b.Sender == models.SenderUser {
		label := userLabelStyle.Render(b.Tag)
		return label + "\n" + userBubbleStyle.Width(width).Render(b.Text)
	}

	label := agentLabelStyle.Render(b.Tag)
	return label + "\n" + agentBubbleStyle.Width(width).Render(render.Message(b.Text, mdOpts))
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	view := chat.Render(m.ctrl.Snapshot())
	contentWidth := m.contentWidth()

	var sections []string

	header := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(view.Header.Title),
		hintStyle.Render(view.Header.Hint),
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(header))

	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(m.viewport.View()))

	button := buttonStyle.Render(view.Form.ButtonLabel)
	if view.Form.ButtonDisabled {
		button = buttonDisabledStyle.Render(view.Form.ButtonLabel)
	}
	form := lipgloss.JoinHorizontal(lipgloss.Center, m.input.View(), " ", button)
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(form))

	if m.noticeErr != nil {
		sections = append(sections, FormatError(m.noticeErr))
	} else if m.notice != "" {
		sections = append(sections, noticeStyle.Render(m.notice))
	}

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Ctrl+Y", "Copy reply"},
		{"Ctrl+S", "Export"},
		{"Esc", "Quit"},
	}

	items := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  |  "))
}

// RunChat starts the chat TUI and blocks until the user quits
func RunChat(ctrl *chat.Controller, cfg config.Config, backend string, logger *zap.Logger) error {
	if cfg.TUITheme != "" && render.SetTUITheme(cfg.TUITheme) {
		UpdateTheme()
	}

	m := NewChatModel(ctrl, cfg, backend, logger)
	p := tea.NewProgram(m, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
