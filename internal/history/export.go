// Package history exports the in-memory chat history of a session.
// Exports are write-only: nothing here is ever read back into a session.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sanchai/sanchai/internal/models"
)

// ExportFormat represents the format for exporting transcripts
type ExportFormat string

const (
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatJSON     ExportFormat = "json"
)

// ParseExportFormat accepts "markdown"/"md" and "json"
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return ExportFormatMarkdown, nil
	case "json":
		return ExportFormatJSON, nil
	default:
		return "", fmt.Errorf("unknown export format %q (use markdown or json)", s)
	}
}

// Extension returns the file extension for the format
func (f ExportFormat) Extension() string {
	if f == ExportFormatJSON {
		return ".json"
	}
	return ".md"
}

// Transcript is a point-in-time copy of a session's history
type Transcript struct {
	SessionID  string           `json:"session_id"`
	Backend    string           `json:"backend"`
	ExportedAt time.Time        `json:"exported_at"`
	Messages   []models.Message `json:"messages"`
}

// NewTranscript copies messages into a transcript stamped with the current time
func NewTranscript(sessionID, backend string, messages []models.Message) *Transcript {
	msgs := make([]models.Message, len(messages))
	copy(msgs, messages)
	return &Transcript{
		SessionID:  sessionID,
		Backend:    backend,
		ExportedAt: time.Now(),
		Messages:   msgs,
	}
}

// ToMarkdown renders the transcript as Markdown
func (t *Transcript) ToMarkdown() string {
	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(models.AppTitle)
	sb.WriteString("\n\n")

	sb.WriteString("**Session:** ")
	sb.WriteString(t.SessionID)
	sb.WriteString("\n")
	if t.Backend != "" {
		sb.WriteString("**Backend:** ")
		sb.WriteString(t.Backend)
		sb.WriteString("\n")
	}
	sb.WriteString("**Exported:** ")
	sb.WriteString(t.ExportedAt.Format("2006-01-02 15:04:05"))
	sb.WriteString("\n")
	sb.WriteString("**Messages:** ")
	sb.WriteString(fmt.Sprintf("%d", len(t.Messages)))
	sb.WriteString("\n\n---\n\n")

	for i, msg := range t.Messages {
		sb.WriteString("## ")
		sb.WriteString(msg.Sender.Label())
		sb.WriteString("\n\n")
		sb.WriteString(msg.Text)
		sb.WriteString("\n")

		if i < len(t.Messages)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return sb.String()
}

// ToJSON renders the transcript as indented JSON
func (t *Transcript) ToJSON() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// FileName returns the default file name for the transcript in format
func (t *Transcript) FileName(format ExportFormat) string {
	id := t.SessionID
	if len(id) > 8 {
		id = id[:8]
	}
	if id == "" {
		id = "session"
	}
	return fmt.Sprintf("sanchai-%s-%s%s", t.ExportedAt.Format("20060102-150405"), id, format.Extension())
}

// Write stores the transcript under dir and returns the written path
func (t *Transcript) Write(dir string, format ExportFormat) (string, error) {
	var data []byte
	switch format {
	case ExportFormatJSON:
		b, err := t.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to marshal transcript: %w", err)
		}
		data = b
	default:
		data = []byte(t.ToMarkdown())
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create transcript directory: %w", err)
	}

	path := filepath.Join(dir, t.FileName(format))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write transcript: %w", err)
	}
	return path, nil
}
