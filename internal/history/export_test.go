package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sanchai/sanchai/internal/models"
)

func sampleTranscript() *Transcript {
	t := NewTranscript("0f8fad5b-d9cb-469f-a165-70867728950e", "http://127.0.0.1:8000", []models.Message{
		models.NewUserMessage("weather of Pune today?"),
		models.NewAgentMessage("Sunny, 28°C"),
	})
	t.ExportedAt = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	return t
}

func TestParseExportFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ExportFormat
		wantErr bool
	}{
		{"", ExportFormatMarkdown, false},
		{"md", ExportFormatMarkdown, false},
		{"Markdown", ExportFormatMarkdown, false},
		{"json", ExportFormatJSON, false},
		{"yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseExportFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseExportFormat(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseExportFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewTranscript_CopiesMessages(t *testing.T) {
	msgs := []models.Message{models.NewUserMessage("a")}
	tr := NewTranscript("id", "", msgs)
	msgs[0].Text = "changed"

	if tr.Messages[0].Text != "a" {
		t.Error("transcript must not alias the caller's slice")
	}
}

func TestTranscript_ToMarkdown(t *testing.T) {
	md := sampleTranscript().ToMarkdown()

	for _, want := range []string{
		"# SanchAI Weather Agent",
		"**Session:** 0f8fad5b-d9cb-469f-a165-70867728950e",
		"**Backend:** http://127.0.0.1:8000",
		"**Exported:** 2026-10-18 09:30:00",
		"**Messages:** 2",
		"## You\n\nweather of Pune today?",
		"## Agent\n\nSunny, 28°C",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}

	if strings.Index(md, "## You") > strings.Index(md, "## Agent") {
		t.Error("messages out of order")
	}
}

func TestTranscript_ToJSON(t *testing.T) {
	data, err := sampleTranscript().ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() returned error: %v", err)
	}

	var decoded struct {
		SessionID string `json:"session_id"`
		Messages  []struct {
			Sender string `json:"sender"`
			Text   string `json:"text"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded.Messages) != 2 || decoded.Messages[1].Sender != "agent" {
		t.Errorf("unexpected messages: %+v", decoded.Messages)
	}
}

func TestTranscript_FileName(t *testing.T) {
	tr := sampleTranscript()

	if got := tr.FileName(ExportFormatMarkdown); got != "sanchai-20261018-093000-0f8fad5b.md" {
		t.Errorf("FileName() = %s", got)
	}
	if got := tr.FileName(ExportFormatJSON); !strings.HasSuffix(got, ".json") {
		t.Errorf("FileName(json) = %s", got)
	}

	tr.SessionID = ""
	if got := tr.FileName(ExportFormatMarkdown); !strings.Contains(got, "-session.md") {
		t.Errorf("FileName() with empty id = %s", got)
	}
}

func TestTranscript_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "transcripts")

	for _, format := range []ExportFormat{ExportFormatMarkdown, ExportFormatJSON} {
		path, err := sampleTranscript().Write(dir, format)
		if err != nil {
			t.Fatalf("Write(%s) returned error: %v", format, err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("transcript not written: %v", err)
		}
		if !strings.Contains(string(data), "Sunny, 28°C") {
			t.Errorf("%s transcript missing agent reply", format)
		}

		info, _ := os.Stat(path)
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Errorf("permissions = %o, want 600", perm)
		}
	}
}
