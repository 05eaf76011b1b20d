package chat

import (
	"context"
	"fmt"

	"github.com/sanchai/sanchai/internal/api"
	"github.com/sanchai/sanchai/internal/models"
)

// Outcome classifies how a submission resolved
type Outcome int

const (
	// OutcomeReply means the collaborator answered with text
	OutcomeReply Outcome = iota
	// OutcomeNoResponse means a successful answer without usable text
	OutcomeNoResponse
	// OutcomeFailure means a transport, status or decoding failure
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReply:
		return "reply"
	case OutcomeNoResponse:
		return "no_response"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Result is what running a Task yields: either a reply or the failure reason
type Result struct {
	Reply *models.ChatReply
	Err   error
}

// Outcome classifies the result
func (r Result) Outcome() Outcome {
	switch {
	case r.Err != nil:
		return OutcomeFailure
	case !r.Reply.HasResponse():
		return OutcomeNoResponse
	default:
		return OutcomeReply
	}
}

// Message converts the result into the agent message shown in the history
func (r Result) Message() models.Message {
	switch r.Outcome() {
	case OutcomeFailure:
		return models.NewAgentMessage(fmt.Sprintf("%s (%v)", models.ConnectFailureText, r.Err))
	case OutcomeNoResponse:
		return models.NewAgentMessage(models.NoResponseText)
	default:
		return models.NewAgentMessage(r.Reply.Response)
	}
}

// Task is the deferred collaborator call of an accepted submission
type Task struct {
	seq    uint64
	text   string
	client api.ChatClient
}

// Text returns the trimmed message the task sends
func (t *Task) Text() string {
	return t.text
}

// Run performs the call. It never panics on collaborator failures; they are
// reported through Result.Err.
func (t *Task) Run(ctx context.Context) (result Result) {
	if t.client == nil {
		return Result{Err: fmt.Errorf("no chat client configured")}
	}

	defer func() {
		if r := recover(); r != nil {
			result = Result{Err: fmt.Errorf("chat client panicked: %v", r)}
		}
	}()

	reply, err := t.client.Chat(ctx, t.text)
	return Result{Reply: reply, Err: err}
}
