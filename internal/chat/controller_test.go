package chat

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/sanchai/sanchai/internal/api"
	apierrors "github.com/sanchai/sanchai/internal/errors"
	"github.com/sanchai/sanchai/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewController_InitialState(t *testing.T) {
	c := NewController(api.NewMockClient("x"))

	s := c.Snapshot()
	assert.Equal(t, "", s.Draft)
	assert.Empty(t, s.History)
	assert.NotNil(t, s.History)
	assert.False(t, s.Pending)
	assert.NotEmpty(t, c.ID())
}

func TestController_WithSessionID(t *testing.T) {
	c := NewController(nil, WithSessionID("fixed"))
	assert.Equal(t, "fixed", c.ID())
}

func TestController_RoundTrip(t *testing.T) {
	client := api.NewMockClient("Sunny, 28°C")
	c := NewController(client)

	c.UpdateDraft("weather of Pune today?")
	task, ok := c.Submit()
	require.True(t, ok)

	s := c.Snapshot()
	require.Len(t, s.History, 1)
	assert.Equal(t, models.NewUserMessage("weather of Pune today?"), s.History[0])
	assert.Equal(t, "", s.Draft)
	assert.True(t, s.Pending)
	assert.Equal(t, 0, client.ChatCalls(), "the call belongs to the task, not to Submit")

	assert.True(t, c.Resolve(task, task.Run(context.Background())))

	s = c.Snapshot()
	require.Len(t, s.History, 2)
	assert.Equal(t, models.NewAgentMessage("Sunny, 28°C"), s.History[1])
	assert.False(t, s.Pending)
	assert.Equal(t, []string{"weather of Pune today?"}, client.Messages())
}

func TestController_SubmitTrimsDraft(t *testing.T) {
	client := api.NewMockClient("ok")
	c := NewController(client)

	c.UpdateDraft("   weather in London \n")
	task, ok := c.Submit()
	require.True(t, ok)
	assert.Equal(t, "weather in London", task.Text())
	assert.Equal(t, "weather in London", c.Snapshot().History[0].Text)

	c.Resolve(task, task.Run(context.Background()))
	assert.Equal(t, []string{"weather in London"}, client.Messages())
}

func TestController_BlankDraftIsNoop(t *testing.T) {
	for _, draft := range []string{"", " ", "\t\n  "} {
		c := NewController(api.NewMockClient("x"))
		c.UpdateDraft(draft)

		before := c.Snapshot()
		task, ok := c.Submit()

		assert.False(t, ok)
		assert.Nil(t, task)
		assert.Equal(t, before, c.Snapshot(), "draft %q must not change state", draft)
	}
}

func TestController_SubmitWhilePendingIsNoop(t *testing.T) {
	client := api.NewMockClient("first")
	c := NewController(client)

	c.UpdateDraft("first question")
	task, ok := c.Submit()
	require.True(t, ok)

	c.UpdateDraft("second question")
	before := c.Snapshot()

	second, ok := c.Submit()
	assert.False(t, ok)
	assert.Nil(t, second)
	assert.Equal(t, before, c.Snapshot())
	assert.Equal(t, "second question", c.Snapshot().Draft)

	c.Resolve(task, task.Run(context.Background()))
	assert.Equal(t, 1, client.ChatCalls())

	// the kept draft can be sent once idle again
	next, ok := c.Submit()
	require.True(t, ok)
	assert.Equal(t, "second question", next.Text())
	c.Resolve(next, next.Run(context.Background()))
	assert.Len(t, c.Snapshot().History, 4)
}

func TestController_DraftEditableWhilePending(t *testing.T) {
	c := NewController(api.NewMockClient("x"))
	c.UpdateDraft("one")
	task, ok := c.Submit()
	require.True(t, ok)

	c.UpdateDraft("typing meanwhile")
	c.Resolve(task, task.Run(context.Background()))

	s := c.Snapshot()
	assert.Equal(t, "typing meanwhile", s.Draft, "resolution must not touch the draft")
	assert.False(t, s.Pending)
}

func TestController_Resolutions(t *testing.T) {
	tests := []struct {
		name        string
		client      *api.MockClient
		wantText    string
		wantContain []string
		wantOutcome Outcome
	}{
		{
			name:        "reply",
			client:      api.NewMockClient("Sunny, 28°C"),
			wantText:    "Sunny, 28°C",
			wantOutcome: OutcomeReply,
		},
		{
			name:        "missing response field",
			client:      &api.MockClient{ChatReply: &models.ChatReply{Raw: "{}"}},
			wantText:    "Error: No response received from agent.",
			wantOutcome: OutcomeNoResponse,
		},
		{
			name:        "empty response coalesces to fallback",
			client:      api.NewMockClient(""),
			wantText:    "Error: No response received from agent.",
			wantOutcome: OutcomeNoResponse,
		},
		{
			name:        "status 500",
			client:      &api.MockClient{ChatErr: apierrors.NewAPIError(500, "/chat")},
			wantContain: []string{"Error: Failed to connect to backend or LLM.", "500"},
			wantOutcome: OutcomeFailure,
		},
		{
			name:        "network failure",
			client:      &api.MockClient{ChatErr: apierrors.NewNetworkError("chat request", errors.New("connection refused"))},
			wantContain: []string{"Error: Failed to connect to backend or LLM. (", "connection refused", ")"},
			wantOutcome: OutcomeFailure,
		},
		{
			name:        "malformed payload",
			client:      &api.MockClient{ChatErr: apierrors.NewParseError("invalid JSON in chat response", "/chat")},
			wantContain: []string{"Error: Failed to connect to backend or LLM.", "invalid JSON"},
			wantOutcome: OutcomeFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(tt.client)
			c.UpdateDraft("weather of Pune today?")

			task, ok := c.Submit()
			require.True(t, ok)

			result := task.Run(context.Background())
			assert.Equal(t, tt.wantOutcome, result.Outcome())
			require.True(t, c.Resolve(task, result))

			s := c.Snapshot()
			require.Len(t, s.History, 2)
			assert.False(t, s.Pending)
			assert.Equal(t, models.SenderAgent, s.History[1].Sender)
			if tt.wantText != "" {
				assert.Equal(t, tt.wantText, s.History[1].Text)
			}
			for _, part := range tt.wantContain {
				assert.Contains(t, s.History[1].Text, part)
			}
		})
	}
}

func TestController_ResolveStaleTask(t *testing.T) {
	c := NewController(api.NewMockClient("x"))

	assert.False(t, c.Resolve(nil, Result{}))
	assert.False(t, c.Resolve(&Task{}, Result{}))

	c.UpdateDraft("hi")
	task, ok := c.Submit()
	require.True(t, ok)
	require.True(t, c.Resolve(task, task.Run(context.Background())))

	// a second resolution of the same task must not append again
	assert.False(t, c.Resolve(task, Result{Reply: &models.ChatReply{Response: "dup"}}))
	assert.Len(t, c.Snapshot().History, 2)
}

func TestController_Send(t *testing.T) {
	c := NewController(api.NewMockClient("Cloudy"))

	_, ok := c.Send(context.Background())
	assert.False(t, ok, "blank draft must be rejected")

	c.UpdateDraft("weather in Paris")
	res, ok := c.Send(context.Background())
	require.True(t, ok)
	assert.Equal(t, OutcomeReply, res.Outcome())
	assert.Equal(t, models.NewAgentMessage("Cloudy"), res.Message())
	assert.False(t, c.Pending())
	assert.Len(t, c.Snapshot().History, 2)
}

func TestController_Observer(t *testing.T) {
	var seen []models.Message
	c := NewController(api.NewMockClient("Rainy"), WithObserver(func(m models.Message) {
		seen = append(seen, m)
	}))

	c.UpdateDraft("weather in Mumbai")
	_, ok := c.Send(context.Background())
	require.True(t, ok)

	assert.Equal(t, []models.Message{
		models.NewUserMessage("weather in Mumbai"),
		models.NewAgentMessage("Rainy"),
	}, seen)
}

func TestController_SnapshotIsIsolated(t *testing.T) {
	c := NewController(api.NewMockClient("x"))
	c.UpdateDraft("hello")
	_, ok := c.Send(context.Background())
	require.True(t, ok)

	s := c.Snapshot()
	s.History[0].Text = "mutated"
	assert.Equal(t, "hello", c.Snapshot().History[0].Text)
}

func TestController_NilClientFailsSoftly(t *testing.T) {
	c := NewController(nil)
	c.UpdateDraft("hi")

	res, ok := c.Send(context.Background())
	require.True(t, ok)
	assert.Equal(t, OutcomeFailure, res.Outcome())
	assert.Contains(t, res.Message().Text, models.ConnectFailureText)
	assert.False(t, c.Pending())
}

func TestController_ConcurrentSubmitsAllowOneInFlight(t *testing.T) {
	gate := make(chan struct{})
	client := api.NewMockClient("done")
	client.Gate = gate
	c := NewController(client)
	c.UpdateDraft("only once")

	const workers = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted []*Task
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if task, ok := c.Submit(); ok {
				mu.Lock()
				accepted = append(accepted, task)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Len(t, accepted, 1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		task := accepted[0]
		c.Resolve(task, task.Run(context.Background()))
	}()

	// while the call is blocked the session stays pending and rejects submits
	c.UpdateDraft("another")
	_, ok := c.Submit()
	assert.False(t, ok)
	assert.True(t, c.Pending())

	close(gate)
	<-done

	assert.False(t, c.Pending())
	assert.Equal(t, 1, client.ChatCalls())
	assert.Len(t, c.Snapshot().History, 2)
}

func TestController_HistoryGrowth(t *testing.T) {
	c := NewController(api.NewMockClient("ok"))

	for i, draft := range []string{"a", "b", "c"} {
		c.UpdateDraft(draft)
		task, ok := c.Submit()
		require.True(t, ok)
		assert.Len(t, c.Snapshot().History, 2*i+1)

		c.Resolve(task, task.Run(context.Background()))
		assert.Len(t, c.Snapshot().History, 2*i+2)
	}

	s := c.Snapshot()
	for i, msg := range s.History {
		want := models.SenderUser
		if i%2 == 1 {
			want = models.SenderAgent
		}
		assert.Equal(t, want, msg.Sender, "message %d", i)
	}
}
