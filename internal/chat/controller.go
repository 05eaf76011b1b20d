package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sanchai/sanchai/internal/api"
	"github.com/sanchai/sanchai/internal/models"
)

// Observer is notified of every message appended to the history
type Observer func(models.Message)

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the logger used for session events
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithObserver registers fn to be called after each appended message
func WithObserver(fn Observer) Option {
	return func(c *Controller) {
		c.observers = append(c.observers, fn)
	}
}

// WithSessionID overrides the generated session identifier
func WithSessionID(id string) Option {
	return func(c *Controller) {
		c.id = id
	}
}

// Controller owns one chat session. It is safe for concurrent use; the
// pending flag is checked and set under the same lock, so at most one
// request is ever outstanding.
type Controller struct {
	client    api.ChatClient
	id        string
	logger    *zap.Logger
	observers []Observer

	mu       sync.Mutex
	state    State
	seq      uint64
	inflight *Task
}

// NewController creates an idle session backed by client
func NewController(client api.ChatClient, opts ...Option) *Controller {
	c := &Controller{
		client: client,
		id:     uuid.NewString(),
		logger: zap.NewNop(),
		state:  State{History: []models.Message{}},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logger = c.logger.With(zap.String("session", c.id))
	return c
}

// ID returns the session identifier
func (c *Controller) ID() string {
	return c.id
}

// UpdateDraft replaces the draft. It is allowed while a request is pending.
func (c *Controller) UpdateDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Draft = text
}

// Submit accepts the current draft when it is not blank and nothing is
// pending. On acceptance the user message is appended, the draft cleared and
// the session marked pending before Submit returns; the returned Task must
// then be run and handed to Resolve. A rejected submit changes nothing.
func (c *Controller) Submit() (*Task, bool) {
	c.mu.Lock()

	text := strings.TrimSpace(c.state.Draft)
	if text == "" || c.state.Pending {
		pending := c.state.Pending
		c.mu.Unlock()
		c.logger.Debug("submit ignored", zap.Bool("pending", pending), zap.Bool("blank", text == ""))
		return nil, false
	}

	msg := models.NewUserMessage(text)
	c.state.History = append(c.state.History, msg)
	c.state.Draft = ""
	c.state.Pending = true

	c.seq++
	task := &Task{seq: c.seq, text: text, client: c.client}
	c.inflight = task
	c.mu.Unlock()

	c.logger.Info("message submitted", zap.Uint64("seq", task.seq), zap.Int("length", len(text)))
	c.notify(msg)
	return task, true
}

// Resolve completes task with result: the agent message is appended and the
// session returns to idle. Resolving a task that is not the outstanding one
// is ignored and reported as false.
func (c *Controller) Resolve(task *Task, result Result) bool {
	c.mu.Lock()
	if task == nil || c.inflight != task {
		c.mu.Unlock()
		c.logger.Warn("stale result ignored")
		return false
	}

	msg := result.Message()
	c.state.History = append(c.state.History, msg)
	c.state.Pending = false
	c.inflight = nil
	c.mu.Unlock()

	fields := []zap.Field{
		zap.Uint64("seq", task.seq),
		zap.Stringer("outcome", result.Outcome()),
	}
	if result.Err != nil {
		c.logger.Warn("submission failed", append(fields, zap.Error(result.Err))...)
	} else {
		c.logger.Info("submission resolved", fields...)
	}

	c.notify(msg)
	return true
}

// Send submits the current draft and runs the call inline, returning the
// result once it is resolved. ok is false when the submit was rejected.
func (c *Controller) Send(ctx context.Context) (result Result, ok bool) {
	task, ok := c.Submit()
	if !ok {
		return Result{}, false
	}

	result = task.Run(ctx)
	c.Resolve(task, result)
	return result, true
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Pending reports whether a request is outstanding
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Pending
}

func (c *Controller) notify(msg models.Message) {
	for _, fn := range c.observers {
		fn(msg)
	}
}
