package api

import (
	"context"
	"sync"

	"github.com/sanchai/sanchai/internal/models"
)

// MockClient is a mock implementation of CollaboratorClient for testing
type MockClient struct {
	// Mock return values
	ChatReply  *models.ChatReply
	ChatErr    error
	StatusVal  *models.Status
	StatusErr  error
	BaseURLVal string

	// Gate, when set, blocks Chat until a value is received or the channel is closed
	Gate chan struct{}

	mu          sync.Mutex
	chatCalls   int
	messages    []string
	closeCalled bool
}

// Ensure MockClient implements CollaboratorClient
var _ CollaboratorClient = (*MockClient)(nil)

// NewMockClient returns a MockClient answering every chat with response
func NewMockClient(response string) *MockClient {
	return &MockClient{
		ChatReply: &models.ChatReply{Response: response},
	}
}

func (m *MockClient) Chat(ctx context.Context, message string) (*models.ChatReply, error) {
	m.mu.Lock()
	m.chatCalls++
	m.messages = append(m.messages, message)
	gate := m.Gate
	m.mu.Unlock()

	if gate != nil {
		<-gate
	}

	if m.ChatErr != nil {
		return nil, m.ChatErr
	}
	if m.ChatReply == nil {
		return &models.ChatReply{}, nil
	}
	reply := *m.ChatReply
	return &reply, nil
}

func (m *MockClient) Status(ctx context.Context) (*models.Status, error) {
	return m.StatusVal, m.StatusErr
}

func (m *MockClient) BaseURL() string {
	if m.BaseURLVal == "" {
		return models.DefaultBackendURL
	}
	return m.BaseURLVal
}

func (m *MockClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCalled = true
}

// ChatCalls returns how many times Chat was invoked
func (m *MockClient) ChatCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chatCalls
}

// Messages returns the messages passed to Chat, in order
func (m *MockClient) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.messages))
	copy(out, m.messages)
	return out
}

// CloseCalled reports whether Close was invoked
func (m *MockClient) CloseCalled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCalled
}
