package score

import (
	"context"
	"sync"
)

// mockBackend is a mock implementation of the ChatBackend interface
type mockBackend struct {
	mu        sync.Mutex
	calls     []string
	checkFunc func(ctx context.Context) error
	chatFunc  func(ctx context.Context, system, user string) (string, error)
}

func (m *mockBackend) CheckAvailable(ctx context.Context) error {
	if m.checkFunc != nil {
		return m.checkFunc(ctx)
	}
	return nil
}

func (m *mockBackend) Chat(ctx context.Context, system, user string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, user)
	m.mu.Unlock()
	if m.chatFunc != nil {
		return m.chatFunc(ctx, system, user)
	}
	return `{"score": 5, "summary": "ok"}`, nil
}

func (m *mockBackend) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockExtractor is a mock implementation of the ContentExtractor interface
type mockExtractor struct {
	extractFunc func(ctx context.Context, url string) (string, error)
	called      bool
}

func (m *mockExtractor) Extract(ctx context.Context, url string) (string, error) {
	m.called = true
	if m.extractFunc != nil {
		return m.extractFunc(ctx, url)
	}
	return "", nil
}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct {
	mu       sync.Mutex
	warnings []string
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}

func (m *mockLogger) Warn(msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnings = append(m.warnings, msg)
}

func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}
