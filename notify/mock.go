package notify

import (
	"context"
	"sync"
)

// MockDispatcher is a test double for Dispatcher.
// It records every notification and allows failure injection.
type MockDispatcher struct {
	// SendFunc is called by Send if set.
	SendFunc func(ctx context.Context, n Notification) (Status, error)

	mu    sync.Mutex
	sends []Notification
}

var _ Dispatcher = (*MockDispatcher)(nil)

// NewMockDispatcher creates a mock dispatcher that reports every
// notification as sent.
func NewMockDispatcher() *MockDispatcher {
	return &MockDispatcher{}
}

// Send records the notification and reports StatusSent unless SendFunc
// is set.
func (m *MockDispatcher) Send(ctx context.Context, n Notification) (Status, error) {
	m.mu.Lock()
	m.sends = append(m.sends, n)
	m.mu.Unlock()

	if m.SendFunc != nil {
		return m.SendFunc(ctx, n)
	}
	return StatusSent, nil
}

// Sends returns the recorded notifications in send order.
func (m *MockDispatcher) Sends() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Notification, len(m.sends))
	copy(out, m.sends)
	return out
}

// Reset clears recorded notifications and any custom function.
func (m *MockDispatcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sends = nil
	m.SendFunc = nil
}
