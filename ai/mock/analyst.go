package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/minuteman/ai"
)

// MockAnalyst is a test double for ai.MeetingAnalyst.
// It allows custom behavior injection via function fields.
type MockAnalyst struct {
	// SummarizeFunc is called by Summarize if set.
	SummarizeFunc func(ctx context.Context, transcript string) (*ai.MeetingSummary, error)

	// ExtractActionItemsFunc is called by ExtractActionItems if set.
	ExtractActionItemsFunc func(ctx context.Context, transcript, summary string) ([]ai.DraftActionItem, error)

	// MatchAssigneeFunc is called by MatchAssignee if set.
	MatchAssigneeFunc func(ctx context.Context, req ai.AssigneeRequest) (*ai.AssigneeMatch, error)

	// ResolveDeadlinesFunc is called by ResolveDeadlines if set.
	ResolveDeadlinesFunc func(ctx context.Context, meetingDate string, items []ai.DeadlineItem) ([]ai.DeadlineEntry, error)

	mu                sync.Mutex
	summarizeCalls    int
	extractCalls      int
	matchCalls        int
	resolveCalls      int
	matchedAssignees  []string
}

var _ ai.MeetingAnalyst = (*MockAnalyst)(nil)

// NewMockAnalyst creates a mock analyst with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockAnalyst() *MockAnalyst {
	return &MockAnalyst{}
}

// Summarize returns a fixed mock summary unless SummarizeFunc is set.
func (m *MockAnalyst) Summarize(ctx context.Context, transcript string) (*ai.MeetingSummary, error) {
	m.mu.Lock()
	m.summarizeCalls++
	m.mu.Unlock()

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, transcript)
	}

	return &ai.MeetingSummary{
		Summary:      "Mock summary of the meeting.",
		KeyTopics:    []string{},
		Participants: []string{},
	}, nil
}

// ExtractActionItems returns an empty list unless ExtractActionItemsFunc is set.
// An empty list is a valid result per the extractor contract, and it keeps the
// pipeline's conditional skip branch as the default path in tests.
func (m *MockAnalyst) ExtractActionItems(ctx context.Context, transcript, summary string) ([]ai.DraftActionItem, error) {
	m.mu.Lock()
	m.extractCalls++
	m.mu.Unlock()

	if m.ExtractActionItemsFunc != nil {
		return m.ExtractActionItemsFunc(ctx, transcript, summary)
	}
	return []ai.DraftActionItem{}, nil
}

// MatchAssignee picks the first candidate unless MatchAssigneeFunc is set.
// With no candidates it echoes the mentioned assignee without an email.
func (m *MockAnalyst) MatchAssignee(ctx context.Context, req ai.AssigneeRequest) (*ai.AssigneeMatch, error) {
	m.mu.Lock()
	m.matchCalls++
	m.matchedAssignees = append(m.matchedAssignees, req.MentionedAssignee)
	m.mu.Unlock()

	if m.MatchAssigneeFunc != nil {
		return m.MatchAssigneeFunc(ctx, req)
	}

	if len(req.Candidates) > 0 {
		// Prefer an explicitly named candidate when one was mentioned.
		for _, c := range req.Candidates {
			if strings.EqualFold(c.Name, req.MentionedAssignee) {
				return &ai.AssigneeMatch{Name: c.Name, Email: c.Email, Reasoning: "mentioned by name"}, nil
			}
		}
		first := req.Candidates[0]
		return &ai.AssigneeMatch{Name: first.Name, Email: first.Email, Reasoning: "first candidate"}, nil
	}

	return &ai.AssigneeMatch{Name: req.MentionedAssignee, Reasoning: "no candidates"}, nil
}

// ResolveDeadlines returns no entries unless ResolveDeadlinesFunc is set,
// leaving raw deadlines untouched.
func (m *MockAnalyst) ResolveDeadlines(ctx context.Context, meetingDate string, items []ai.DeadlineItem) ([]ai.DeadlineEntry, error) {
	m.mu.Lock()
	m.resolveCalls++
	m.mu.Unlock()

	if m.ResolveDeadlinesFunc != nil {
		return m.ResolveDeadlinesFunc(ctx, meetingDate, items)
	}
	return []ai.DeadlineEntry{}, nil
}

// SummarizeCallCount returns the number of times Summarize was called.
func (m *MockAnalyst) SummarizeCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.summarizeCalls
}

// ExtractCallCount returns the number of times ExtractActionItems was called.
func (m *MockAnalyst) ExtractCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.extractCalls
}

// MatchCallCount returns the number of times MatchAssignee was called.
func (m *MockAnalyst) MatchCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchCalls
}

// ResolveCallCount returns the number of times ResolveDeadlines was called.
func (m *MockAnalyst) ResolveCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolveCalls
}

// MatchedAssignees returns the mentioned-assignee values passed to
// MatchAssignee, in call order.
func (m *MockAnalyst) MatchedAssignees() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.matchedAssignees))
	copy(out, m.matchedAssignees)
	return out
}

// Reset clears call counts and custom functions.
func (m *MockAnalyst) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summarizeCalls = 0
	m.extractCalls = 0
	m.matchCalls = 0
	m.resolveCalls = 0
	m.matchedAssignees = nil
	m.SummarizeFunc = nil
	m.ExtractActionItemsFunc = nil
	m.MatchAssigneeFunc = nil
	m.ResolveDeadlinesFunc = nil
}
