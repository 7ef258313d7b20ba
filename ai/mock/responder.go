package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/minuteman/ai"
)

// MockResponder is a test double for ai.Responder.
// It allows custom behavior injection via function fields.
type MockResponder struct {
	// ClassifyQueryFunc is called by ClassifyQuery if set.
	ClassifyQueryFunc func(ctx context.Context, question string, history []ai.Message) (*ai.QueryClassification, error)

	// AnswerFunc is called by Answer if set.
	AnswerFunc func(ctx context.Context, req ai.AnswerRequest) (string, error)

	// AnswerStreamFunc is called by AnswerStream if set.
	AnswerStreamFunc func(ctx context.Context, req ai.AnswerRequest, emit func(fragment string) error) error

	mu            sync.Mutex
	classifyCalls int
	answerCalls   int
	streamCalls   int
	questions     []string
}

var _ ai.Responder = (*MockResponder)(nil)

// NewMockResponder creates a mock responder with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockResponder() *MockResponder {
	return &MockResponder{}
}

// ClassifyQuery uses a simple keyword heuristic unless ClassifyQueryFunc
// is set. Questions about people and roles classify as team, questions
// about meetings and decisions as meeting, everything else as general.
func (m *MockResponder) ClassifyQuery(ctx context.Context, question string, history []ai.Message) (*ai.QueryClassification, error) {
	m.mu.Lock()
	m.classifyCalls++
	m.questions = append(m.questions, question)
	m.mu.Unlock()

	if m.ClassifyQueryFunc != nil {
		return m.ClassifyQueryFunc(ctx, question, history)
	}

	lower := strings.ToLower(question)
	category := "general"
	switch {
	case containsAny(lower, "who is", "who's", "team", "lead", "role", "expertise", "reports to", "email"):
		category = "team"
	case containsAny(lower, "meeting", "discuss", "decide", "decided", "action item", "deadline", "last week"):
		category = "meeting"
	}

	return &ai.QueryClassification{
		Category:  category,
		Reasoning: "keyword heuristic",
	}, nil
}

// Answer returns a deterministic answer echoing the question unless
// AnswerFunc is set.
func (m *MockResponder) Answer(ctx context.Context, req ai.AnswerRequest) (string, error) {
	m.mu.Lock()
	m.answerCalls++
	m.mu.Unlock()

	if m.AnswerFunc != nil {
		return m.AnswerFunc(ctx, req)
	}
	return "Mock answer: " + req.Question, nil
}

// AnswerStream emits the Answer result word by word unless
// AnswerStreamFunc is set. Each fragment carries a trailing space so the
// concatenation reads naturally.
func (m *MockResponder) AnswerStream(ctx context.Context, req ai.AnswerRequest, emit func(fragment string) error) error {
	m.mu.Lock()
	m.streamCalls++
	m.mu.Unlock()

	if m.AnswerStreamFunc != nil {
		return m.AnswerStreamFunc(ctx, req, emit)
	}

	answer := "Mock answer: " + req.Question
	if m.AnswerFunc != nil {
		var err error
		answer, err = m.AnswerFunc(ctx, req)
		if err != nil {
			return err
		}
	}

	words := strings.Fields(answer)
	for i, word := range words {
		fragment := word
		if i < len(words)-1 {
			fragment += " "
		}
		if err := emit(fragment); err != nil {
			return err
		}
	}
	return nil
}

// ClassifyCallCount returns the number of times ClassifyQuery was called.
func (m *MockResponder) ClassifyCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.classifyCalls
}

// AnswerCallCount returns the number of times Answer was called.
func (m *MockResponder) AnswerCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.answerCalls
}

// StreamCallCount returns the number of times AnswerStream was called.
func (m *MockResponder) StreamCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.streamCalls
}

// Questions returns the questions passed to ClassifyQuery, in call order.
func (m *MockResponder) Questions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.questions))
	copy(out, m.questions)
	return out
}

// Reset clears call counts and custom functions.
func (m *MockResponder) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.classifyCalls = 0
	m.answerCalls = 0
	m.streamCalls = 0
	m.questions = nil
	m.ClassifyQueryFunc = nil
	m.AnswerFunc = nil
	m.AnswerStreamFunc = nil
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
