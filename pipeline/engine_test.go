package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/poiesic/minuteman/ai"
	"github.com/poiesic/minuteman/ai/mock"
	"github.com/poiesic/minuteman/core"
	"github.com/poiesic/minuteman/knowledge"
	"github.com/poiesic/minuteman/notify"
	badgerstore "github.com/poiesic/minuteman/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTeamJSON = `[
  {
    "id": "tm-001",
    "name": "Sarah Chen",
    "email": "sarah.chen@example.com",
    "role": "Engineering Manager",
    "expertise": ["backend", "architecture"],
    "current_projects": ["API redesign"],
    "reports_to": "VP Engineering"
  },
  {
    "id": "tm-002",
    "name": "Mike Johnson",
    "email": "mike.johnson@example.com",
    "role": "QA Lead",
    "expertise": ["testing", "automation"],
    "current_projects": ["Release quality"],
    "reports_to": "Sarah Chen"
  }
]`

const testTranscript = `Meeting: Launch Planning
Date: 2025-06-02
Attendees: Sarah Chen, Mike Johnson

Sarah Chen: We need to lock the launch checklist this week.
Mike Johnson: I'll finish the regression pass, aiming for Friday.
Sarah Chen: Great, and I'll draft the rollout announcement next week.`

type testHarness struct {
	engine     *Engine
	provider   *mock.MockProvider
	dispatcher *notify.MockDispatcher
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()

	repo, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	provider := mock.NewMockProviderWithServices(
		mock.NewMockAnalyst(), mock.NewMockResponder(), mock.NewMockEmbedder())

	ix, err := knowledge.NewIndexer(repo, provider)
	require.NoError(t, err)
	_, err = ix.IndexTeamDirectory(context.Background(), strings.NewReader(testTeamJSON))
	require.NoError(t, err)

	retriever, err := knowledge.NewRetriever(repo, provider)
	require.NoError(t, err)

	dispatcher := notify.NewMockDispatcher()

	engine, err := NewEngine(retriever, provider, dispatcher, WithPoolSize(2))
	require.NoError(t, err)
	t.Cleanup(engine.Release)

	return &testHarness{engine: engine, provider: provider, dispatcher: dispatcher}
}

// withItems configures extraction to return the given drafts.
func (h *testHarness) withItems(drafts ...ai.DraftActionItem) {
	h.provider.GetMockAnalyst().ExtractActionItemsFunc = func(ctx context.Context, transcript, summary string) ([]ai.DraftActionItem, error) {
		return drafts, nil
	}
}

func collectSteps(e *Engine, transcript string) []string {
	var steps []string
	for name := range e.ProcessStream(context.Background(), transcript, core.SourceSample) {
		steps = append(steps, name)
	}
	return steps
}

func TestNewEngineValidation(t *testing.T) {
	provider := mock.NewMockProvider()
	dispatcher := notify.NewMockDispatcher()

	_, err := NewEngine(nil, provider, dispatcher)
	assert.ErrorIs(t, err, ErrRetrieverRequired)
}

func TestShortTranscriptFailsOpen(t *testing.T) {
	h := newHarness(t)

	state := h.engine.Process(context.Background(), "too short", core.SourcePasted)

	require.Len(t, state.Errors, 1)
	assert.Contains(t, state.Errors[0], "too short")
	assert.Empty(t, state.ActionItems)
	// Fails open: summarize and extraction still ran.
	assert.Equal(t, StepExtract, state.ProcessingStep)
}

func TestEmptyExtractionSkipsLaterStages(t *testing.T) {
	h := newHarness(t)
	// Default mock extraction returns no items.

	steps := collectSteps(h.engine, testTranscript)

	assert.Equal(t, []string{StepIntake, StepSummarize, StepExtract}, steps)
	assert.Zero(t, h.provider.GetMockAnalyst().MatchCallCount())
	assert.Empty(t, h.dispatcher.Sends())
}

func TestFullRunStageOrder(t *testing.T) {
	h := newHarness(t)
	h.withItems(ai.DraftActionItem{Description: "finish regression pass", Assignee: "Mike Johnson"})

	steps := collectSteps(h.engine, testTranscript)

	assert.Equal(t, []string{
		StepIntake, StepSummarize, StepExtract,
		StepAssignOwners, StepDeadlines, StepNotify,
	}, steps)
}

func TestActionItemIDsStableAcrossStages(t *testing.T) {
	h := newHarness(t)
	h.withItems(
		ai.DraftActionItem{Description: "finish regression pass", Deadline: "by Friday"},
		ai.DraftActionItem{Description: "draft rollout announcement", Deadline: "next week"},
		ai.DraftActionItem{Description: "update the FAQ"},
	)

	state := h.engine.Process(context.Background(), testTranscript, core.SourceSample)

	require.Len(t, state.ActionItems, 3)
	assert.Equal(t, "ai-001", state.ActionItems[0].Id)
	assert.Equal(t, "ai-002", state.ActionItems[1].Id)
	assert.Equal(t, "ai-003", state.ActionItems[2].Id)
	// Order and descriptions survive owner and deadline stages.
	assert.Equal(t, "finish regression pass", state.ActionItems[0].Description)
	assert.Equal(t, "draft rollout announcement", state.ActionItems[1].Description)
}

func TestSummarizeFailureUsesFallback(t *testing.T) {
	h := newHarness(t)
	h.provider.GetMockAnalyst().SummarizeFunc = func(ctx context.Context, transcript string) (*ai.MeetingSummary, error) {
		return nil, errors.New("model unavailable")
	}

	var steps []string
	var state core.ProcessingState
	for name, delta := range h.engine.ProcessStream(context.Background(), testTranscript, core.SourceSample) {
		steps = append(steps, name)
		delta.Apply(&state)
	}

	assert.Equal(t, SummaryFallback, state.Summary)
	require.Len(t, state.Errors, 1)
	assert.Contains(t, state.Errors[0], "model unavailable")
	// Extraction still executed after the failed summarize.
	assert.Contains(t, steps, StepExtract)
}

func TestDeadlinePolicyResolution(t *testing.T) {
	h := newHarness(t)
	h.withItems(
		ai.DraftActionItem{Description: "a", Deadline: "by Friday"},
		ai.DraftActionItem{Description: "b", Deadline: "next week"},
		ai.DraftActionItem{Description: "c"},
		ai.DraftActionItem{Description: "d", Deadline: "2025-02-12"},
	)

	state := h.engine.Process(context.Background(), testTranscript, core.SourceSample)

	require.Len(t, state.ActionItems, 4)
	assert.Equal(t, "2025-06-06", state.ActionItems[0].Deadline)
	assert.Equal(t, "2025-06-09", state.ActionItems[1].Deadline)
	assert.Equal(t, "2025-06-09", state.ActionItems[2].Deadline)
	assert.Equal(t, "2025-02-12", state.ActionItems[3].Deadline)
	// Everything was covered by the policy; the gateway was not consulted.
	assert.Zero(t, h.provider.GetMockAnalyst().ResolveCallCount())
}

func TestDeadlineGatewayHandlesFreeForm(t *testing.T) {
	h := newHarness(t)
	h.withItems(ai.DraftActionItem{Description: "book the venue", Deadline: "mid July"})
	h.provider.GetMockAnalyst().ResolveDeadlinesFunc = func(ctx context.Context, meetingDate string, items []ai.DeadlineItem) ([]ai.DeadlineEntry, error) {
		assert.Equal(t, "2025-06-02", meetingDate)
		require.Len(t, items, 1)
		assert.Equal(t, "mid July", items[0].RawDeadline)
		return []ai.DeadlineEntry{{Index: items[0].Index, Deadline: "2025-07-15"}}, nil
	}

	state := h.engine.Process(context.Background(), testTranscript, core.SourceSample)

	require.Len(t, state.ActionItems, 1)
	assert.Equal(t, "2025-07-15", state.ActionItems[0].Deadline)
}

func TestOutOfRangeDeadlineIndexDropped(t *testing.T) {
	h := newHarness(t)
	h.withItems(
		ai.DraftActionItem{Description: "a", Deadline: "mid July"},
		ai.DraftActionItem{Description: "b", Deadline: "sometime later"},
		ai.DraftActionItem{Description: "c", Deadline: "after the offsite"},
	)
	h.provider.GetMockAnalyst().ResolveDeadlinesFunc = func(ctx context.Context, meetingDate string, items []ai.DeadlineItem) ([]ai.DeadlineEntry, error) {
		return []ai.DeadlineEntry{{Index: 5, Deadline: "2025-07-01"}}, nil
	}

	state := h.engine.Process(context.Background(), testTranscript, core.SourceSample)

	require.Len(t, state.ActionItems, 3)
	// No item was mutated and no error was recorded.
	assert.Equal(t, "mid July", state.ActionItems[0].Deadline)
	assert.Equal(t, "sometime later", state.ActionItems[1].Deadline)
	assert.Equal(t, "after the offsite", state.ActionItems[2].Deadline)
	assert.Empty(t, state.Errors)
}

func TestDeadlineGatewayFailureLeavesRawPhrases(t *testing.T) {
	h := newHarness(t)
	h.withItems(ai.DraftActionItem{Description: "a", Deadline: "mid July"})
	h.provider.GetMockAnalyst().ResolveDeadlinesFunc = func(ctx context.Context, meetingDate string, items []ai.DeadlineItem) ([]ai.DeadlineEntry, error) {
		return nil, ai.ErrGateway
	}

	state := h.engine.Process(context.Background(), testTranscript, core.SourceSample)

	assert.Equal(t, "mid July", state.ActionItems[0].Deadline)
	require.Len(t, state.Errors, 1)
	assert.Contains(t, state.Errors[0], "deadline resolution")
	// The pipeline still completed.
	assert.Equal(t, StepNotify, state.ProcessingStep)
}

func TestAssignOwnersUsesTeamCandidates(t *testing.T) {
	h := newHarness(t)
	h.withItems(ai.DraftActionItem{Description: "run the regression suite", Assignee: "Mike Johnson"})
	h.provider.GetMockAnalyst().MatchAssigneeFunc = func(ctx context.Context, req ai.AssigneeRequest) (*ai.AssigneeMatch, error) {
		assert.Equal(t, "Mike Johnson", req.MentionedAssignee)
		require.NotEmpty(t, req.Candidates, "candidates retrieved from the team corpus")
		return &ai.AssigneeMatch{Name: "Mike Johnson", Email: "mike.johnson@example.com"}, nil
	}

	state := h.engine.Process(context.Background(), testTranscript, core.SourceSample)

	require.Len(t, state.ActionItems, 1)
	assert.Equal(t, "Mike Johnson", state.ActionItems[0].Assignee)
	assert.Equal(t, "mike.johnson@example.com", state.ActionItems[0].AssigneeEmail)
}

func TestAssignOwnerFailureIsIsolated(t *testing.T) {
	h := newHarness(t)
	h.withItems(
		ai.DraftActionItem{Description: "task alpha"},
		ai.DraftActionItem{Description: "task beta"},
	)
	h.provider.GetMockAnalyst().MatchAssigneeFunc = func(ctx context.Context, req ai.AssigneeRequest) (*ai.AssigneeMatch, error) {
		if req.TaskDescription == "task alpha" {
			return nil, ai.ErrGateway
		}
		return &ai.AssigneeMatch{Name: "Sarah Chen", Email: "sarah.chen@example.com"}, nil
	}

	state := h.engine.Process(context.Background(), testTranscript, core.SourceSample)

	require.Len(t, state.ActionItems, 2)
	assert.Equal(t, core.UnassignedOwner, state.ActionItems[0].Assignee)
	assert.Empty(t, state.ActionItems[0].AssigneeEmail)
	assert.Equal(t, "Sarah Chen", state.ActionItems[1].Assignee)
}

func TestUnspecifiedAssigneeUsesPlaceholder(t *testing.T) {
	h := newHarness(t)
	h.withItems(ai.DraftActionItem{Description: "update the FAQ"})
	h.provider.GetMockAnalyst().MatchAssigneeFunc = func(ctx context.Context, req ai.AssigneeRequest) (*ai.AssigneeMatch, error) {
		assert.Equal(t, "not specified", req.MentionedAssignee)
		return &ai.AssigneeMatch{Name: "Sarah Chen", Email: "sarah.chen@example.com"}, nil
	}

	h.engine.Process(context.Background(), testTranscript, core.SourceSample)
}

func TestNotificationsOnlyForResolvedEmails(t *testing.T) {
	h := newHarness(t)
	h.withItems(
		ai.DraftActionItem{Description: "task alpha"},
		ai.DraftActionItem{Description: "task beta"},
	)
	h.provider.GetMockAnalyst().MatchAssigneeFunc = func(ctx context.Context, req ai.AssigneeRequest) (*ai.AssigneeMatch, error) {
		if req.TaskDescription == "task alpha" {
			return nil, ai.ErrGateway // alpha ends up unassigned, no email
		}
		return &ai.AssigneeMatch{Name: "Mike Johnson", Email: "mike.johnson@example.com"}, nil
	}

	state := h.engine.Process(context.Background(), testTranscript, core.SourceSample)

	assert.Equal(t, []string{"mike.johnson@example.com"}, state.EmailsSent)
	sends := h.dispatcher.Sends()
	require.Len(t, sends, 1)
	assert.Equal(t, "Mike Johnson", sends[0].RecipientName)
	assert.NotEmpty(t, sends[0].MeetingSummary)
}

func TestFailedDispatchNotRecorded(t *testing.T) {
	h := newHarness(t)
	h.withItems(ai.DraftActionItem{Description: "task alpha"})
	h.provider.GetMockAnalyst().MatchAssigneeFunc = func(ctx context.Context, req ai.AssigneeRequest) (*ai.AssigneeMatch, error) {
		return &ai.AssigneeMatch{Name: "Sarah Chen", Email: "sarah.chen@example.com"}, nil
	}
	h.dispatcher.SendFunc = func(ctx context.Context, n notify.Notification) (notify.Status, error) {
		return notify.StatusFailed, nil
	}

	state := h.engine.Process(context.Background(), testTranscript, core.SourceSample)

	assert.Empty(t, state.EmailsSent)
	assert.Len(t, h.dispatcher.Sends(), 1)
}

func TestProcessStreamEarlyStop(t *testing.T) {
	h := newHarness(t)
	h.withItems(ai.DraftActionItem{Description: "task alpha"})

	var steps []string
	for name := range h.engine.ProcessStream(context.Background(), testTranscript, core.SourceSample) {
		steps = append(steps, name)
		if name == StepSummarize {
			break
		}
	}

	assert.Equal(t, []string{StepIntake, StepSummarize}, steps)
	// Later stages never ran.
	assert.Zero(t, h.provider.GetMockAnalyst().ExtractCallCount())
}

func TestDeltaApplySemantics(t *testing.T) {
	state := core.NewProcessingState("transcript", core.SourceSample)
	state.Errors = []string{"earlier"}
	state.KeyTopics = []string{"old"}

	summary := "new summary"
	d := &Delta{
		Summary:   &summary,
		KeyTopics: []string{"fresh"},
		Errors:    []string{"later"},
		Step:      StepSummarize,
	}
	d.Apply(state)

	assert.Equal(t, "new summary", state.Summary)
	assert.Equal(t, []string{"fresh"}, state.KeyTopics)
	// Errors append, never replace.
	assert.Equal(t, []string{"earlier", "later"}, state.Errors)
	assert.Equal(t, StepSummarize, state.ProcessingStep)

	// Nil fields leave state untouched.
	(&Delta{Step: StepExtract}).Apply(state)
	assert.Equal(t, "new summary", state.Summary)
	assert.Equal(t, []string{"fresh"}, state.KeyTopics)
}
