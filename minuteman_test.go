package minuteman

import (
	"context"
	"strings"
	"testing"

	"github.com/poiesic/minuteman/ai"
	"github.com/poiesic/minuteman/ai/mock"
	"github.com/poiesic/minuteman/assistant"
	"github.com/poiesic/minuteman/core"
	"github.com/poiesic/minuteman/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const systemTestTeamJSON = `[
  {
    "id": "tm-001",
    "name": "Mike Johnson",
    "email": "mike.johnson@example.com",
    "role": "QA Lead",
    "expertise": ["test automation"],
    "current_projects": ["Regression suite"],
    "reports_to": "Sarah Chen"
  }
]`

const systemTestTranscript = `Meeting: Launch Planning
Date: 2025-06-02
Duration: 30 minutes
Attendees: Sarah Chen, Mike Johnson

Sarah Chen: Mike, can you finish the regression pass by Friday?
Mike Johnson: Yes, I will have it done by Friday.
Sarah Chen: Great, that unblocks the release.`

func newTestSystem(t *testing.T) (*System, *mock.MockProvider, *notify.MockDispatcher) {
	t.Helper()

	provider := mock.NewMockProviderWithServices(
		mock.NewMockAnalyst(), mock.NewMockResponder(), mock.NewMockEmbedder())
	dispatcher := notify.NewMockDispatcher()

	sys, err := NewSystem("",
		WithInMemoryStorage(),
		WithProvider(provider),
		WithDispatcher(dispatcher),
	)
	require.NoError(t, err)
	t.Cleanup(func() { sys.Close() })

	return sys, provider, dispatcher
}

func TestSystemSeedProcessAsk(t *testing.T) {
	sys, provider, dispatcher := newTestSystem(t)
	ctx := context.Background()

	// Seed the team corpus.
	indexer, err := sys.NewIndexer()
	require.NoError(t, err)
	count, err := indexer.IndexTeamDirectory(ctx, strings.NewReader(systemTestTeamJSON))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Process a transcript end to end.
	provider.GetMockAnalyst().ExtractActionItemsFunc = func(ctx context.Context, transcript, summary string) ([]ai.DraftActionItem, error) {
		return []ai.DraftActionItem{
			{
				Description: "Finish the regression pass",
				Assignee:    "Mike Johnson",
				Priority:    "HIGH",
				Deadline:    "by Friday",
			},
		}, nil
	}

	engine, err := sys.NewEngine()
	require.NoError(t, err)
	defer engine.Release()

	state := engine.Process(ctx, systemTestTranscript, core.SourceSample)
	require.Len(t, state.ActionItems, 1)

	item := state.ActionItems[0]
	assert.Equal(t, "ai-001", item.Id)
	assert.Equal(t, "Mike Johnson", item.Assignee)
	assert.Equal(t, "mike.johnson@example.com", item.AssigneeEmail)
	assert.Equal(t, "2025-06-06", item.Deadline)
	assert.Equal(t, []string{"mike.johnson@example.com"}, state.EmailsSent)
	assert.Empty(t, state.Errors)
	require.Len(t, dispatcher.Sends(), 1)

	// Ask a question against the seeded corpus.
	router, err := sys.NewRouter()
	require.NoError(t, err)

	answer, source, err := router.Ask(ctx, "Who is the QA lead?", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, answer)
	assert.Equal(t, assistant.SourceTeamDirectory, source)
}

func TestSystemAccessors(t *testing.T) {
	sys, _, _ := newTestSystem(t)

	assert.NotNil(t, sys.DocumentRepository())
	assert.NotNil(t, sys.Retriever())

	count, err := sys.DocumentRepository().CountDocuments(context.Background(), core.CorpusTeam)
	require.NoError(t, err)
	assert.Zero(t, count)
}
