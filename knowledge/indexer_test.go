package knowledge

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/poiesic/minuteman/ai/mock"
	"github.com/poiesic/minuteman/core"
	"github.com/poiesic/minuteman/storage"
	badgerstore "github.com/poiesic/minuteman/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const teamDirectoryJSON = `[
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

func newTestIndexer(t *testing.T) (*Indexer, storage.DocumentRepository) {
	t.Helper()
	repo, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	ix, err := NewIndexer(repo, mock.NewMockProvider())
	require.NoError(t, err)
	return ix, repo
}

func TestNewIndexerValidation(t *testing.T) {
	repo, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	_, err = NewIndexer(nil, mock.NewMockProvider())
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	_, err = NewIndexer(repo, nil)
	assert.ErrorIs(t, err, ErrAIProviderRequired)
}

func TestIndexTeamDirectory(t *testing.T) {
	ix, repo := newTestIndexer(t)
	ctx := context.Background()

	count, err := ix.IndexTeamDirectory(ctx, strings.NewReader(teamDirectoryJSON))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	stored, err := repo.CountDocuments(ctx, core.CorpusTeam)
	require.NoError(t, err)
	assert.Equal(t, 2, stored)
}

func TestIndexTeamDirectoryRendersProfile(t *testing.T) {
	ix, repo := newTestIndexer(t)
	ctx := context.Background()

	_, err := ix.IndexTeamDirectory(ctx, strings.NewReader(teamDirectoryJSON))
	require.NoError(t, err)

	results, err := repo.FindSimilar(ctx, core.CorpusTeam, mustEmbed(t, "QA Lead testing automation"), 0, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)

	doc := results[0].Document
	assert.Contains(t, doc.Text, "Name: Mike Johnson")
	assert.Contains(t, doc.Text, "Role: QA Lead")
	assert.Contains(t, doc.Text, "Expertise: testing, automation")
	assert.Contains(t, doc.Text, "Reports To: Sarah Chen")
	assert.Equal(t, "mike.johnson@example.com", doc.Metadata["email"])
	assert.Equal(t, "QA Lead", doc.Metadata["role"])
}

func TestIndexTeamDirectoryReindexClearsStale(t *testing.T) {
	ix, repo := newTestIndexer(t)
	ctx := context.Background()

	_, err := ix.IndexTeamDirectory(ctx, strings.NewReader(teamDirectoryJSON))
	require.NoError(t, err)

	// Re-index with only one member; the other must not linger.
	single := `[{"id":"tm-001","name":"Sarah Chen","email":"sarah.chen@example.com","role":"Engineering Manager","expertise":[],"current_projects":[],"reports_to":""}]`
	count, err := ix.IndexTeamDirectory(ctx, strings.NewReader(single))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stored, err := repo.CountDocuments(ctx, core.CorpusTeam)
	require.NoError(t, err)
	assert.Equal(t, 1, stored)
}

func TestIndexTeamDirectoryBadJSON(t *testing.T) {
	ix, _ := newTestIndexer(t)

	_, err := ix.IndexTeamDirectory(context.Background(), strings.NewReader("{not json"))
	assert.Error(t, err)
}

func TestIndexTranscripts(t *testing.T) {
	ix, repo := newTestIndexer(t)
	ctx := context.Background()

	fsys := fstest.MapFS{
		"product-launch-planning.txt": {Data: []byte(sampleTranscript)},
		"notes.md":                    {Data: []byte("not a transcript")},
	}

	count, err := ix.IndexTranscripts(ctx, fsys)
	require.NoError(t, err)
	assert.Greater(t, count, 0)

	stored, err := repo.CountDocuments(ctx, core.CorpusMeetings)
	require.NoError(t, err)
	assert.Equal(t, count, stored)

	results, err := repo.FindSimilar(ctx, core.CorpusMeetings, mustEmbed(t, "launch timeline"), 0, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Product Launch Planning", results[0].Document.Metadata["meeting"])
	assert.Equal(t, "2025-06-02", results[0].Document.Metadata["date"])
	assert.Equal(t, "product-launch-planning.txt", results[0].Document.Metadata["source"])
}

func TestIndexTranscriptsEmptyDir(t *testing.T) {
	ix, _ := newTestIndexer(t)

	_, err := ix.IndexTranscripts(context.Background(), fstest.MapFS{})
	assert.ErrorIs(t, err, ErrNoTranscripts)
}

// mustEmbed produces the same deterministic vector the mock provider uses.
func mustEmbed(t *testing.T, text string) []float32 {
	t.Helper()
	vec, err := mock.NewMockEmbedder().EmbedText(context.Background(), text)
	require.NoError(t, err)
	return vec
}
