package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/poiesic/minuteman/ai"
	"github.com/poiesic/minuteman/core"
	"github.com/poiesic/minuteman/storage"
)

// teamMember is the on-disk shape of a team directory entry.
type teamMember struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Role            string   `json:"role"`
	Expertise       []string `json:"expertise"`
	CurrentProjects []string `json:"current_projects"`
	ReportsTo       string   `json:"reports_to"`
}

// Indexer populates the document corpora from source data.
type Indexer struct {
	repository storage.DocumentRepository
	embedder   ai.Embedder
	logger     *slog.Logger
}

// IndexerOption configures an Indexer.
type IndexerOption func(*Indexer) error

// WithIndexerLogger sets a custom logger.
// Default is slog.Default().
func WithIndexerLogger(logger *slog.Logger) IndexerOption {
	return func(ix *Indexer) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
		return nil
	}
}

// NewIndexer creates a new indexer.
func NewIndexer(
	repository storage.DocumentRepository,
	provider ai.Provider,
	opts ...IndexerOption,
) (*Indexer, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	ix := &Indexer{
		repository: repository,
		embedder:   provider.Embedder(),
		logger:     slog.Default().With("component", "indexer"),
	}

	for _, opt := range opts {
		if err := opt(ix); err != nil {
			return nil, err
		}
	}

	return ix, nil
}

// IndexTeamDirectory reads a team directory JSON array, renders one
// profile document per member, embeds them in batch and stores them in
// the team corpus. The corpus is cleared first so removed members don't
// linger. Returns the number of documents indexed.
func (ix *Indexer) IndexTeamDirectory(ctx context.Context, r io.Reader) (int, error) {
	var members []teamMember
	if err := json.NewDecoder(r).Decode(&members); err != nil {
		return 0, fmt.Errorf("decoding team directory: %w", err)
	}

	docs := make([]*core.Document, 0, len(members))
	texts := make([]string, 0, len(members))
	for _, member := range members {
		text := fmt.Sprintf(
			"Name: %s\nRole: %s\nExpertise: %s\nCurrent Projects: %s\nReports To: %s",
			member.Name,
			member.Role,
			strings.Join(member.Expertise, ", "),
			strings.Join(member.CurrentProjects, ", "),
			member.ReportsTo,
		)
		docs = append(docs, &core.Document{
			Corpus: core.CorpusTeam,
			Text:   text,
			Metadata: map[string]string{
				"id":    member.ID,
				"name":  member.Name,
				"email": member.Email,
				"role":  member.Role,
			},
		})
		texts = append(texts, text)
	}

	return ix.store(ctx, core.CorpusTeam, docs, texts)
}

// IndexTranscripts chunks every .txt transcript under fsys and stores
// the chunks in the meetings corpus. Returns the number of chunks
// indexed.
func (ix *Indexer) IndexTranscripts(ctx context.Context, fsys fs.FS) (int, error) {
	files, err := fs.Glob(fsys, "*.txt")
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, ErrNoTranscripts
	}
	sort.Strings(files)

	var docs []*core.Document
	var texts []string
	for _, name := range files {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return 0, fmt.Errorf("reading transcript %s: %w", name, err)
		}
		text := string(raw)
		meetingName := titleCase(strings.ReplaceAll(strings.TrimSuffix(path.Base(name), ".txt"), "-", " "))
		header := parseTranscriptHeader(text)

		for i, chunk := range splitTranscript(text, defaultChunkSize) {
			docs = append(docs, &core.Document{
				Corpus: core.CorpusMeetings,
				Text:   chunk,
				Metadata: map[string]string{
					"source":      name,
					"meeting":     meetingName,
					"date":        header.Date,
					"attendees":   header.Attendees,
					"chunk_index": strconv.Itoa(i),
				},
			})
			texts = append(texts, chunk)
		}
	}

	return ix.store(ctx, core.CorpusMeetings, docs, texts)
}

// store clears the corpus, embeds the texts in one batch, and writes
// the documents with their vectors attached.
func (ix *Indexer) store(ctx context.Context, corpus core.Corpus, docs []*core.Document, texts []string) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	if err := ix.repository.ClearCorpus(ctx, corpus); err != nil {
		return 0, err
	}

	vectors, err := ix.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		ix.logger.Error("error embedding documents", "corpus", corpus, "count", len(texts), "err", err)
		return 0, err
	}
	if len(vectors) != len(docs) {
		return 0, fmt.Errorf("embedder returned %d vectors for %d documents", len(vectors), len(docs))
	}
	for i, doc := range docs {
		doc.Vector = vectors[i]
	}

	if _, err := ix.repository.AddDocuments(ctx, docs...); err != nil {
		return 0, err
	}

	ix.logger.Info("indexed corpus", "corpus", corpus, "documents", len(docs))
	return len(docs), nil
}

// titleCase capitalizes the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
