package knowledge

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/minuteman/ai"
	"github.com/poiesic/minuteman/core"
	"github.com/poiesic/minuteman/storage"
)

// Passage is a retrieved piece of corpus text with its display metadata.
type Passage struct {
	Text     string
	Metadata map[string]string
	Score    float32
}

// Retriever performs semantic search over the document corpora.
type Retriever struct {
	repository    storage.DocumentRepository
	embedder      ai.Embedder
	minSimilarity float32
	logger        *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithMinSimilarity sets the similarity floor for search results.
// Default is 0, meaning pure top-k retrieval.
func WithMinSimilarity(min float32) Option {
	return func(r *Retriever) error {
		r.minSimilarity = min
		return nil
	}
}

// NewRetriever creates a new retriever.
func NewRetriever(
	repository storage.DocumentRepository,
	provider ai.Provider,
	opts ...Option,
) (*Retriever, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	r := &Retriever{
		repository: repository,
		embedder:   provider.Embedder(),
		logger:     slog.Default().With("component", "retriever"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Search embeds the query and returns the k most similar passages from
// the corpus. Failures are wrapped in ErrRetriever.
func (r *Retriever) Search(ctx context.Context, corpus core.Corpus, query string, k int) ([]Passage, error) {
	embedding, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		r.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrRetriever, err)
	}

	matches, err := r.repository.FindSimilar(ctx, corpus, embedding, r.minSimilarity, k)
	if err != nil {
		r.logger.Error("error querying for similar documents", "corpus", corpus, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrRetriever, err)
	}

	passages := make([]Passage, len(matches))
	for i, match := range matches {
		passages[i] = Passage{
			Text:     match.Document.Text,
			Metadata: match.Document.Metadata,
			Score:    match.Score,
		}
	}

	r.logger.Debug("retrieved passages", "corpus", corpus, "count", len(passages))
	return passages, nil
}
