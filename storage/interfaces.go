package storage

import (
	"context"

	"github.com/poiesic/minuteman/core"
)

// Repository provides common storage operations shared across repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// FindSimilar finds documents in a corpus similar to the given vector.
	// Returns documents with similarity >= minSimilarity, up to limit results.
	// Results are ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, corpus core.Corpus, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// DocumentRepository provides operations for managing corpus documents.
type DocumentRepository interface {
	Repository
	// AddDocuments adds one or more documents to storage.
	// For documents with ID=0, derives a content-based ID from the corpus
	// and text, so re-indexing the same passage is idempotent.
	// Sets InsertedAt timestamp if not already set.
	// Returns the documents with IDs and timestamps populated.
	AddDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error)

	// GetDocument retrieves a single document by corpus and ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, corpus core.Corpus, id core.ID) (*core.Document, error)

	// GetDocuments retrieves multiple documents by their IDs.
	// Returns only the documents that exist (no error for missing documents).
	GetDocuments(ctx context.Context, corpus core.Corpus, ids ...core.ID) ([]*core.Document, error)

	// CountDocuments returns the number of documents stored in a corpus.
	CountDocuments(ctx context.Context, corpus core.Corpus) (int, error)

	// ClearCorpus removes every document in a corpus.
	// Clearing an empty corpus is not an error.
	ClearCorpus(ctx context.Context, corpus core.Corpus) error
}
