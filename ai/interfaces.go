package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Summarizer produces a structured summary of a meeting transcript.
// Implementations must be thread-safe for concurrent use.
type Summarizer interface {
	// Summarize analyzes a transcript and returns its summary, key topics
	// and participants. Returns an error wrapping ErrGateway if the model
	// call fails or the response does not conform to the expected shape.
	Summarize(ctx context.Context, transcript string) (*MeetingSummary, error)
}

// ActionExtractor identifies action items in a meeting transcript.
// Implementations must be thread-safe for concurrent use.
type ActionExtractor interface {
	// ExtractActionItems returns every task, assignment or commitment found
	// in the transcript, in mention order. The summary provides additional
	// context and may be empty. Returns an empty slice if no items exist.
	ExtractActionItems(ctx context.Context, transcript, summary string) ([]DraftActionItem, error)
}

// AssigneeMatcher picks the best-matching team member for an action item
// from a list of retrieved candidates.
type AssigneeMatcher interface {
	// MatchAssignee selects the single best candidate for the task.
	// When the transcript explicitly named a person, implementations must
	// prefer that person over a better semantic match.
	MatchAssignee(ctx context.Context, req AssigneeRequest) (*AssigneeMatch, error)
}

// DeadlineResolver converts raw deadline phrases into absolute ISO dates,
// anchored to the meeting date.
type DeadlineResolver interface {
	// ResolveDeadlines resolves each item's raw deadline phrase into a
	// YYYY-MM-DD date relative to meetingDate (itself an ISO date).
	// Entries reference items by their 0-based index; callers must treat
	// out-of-range indices as droppable, not as failures.
	ResolveDeadlines(ctx context.Context, meetingDate string, items []DeadlineItem) ([]DeadlineEntry, error)
}

// QueryClassifier routes a user question into one of the fixed categories.
type QueryClassifier interface {
	// ClassifyQuery returns the category for the question given prior
	// conversation turns. The Reasoning field is diagnostic only and must
	// never drive control flow.
	ClassifyQuery(ctx context.Context, question string, history []Message) (*QueryClassification, error)
}

// Answerer generates free-text answers, optionally grounded in retrieved context.
type Answerer interface {
	// Answer produces a complete answer for the request.
	Answer(ctx context.Context, req AnswerRequest) (string, error)

	// AnswerStream produces the same answer incrementally, calling emit for
	// each generated fragment. Fragments concatenate to the full answer
	// (best effort; model output is not byte-stable across calls).
	// If emit returns an error, generation stops and that error is returned.
	AnswerStream(ctx context.Context, req AnswerRequest, emit func(fragment string) error) error
}

// MeetingAnalyst aggregates the transcript-analysis capabilities used by the
// processing pipeline.
type MeetingAnalyst interface {
	Summarizer
	ActionExtractor
	AssigneeMatcher
	DeadlineResolver
}

// Responder aggregates the question-answering capabilities used by the
// assistant router.
type Responder interface {
	QueryClassifier
	Answerer
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages analyst, responder and embedder
// instances, ensuring they share configuration and resources appropriately.
type Provider interface {
	// Analyst returns the transcript analysis service.
	// The returned MeetingAnalyst is safe for concurrent use.
	Analyst() MeetingAnalyst

	// Responder returns the question answering service.
	// The returned Responder is safe for concurrent use.
	Responder() Responder

	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
