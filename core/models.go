package core

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored documents.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// TranscriptSource identifies where a transcript came from.
type TranscriptSource string

const (
	// SourceSample is a bundled sample transcript.
	SourceSample TranscriptSource = "sample"
	// SourcePasted is a transcript supplied directly by a user.
	SourcePasted TranscriptSource = "pasted"
	// SourceDemo is a transcript generated for demo traces.
	SourceDemo TranscriptSource = "demo"
	// SourceEval is a transcript used by the offline evaluation harness.
	SourceEval TranscriptSource = "eval"
)

// Valid reports whether the source is one of the known values.
func (s TranscriptSource) Valid() bool {
	switch s {
	case SourceSample, SourcePasted, SourceDemo, SourceEval:
		return true
	}
	return false
}

// Priority is the urgency level of an action item.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// NormalizePriority maps arbitrary model output onto a valid priority.
// Unknown values become PriorityMedium.
func NormalizePriority(raw string) Priority {
	switch Priority(raw) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(raw)
	}
	return PriorityMedium
}

// UnassignedOwner marks an action item whose owner could not be resolved.
const UnassignedOwner = "Unassigned"

// ActionItem is a single task extracted from a meeting transcript.
// The Id is assigned exactly once at extraction time and never changes;
// later stages address items by Id or index, not by content.
type ActionItem struct {
	Id            string   // "ai-001", "ai-002", ... in extraction order
	Description   string   // required
	Assignee      string   // empty until resolved, or UnassignedOwner
	AssigneeEmail string   // empty until resolved
	Priority      Priority // defaults to PriorityMedium
	Deadline      string   // raw phrase until resolved, then ISO YYYY-MM-DD
	Context       string   // optional discussion context
}

// ActionItemID formats the stable id for the n-th extracted item (1-based).
func ActionItemID(n int) string {
	return fmt.Sprintf("ai-%03d", n)
}

// ProcessingState is the single record threaded through the pipeline.
// It is created once per transcript, mutated only by merging stage deltas,
// and discarded when the pipeline terminates.
type ProcessingState struct {
	Transcript       string // input, immutable after creation
	TranscriptSource TranscriptSource

	Summary      string
	KeyTopics    []string
	Participants []string
	ActionItems  []ActionItem

	EmailsSent []string // recipient emails, populated on confirmed sends
	Errors     []string // append-only, accumulated across stages

	ProcessingStep string // name of the last completed stage
}

// NewProcessingState creates the initial state for a pipeline run.
func NewProcessingState(transcript string, source TranscriptSource) *ProcessingState {
	return &ProcessingState{
		Transcript:       transcript,
		TranscriptSource: source,
		KeyTopics:        []string{},
		Participants:     []string{},
		ActionItems:      []ActionItem{},
		EmailsSent:       []string{},
		Errors:           []string{},
	}
}

// QueryCategory is the routing classification of a user question.
type QueryCategory string

const (
	// CategoryTeam covers questions about people, roles, expertise and org structure.
	CategoryTeam QueryCategory = "team"
	// CategoryMeeting covers questions about past discussions and decisions.
	CategoryMeeting QueryCategory = "meeting"
	// CategoryGeneral covers everything else.
	CategoryGeneral QueryCategory = "general"
)

// Valid reports whether the category is one of the known values.
func (c QueryCategory) Valid() bool {
	switch c {
	case CategoryTeam, CategoryMeeting, CategoryGeneral:
		return true
	}
	return false
}

// Corpus names a searchable document collection.
type Corpus string

const (
	// CorpusTeam is the team directory corpus.
	CorpusTeam Corpus = "team"
	// CorpusMeetings is the meeting history corpus.
	CorpusMeetings Corpus = "meetings"
)

// Valid reports whether the corpus is one of the known values.
func (c Corpus) Valid() bool {
	return c == CorpusTeam || c == CorpusMeetings
}

// Document is a stored corpus passage with its embedding.
type Document struct {
	Id         ID
	Corpus     Corpus
	Text       string
	Metadata   map[string]string // display labels and stable identifiers
	Vector     []float32         // embedding for semantic search
	InsertedAt time.Time
}

// SearchResult pairs a document with its relevance score.
type SearchResult struct {
	Document *Document
	Score    float32
}
