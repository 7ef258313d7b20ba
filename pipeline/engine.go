package pipeline

import (
	"context"
	"iter"
	"log/slog"
	"runtime"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/minuteman/ai"
	"github.com/poiesic/minuteman/core"
	"github.com/poiesic/minuteman/knowledge"
	"github.com/poiesic/minuteman/notify"
)

// Engine runs transcripts through the fixed processing pipeline.
// Stages execute in order, each producing a Delta merged into the
// shared ProcessingState; no stage failure escapes the pipeline.
type Engine struct {
	analyst    ai.MeetingAnalyst
	retriever  *knowledge.Retriever
	dispatcher notify.Dispatcher
	ownerPool  *ants.Pool
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithPoolSize sets the worker pool size for concurrent owner assignment.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(e *Engine) error {
		if size < 1 {
			size = 1
		}

		if e.ownerPool != nil {
			e.ownerPool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		e.ownerPool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a new pipeline engine.
func NewEngine(
	retriever *knowledge.Retriever,
	provider ai.Provider,
	dispatcher notify.Dispatcher,
	opts ...Option,
) (*Engine, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}
	if dispatcher == nil {
		return nil, ErrDispatcherRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		analyst:    provider.Analyst(),
		retriever:  retriever,
		dispatcher: dispatcher,
		ownerPool:  pool,
		logger:     slog.Default().With("component", "pipeline"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(e); err != nil {
			e.Release()
			return nil, err
		}
	}

	return e, nil
}

// Release releases the worker pool.
// The engine should not be used after calling Release.
func (e *Engine) Release() {
	if e.ownerPool != nil {
		e.ownerPool.Release()
	}
}

// Process runs a transcript through the full pipeline and returns the
// final state. The pipeline never fails as a whole; stage failures are
// accumulated in the state's Errors field.
func (e *Engine) Process(ctx context.Context, transcript string, source core.TranscriptSource) *core.ProcessingState {
	state := core.NewProcessingState(transcript, source)
	e.run(ctx, state, func(string, *Delta) bool { return true })
	return state
}

// ProcessStream runs a transcript through the pipeline, yielding the
// stage name and its Delta after each stage completes. The consumer may
// stop early; state accumulated so far stays valid. This is an
// observation channel only, stage behavior does not depend on it.
func (e *Engine) ProcessStream(ctx context.Context, transcript string, source core.TranscriptSource) iter.Seq2[string, *Delta] {
	return func(yield func(string, *Delta) bool) {
		state := core.NewProcessingState(transcript, source)
		e.run(ctx, state, yield)
	}
}

// run drives the transition table from intake to terminal.
func (e *Engine) run(ctx context.Context, state *core.ProcessingState, yield func(string, *Delta) bool) {
	for s := stageIntake; s != stageTerminal; {
		delta := e.execute(ctx, s, state)
		delta.Apply(state)
		e.logger.Debug("stage complete", "stage", s.String(), "items", len(state.ActionItems), "errors", len(state.Errors))
		if !yield(s.String(), delta) {
			return
		}
		s = nextStage(s, state)
	}
}

// execute dispatches a single stage.
func (e *Engine) execute(ctx context.Context, s stage, state *core.ProcessingState) *Delta {
	switch s {
	case stageIntake:
		return e.intake(state)
	case stageSummarize:
		return e.summarize(ctx, state)
	case stageExtract:
		return e.extractActionItems(ctx, state)
	case stageAssignOwners:
		return e.assignOwners(ctx, state)
	case stageDeadlines:
		return e.determineDeadlines(ctx, state)
	case stageNotify:
		return e.sendNotifications(ctx, state)
	default:
		return &Delta{}
	}
}
