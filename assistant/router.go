// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package assistant

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/poiesic/minuteman/ai"
	"github.com/poiesic/minuteman/core"
	"github.com/poiesic/minuteman/knowledge"
)

// Source labels identify which strategy produced an answer.
const (
	SourceTeamDirectory    = "Team Directory"
	SourceMeetingHistory   = "Meeting History"
	SourceGeneralKnowledge = "General Knowledge"
)

const retrievalK = 3

// errStopStream signals that the consumer stopped reading fragments.
var errStopStream = errors.New("stream consumer stopped")

// Router classifies questions and dispatches them to the matching
// answer strategy. It is stateless per call and safe for concurrent use.
type Router struct {
	responder ai.Responder
	retriever *knowledge.Retriever
	logger    *slog.Logger
}

// Option configures a Router.
type Option func(*Router) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRouter creates a new query router.
func NewRouter(
	retriever *knowledge.Retriever,
	provider ai.Provider,
	opts ...Option,
) (*Router, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	r := &Router{
		responder: provider.Responder(),
		retriever: retriever,
		logger:    slog.Default().With("component", "assistant"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Classify routes a question to a category. Classification failure or
// an unrecognized category falls back to general rather than failing
// the request; routing must always commit to a single decision.
func (r *Router) Classify(ctx context.Context, question string, history []ai.Message) core.QueryCategory {
	result, err := r.responder.ClassifyQuery(ctx, question, history)
	if err != nil {
		r.logger.Warn("classification failed, falling back to general", "err", err)
		return core.CategoryGeneral
	}

	category := core.QueryCategory(result.Category)
	if !category.Valid() {
		r.logger.Warn("unrecognized category, falling back to general", "category", result.Category)
		return core.CategoryGeneral
	}
	return category
}

// Ask classifies the question, retrieves context for the chosen
// strategy, and returns the answer with its source label.
func (r *Router) Ask(ctx context.Context, question string, history []ai.Message) (string, string, error) {
	req, source := r.resolve(ctx, question, history)

	answer, err := r.responder.Answer(ctx, req)
	if err != nil {
		return "", source, err
	}
	return answer, source, nil
}

// AskStream classifies and retrieves synchronously, then streams the
// answer as fragments. The sequence yields (fragment, nil) in
// generation order; a generation failure yields a final ("", err).
// The consumer may stop early, which cancels generation without side
// effects.
func (r *Router) AskStream(ctx context.Context, question string, history []ai.Message) (string, iter.Seq2[string, error]) {
	req, source := r.resolve(ctx, question, history)

	fragments := func(yield func(string, error) bool) {
		streamCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		err := r.responder.AnswerStream(streamCtx, req, func(fragment string) error {
			if !yield(fragment, nil) {
				return errStopStream
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStopStream) {
			r.logger.Error("answer stream failed", "source", source, "err", err)
			yield("", err)
		}
	}

	return source, fragments
}

// resolve classifies the question and assembles the answer request for
// the chosen strategy. Retrieval failure degrades to empty context;
// the strategy commitment stands.
func (r *Router) resolve(ctx context.Context, question string, history []ai.Message) (ai.AnswerRequest, string) {
	req := ai.AnswerRequest{
		Question: question,
		History:  history,
	}

	switch r.Classify(ctx, question, history) {
	case core.CategoryTeam:
		req.Mode = ai.AnswerTeam
		req.Context = r.retrieveContext(ctx, core.CorpusTeam, question)
		return req, SourceTeamDirectory
	case core.CategoryMeeting:
		req.Mode = ai.AnswerMeeting
		req.Context = r.retrieveContext(ctx, core.CorpusMeetings, question)
		return req, SourceMeetingHistory
	default:
		req.Mode = ai.AnswerGeneral
		return req, SourceGeneralKnowledge
	}
}

// retrieveContext fetches the top passages and formats them as labeled
// context blocks.
func (r *Router) retrieveContext(ctx context.Context, corpus core.Corpus, question string) string {
	passages, err := r.retriever.Search(ctx, corpus, question, retrievalK)
	if err != nil {
		r.logger.Warn("retrieval failed, answering with empty context", "corpus", corpus, "err", err)
		return ""
	}

	blocks := make([]string, len(passages))
	for i, p := range passages {
		blocks[i] = fmt.Sprintf("[%s]\n%s", passageLabel(corpus, p), p.Text)
	}
	return strings.Join(blocks, "\n\n")
}

// passageLabel renders the display label for one context block.
func passageLabel(corpus core.Corpus, p knowledge.Passage) string {
	if corpus == core.CorpusTeam {
		name := p.Metadata["name"]
		if name == "" {
			name = "Unknown"
		}
		return name + " - " + p.Metadata["role"]
	}

	meeting := p.Metadata["meeting"]
	if meeting == "" {
		meeting = "Unknown Meeting"
	}
	return meeting + " - " + p.Metadata["date"]
}
