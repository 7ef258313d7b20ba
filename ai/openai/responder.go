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


package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/minuteman/ai"
	"github.com/tmc/langchaingo/llms/openai"
)

// Responder implements ai.Responder using OpenAI-compatible chat APIs.
type Responder struct {
	chat   *chatClient
	logger *slog.Logger
}

var _ ai.Responder = (*Responder)(nil)

type classificationResponse struct {
	Category  string `json:"category"`
	Reasoning string `json:"reasoning"`
}

// newResponder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newResponder(config *ai.Config) (*Responder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("component", "openai-responder")
	return &Responder{
		chat: &chatClient{
			client:           client,
			maxParseAttempts: config.MaxParseAttempts,
			logger:           logger,
		},
		logger: logger,
	}, nil
}

// NewResponder creates a new responder using the provided configuration.
//
// Returns ai.Responder interface to enforce abstraction.
func NewResponder(config *ai.Config) (ai.Responder, error) {
	return newResponder(config)
}

// ClassifyQuery classifies a question into team, meeting or general.
// The category is returned as the model produced it, lowercased and trimmed;
// callers own the fallback for unrecognized values.
func (r *Responder) ClassifyQuery(ctx context.Context, question string, history []ai.Message) (*ai.QueryClassification, error) {
	var result classificationResponse
	err := r.chat.generateJSON(ctx, classifySystemPrompt, question, history, &result)
	if err != nil {
		return nil, err
	}

	category := strings.ToLower(strings.TrimSpace(result.Category))
	r.logger.Debug("classified question", "category", category, "reasoning", result.Reasoning)

	return &ai.QueryClassification{
		Category:  category,
		Reasoning: result.Reasoning,
	}, nil
}

// Answer produces a complete answer for the request.
func (r *Responder) Answer(ctx context.Context, req ai.AnswerRequest) (string, error) {
	return r.chat.generateText(ctx, answerSystemPrompt(req), req.Question, req.History)
}

// AnswerStream produces the answer incrementally through emit.
func (r *Responder) AnswerStream(ctx context.Context, req ai.AnswerRequest, emit func(fragment string) error) error {
	return r.chat.generateTextStream(ctx, answerSystemPrompt(req), req.Question, req.History, emit)
}

// answerSystemPrompt selects and renders the system prompt for a request.
func answerSystemPrompt(req ai.AnswerRequest) string {
	switch req.Mode {
	case ai.AnswerTeam:
		return fmt.Sprintf(teamAnswerSystemPrompt, req.Context)
	case ai.AnswerMeeting:
		return fmt.Sprintf(meetingAnswerSystemPrompt, req.Context)
	default:
		return generalAnswerSystemPrompt
	}
}
