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
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/poiesic/minuteman/ai"
	"github.com/tmc/langchaingo/llms/openai"
)

// Analyst implements ai.MeetingAnalyst using OpenAI-compatible chat APIs.
type Analyst struct {
	chat   *chatClient
	logger *slog.Logger
}

var _ ai.MeetingAnalyst = (*Analyst)(nil)

// summaryResponse matches the JSON shape the model is instructed to emit.
type summaryResponse struct {
	Summary      string   `json:"summary"`
	KeyTopics    []string `json:"key_topics"`
	Participants []string `json:"participants"`
}

type actionItemResponse struct {
	Description string `json:"description"`
	Assignee    string `json:"assignee"`
	Priority    string `json:"priority"`
	Deadline    string `json:"deadline"`
	Context     string `json:"context"`
}

type actionItemListResponse struct {
	ActionItems []actionItemResponse `json:"action_items"`
}

type assigneeMatchResponse struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Reasoning string `json:"reasoning"`
}

// deadlineItemPayload is the indexed shape sent to the model.
type deadlineItemPayload struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
	RawDeadline string `json:"raw_deadline"`
}

type deadlineEntryResponse struct {
	Index    int    `json:"index"`
	Deadline string `json:"deadline"`
}

type deadlineResolutionResponse struct {
	Deadlines []deadlineEntryResponse `json:"deadlines"`
}

// newAnalyst is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newAnalyst(config *ai.Config) (*Analyst, error) {
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

	logger := slog.Default().With("component", "openai-analyst")
	return &Analyst{
		chat: &chatClient{
			client:           client,
			maxParseAttempts: config.MaxParseAttempts,
			logger:           logger,
		},
		logger: logger,
	}, nil
}

// NewAnalyst creates a new meeting analyst using the provided configuration.
//
// Returns ai.MeetingAnalyst interface to enforce abstraction.
func NewAnalyst(config *ai.Config) (ai.MeetingAnalyst, error) {
	return newAnalyst(config)
}

// Summarize generates a structured summary of the transcript.
func (a *Analyst) Summarize(ctx context.Context, transcript string) (*ai.MeetingSummary, error) {
	var result summaryResponse
	err := a.chat.generateJSON(ctx, summarizeSystemPrompt, renderSummarizeUser(transcript), nil, &result)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("summarized transcript",
		"topics", len(result.KeyTopics),
		"participants", len(result.Participants))

	return &ai.MeetingSummary{
		Summary:      result.Summary,
		KeyTopics:    result.KeyTopics,
		Participants: result.Participants,
	}, nil
}

// ExtractActionItems extracts every task, assignment or commitment from the
// transcript, in mention order.
func (a *Analyst) ExtractActionItems(ctx context.Context, transcript, summary string) ([]ai.DraftActionItem, error) {
	var result actionItemListResponse
	err := a.chat.generateJSON(ctx, extractSystemPrompt, renderExtractUser(transcript, summary), nil, &result)
	if err != nil {
		return nil, err
	}

	items := make([]ai.DraftActionItem, 0, len(result.ActionItems))
	for _, item := range result.ActionItems {
		items = append(items, ai.DraftActionItem{
			Description: item.Description,
			Assignee:    item.Assignee,
			Priority:    item.Priority,
			Deadline:    item.Deadline,
			Context:     item.Context,
		})
	}

	a.logger.Debug("extracted action items", "count", len(items))
	return items, nil
}

// MatchAssignee selects the best owner for a task from retrieved candidates.
func (a *Analyst) MatchAssignee(ctx context.Context, req ai.AssigneeRequest) (*ai.AssigneeMatch, error) {
	var result assigneeMatchResponse
	err := a.chat.generateJSON(ctx, assignOwnerSystemPrompt, renderAssignOwnerUser(req), nil, &result)
	if err != nil {
		return nil, err
	}

	if result.Name == "" {
		return nil, fmt.Errorf("%w: match returned no name", ai.ErrGateway)
	}

	return &ai.AssigneeMatch{
		Name:      result.Name,
		Email:     result.Email,
		Reasoning: result.Reasoning,
	}, nil
}

// ResolveDeadlines resolves raw deadline phrases into absolute ISO dates
// anchored to the meeting date.
func (a *Analyst) ResolveDeadlines(ctx context.Context, meetingDate string, items []ai.DeadlineItem) ([]ai.DeadlineEntry, error) {
	if len(items) == 0 {
		return []ai.DeadlineEntry{}, nil
	}

	payload := make([]deadlineItemPayload, 0, len(items))
	for _, item := range items {
		payload = append(payload, deadlineItemPayload{
			Index:       item.Index,
			Description: item.Description,
			RawDeadline: item.RawDeadline,
		})
	}

	itemsJSON, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrGateway, err)
	}

	var result deadlineResolutionResponse
	err = a.chat.generateJSON(ctx, deadlineSystemPrompt, renderDeadlineUser(meetingDate, string(itemsJSON)), nil, &result)
	if err != nil {
		return nil, err
	}

	entries := make([]ai.DeadlineEntry, 0, len(result.Deadlines))
	for _, entry := range result.Deadlines {
		entries = append(entries, ai.DeadlineEntry{
			Index:    entry.Index,
			Deadline: entry.Deadline,
		})
	}
	return entries, nil
}
