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


package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/poiesic/minuteman/ai"
	"github.com/poiesic/minuteman/core"
	"github.com/poiesic/minuteman/notify"
)

// SummaryFallback replaces the summary when generation fails.
const SummaryFallback = "Error generating summary."

// mentionedPlaceholder stands in for an absent assignee name in
// retrieval queries and matcher prompts.
const mentionedPlaceholder = "not specified"

// intake validates the transcript. Validation failure is recorded but
// does not stop the pipeline; downstream stages tolerate the degraded
// state.
func (e *Engine) intake(state *core.ProcessingState) *Delta {
	d := &Delta{Step: StepIntake}
	if err := core.ValidateTranscript(state.Transcript); err != nil {
		d.Errors = append(d.Errors, "Transcript is empty or too short (minimum 20 characters).")
	}
	return d
}

// summarize produces the structured meeting summary. On gateway failure
// the summary falls back to a fixed sentence and the pipeline continues.
func (e *Engine) summarize(ctx context.Context, state *core.ProcessingState) *Delta {
	d := &Delta{Step: StepSummarize}

	result, err := e.analyst.Summarize(ctx, state.Transcript)
	if err != nil {
		e.logger.Warn("summarize failed", "err", err)
		fallback := SummaryFallback
		d.Summary = &fallback
		d.KeyTopics = []string{}
		d.Participants = []string{}
		d.Errors = append(d.Errors, fmt.Sprintf("summarize error: %v", err))
		return d
	}

	d.Summary = &result.Summary
	d.KeyTopics = result.KeyTopics
	d.Participants = result.Participants
	return d
}

// extractActionItems pulls action items out of the transcript and
// assigns their stable ids in extraction order. Gateway failure yields
// an empty list, which makes the engine skip the remaining stages.
func (e *Engine) extractActionItems(ctx context.Context, state *core.ProcessingState) *Delta {
	d := &Delta{Step: StepExtract}

	drafts, err := e.analyst.ExtractActionItems(ctx, state.Transcript, state.Summary)
	if err != nil {
		e.logger.Warn("action item extraction failed", "err", err)
		d.ActionItems = []core.ActionItem{}
		d.Errors = append(d.Errors, fmt.Sprintf("extract action items error: %v", err))
		return d
	}

	items := make([]core.ActionItem, len(drafts))
	for i, draft := range drafts {
		items[i] = core.ActionItem{
			Id:          core.ActionItemID(i + 1),
			Description: draft.Description,
			Assignee:    draft.Assignee,
			Priority:    core.NormalizePriority(draft.Priority),
			Deadline:    draft.Deadline,
			Context:     draft.Context,
		}
	}
	d.ActionItems = items
	return d
}

// assignOwners resolves an owner for each action item. Items are
// processed concurrently on the worker pool; order is preserved by
// writing each result into its own slot, and one item's failure never
// abandons the batch.
func (e *Engine) assignOwners(ctx context.Context, state *core.ProcessingState) *Delta {
	d := &Delta{Step: StepAssignOwners}

	items := make([]core.ActionItem, len(state.ActionItems))
	copy(items, state.ActionItems)

	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		idx := i
		task := func() {
			defer wg.Done()
			items[idx] = e.assignOwner(ctx, items[idx])
		}
		if err := e.ownerPool.Submit(task); err != nil {
			// Pool rejected the task; run inline rather than dropping the item.
			task()
		}
	}
	wg.Wait()

	d.ActionItems = items
	return d
}

// assignOwner resolves the owner for a single item.
func (e *Engine) assignOwner(ctx context.Context, item core.ActionItem) core.ActionItem {
	mentioned := item.Assignee
	if strings.TrimSpace(mentioned) == "" {
		mentioned = mentionedPlaceholder
	}

	query := mentioned + " " + item.Description + " " + item.Context
	passages, err := e.retriever.Search(ctx, core.CorpusTeam, query, 3)
	if err != nil {
		e.logger.Warn("owner candidate lookup failed", "item", item.Id, "err", err)
		return markUnassigned(item)
	}

	candidates := make([]ai.Candidate, len(passages))
	for i, p := range passages {
		candidates[i] = ai.Candidate{
			Name:    p.Metadata["name"],
			Role:    p.Metadata["role"],
			Email:   p.Metadata["email"],
			Profile: p.Text,
		}
	}

	match, err := e.analyst.MatchAssignee(ctx, ai.AssigneeRequest{
		TaskDescription:   item.Description,
		TaskContext:       item.Context,
		MentionedAssignee: mentioned,
		Candidates:        candidates,
	})
	if err != nil {
		e.logger.Warn("owner match failed", "item", item.Id, "err", err)
		return markUnassigned(item)
	}

	item.Assignee = match.Name
	item.AssigneeEmail = match.Email
	return item
}

// markUnassigned defaults the assignee when resolution failed, keeping
// a name the transcript mentioned explicitly.
func markUnassigned(item core.ActionItem) core.ActionItem {
	if strings.TrimSpace(item.Assignee) == "" {
		item.Assignee = core.UnassignedOwner
	}
	return item
}

// determineDeadlines converts raw deadline phrases to absolute ISO
// dates, anchored to the meeting date found in the transcript. Phrases
// covered by the fixed policy resolve locally; anything else goes to
// the gateway in one indexed batch. Out-of-range indices in the
// gateway's response are dropped silently.
func (e *Engine) determineDeadlines(ctx context.Context, state *core.ProcessingState) *Delta {
	d := &Delta{Step: StepDeadlines}
	if len(state.ActionItems) == 0 {
		return d
	}

	anchor := extractMeetingDate(state.Transcript, time.Now())

	items := make([]core.ActionItem, len(state.ActionItems))
	copy(items, state.ActionItems)

	var pending []ai.DeadlineItem
	for i, item := range items {
		if resolved, ok := resolveDeadlinePhrase(item.Deadline, anchor); ok {
			items[i].Deadline = resolved
		} else {
			pending = append(pending, ai.DeadlineItem{
				Index:       i,
				Description: item.Description,
				RawDeadline: item.Deadline,
			})
		}
	}

	if len(pending) > 0 {
		entries, err := e.analyst.ResolveDeadlines(ctx, anchor.Format(isoDate), pending)
		if err != nil {
			e.logger.Warn("deadline resolution failed", "pending", len(pending), "err", err)
			d.Errors = append(d.Errors, fmt.Sprintf("deadline resolution error: %v", err))
		} else {
			for _, entry := range entries {
				if entry.Index < 0 || entry.Index >= len(items) {
					e.logger.Debug("dropping out-of-range deadline index", "index", entry.Index)
					continue
				}
				items[entry.Index].Deadline = entry.Deadline
			}
		}
	}

	d.ActionItems = items
	return d
}

// sendNotifications dispatches one notification per item with a
// resolved email. Items without an email are expected and skipped.
func (e *Engine) sendNotifications(ctx context.Context, state *core.ProcessingState) *Delta {
	d := &Delta{Step: StepNotify}

	sent := []string{}
	for _, item := range state.ActionItems {
		if item.AssigneeEmail == "" {
			continue
		}

		status, err := e.dispatcher.Send(ctx, notify.Notification{
			RecipientEmail: item.AssigneeEmail,
			RecipientName:  item.Assignee,
			Item:           item,
			MeetingSummary: state.Summary,
		})
		if err != nil {
			e.logger.Warn("notification dispatch failed", "to", item.AssigneeEmail, "item", item.Id, "err", err)
			continue
		}
		if status == notify.StatusSent {
			sent = append(sent, item.AssigneeEmail)
		}
	}

	d.EmailsSent = sent
	return d
}
