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


package core

import (
	"fmt"
	"strings"
)

// MinTranscriptLength is the minimum transcript length, in characters,
// after trimming surrounding whitespace.
const MinTranscriptLength = 20

// ValidateTranscript checks that a transcript meets the intake requirements.
// Returns ErrTranscriptTooShort if the trimmed text is shorter than
// MinTranscriptLength.
func ValidateTranscript(transcript string) error {
	if len(strings.TrimSpace(transcript)) < MinTranscriptLength {
		return ErrTranscriptTooShort
	}
	return nil
}

// ValidateActionItem validates an ActionItem according to domain rules.
//
// Validation rules:
//   - Description must not be empty
//   - Priority must be a known value
//
// NOT validated (populated by later stages):
//   - Assignee / AssigneeEmail (empty until owner assignment runs)
//   - Deadline (raw phrase until deadline resolution runs)
func ValidateActionItem(item *ActionItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidActionItem)
	}

	if item.Description == "" {
		return fmt.Errorf("%w: %w", ErrInvalidActionItem, ErrEmptyDescription)
	}

	switch item.Priority {
	case PriorityHigh, PriorityMedium, PriorityLow:
	default:
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidActionItem, item.Priority)
	}

	return nil
}

// ValidateDocument validates a corpus Document according to domain rules.
//
// Validation rules:
//   - Corpus must be a known value
//   - Text must not be empty
//
// NOT validated (populated by the indexer):
//   - Vector (can be empty until embedded)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if !doc.Corpus.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidDocument, ErrInvalidCorpus, doc.Corpus)
	}

	if doc.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyText)
	}

	return nil
}
