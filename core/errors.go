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

import "errors"

// Domain validation errors
var (
	// ErrTranscriptTooShort indicates the transcript is empty or below the
	// minimum length after trimming whitespace.
	ErrTranscriptTooShort = errors.New("transcript is empty or too short (minimum 20 characters)")

	// ErrInvalidSource indicates an unknown transcript source value.
	ErrInvalidSource = errors.New("invalid transcript source")

	// ErrInvalidActionItem indicates an ActionItem failed validation.
	ErrInvalidActionItem = errors.New("invalid action item")

	// ErrEmptyDescription indicates the Description field is empty.
	ErrEmptyDescription = errors.New("description cannot be empty")

	// ErrInvalidCorpus indicates an unknown corpus name.
	ErrInvalidCorpus = errors.New("invalid corpus")

	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptyText indicates the document Text field is empty.
	ErrEmptyText = errors.New("text cannot be empty")
)
