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


// Package ai provides abstractions for the language model gateway used in
// Minuteman.
//
// This package defines interfaces for the model-backed operations the
// pipeline and assistant depend on: summarization, action item extraction,
// owner matching, deadline resolution, question classification, answering
// and text embeddings. It follows the dependency inversion principle,
// allowing the pipeline and router to depend on abstractions rather than
// concrete implementations.
//
// # Design Principles
//
// The package is designed around small per-capability interfaces
// (Summarizer, ActionExtractor, AssigneeMatcher, DeadlineResolver,
// QueryClassifier, Answerer, Embedder) plus two aggregates:
//
//   - MeetingAnalyst: everything the processing pipeline calls
//   - Responder: everything the assistant router calls
//
// A Provider bundles analyst, responder and embedder behind a single
// lifecycle.
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, etc.) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations.
//
//	provider, err := openai.NewProvider(config)  // returns ai.Provider
//
// Test utility constructors (mock.NewMockAnalyst, mock.NewMockResponder,
// mock.NewMockEmbedder) return CONCRETE types to enable test assertions and
// behavior injection via the mock's public fields and methods (CallCount,
// the ...Func fields, Reset).
//
//	analyst := mock.NewMockAnalyst()          // needs concrete type
//	analyst.SummarizeFunc = func(...) {...}   // behavior injection
//	count := analyst.SummarizeCallCount()     // test assertion
//
// # Error Model
//
// Every failed model call or schema-nonconforming response is reported as an
// error wrapping ErrGateway. Callers in the pipeline and router never let
// such errors escape their boundary; they record them and fall back to safe
// defaults.
package ai
