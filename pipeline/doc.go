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


// Package pipeline turns meeting transcripts into structured records.
//
// The engine drives a fixed stage graph:
//
//	intake -> summarize -> extract_action_items
//	       -> [assign_owners -> determine_deadlines -> send_emails]
//
// The bracketed stages run only when extraction produced action items.
// Each stage reads the shared ProcessingState and returns a Delta that
// the engine merges back in: list fields replace wholesale, errors
// append, and the step marker records progress. No stage failure
// escapes the pipeline; callers always receive a complete state whose
// Errors field carries the diagnostics.
//
// Owner assignment fans out across a worker pool with per-item failure
// isolation. Deadline resolution applies a fixed calendar policy
// locally and sends only free-form phrases to the language model.
package pipeline
