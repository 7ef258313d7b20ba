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


// Package knowledge provides semantic retrieval over the team directory
// and meeting history corpora, plus the indexer that populates them.
//
// The Retriever embeds a query and scans a single corpus for the most
// similar passages. The Indexer renders team profiles and transcript
// chunks into documents, embeds them in batch, and writes them through
// the storage layer. Both are constructed explicitly and injected;
// there is no package-level state.
package knowledge
