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


// Package minuteman turns meeting transcripts into structured records
// and answers questions about the team and its meetings.
package minuteman

import (
	"log/slog"

	"github.com/poiesic/minuteman/ai"
	"github.com/poiesic/minuteman/ai/openai"
	"github.com/poiesic/minuteman/assistant"
	"github.com/poiesic/minuteman/knowledge"
	"github.com/poiesic/minuteman/notify"
	"github.com/poiesic/minuteman/pipeline"
	"github.com/poiesic/minuteman/storage"
	"github.com/poiesic/minuteman/storage/badger"
)

// System bundles the storage backend, knowledge retriever and AI
// provider behind one handle. It is the composition root used by the
// CLI and embedding applications.
type System struct {
	backend    *badger.Backend
	documents  storage.DocumentRepository
	retriever  *knowledge.Retriever
	provider   ai.Provider
	dispatcher notify.Dispatcher
	logger     *slog.Logger
}

// SystemOption configures a System.
type SystemOption func(*systemOptions)

type systemOptions struct {
	aiConfig   *ai.Config
	provider   ai.Provider
	dispatcher notify.Dispatcher
	inMemory   bool
}

// WithAIConfig sets the AI gateway configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) SystemOption {
	return func(o *systemOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects a pre-built AI provider, bypassing the OpenAI
// default. Used by tests and embedders that bring their own gateway.
func WithProvider(provider ai.Provider) SystemOption {
	return func(o *systemOptions) {
		o.provider = provider
	}
}

// WithDispatcher sets the notification dispatcher.
// Default logs notifications instead of delivering them.
func WithDispatcher(dispatcher notify.Dispatcher) SystemOption {
	return func(o *systemOptions) {
		o.dispatcher = dispatcher
	}
}

// WithInMemoryStorage keeps all documents in memory. Used by tests and
// throwaway demo runs.
func WithInMemoryStorage() SystemOption {
	return func(o *systemOptions) {
		o.inMemory = true
	}
}

// NewSystem opens the storage backend at filePath and wires the
// retriever and AI provider around it.
func NewSystem(filePath string, opts ...SystemOption) (*System, error) {
	options := &systemOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	documents, err := badger.NewRepositoryFromBackend(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	retriever, err := knowledge.NewRetriever(documents, provider)
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}

	dispatcher := options.dispatcher
	if dispatcher == nil {
		dispatcher = notify.NewLogDispatcher(nil)
	}

	return &System{
		backend:    backend,
		documents:  documents,
		retriever:  retriever,
		provider:   provider,
		dispatcher: dispatcher,
		logger:     slog.Default(),
	}, nil
}

// Close releases the AI provider and the storage backend.
func (s *System) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// DocumentRepository exposes the underlying document store.
func (s *System) DocumentRepository() storage.DocumentRepository {
	return s.documents
}

// Retriever exposes the knowledge retriever.
func (s *System) Retriever() *knowledge.Retriever {
	return s.retriever
}

// NewIndexer creates an indexer for seeding the corpora.
func (s *System) NewIndexer(opts ...knowledge.IndexerOption) (*knowledge.Indexer, error) {
	return knowledge.NewIndexer(s.documents, s.provider, opts...)
}

// NewEngine creates a pipeline engine for processing transcripts.
// The caller owns the engine and must Release it.
func (s *System) NewEngine(opts ...pipeline.Option) (*pipeline.Engine, error) {
	return pipeline.NewEngine(s.retriever, s.provider, s.dispatcher, opts...)
}

// NewRouter creates a query router for answering questions.
func (s *System) NewRouter(opts ...assistant.Option) (*assistant.Router, error) {
	return assistant.NewRouter(s.retriever, s.provider, opts...)
}
