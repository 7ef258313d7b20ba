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


package mock

import "github.com/poiesic/minuteman/ai"

// MockProvider implements ai.Provider with mock services.
type MockProvider struct {
	analyst   *MockAnalyst
	responder *MockResponder
	embedder  *MockEmbedder
	closed    bool
}

var _ ai.Provider = (*MockProvider)(nil)

// NewMockProvider creates a provider backed by fresh mock services.
//
// Returns ai.Provider interface for drop-in use where a real provider
// is expected; use GetMockProvider or the accessor methods for test
// configuration.
func NewMockProvider() ai.Provider {
	return NewMockProviderWithServices(NewMockAnalyst(), NewMockResponder(), NewMockEmbedder())
}

// NewMockProviderWithServices creates a provider around caller-supplied mocks.
func NewMockProviderWithServices(analyst *MockAnalyst, responder *MockResponder, embedder *MockEmbedder) *MockProvider {
	return &MockProvider{
		analyst:   analyst,
		responder: responder,
		embedder:  embedder,
	}
}

// Analyst returns the transcript analysis service.
func (p *MockProvider) Analyst() ai.MeetingAnalyst {
	return p.analyst
}

// Responder returns the question answering service.
func (p *MockProvider) Responder() ai.Responder {
	return p.responder
}

// Embedder returns the text embedding service.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Close marks the provider closed.
func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (p *MockProvider) Closed() bool {
	return p.closed
}

// GetMockAnalyst returns the underlying mock analyst for configuration.
func (p *MockProvider) GetMockAnalyst() *MockAnalyst {
	return p.analyst
}

// GetMockResponder returns the underlying mock responder for configuration.
func (p *MockProvider) GetMockResponder() *MockResponder {
	return p.responder
}

// GetMockEmbedder returns the underlying mock embedder for configuration.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}
