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
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/poiesic/minuteman/ai"
	"github.com/tmc/langchaingo/llms"
)

// transportRetries bounds the backoff retry budget for a single model call.
const transportRetries = 2

// chatClient wraps a langchaingo model with the structured-output plumbing
// shared by the analyst and responder: history assembly, JSON mode,
// markdown-fence stripping, repair and bounded parse retries.
type chatClient struct {
	client           llms.Model
	maxParseAttempts int
	logger           *slog.Logger
}

// buildContent assembles the message sequence for a call.
func buildContent(system, user string, history []ai.Message) []llms.MessageContent {
	content := make([]llms.MessageContent, 0, len(history)+2)
	content = append(content, llms.MessageContent{
		Role:  llms.ChatMessageTypeSystem,
		Parts: []llms.ContentPart{llms.TextPart(system)},
	})
	for _, turn := range history {
		role := llms.ChatMessageTypeHuman
		if turn.Role == ai.RoleAI {
			role = llms.ChatMessageTypeAI
		}
		content = append(content, llms.MessageContent{
			Role:  role,
			Parts: []llms.ContentPart{llms.TextPart(turn.Content)},
		})
	}
	content = append(content, llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextPart(user)},
	})
	return content
}

// generate performs one model call with transport-level retries.
func (c *chatClient) generate(ctx context.Context, content []llms.MessageContent, opts ...llms.CallOption) (*llms.ContentResponse, error) {
	var response *llms.ContentResponse
	operation := func() error {
		var err error
		response, err = c.client.GenerateContent(ctx, content, opts...)
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), transportRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		c.logger.Error("model call failed", "err", err)
		return nil, fmt.Errorf("%w: %v", ai.ErrGateway, err)
	}
	return response, nil
}

// generateJSON calls the model in JSON mode and unmarshals the response into
// out. Malformed responses are repaired and, failing that, regenerated up to
// the configured parse attempt budget.
func (c *chatClient) generateJSON(ctx context.Context, system, user string, history []ai.Message, out any) error {
	content := buildContent(system, user, history)

	var lastErr error
	for attempt := 1; attempt <= c.maxParseAttempts; attempt++ {
		response, err := c.generate(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			return err
		}

		if len(response.Choices) < 1 {
			c.logger.Debug("no choices returned from model")
			return fmt.Errorf("%w: empty response", ai.ErrGateway)
		}

		text := stripFences(response.Choices[0].Content)
		text = repairJSON(text)

		if err := json.Unmarshal([]byte(text), out); err != nil {
			lastErr = err
			c.logger.Warn("error parsing structured response",
				"attempt", attempt,
				"response", text,
				"err", err)
			continue
		}
		return nil
	}

	c.logger.Error("failed to parse structured response after retries", "err", lastErr)
	return fmt.Errorf("%w: %v", ai.ErrGateway, lastErr)
}

// generateText calls the model for a free-text answer.
func (c *chatClient) generateText(ctx context.Context, system, user string, history []ai.Message) (string, error) {
	response, err := c.generate(ctx, buildContent(system, user, history))
	if err != nil {
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", fmt.Errorf("%w: empty response", ai.ErrGateway)
	}
	return response.Choices[0].Content, nil
}

// generateTextStream calls the model for a free-text answer, emitting
// fragments as they are generated. An error from emit stops generation and
// is returned unwrapped so callers can recognize their own sentinel.
func (c *chatClient) generateTextStream(ctx context.Context, system, user string, history []ai.Message, emit func(fragment string) error) error {
	content := buildContent(system, user, history)

	var emitErr error
	_, err := c.client.GenerateContent(ctx, content,
		llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
			if len(chunk) == 0 {
				return nil
			}
			if err := emit(string(chunk)); err != nil {
				emitErr = err
				return err
			}
			return nil
		}))
	if emitErr != nil {
		return emitErr
	}
	if err != nil {
		c.logger.Error("streaming model call failed", "err", err)
		return fmt.Errorf("%w: %v", ai.ErrGateway, err)
	}
	return nil
}

// stripFences removes a surrounding markdown code fence, if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
