package main

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/poiesic/minuteman/ai"
	"github.com/urfave/cli/v2"
)

// gatewaySettings mirrors the MINUTEMAN_* environment variables that
// configure the AI gateway. Empty fields fall back to built-in defaults.
type gatewaySettings struct {
	ChatHost       string `envconfig:"CHAT_HOST"`
	ChatModel      string `envconfig:"CHAT_MODEL"`
	EmbeddingHost  string `envconfig:"EMBEDDING_HOST"`
	EmbeddingModel string `envconfig:"EMBEDDING_MODEL"`
	Token          string `envconfig:"TOKEN"`
}

// loadAIConfig builds the gateway configuration in precedence order:
// built-in defaults, then .env / environment variables, then CLI flags.
func loadAIConfig(c *cli.Context) (*ai.Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	var settings gatewaySettings
	if err := envconfig.Process("minuteman", &settings); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	var opts []ai.ConfigOption
	if settings.ChatHost != "" {
		opts = append(opts, ai.WithChatHost(settings.ChatHost))
	}
	if settings.ChatModel != "" {
		opts = append(opts, ai.WithChatModel(settings.ChatModel))
	}
	if settings.EmbeddingHost != "" {
		opts = append(opts, ai.WithEmbeddingHost(settings.EmbeddingHost))
	}
	if settings.EmbeddingModel != "" {
		opts = append(opts, ai.WithEmbeddingModel(settings.EmbeddingModel))
	}
	if settings.Token != "" {
		opts = append(opts, ai.WithToken(settings.Token))
	}

	// CLI flags win over the environment.
	if host := c.String("chat-host"); host != "" {
		opts = append(opts, ai.WithChatHost(host))
	}
	if model := c.String("chat-model"); model != "" {
		opts = append(opts, ai.WithChatModel(model))
	}
	if host := c.String("embedding-host"); host != "" {
		opts = append(opts, ai.WithEmbeddingHost(host))
	}
	if model := c.String("embedding-model"); model != "" {
		opts = append(opts, ai.WithEmbeddingModel(model))
	}

	cfg := ai.NewConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return cfg, nil
}

// gatewayFlags are shared by every command that talks to the AI gateway.
func gatewayFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "chat-host",
			Usage: "Chat service host URL (overrides MINUTEMAN_CHAT_HOST)",
		},
		&cli.StringFlag{
			Name:  "chat-model",
			Usage: "Chat model name (overrides MINUTEMAN_CHAT_MODEL)",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL (overrides MINUTEMAN_EMBEDDING_HOST)",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name (overrides MINUTEMAN_EMBEDDING_MODEL)",
		},
	}
}
