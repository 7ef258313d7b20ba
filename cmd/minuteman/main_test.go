package main

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/poiesic/minuteman/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLogger(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected slog.Level
		}{
			{"debug", slog.LevelDebug},
			{"info", slog.LevelInfo},
			{"warn", slog.LevelWarn},
			{"error", slog.LevelError},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: tc.input,
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc.input})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		testCases := []string{
			"DEBUG",
			"Info",
			"WaRn",
			"ERROR",
		}

		for _, tc := range testCases {
			t.Run(tc, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: "info",
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}

		err := app.Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
		assert.Contains(t, err.Error(), "invalid")
	})
}

func TestGatewayFlagsArePresent(t *testing.T) {
	flags := gatewayFlags()

	names := make(map[string]bool)
	for _, flag := range flags {
		if f, ok := flag.(*cli.StringFlag); ok {
			names[f.Name] = true
		}
	}

	assert.True(t, names["chat-host"])
	assert.True(t, names["chat-model"])
	assert.True(t, names["embedding-host"])
	assert.True(t, names["embedding-model"])
}

func TestLoadAIConfigFlagOverrides(t *testing.T) {
	var captured error
	app := &cli.App{
		Name:  "test",
		Flags: gatewayFlags(),
		Action: func(c *cli.Context) error {
			cfg, err := loadAIConfig(c)
			captured = err
			if err != nil {
				return err
			}
			assert.Equal(t, "http://gateway:8080/v1", cfg.ChatHost)
			assert.Equal(t, "gpt-4o-mini", cfg.ChatModel)
			return nil
		},
	}

	err := app.Run([]string{"test",
		"--chat-host", "http://gateway:8080/v1",
		"--chat-model", "gpt-4o-mini",
	})
	require.NoError(t, err)
	require.NoError(t, captured)
}

func TestPrintStateRendersActionItems(t *testing.T) {
	state := &core.ProcessingState{
		Summary:      "The team agreed to ship on Friday.",
		KeyTopics:    []string{"launch", "testing"},
		Participants: []string{"Sarah Chen", "Mike Johnson"},
		ActionItems: []core.ActionItem{
			{
				Id:          "ai-001",
				Description: "Finalize the QA checklist",
				Assignee:    "Mike Johnson",
				Priority:    core.PriorityHigh,
				Deadline:    "2025-06-06",
			},
		},
		EmailsSent: []string{"mike.johnson@example.com"},
		Errors:     []string{"deadline resolution error: timeout"},
	}

	var sb strings.Builder
	printState(&sb, state)
	out := sb.String()

	assert.Contains(t, out, "The team agreed to ship on Friday.")
	assert.Contains(t, out, "launch, testing")
	assert.Contains(t, out, "[ai-001] Finalize the QA checklist")
	assert.Contains(t, out, "owner: Mike Johnson")
	assert.Contains(t, out, "deadline: 2025-06-06")
	assert.Contains(t, out, "mike.johnson@example.com")
	assert.Contains(t, out, "deadline resolution error: timeout")
}

func TestSeedCommandFlagDefaults(t *testing.T) {
	app := &cli.App{
		Name: "minuteman",
		Commands: []*cli.Command{
			{
				Name: "seed",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "team",
						Value: "data/team_directory.json",
					},
					&cli.StringFlag{
						Name:  "transcripts",
						Value: "data/transcripts",
					},
				},
			},
		},
	}

	cmd := app.Commands[0]
	var teamFlag, transcriptsFlag *cli.StringFlag
	for _, flag := range cmd.Flags {
		if f, ok := flag.(*cli.StringFlag); ok {
			switch f.Name {
			case "team":
				teamFlag = f
			case "transcripts":
				transcriptsFlag = f
			}
		}
	}

	require.NotNil(t, teamFlag)
	require.NotNil(t, transcriptsFlag)
	assert.Equal(t, "data/team_directory.json", teamFlag.Value)
	assert.Equal(t, "data/transcripts", transcriptsFlag.Value)
}
