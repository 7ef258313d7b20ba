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


package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/minuteman"
	"github.com/poiesic/minuteman/core"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "minuteman",
		Usage: "Meeting transcript processing and team knowledge assistant",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Usage:  "Index the team directory and meeting transcripts",
				Action: seedCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
						Value:   "./minuteman_db",
					},
					&cli.StringFlag{
						Name:  "team",
						Usage: "Path to the team directory JSON file",
						Value: "data/team_directory.json",
					},
					&cli.StringFlag{
						Name:  "transcripts",
						Usage: "Directory of meeting transcript .txt files",
						Value: "data/transcripts",
					},
				}, gatewayFlags()...),
			},
			{
				Name:      "process",
				Usage:     "Run a meeting transcript through the processing pipeline",
				ArgsUsage: "<transcript file>",
				Action:    processCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
						Value:   "./minuteman_db",
					},
				}, gatewayFlags()...),
			},
			{
				Name:      "ask",
				Usage:     "Ask a question about the team or past meetings",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
						Value:   "./minuteman_db",
					},
					&cli.BoolFlag{
						Name:  "stream",
						Usage: "Stream the answer as it is generated",
					},
				}, gatewayFlags()...),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func seedCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig, err := loadAIConfig(c)
	if err != nil {
		return err
	}

	sys, err := minuteman.NewSystem(c.String("db"), minuteman.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open system: %w", err)
	}
	defer sys.Close()

	indexer, err := sys.NewIndexer()
	if err != nil {
		return fmt.Errorf("failed to create indexer: %w", err)
	}

	teamFile, err := os.Open(c.String("team"))
	if err != nil {
		return fmt.Errorf("failed to open team directory: %w", err)
	}
	teamCount, err := indexer.IndexTeamDirectory(ctx, teamFile)
	teamFile.Close()
	if err != nil {
		return fmt.Errorf("failed to index team directory: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Indexed %d team member profiles\n", teamCount)

	chunkCount, err := indexer.IndexTranscripts(ctx, os.DirFS(c.String("transcripts")))
	if err != nil {
		return fmt.Errorf("failed to index transcripts: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Indexed %d transcript chunks\n", chunkCount)

	return nil
}

func processCommand(c *cli.Context) error {
	ctx := context.Background()

	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("transcript file is required")
	}

	transcript, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read transcript: %w", err)
	}

	aiConfig, err := loadAIConfig(c)
	if err != nil {
		return err
	}

	sys, err := minuteman.NewSystem(c.String("db"), minuteman.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open system: %w", err)
	}
	defer sys.Close()

	engine, err := sys.NewEngine()
	if err != nil {
		return fmt.Errorf("failed to create pipeline engine: %w", err)
	}
	defer engine.Release()

	var state core.ProcessingState
	for step, delta := range engine.ProcessStream(ctx, string(transcript), core.SourcePasted) {
		fmt.Fprintf(os.Stderr, "stage complete: %s\n", step)
		delta.Apply(&state)
	}

	printState(os.Stdout, &state)
	return nil
}

// printState renders the final pipeline state for terminal consumption.
func printState(w io.Writer, state *core.ProcessingState) {
	fmt.Fprintf(w, "\nSummary:\n%s\n", state.Summary)

	if len(state.KeyTopics) > 0 {
		fmt.Fprintf(w, "\nKey topics: %s\n", strings.Join(state.KeyTopics, ", "))
	}
	if len(state.Participants) > 0 {
		fmt.Fprintf(w, "Participants: %s\n", strings.Join(state.Participants, ", "))
	}

	if len(state.ActionItems) > 0 {
		fmt.Fprintf(w, "\nAction items:\n")
		for _, item := range state.ActionItems {
			fmt.Fprintf(w, "  [%s] %s\n", item.Id, item.Description)
			fmt.Fprintf(w, "         owner: %s  priority: %s  deadline: %s\n",
				item.Assignee, item.Priority, item.Deadline)
		}
	}

	if len(state.EmailsSent) > 0 {
		fmt.Fprintf(w, "\nNotifications sent to: %s\n", strings.Join(state.EmailsSent, ", "))
	}
	if len(state.Errors) > 0 {
		fmt.Fprintf(w, "\nErrors:\n")
		for _, e := range state.Errors {
			fmt.Fprintf(w, "  - %s\n", e)
		}
	}
}

func askCommand(c *cli.Context) error {
	ctx := context.Background()

	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("question is required")
	}

	aiConfig, err := loadAIConfig(c)
	if err != nil {
		return err
	}

	sys, err := minuteman.NewSystem(c.String("db"), minuteman.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open system: %w", err)
	}
	defer sys.Close()

	router, err := sys.NewRouter()
	if err != nil {
		return fmt.Errorf("failed to create router: %w", err)
	}

	if c.Bool("stream") {
		source, fragments := router.AskStream(ctx, question, nil)
		for fragment, err := range fragments {
			if err != nil {
				return fmt.Errorf("answer generation failed: %w", err)
			}
			fmt.Print(fragment)
		}
		fmt.Println()
		fmt.Fprintf(os.Stderr, "[source: %s]\n", source)
		return nil
	}

	answer, source, err := router.Ask(ctx, question, nil)
	if err != nil {
		return fmt.Errorf("answer generation failed: %w", err)
	}
	fmt.Println(answer)
	fmt.Fprintf(os.Stderr, "[source: %s]\n", source)
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
