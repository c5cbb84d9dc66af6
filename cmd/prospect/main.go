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
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/prospect"
	"github.com/poiesic/prospect/ai"
	"github.com/poiesic/prospect/export"
	"github.com/poiesic/prospect/index"
	"github.com/poiesic/prospect/source"
	"github.com/poiesic/prospect/storage/badger"
)

func main() {
	app := &cli.App{
		Name:  "prospect",
		Usage: "Consolidate opportunity listings and search them semantically",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Harvest sources, consolidate and build the embedding index",
				Action: buildCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "sources",
						Aliases:  []string{"s"},
						Usage:    "Path to TOML source list",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to embed in each batch",
						Value: 32,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed embedding calls",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.BoolFlag{
						Name:  "show-rejections",
						Usage: "Print every rejected candidate after the build",
					},
				}, commonFlags()...),
			},
			{
				Name:      "query",
				Usage:     "Search the indexed corpus",
				ArgsUsage: "<query text>",
				Action:    queryCommand,
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:    "max-hits",
						Aliases: []string{"k"},
						Usage:   "Maximum number of results",
						Value:   10,
					},
				}, commonFlags()...),
			},
			{
				Name:   "export",
				Usage:  "Export the consolidated corpus from a snapshot",
				Action: exportCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (csv, table)",
						Value:   "table",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file (defaults to stdout)",
					},
					&cli.BoolFlag{
						Name:  "include-description",
						Usage: "Include the description column in CSV output",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB snapshot directory",
		EnvVars:  []string{"PROSPECT_DB"},
		Required: true,
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		dbFlag(),
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL",
			EnvVars: []string{"PROSPECT_EMBEDDING_HOST"},
			Value:   "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			EnvVars: []string{"PROSPECT_EMBEDDING_MODEL"},
			Value:   "embeddinggemma",
		},
	}
}

func newEngine(c *cli.Context, indexOpts ...index.Option) (*prospect.Engine, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)

	return prospect.New(
		prospect.WithAIConfig(aiConfig),
		prospect.WithSnapshotPath(c.String("db")),
		prospect.WithIndexerOptions(indexOpts...),
	)
}

func buildCommand(c *cli.Context) error {
	sources, err := source.LoadSources(c.String("sources"))
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("source list %s declares no sources", c.String("sources"))
	}

	progress := index.NewProgressTracker(os.Stderr, 0, c.Int("report-interval"))
	engine, err := newEngine(c,
		index.WithBatchSize(c.Int("batch-size")),
		index.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
		index.WithProgress(progress),
	)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()
	if err := engine.Build(ctx, sources); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %d records from %d sources in %s\n",
		engine.Corpus().Len(), len(sources), progress.Elapsed().Round(time.Millisecond))

	rejections := engine.Rejections()
	fmt.Fprintf(os.Stderr, "Rejected %d candidates\n", len(rejections))
	if c.Bool("show-rejections") {
		for _, rejection := range rejections {
			fmt.Fprintf(os.Stderr, "  [%s] %s %s %s\n",
				rejection.Reason, rejection.Source, rejection.Title, rejection.URL)
		}
	}

	return nil
}

func queryCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query text required")
	}

	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	results, err := engine.Query(context.Background(), query, c.Int("max-hits"))
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(os.Stderr, "No results")
		return nil
	}
	return export.WriteResults(os.Stdout, results)
}

func exportCommand(c *cli.Context) error {
	// Export only reads the snapshot; no embedding service needed.
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return err
	}
	defer backend.Close()

	store, err := badger.NewSnapshotStore(backend)
	if err != nil {
		return err
	}

	idx, err := store.LoadSnapshot(context.Background())
	if err != nil {
		return err
	}

	out := os.Stdout
	if path := c.String("output"); path != "" {
		out, err = os.Create(path)
		if err != nil {
			return err
		}
		defer out.Close()
	}

	switch c.String("format") {
	case "csv":
		return export.WriteCSV(out, idx.Corpus, c.Bool("include-description"))
	case "table":
		return export.WriteTable(out, idx.Corpus)
	default:
		return fmt.Errorf("invalid format %q: must be csv or table", c.String("format"))
	}
}

func setup(c *cli.Context) error {
	// Optional .env for embedding host and model settings.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}

	// Get log level from flag and normalize to lowercase
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
