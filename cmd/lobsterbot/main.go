// Copyright 2025 re-minder
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
	"encoding/csv"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/re-minder/lobsterMoneyBot"
	"github.com/re-minder/lobsterMoneyBot/bot"
	"github.com/re-minder/lobsterMoneyBot/core"
	"github.com/re-minder/lobsterMoneyBot/ingest"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "lobsterbot",
		Usage: "Phrase-to-video mapping store with a Telegram gateway",
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
				Name:   "serve",
				Usage:  "Run the Telegram bot (configured via environment variables)",
				Action: serveCommand,
			},
			{
				Name:      "search",
				Usage:     "Search stored mappings by phrase",
				Action:    searchCommand,
				ArgsUsage: "<query>",
				Flags: []cli.Flag{
					dbFlag(),
					&cli.IntFlag{
						Name:  "max-hits",
						Usage: "Maximum number of results",
						Value: 10,
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List stored mappings, newest first",
				Action: listCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.IntFlag{
						Name:    "page",
						Aliases: []string{"p"},
						Usage:   "Page number (clamped to the valid range)",
						Value:   1,
					},
				},
			},
			{
				Name:      "add-owner",
				Usage:     "Authorize a Telegram user id",
				Action:    addOwnerCommand,
				ArgsUsage: "<user_id>",
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:  "label",
						Usage: "Optional display label for the owner",
					},
				},
			},
			{
				Name:   "count",
				Usage:  "Print the number of stored mappings",
				Action: countCommand,
				Flags:  []cli.Flag{dbFlag()},
			},
			{
				Name:   "import",
				Usage:  "Bulk-import mappings from a CSV file (phrase,file_id[,owner_id[,owner_label]])",
				Action: importCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "src",
						Aliases:  []string{"s"},
						Usage:    "Path to the CSV file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Checkpoint source name (defaults to the file name)",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of rows to insert in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Worker pool size for duplicate lookups",
						Value: 4,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N rows",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed batch inserts",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
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
		Usage:    "Path to the BadgerDB database directory",
		Required: true,
	}
}

func serveCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := bot.LoadConfig()
	if err != nil {
		return err
	}

	db, err := lobsterbot.NewDatabase(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.OwnerRepository().SeedOwners(ctx, cfg.OwnerIDs); err != nil {
		return fmt.Errorf("failed to seed owners: %w", err)
	}

	searcher, err := db.NewSearcher()
	if err != nil {
		return err
	}

	handlers, err := bot.NewHandlers(
		db.MappingRepository(),
		db.OwnerRepository(),
		searcher,
		cfg.BotUsername,
		slog.Default(),
	)
	if err != nil {
		return err
	}

	b, err := bot.New(cfg, handlers, slog.Default())
	if err != nil {
		return err
	}

	if err := b.Start(ctx); err != nil {
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	return b.Stop()
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query is required")
	}

	db, err := lobsterbot.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return err
	}

	results, err := searcher.Search(ctx, query, c.Int("max-hits"))
	if err != nil {
		return err
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		fmt.Printf("%d: '%s' → %s (%d)[%d]\n", i, hit.Record.Phrase, hit.Record.MediaRef, hit.Record.Id, hit.Score)
	}
	return nil
}

func listCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := lobsterbot.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	records, page, total, err := db.MappingsPage(ctx, c.Int("page"))
	if err != nil {
		return err
	}
	if total == 0 {
		fmt.Println("No mappings yet.")
		return nil
	}

	maxPage := (total + lobsterbot.StatusPageSize - 1) / lobsterbot.StatusPageSize
	fmt.Printf("Page %d/%d - total %d\n", page, maxPage, total)
	for _, record := range records {
		owner := record.OwnerLabel
		if owner == "" {
			owner = strconv.FormatInt(record.OwnerID, 10)
		}
		fmt.Printf("%d. '%s' → %s (by %s)\n", record.Id, record.Phrase, record.MediaRef, owner)
	}
	return nil
}

func addOwnerCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.Args().Len() == 0 {
		return fmt.Errorf("user_id is required")
	}
	userID, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid user_id: %w", err)
	}

	db, err := lobsterbot.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.OwnerRepository().AddOwner(ctx, userID, c.String("label")); err != nil {
		return err
	}

	fmt.Printf("Owner %d added.\n", userID)
	return nil
}

func countCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := lobsterbot.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	total, err := db.MappingRepository().CountMappings(ctx)
	if err != nil {
		return err
	}

	fmt.Println(total)
	return nil
}

func importCommand(c *cli.Context) error {
	ctx := context.Background()

	srcPath := c.String("src")
	rows, err := readImportRows(srcPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", srcPath, err)
	}

	source := c.String("source")
	if source == "" {
		source = filepath.Base(srcPath)
	}

	db, err := lobsterbot.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	tracker := ingest.NewProgressTracker(os.Stderr, len(rows), c.Int("report-interval"))
	pipeline, err := db.NewImportPipeline(
		ingest.WithPoolSize(c.Int("pool-size")),
		ingest.WithBatchSize(c.Int("batch-size")),
		ingest.WithProgress(tracker),
		ingest.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
	)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Source: %s (%d rows)\n", source, len(rows))
	fmt.Fprintln(os.Stderr)

	summary, err := pipeline.Run(ctx, source, rows)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("Imported %d, duplicates %d, invalid %d (resumed from row %d)\n",
		summary.Imported, summary.Duplicates, summary.Invalid, summary.ResumedFrom)
	return nil
}

// readImportRows parses a CSV file into mapping records.
// Columns: phrase, file_id, optional owner_id, optional owner_label.
func readImportRows(path string) ([]*core.MappingRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	lines, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	rows := make([]*core.MappingRecord, 0, len(lines))
	for _, line := range lines {
		if len(line) < 2 {
			// Short lines flow through as invalid rows so the
			// pipeline counts them.
			rows = append(rows, &core.MappingRecord{})
			continue
		}

		record := &core.MappingRecord{
			Phrase:   strings.TrimSpace(line[0]),
			MediaRef: strings.TrimSpace(line[1]),
		}
		if len(line) > 2 {
			if ownerID, err := strconv.ParseInt(strings.TrimSpace(line[2]), 10, 64); err == nil {
				record.OwnerID = ownerID
			}
		}
		if len(line) > 3 {
			record.OwnerLabel = strings.TrimSpace(line[3])
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
