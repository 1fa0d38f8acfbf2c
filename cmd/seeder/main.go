package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/re-minder/lobsterMoneyBot"
	"github.com/re-minder/lobsterMoneyBot/core"
)

// Sample phrases for local testing. Each maps to a fabricated file id;
// real deployments import from a CSV via `lobsterbot import`.
var phrases = []string{
	"lobster dance",
	"money rain",
	"victory lap",
	"monday mood",
	"deal closed",
	"coffee first",
	"weekend vibes",
	"big brain move",
	"server on fire",
	"deploy friday",
	"rubber duck",
	"ship it",
	"works on my machine",
	"meeting marathon",
	"inbox zero",
	"budget approved",
	"taco tuesday",
	"code review time",
	"standup again",
	"bug hunt",
	"release party",
	"database down",
	"refactor everything",
	"merge conflict",
	"demo gods",
	"legacy code",
	"hotfix incoming",
	"pager duty",
	"quarterly goals",
	"happy client",
}

var (
	dbPath       = flag.String("db", "./lobster_db", "path to the database directory")
	seedFileName = flag.String("src", "", "file of seed phrases, one per line")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// linesFromFile reads non-empty lines from a file.
func linesFromFile(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func main() {
	db, err := lobsterbot.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	pipeline, err := db.NewImportPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	ctx := context.Background()

	source := phrases
	if *seedFileName != "" {
		source, err = linesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	}

	rows := make([]*core.MappingRecord, 0, len(source))
	for i, phrase := range source {
		rows = append(rows, &core.MappingRecord{
			Phrase:   phrase,
			MediaRef: fmt.Sprintf("seed-video-%03d", i),
		})
	}

	summary, err := pipeline.Run(ctx, "seeder", rows)
	if err != nil {
		panic(err)
	}

	slog.Info("seeding complete",
		"imported", summary.Imported,
		"duplicates", summary.Duplicates)
}
