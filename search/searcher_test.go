package search

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/re-minder/lobsterMoneyBot/core"
	"github.com/re-minder/lobsterMoneyBot/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearcher(t *testing.T) {
	mappingRepo, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	t.Run("valid configuration", func(t *testing.T) {
		searcher, err := NewSearcher(mappingRepo)
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with custom logger", func(t *testing.T) {
		searcher, err := NewSearcher(mappingRepo, WithLogger(slog.Default()))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		searcher, err := NewSearcher(mappingRepo, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("nil mapping repository", func(t *testing.T) {
		_, err := NewSearcher(nil)
		assert.Equal(t, ErrMappingRepositoryRequired, err)
	})
}

func seedMappings(t *testing.T, repo interface {
	AddMappings(ctx context.Context, records ...*core.MappingRecord) ([]*core.MappingRecord, error)
}, phrases ...string) []*core.MappingRecord {
	t.Helper()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	records := make([]*core.MappingRecord, 0, len(phrases))
	for i, phrase := range phrases {
		records = append(records, &core.MappingRecord{
			Phrase:    phrase,
			MediaRef:  "file-id-" + phrase,
			OwnerID:   42,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	stored, err := repo.AddMappings(context.Background(), records...)
	require.NoError(t, err)
	return stored
}

func TestSearch_EmptyDatabase(t *testing.T) {
	mappingRepo, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	searcher, err := NewSearcher(mappingRepo)
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "anything", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_EmptyQuery(t *testing.T) {
	mappingRepo, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	seedMappings(t, mappingRepo, "hello world")

	searcher, err := NewSearcher(mappingRepo)
	require.NoError(t, err)

	for _, query := range []string{"", "   ", "\t\n"} {
		_, err := searcher.Search(context.Background(), query, 10)
		assert.ErrorIs(t, err, ErrEmptyQuery, "query=%q", query)
	}
}

func TestSearch_TieredRanking(t *testing.T) {
	mappingRepo, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	seedMappings(t, mappingRepo,
		"dance",            // exact
		"dance party",      // prefix
		"let's dance now",  // substring
		"daily notice board", // subsequence of "dance": d-a-n-c-e
		"nothing here",       // no match
	)

	searcher, err := NewSearcher(mappingRepo)
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "dance", 10)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, "dance", results[0].Record.Phrase)
	assert.Equal(t, ScoreExact, results[0].Score)
	assert.Equal(t, "dance party", results[1].Record.Phrase)
	assert.Equal(t, ScorePrefix, results[1].Score)
	assert.Equal(t, "let's dance now", results[2].Record.Phrase)
	assert.Equal(t, ScoreSubstring, results[2].Score)
	assert.Equal(t, "daily notice board", results[3].Record.Phrase)
	assert.Equal(t, ScoreSubsequence, results[3].Score)
}

func TestSearch_NewerFirstWithinTier(t *testing.T) {
	mappingRepo, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	// Seeded in ascending CreatedAt order; all score the same tier.
	seedMappings(t, mappingRepo, "dance one", "dance two", "dance three")

	searcher, err := NewSearcher(mappingRepo)
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "dance", 10)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "dance three", results[0].Record.Phrase)
	assert.Equal(t, "dance two", results[1].Record.Phrase)
	assert.Equal(t, "dance one", results[2].Record.Phrase)
}

func TestSearch_Truncation(t *testing.T) {
	mappingRepo, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	phrases := make([]string, 0, 15)
	for i := range 15 {
		phrases = append(phrases, "dance variation "+string(rune('a'+i)))
	}
	seedMappings(t, mappingRepo, phrases...)

	searcher, err := NewSearcher(mappingRepo)
	require.NoError(t, err)

	ctx := context.Background()
	full, err := searcher.Search(ctx, "dance", 15)
	require.NoError(t, err)
	require.Len(t, full, 15)

	truncated, err := searcher.Search(ctx, "dance", 10)
	require.NoError(t, err)
	require.Len(t, truncated, 10)
	for i, result := range truncated {
		assert.Equal(t, full[i].Record.Id, result.Record.Id)
	}
}

type recordingMonitor struct {
	query     string
	scanned   int
	scored    int
	finished  int
	finalHits int
}

func (m *recordingMonitor) Start(query string)                  { m.query = query }
func (m *recordingMonitor) AfterScan(total int)                 { m.scanned = total }
func (m *recordingMonitor) Scored(*core.MappingRecord, int)     { m.scored++ }
func (m *recordingMonitor) Finish(results []*core.SearchResult) { m.finished++; m.finalHits = len(results) }

func TestSearchWithMonitor(t *testing.T) {
	mappingRepo, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	seedMappings(t, mappingRepo, "dance", "dance party", "unrelated")

	searcher, err := NewSearcher(mappingRepo)
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	results, err := searcher.SearchWithMonitor(context.Background(), "dance", 1, monitor)
	require.NoError(t, err)

	assert.Equal(t, "dance", monitor.query)
	assert.Equal(t, 3, monitor.scanned)
	assert.Equal(t, 2, monitor.scored)
	assert.Equal(t, 1, monitor.finished)
	assert.Equal(t, 1, monitor.finalHits)
	assert.Len(t, results, 1)
}

func TestSearch_RepeatedQueriesAreStable(t *testing.T) {
	mappingRepo, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	seedMappings(t, mappingRepo, "lobster money", "lobster", "money lobster", "the lobster")

	searcher, err := NewSearcher(mappingRepo)
	require.NoError(t, err)

	ctx := context.Background()
	first, err := searcher.Search(ctx, "lobster", 10)
	require.NoError(t, err)

	for range 5 {
		again, err := searcher.Search(ctx, "lobster", 10)
		require.NoError(t, err)
		require.Len(t, again, len(first))
		for i := range first {
			assert.Equal(t, first[i].Record.Id, again[i].Record.Id)
			assert.Equal(t, first[i].Score, again[i].Score)
		}
	}
}
