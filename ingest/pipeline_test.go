package ingest

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/re-minder/lobsterMoneyBot/core"
	"github.com/re-minder/lobsterMoneyBot/storage"
	"github.com/re-minder/lobsterMoneyBot/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(t *testing.T, opts ...Option) (*Pipeline, storage.MappingRepository, storage.CheckpointRepository) {
	t.Helper()

	mappingRepo, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	checkpointRepo := badger.NewCheckpointRepository(backend)

	pipeline, err := NewPipeline(mappingRepo, checkpointRepo, opts...)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	return pipeline, mappingRepo, checkpointRepo
}

func importRows(n int) []*core.MappingRecord {
	rows := make([]*core.MappingRecord, 0, n)
	for i := range n {
		rows = append(rows, &core.MappingRecord{
			Phrase:   fmt.Sprintf("phrase %03d", i),
			MediaRef: fmt.Sprintf("file-id-%03d", i),
			OwnerID:  42,
		})
	}
	return rows
}

func TestNewPipeline_Validation(t *testing.T) {
	mappingRepo, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	checkpointRepo := badger.NewCheckpointRepository(backend)

	t.Run("nil mapping repository", func(t *testing.T) {
		_, err := NewPipeline(nil, checkpointRepo)
		assert.Equal(t, ErrMappingRepositoryRequired, err)
	})

	t.Run("nil checkpoint repository", func(t *testing.T) {
		_, err := NewPipeline(mappingRepo, nil)
		assert.Equal(t, ErrCheckpointRepositoryRequired, err)
	})

	t.Run("invalid retry attempts", func(t *testing.T) {
		_, err := NewPipeline(mappingRepo, checkpointRepo, WithRetry(0, time.Millisecond))
		assert.Equal(t, ErrInvalidMaxAttempts, err)
	})
}

func TestRun_ImportsAllRows(t *testing.T) {
	pipeline, mappingRepo, _ := newTestPipeline(t)
	ctx := context.Background()

	summary, err := pipeline.Run(ctx, "seed.csv", importRows(25))
	require.NoError(t, err)

	assert.Equal(t, 25, summary.Total)
	assert.Equal(t, 25, summary.Imported)
	assert.Zero(t, summary.Duplicates)
	assert.Zero(t, summary.Invalid)
	assert.Zero(t, summary.ResumedFrom)

	count, err := mappingRepo.CountMappings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, count)
}

func TestRun_RequiresSource(t *testing.T) {
	pipeline, _, _ := newTestPipeline(t)

	_, err := pipeline.Run(context.Background(), "", importRows(1))
	assert.Equal(t, ErrSourceRequired, err)
}

func TestRun_SkipsInvalidRows(t *testing.T) {
	pipeline, mappingRepo, _ := newTestPipeline(t)
	ctx := context.Background()

	rows := []*core.MappingRecord{
		{Phrase: "good row", MediaRef: "file-1"},
		{Phrase: "   ", MediaRef: "file-2"}, // whitespace phrase
		{Phrase: "no media"},                // missing media ref
		nil,
		{Phrase: "another good row", MediaRef: "file-3"},
	}

	summary, err := pipeline.Run(ctx, "mixed.csv", rows)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 3, summary.Invalid)

	count, err := mappingRepo.CountMappings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRun_SkipsStoredDuplicates(t *testing.T) {
	pipeline, mappingRepo, _ := newTestPipeline(t)
	ctx := context.Background()

	rows := importRows(10)
	_, err := pipeline.Run(ctx, "first.csv", rows)
	require.NoError(t, err)

	// Same content under a different source.
	again := importRows(10)
	again = append(again, &core.MappingRecord{Phrase: "brand new", MediaRef: "file-new", OwnerID: 42})

	summary, err := pipeline.Run(ctx, "second.csv", again)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 10, summary.Duplicates)

	count, err := mappingRepo.CountMappings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 11, count)
}

func TestRun_SkipsDuplicatesWithinBatch(t *testing.T) {
	pipeline, mappingRepo, _ := newTestPipeline(t)
	ctx := context.Background()

	row := &core.MappingRecord{Phrase: "repeated", MediaRef: "file-1", OwnerID: 7}
	copy1 := *row
	copy2 := *row

	summary, err := pipeline.Run(ctx, "dups.csv", []*core.MappingRecord{row, &copy1, &copy2})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 2, summary.Duplicates)

	count, err := mappingRepo.CountMappings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRun_SavesCheckpointPerBatch(t *testing.T) {
	pipeline, _, checkpointRepo := newTestPipeline(t, WithBatchSize(10))
	ctx := context.Background()

	_, err := pipeline.Run(ctx, "batched.csv", importRows(25))
	require.NoError(t, err)

	checkpoint, err := checkpointRepo.LoadCheckpoint(ctx, "batched.csv")
	require.NoError(t, err)
	require.NotNil(t, checkpoint)
	assert.Equal(t, 25, checkpoint.Position)
	assert.False(t, checkpoint.UpdatedAt.IsZero())
}

func TestRun_ResumesFromCheckpoint(t *testing.T) {
	pipeline, mappingRepo, checkpointRepo := newTestPipeline(t)
	ctx := context.Background()

	// Simulate a previous run that completed the first 15 rows.
	require.NoError(t, checkpointRepo.SaveCheckpoint(ctx, &core.ImportCheckpoint{
		Source:   "resume.csv",
		Position: 15,
	}))

	summary, err := pipeline.Run(ctx, "resume.csv", importRows(25))
	require.NoError(t, err)

	assert.Equal(t, 15, summary.ResumedFrom)
	assert.Equal(t, 10, summary.Total)
	assert.Equal(t, 10, summary.Imported)

	count, err := mappingRepo.CountMappings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, count, "rows before the checkpoint are not re-imported")
}

func TestRun_IgnoresStaleCheckpoint(t *testing.T) {
	pipeline, mappingRepo, checkpointRepo := newTestPipeline(t)
	ctx := context.Background()

	// Checkpoint position beyond the row count cannot be honored.
	require.NoError(t, checkpointRepo.SaveCheckpoint(ctx, &core.ImportCheckpoint{
		Source:   "stale.csv",
		Position: 100,
	}))

	summary, err := pipeline.Run(ctx, "stale.csv", importRows(5))
	require.NoError(t, err)

	assert.Zero(t, summary.ResumedFrom)
	assert.Equal(t, 5, summary.Imported)

	count, err := mappingRepo.CountMappings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestRun_EmptyRows(t *testing.T) {
	pipeline, _, _ := newTestPipeline(t)

	summary, err := pipeline.Run(context.Background(), "empty.csv", nil)
	require.NoError(t, err)
	assert.Zero(t, summary.Total)
	assert.Zero(t, summary.Imported)
}

func TestRun_WithProgress(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 0, 5)
	pipeline, _, _ := newTestPipeline(t, WithProgress(tracker), WithBatchSize(5))

	_, err := pipeline.Run(context.Background(), "progress.csv", importRows(20))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "20/20")
}

func TestRun_WithPoolSize(t *testing.T) {
	pipeline, mappingRepo, _ := newTestPipeline(t, WithPoolSize(4), WithBatchSize(8))
	ctx := context.Background()

	summary, err := pipeline.Run(ctx, "pooled.csv", importRows(50))
	require.NoError(t, err)
	assert.Equal(t, 50, summary.Imported)

	count, err := mappingRepo.CountMappings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, count)
}
