package lobsterbot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/re-minder/lobsterMoneyBot/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase(t *testing.T) {
	t.Run("create new database", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		// Verify components are initialized
		assert.NotNil(t, db.MappingRepository())
		assert.NotNil(t, db.OwnerRepository())
		assert.NotNil(t, db.CheckpointRepository())
		assert.NotNil(t, db.backend)
		assert.NotNil(t, db.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a database at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		db, err := NewDatabase(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}

func TestDatabase_Close(t *testing.T) {
	tmpDir := t.TempDir()
	db, err := NewDatabase(tmpDir)
	require.NoError(t, err)
	require.NotNil(t, db)

	err = db.Close()
	assert.NoError(t, err)
}

func TestDatabase_FactoryMethods(t *testing.T) {
	tmpDir := t.TempDir()
	db, err := NewDatabase(tmpDir)
	require.NoError(t, err)
	require.NotNil(t, db)
	defer db.Close()

	t.Run("can create searcher", func(t *testing.T) {
		searcher, err := db.NewSearcher()
		require.NoError(t, err)
		require.NotNil(t, searcher)
	})

	t.Run("can create import pipeline", func(t *testing.T) {
		pipeline, err := db.NewImportPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})
}

func seedDatabase(t *testing.T, db *Database, n int) {
	t.Helper()
	ctx := context.Background()
	records := make([]*core.MappingRecord, 0, n)
	for i := range n {
		records = append(records, &core.MappingRecord{
			Phrase:   fmt.Sprintf("phrase %03d", i),
			MediaRef: fmt.Sprintf("file-%03d", i),
		})
	}
	_, err := db.MappingRepository().AddMappings(ctx, records...)
	require.NoError(t, err)
}

func TestDatabase_MappingsPage(t *testing.T) {
	tmpDir := t.TempDir()
	db, err := NewDatabase(tmpDir)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		records, page, total, err := db.MappingsPage(ctx, 5)
		require.NoError(t, err)
		assert.Empty(t, records)
		assert.Equal(t, 1, page)
		assert.Zero(t, total)
	})

	seedDatabase(t, db, 120) // 3 pages at 50/page

	t.Run("first page", func(t *testing.T) {
		records, page, total, err := db.MappingsPage(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, records, StatusPageSize)
		assert.Equal(t, 1, page)
		assert.Equal(t, 120, total)
		assert.Equal(t, "phrase 119", records[0].Phrase, "newest first")
	})

	t.Run("last page is short", func(t *testing.T) {
		records, page, _, err := db.MappingsPage(ctx, 3)
		require.NoError(t, err)
		assert.Len(t, records, 20)
		assert.Equal(t, 3, page)
	})

	t.Run("page above range clamps to last", func(t *testing.T) {
		records, page, _, err := db.MappingsPage(ctx, 99)
		require.NoError(t, err)
		assert.Len(t, records, 20)
		assert.Equal(t, 3, page)
	})

	t.Run("page below range clamps to first", func(t *testing.T) {
		_, page, _, err := db.MappingsPage(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, page)

		_, page, _, err = db.MappingsPage(ctx, -7)
		require.NoError(t, err)
		assert.Equal(t, 1, page)
	})
}
