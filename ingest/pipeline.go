package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/re-minder/lobsterMoneyBot/core"
	"github.com/re-minder/lobsterMoneyBot/storage"
)

const (
	defaultBatchSize      = 100
	defaultMaxRetries     = 3
	defaultRetryBaseDelay = 500 * time.Millisecond
)

// Pipeline orchestrates bulk import of mapping records.
// Rows are validated, deduplicated by content fingerprint, and inserted
// in batches; a checkpoint is saved after each batch.
type Pipeline struct {
	mappingRepository    storage.MappingRepository
	checkpointRepository storage.CheckpointRepository
	pool                 *ants.Pool
	batchSize            int
	maxRetries           int
	retryBaseDelay       time.Duration
	progress             *ProgressTracker
	logger               *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent duplicate lookups.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many rows are inserted per batch.
// Default is 100.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithProgress attaches a progress tracker. The pipeline resets its total
// to the remaining row count when resuming from a checkpoint.
func WithProgress(progress *ProgressTracker) Option {
	return func(p *Pipeline) error {
		p.progress = progress
		return nil
	}
}

// WithRetry configures retry behavior for batch inserts.
// Defaults are 3 attempts with a 500ms base delay.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.maxRetries = maxAttempts
		p.retryBaseDelay = baseDelay
		return nil
	}
}

// NewPipeline creates a new import pipeline.
func NewPipeline(
	mappingRepository storage.MappingRepository,
	checkpointRepository storage.CheckpointRepository,
	opts ...Option,
) (*Pipeline, error) {
	if mappingRepository == nil {
		return nil, ErrMappingRepositoryRequired
	}
	if checkpointRepository == nil {
		return nil, ErrCheckpointRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		mappingRepository:    mappingRepository,
		checkpointRepository: checkpointRepository,
		pool:                 pool,
		batchSize:            defaultBatchSize,
		maxRetries:           defaultMaxRetries,
		retryBaseDelay:       defaultRetryBaseDelay,
		logger:               slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Summary reports what an import run did.
type Summary struct {
	Total       int // rows processed in this run, after any resume
	Imported    int
	Duplicates  int
	Invalid     int
	ResumedFrom int // row position the run resumed at, 0 for a fresh run
}

// Run imports rows under the named source. If a checkpoint exists for the
// source, rows before the checkpoint position are skipped. A checkpoint is
// saved after every batch, so a failed run resumes at the last completed
// batch boundary.
func (p *Pipeline) Run(ctx context.Context, source string, rows []*core.MappingRecord) (*Summary, error) {
	if source == "" {
		return nil, ErrSourceRequired
	}

	start := 0
	checkpoint, err := p.checkpointRepository.LoadCheckpoint(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load checkpoint: %w", err)
	}
	if checkpoint != nil && checkpoint.Position > 0 && checkpoint.Position <= len(rows) {
		start = checkpoint.Position
		p.logger.Info("resuming import from checkpoint", "source", source, "position", start)
	}

	summary := &Summary{
		Total:       len(rows) - start,
		ResumedFrom: start,
	}

	if p.progress != nil {
		p.progress.SetTotal(summary.Total)
		p.progress.Start()
	}

	for begin := start; begin < len(rows); begin += p.batchSize {
		end := min(begin+p.batchSize, len(rows))

		if err := p.importBatch(ctx, rows[begin:end], summary); err != nil {
			return nil, fmt.Errorf("import failed at rows %d..%d: %w", begin, end, err)
		}

		checkpoint := &core.ImportCheckpoint{Source: source, Position: end}
		if err := p.checkpointRepository.SaveCheckpoint(ctx, checkpoint); err != nil {
			return nil, fmt.Errorf("failed to save checkpoint: %w", err)
		}

		if p.progress != nil {
			p.progress.Increment(end - begin)
		}
	}

	if p.progress != nil {
		p.progress.Finish()
	}

	p.logger.Info("import complete",
		"source", source,
		"imported", summary.Imported,
		"duplicates", summary.Duplicates,
		"invalid", summary.Invalid)

	return summary, nil
}

// importBatch validates, deduplicates, and inserts one batch of rows.
func (p *Pipeline) importBatch(ctx context.Context, batch []*core.MappingRecord, summary *Summary) error {
	valid := make([]*core.MappingRecord, 0, len(batch))
	fingerprints := make([]core.Fingerprint, 0, len(batch))
	seen := make(map[core.Fingerprint]bool, len(batch))

	for _, row := range batch {
		if row == nil {
			summary.Invalid++
			continue
		}
		if err := core.ValidateMappingRecord(row); err != nil {
			p.logger.Warn("skipping invalid row", "phrase", row.Phrase, "err", err)
			summary.Invalid++
			continue
		}

		fp := row.Fingerprint()
		if seen[fp] {
			summary.Duplicates++
			continue
		}
		seen[fp] = true

		valid = append(valid, row)
		fingerprints = append(fingerprints, fp)
	}

	if len(valid) == 0 {
		return nil
	}

	// Duplicate lookups run concurrently on the pool.
	duplicate := make([]bool, len(valid))
	lookupErrs := make([]error, len(valid))
	var wg sync.WaitGroup
	for i := range valid {
		idx := i
		wg.Add(1)
		if err := p.pool.Submit(func() {
			defer wg.Done()
			_, err := p.mappingRepository.FindByFingerprint(ctx, fingerprints[idx])
			if err == nil {
				duplicate[idx] = true
				return
			}
			if !errors.Is(err, storage.ErrNotFound) {
				lookupErrs[idx] = err
			}
		}); err != nil {
			wg.Done()
			lookupErrs[idx] = err
		}
	}
	wg.Wait()

	for _, err := range lookupErrs {
		if err != nil {
			return fmt.Errorf("duplicate lookup failed: %w", err)
		}
	}

	fresh := make([]*core.MappingRecord, 0, len(valid))
	for i, record := range valid {
		if duplicate[i] {
			summary.Duplicates++
			continue
		}
		fresh = append(fresh, record)
	}

	if len(fresh) == 0 {
		return nil
	}

	err := RetryWithBackoff(ctx, func() error {
		_, err := p.mappingRepository.AddMappings(ctx, fresh...)
		return err
	}, p.maxRetries, p.retryBaseDelay)
	if err != nil {
		return fmt.Errorf("failed to insert batch after %d attempts: %w", p.maxRetries, err)
	}

	summary.Imported += len(fresh)
	return nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
