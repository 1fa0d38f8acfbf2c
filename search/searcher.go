package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/re-minder/lobsterMoneyBot/core"
	"github.com/re-minder/lobsterMoneyBot/storage"
)

// Searcher provides tiered phrase matching over stored mapping records.
type Searcher struct {
	mappingRepository storage.MappingRepository
	logger            *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(mappingRepository storage.MappingRepository, opts ...Option) (*Searcher, error) {
	if mappingRepository == nil {
		return nil, ErrMappingRepositoryRequired
	}

	s := &Searcher{
		mappingRepository: mappingRepository,
		logger:            slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search finds mapping records whose phrases match the query.
// Returns up to maxHits results, best match first.
func (s *Searcher) Search(ctx context.Context, query string, maxHits int) ([]*core.SearchResult, error) {
	return s.SearchWithMonitor(ctx, query, maxHits, nil)
}

// SearchWithMonitor finds matching mapping records with monitoring.
// The monitor receives callbacks at each stage of the search process.
// Returns up to maxHits results, best match first.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, maxHits int, monitor SearchMonitor) ([]*core.SearchResult, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	monitor.Start(query)

	candidates, err := s.mappingRepository.AllMappings(ctx)
	if err != nil {
		s.logger.Error("error scanning mapping records", "err", err)
		return nil, err
	}
	monitor.AfterScan(len(candidates))

	results := make([]*core.SearchResult, 0, len(candidates))
	for _, record := range candidates {
		if record == nil {
			continue
		}
		score := Score(query, record.Phrase)
		if score <= 0 {
			continue
		}
		monitor.Scored(record, score)
		results = append(results, &core.SearchResult{Record: record, Score: score})
	}

	results = rankAndTruncate(results, maxHits)
	monitor.Finish(results)

	s.logger.Debug("search complete",
		"query", query,
		"candidates", len(candidates),
		"results", len(results))

	return results, nil
}
