package storage

import (
	"context"

	"github.com/re-minder/lobsterMoneyBot/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// MappingRepository provides operations for managing phrase-to-video
// mapping records. Records are append-only; there is no update or delete.
type MappingRepository interface {
	Repository
	// AddMappings adds one or more mapping records to storage.
	// Generates fresh IDs from the sequence, sets CreatedAt to the current
	// time (UTC) when zero, and maintains the created-at and fingerprint
	// indices. Returns the records with IDs and timestamps populated.
	AddMappings(ctx context.Context, records ...*core.MappingRecord) ([]*core.MappingRecord, error)

	// GetMapping retrieves a single mapping record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetMapping(ctx context.Context, id core.ID) (*core.MappingRecord, error)

	// GetMappings retrieves multiple mapping records by their IDs.
	// Returns only the records that exist (no error for missing records).
	GetMappings(ctx context.Context, ids ...core.ID) ([]*core.MappingRecord, error)

	// AllMappings returns every committed mapping record. Order is
	// unspecified; the scan runs in a read-only transaction, so records
	// committed after the scan starts are excluded (read-committed).
	AllMappings(ctx context.Context) ([]*core.MappingRecord, error)

	// CountMappings returns the total number of mapping records.
	CountMappings(ctx context.Context) (int, error)

	// ListMappingsPage returns up to limit records starting at offset,
	// ordered by CreatedAt descending with ID descending as the tie-break.
	// The order is total and deterministic.
	ListMappingsPage(ctx context.Context, limit, offset int) ([]*core.MappingRecord, error)

	// FindByFingerprint returns the ID of a record with the given content
	// fingerprint. Returns ErrNotFound when no such record exists. When
	// several records share a fingerprint, the first one stored wins.
	FindByFingerprint(ctx context.Context, fp core.Fingerprint) (core.ID, error)
}

// OwnerRepository provides operations for managing the authorized-owner set.
type OwnerRepository interface {
	Repository
	// AddOwner inserts an owner identity if absent. Re-adding an existing
	// owner is a no-op: the original record, including its label and
	// AddedAt, is preserved.
	AddOwner(ctx context.Context, userID int64, label string) error

	// SeedOwners inserts each user ID if absent, with an empty label.
	// Used at startup to load the configured owner list.
	SeedOwners(ctx context.Context, userIDs []int64) error

	// IsOwner reports whether the user is in the owner set.
	IsOwner(ctx context.Context, userID int64) (bool, error)

	// ListOwners returns all owner identities, order unspecified.
	ListOwners(ctx context.Context) ([]*core.OwnerIdentity, error)
}

// CheckpointRepository persists bulk-import resume state, keyed by source.
type CheckpointRepository interface {
	// SaveCheckpoint persists a checkpoint for an import source.
	SaveCheckpoint(ctx context.Context, checkpoint *core.ImportCheckpoint) error

	// LoadCheckpoint retrieves the checkpoint for an import source.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, source string) (*core.ImportCheckpoint, error)
}
