package ingest

import "errors"

var (
	// ErrMappingRepositoryRequired is returned when a mapping repository is not provided.
	ErrMappingRepositoryRequired = errors.New("mapping repository required")

	// ErrCheckpointRepositoryRequired is returned when a checkpoint repository is not provided.
	ErrCheckpointRepositoryRequired = errors.New("checkpoint repository required")

	// ErrSourceRequired is returned when an import source name is empty.
	ErrSourceRequired = errors.New("import source required")

	// ErrInvalidMaxAttempts is returned when a retry attempt count is not positive.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")
)
