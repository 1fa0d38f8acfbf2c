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


package lobsterbot

import (
	"context"
	"log/slog"

	"github.com/re-minder/lobsterMoneyBot/core"
	"github.com/re-minder/lobsterMoneyBot/ingest"
	"github.com/re-minder/lobsterMoneyBot/search"
	"github.com/re-minder/lobsterMoneyBot/storage"
	"github.com/re-minder/lobsterMoneyBot/storage/badger"
)

// StatusPageSize is how many mappings the administrative listing shows per page.
const StatusPageSize = 50

// Database wires the badger backend and repositories into one handle.
type Database struct {
	backend        *badger.Backend
	mappingRepo    storage.MappingRepository
	ownerRepo      storage.OwnerRepository
	checkpointRepo storage.CheckpointRepository
	logger         *slog.Logger
}

// NewDatabase opens the store at filePath and wires up the repositories.
func NewDatabase(filePath string) (*Database, error) {
	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	// Create mapping repository
	mappingRepo, err := badger.NewMappingRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create owner repository
	ownerRepo, err := badger.NewOwnerRepository(backend)
	if err != nil {
		mappingRepo.Close()
		backend.Close()
		return nil, err
	}

	// Create checkpoint repository
	checkpointRepo := badger.NewCheckpointRepository(backend)

	return &Database{
		backend:        backend,
		mappingRepo:    mappingRepo,
		ownerRepo:      ownerRepo,
		checkpointRepo: checkpointRepo,
		logger:         slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	// Close repositories
	if err := db.ownerRepo.Close(); err != nil {
		db.logger.Error("error closing owner repository", "err", err)
		return err
	}
	if err := db.mappingRepo.Close(); err != nil {
		db.logger.Error("error closing mapping repository", "err", err)
		return err
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) MappingRepository() storage.MappingRepository {
	return db.mappingRepo
}

func (db *Database) OwnerRepository() storage.OwnerRepository {
	return db.ownerRepo
}

func (db *Database) CheckpointRepository() storage.CheckpointRepository {
	return db.checkpointRepo
}

func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.mappingRepo, opts...)
}

func (db *Database) NewImportPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(db.mappingRepo, db.checkpointRepo, opts...)
}

// MappingsPage returns one page of the administrative listing, newest
// first. The page number is clamped to [1, ceil(total/StatusPageSize)];
// page 1 is returned for an empty store.
func (db *Database) MappingsPage(ctx context.Context, page int) ([]*core.MappingRecord, int, int, error) {
	total, err := db.mappingRepo.CountMappings(ctx)
	if err != nil {
		return nil, 0, 0, err
	}
	if total == 0 {
		return nil, 1, 0, nil
	}

	maxPage := max(1, (total+StatusPageSize-1)/StatusPageSize)
	page = min(max(1, page), maxPage)
	offset := (page - 1) * StatusPageSize

	records, err := db.mappingRepo.ListMappingsPage(ctx, StatusPageSize, offset)
	if err != nil {
		return nil, 0, 0, err
	}
	return records, page, total, nil
}
