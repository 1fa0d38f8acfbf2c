package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/re-minder/lobsterMoneyBot/core"
	"github.com/re-minder/lobsterMoneyBot/storage"
)

// MappingRepository implements storage.MappingRepository for BadgerDB.
type MappingRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.MappingRepository = (*MappingRepository)(nil)

// NewMappingRepository creates a new MappingRepository.
func NewMappingRepository(backend *Backend) (*MappingRepository, error) {
	idSeq, err := backend.GetSequence(mappingRecordIDSeq)
	if err != nil {
		return nil, err
	}

	return &MappingRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *MappingRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *MappingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddMappings adds one or more mapping records to storage.
func (r *MappingRepository) AddMappings(ctx context.Context, records ...*core.MappingRecord) ([]*core.MappingRecord, error) {
	for _, record := range records {
		if err := core.ValidateMappingRecord(record); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			// Always generate a new ID from the sequence
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			record.Id = core.ID(nextID)

			if record.CreatedAt.IsZero() {
				record.CreatedAt = time.Now().UTC()
			}

			// Store primary record
			key := makeMappingKey(record.Id)
			value := storage.MarshalMappingRecord(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update created-at index
			dateKey := makeMappingDateKey(record.CreatedAt, record.Id)
			if err := tx.Set(dateKey, storage.MarshalID(record.Id)); err != nil {
				return err
			}

			// Update fingerprint index, first stored record wins
			fpKey := makeFingerprintKey(record.Fingerprint())
			if _, err := tx.Get(fpKey); err == badger.ErrKeyNotFound {
				if err := tx.Set(fpKey, storage.MarshalID(record.Id)); err != nil {
					return err
				}
			} else if err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// GetMapping retrieves a single mapping record by ID.
func (r *MappingRepository) GetMapping(ctx context.Context, id core.ID) (*core.MappingRecord, error) {
	var result *core.MappingRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeMappingKey(id)
		var err error
		result, err = readMappingRecord(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetMappings retrieves multiple mapping records by their IDs.
func (r *MappingRepository) GetMappings(ctx context.Context, ids ...core.ID) ([]*core.MappingRecord, error) {
	var result []*core.MappingRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeMappingKey(id)
			record, err := readMappingRecord(tx, key)
			if err != nil {
				return err
			}
			if record != nil {
				result = append(result, record)
			}
		}
		return nil
	}, false)
	return result, err
}

// AllMappings returns every committed mapping record, order unspecified.
// The whole scan runs inside one read-only transaction, so it sees a
// consistent snapshot of already-committed records.
func (r *MappingRepository) AllMappings(ctx context.Context) ([]*core.MappingRecord, error) {
	var results []*core.MappingRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(mappingRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.MappingRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalMappingRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)

	return results, err
}

// CountMappings returns the total number of mapping records.
func (r *MappingRepository) CountMappings(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(mappingRecordPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// ListMappingsPage returns up to limit records starting at offset, ordered
// by CreatedAt descending with ID descending as the tie-break. Uses
// reverse iteration over the created-at index.
func (r *MappingRepository) ListMappingsPage(ctx context.Context, limit, offset int) ([]*core.MappingRecord, error) {
	if limit < 0 || offset < 0 {
		return nil, storage.ErrInvalidQuery
	}
	if limit == 0 {
		return nil, nil
	}

	var results []*core.MappingRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible key in the created-at index
		startKey := makePartialMappingDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))

		prefix := []byte(mappingRecordDatePrefix + ":")

		skipped := 0
		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()

			// Check if we're still in the created-at index
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			if skipped < offset {
				skipped++
				continue
			}

			// Read the ID from the index
			var recordID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				recordID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full record
			recordKey := makeMappingKey(recordID)
			record, err := readMappingRecord(tx, recordKey)
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// FindByFingerprint returns the ID of the first stored record with the
// given content fingerprint.
func (r *MappingRepository) FindByFingerprint(ctx context.Context, fp core.Fingerprint) (core.ID, error) {
	var id core.ID
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeFingerprintKey(fp))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			id, unmarshalErr = storage.UnmarshalID(val)
			return unmarshalErr
		})
	}, false)
	return id, err
}

// readMappingRecord reads a mapping record from the transaction.
func readMappingRecord(tx *badger.Txn, key []byte) (*core.MappingRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.MappingRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalMappingRecord(val)
		return unmarshalErr
	})
	return record, err
}
