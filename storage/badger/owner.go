package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/re-minder/lobsterMoneyBot/core"
	"github.com/re-minder/lobsterMoneyBot/storage"
)

// OwnerRepository implements storage.OwnerRepository for BadgerDB.
type OwnerRepository struct {
	backend *Backend
}

var _ storage.OwnerRepository = (*OwnerRepository)(nil)

// NewOwnerRepository creates a new OwnerRepository.
func NewOwnerRepository(backend *Backend) (*OwnerRepository, error) {
	return &OwnerRepository{
		backend: backend,
	}, nil
}

// Close releases resources. OwnerRepository has no resources to release.
func (r *OwnerRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *OwnerRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddOwner inserts an owner identity if absent. Re-adding an existing
// owner preserves the original record.
func (r *OwnerRepository) AddOwner(ctx context.Context, userID int64, label string) error {
	owner := &core.OwnerIdentity{UserID: userID, Label: label}
	if err := core.ValidateOwnerIdentity(owner); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeOwnerKey(userID)

		// Insert-if-absent
		if _, err := tx.Get(key); err == nil {
			return nil
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		owner.AddedAt = time.Now().UTC()
		if err := tx.Set(key, storage.MarshalOwnerIdentity(owner)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// SeedOwners inserts each user ID if absent, with an empty label.
func (r *OwnerRepository) SeedOwners(ctx context.Context, userIDs []int64) error {
	if len(userIDs) == 0 {
		return nil
	}

	for _, userID := range userIDs {
		if err := core.ValidateOwnerIdentity(&core.OwnerIdentity{UserID: userID}); err != nil {
			return err
		}
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC()
		for _, userID := range userIDs {
			key := makeOwnerKey(userID)

			if _, err := tx.Get(key); err == nil {
				continue
			} else if err != badger.ErrKeyNotFound {
				return err
			}

			owner := &core.OwnerIdentity{UserID: userID, AddedAt: now}
			if err := tx.Set(key, storage.MarshalOwnerIdentity(owner)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// IsOwner reports whether the user is in the owner set.
func (r *OwnerRepository) IsOwner(ctx context.Context, userID int64) (bool, error) {
	found := false
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeOwnerKey(userID))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	}, false)
	return found, err
}

// ListOwners returns all owner identities, order unspecified.
func (r *OwnerRepository) ListOwners(ctx context.Context) ([]*core.OwnerIdentity, error) {
	var results []*core.OwnerIdentity
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(ownerRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var owner *core.OwnerIdentity
			err := iter.Item().Value(func(val []byte) error {
				var err error
				owner, err = storage.UnmarshalOwnerIdentity(val)
				return err
			})
			if err != nil {
				return err
			}
			if owner != nil {
				results = append(results, owner)
			}
		}
		return nil
	}, false)

	return results, err
}
