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


package core

import (
	"fmt"
	"strings"
	"time"
)

// ValidateMappingRecord validates a MappingRecord according to domain rules.
//
// Validation rules:
//   - Phrase must not be empty or whitespace-only
//   - MediaRef must not be empty
//   - CreatedAt must not be in the future
//
// NOT validated (populated by the store):
//   - ID (0 is valid before insert; the store assigns one from a sequence)
//   - OwnerID (0 is valid for administrative inserts)
func ValidateMappingRecord(record *MappingRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidMapping)
	}

	if strings.TrimSpace(record.Phrase) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMapping, ErrEmptyPhrase)
	}

	if record.MediaRef == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMapping, ErrEmptyMediaRef)
	}

	if !record.CreatedAt.IsZero() && !IsValidTimestamp(record.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidMapping, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateOwnerIdentity validates an OwnerIdentity according to domain rules.
//
// Validation rules:
//   - UserID must be positive
//
// Label is presentation-only and may be empty.
func ValidateOwnerIdentity(owner *OwnerIdentity) error {
	if owner == nil {
		return fmt.Errorf("%w: owner is nil", ErrInvalidOwner)
	}

	if owner.UserID <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidOwner, ErrInvalidUserID)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
