package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for mapping records.
// It is assigned monotonically from a database sequence.
type ID uint64

// Fingerprint identifies the content of a mapping independent of its ID.
// Two mappings with the same phrase, media reference, and owner share a
// fingerprint.
type Fingerprint uint64

// FingerprintFromContent computes a deterministic fingerprint from text
// content using BLAKE2b hashing. Identical content always produces the
// same fingerprint.
func FingerprintFromContent(text string) Fingerprint {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return Fingerprint(binary.LittleEndian.Uint64(sum))
}

// MappingRecord associates a user-supplied phrase with an opaque media
// reference. Records are append-only: once created they are never updated
// in place, and deletion is not part of the storage contract.
type MappingRecord struct {
	Id         ID
	Phrase     string
	MediaRef   string // opaque handle to the video, never interpreted
	OwnerID    int64  // 0 when the record was added administratively
	OwnerLabel string
	CreatedAt  time.Time // set by the store on insert
}

// Fingerprint returns the content fingerprint of the record, computed over
// "phrase|mediaRef|ownerID". The bulk importer uses it to skip rows that
// were already imported.
func (m *MappingRecord) Fingerprint() Fingerprint {
	return FingerprintFromContent(m.Phrase + "|" + m.MediaRef + "|" + strconv.FormatInt(m.OwnerID, 10))
}

// OwnerIdentity is a user authorized to register new mappings.
// The owner set is keyed by UserID; membership is the only property the
// rest of the system depends on.
type OwnerIdentity struct {
	UserID  int64
	Label   string
	AddedAt time.Time
}

// SearchResult pairs a mapping record with its match score.
type SearchResult struct {
	Record *MappingRecord
	Score  int
}

// ImportCheckpoint records how far a bulk import of a given source has
// progressed, so an interrupted import can resume.
type ImportCheckpoint struct {
	Source    string
	Position  int
	UpdatedAt time.Time
}
