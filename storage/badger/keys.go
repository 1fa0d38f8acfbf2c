package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/re-minder/lobsterMoneyBot/core"
)

// Key prefixes for different data types
const (
	mappingRecordPrefix      = "maprec"
	mappingRecordDatePrefix  = "maprecd"
	mappingFingerprintPrefix = "maprecfp"
	mappingRecordIDSeq       = "maprecseq"
	ownerRecordPrefix        = "ownrec"
)

// makeMappingKey generates a key for a mapping record by ID.
func makeMappingKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", mappingRecordPrefix, id))
}

// makeMappingDateKey generates a composite key for the created-at index.
// Format: prefix:timestamp:id
func makeMappingDateKey(createdAt time.Time, id core.ID) []byte {
	prefix := mappingRecordDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialMappingDateKey generates a partial key for created-at range scans.
// Format: prefix:timestamp
func makePartialMappingDateKey(createdAt time.Time) []byte {
	prefix := mappingRecordDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	return buf
}

// makeFingerprintKey generates a key for the content fingerprint index.
func makeFingerprintKey(fp core.Fingerprint) []byte {
	prefix := mappingFingerprintPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(fp))
	return buf
}

// makeOwnerKey generates a key for an owner identity by user ID.
func makeOwnerKey(userID int64) []byte {
	return []byte(fmt.Sprintf("%s:%d", ownerRecordPrefix, userID))
}

// makeCheckpointKey generates a key for import checkpoints.
func makeCheckpointKey(source string) []byte {
	return []byte(fmt.Sprintf("impchkpt:%s", source))
}
