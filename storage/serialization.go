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


package storage

import (
	"github.com/re-minder/lobsterMoneyBot/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalMappingRecord serializes a MappingRecord to bytes.
func MarshalMappingRecord(record *core.MappingRecord) []byte {
	buf := make([]byte, core.MappingRecordMUS.Size(*record))
	core.MappingRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalMappingRecord deserializes a MappingRecord from bytes.
func UnmarshalMappingRecord(data []byte) (*core.MappingRecord, error) {
	record, _, err := core.MappingRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalOwnerIdentity serializes an OwnerIdentity to bytes.
func MarshalOwnerIdentity(owner *core.OwnerIdentity) []byte {
	buf := make([]byte, core.OwnerIdentityMUS.Size(*owner))
	core.OwnerIdentityMUS.Marshal(*owner, buf)
	return buf
}

// UnmarshalOwnerIdentity deserializes an OwnerIdentity from bytes.
func UnmarshalOwnerIdentity(data []byte) (*core.OwnerIdentity, error) {
	owner, _, err := core.OwnerIdentityMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

// MarshalImportCheckpoint serializes an ImportCheckpoint to bytes.
func MarshalImportCheckpoint(checkpoint *core.ImportCheckpoint) []byte {
	buf := make([]byte, core.ImportCheckpointMUS.Size(*checkpoint))
	core.ImportCheckpointMUS.Marshal(*checkpoint, buf)
	return buf
}

// UnmarshalImportCheckpoint deserializes an ImportCheckpoint from bytes.
func UnmarshalImportCheckpoint(data []byte) (*core.ImportCheckpoint, error) {
	checkpoint, _, err := core.ImportCheckpointMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &checkpoint, nil
}
