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

import "errors"

// Domain validation errors
var (
	// ErrInvalidMapping indicates a MappingRecord failed validation.
	ErrInvalidMapping = errors.New("invalid mapping record")

	// ErrInvalidOwner indicates an OwnerIdentity failed validation.
	ErrInvalidOwner = errors.New("invalid owner identity")

	// ErrEmptyPhrase indicates the Phrase field is empty or whitespace-only.
	ErrEmptyPhrase = errors.New("phrase cannot be empty")

	// ErrEmptyMediaRef indicates the MediaRef field is empty.
	ErrEmptyMediaRef = errors.New("media reference cannot be empty")

	// ErrInvalidUserID indicates a non-positive owner user id.
	ErrInvalidUserID = errors.New("user id must be positive")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")
)
