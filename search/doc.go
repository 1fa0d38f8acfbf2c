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


// Package search provides phrase matching and ranking over stored mappings.
//
// Matching is tiered: an exact match outranks a prefix match, which
// outranks a substring match, which outranks a character-subsequence
// match. Ties within a tier are broken by creation time (most recent
// first) and then by record ID, so the ordering is total and
// reproducible.
//
// Scoring and ranking are pure functions over in-memory candidates; the
// Searcher type adds the storage scan in front of them.
package search
