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


package search

import "github.com/re-minder/lobsterMoneyBot/core"

// SearchMonitor receives callbacks during a search pass. Useful for
// instrumentation and debugging; implementations must not mutate the
// records they observe.
type SearchMonitor interface {
	// Start is called once with the raw query before any scanning.
	Start(query string)

	// AfterScan is called with the number of candidate records loaded.
	AfterScan(total int)

	// Scored is called for every candidate that matched with a
	// positive score, before ranking.
	Scored(record *core.MappingRecord, score int)

	// Finish is called with the ranked, truncated result set.
	Finish(results []*core.SearchResult)
}

type noopMonitor struct{}

func (noopMonitor) Start(string)                    {}
func (noopMonitor) AfterScan(int)                   {}
func (noopMonitor) Scored(*core.MappingRecord, int) {}
func (noopMonitor) Finish([]*core.SearchResult)     {}
