// Copyright 2015 Google Inc.
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

package yago

import (
	"log/slog"
	"sync/atomic"

	"github.com/dustin/go-humanize"
)

// Stats tracks run-level counts across a stream of triples: read,
// annotated (at least one NN slot got candidates), skipped (malformed or
// rejected at construction), and store misses. Counters are atomic so a
// single Stats can be shared across the errgroup worker pool (§5).
type Stats struct {
	Read        int64
	Annotated   int64
	Skipped     int64
	StoreMisses int64
}

// IncRead records one triple read from the input stream.
func (s *Stats) IncRead() { atomic.AddInt64(&s.Read, 1) }

// IncAnnotated records one triple that received at least one candidate
// node at an NN slot.
func (s *Stats) IncAnnotated() { atomic.AddInt64(&s.Annotated, 1) }

// IncSkipped records one triple skipped for a per-record data error.
func (s *Stats) IncSkipped() { atomic.AddInt64(&s.Skipped, 1) }

// IncStoreMiss records one disambiguation call that found no candidates.
func (s *Stats) IncStoreMiss() { atomic.AddInt64(&s.StoreMisses, 1) }

// LogSummary emits the final run counts as one structured log line.
func (s *Stats) LogSummary(logger *slog.Logger) {
	logger.Info("run summary",
		"read", humanize.Comma(atomic.LoadInt64(&s.Read)),
		"annotated", humanize.Comma(atomic.LoadInt64(&s.Annotated)),
		"skipped", humanize.Comma(atomic.LoadInt64(&s.Skipped)),
		"store_misses", humanize.Comma(atomic.LoadInt64(&s.StoreMisses)),
	)
}
