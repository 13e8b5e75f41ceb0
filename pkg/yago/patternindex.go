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
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"
	"github.com/klauspost/compress/zstd"
	"github.com/syndtr/goleveldb/leveldb"
)

// PatternIndex is the persistent bucket store keyed by pattern string,
// holding compressed lists of (triple_id, original_triple_line) records
// (spec.md §4.2). Writes batch through an in-memory write-behind cache;
// CacheBudget bounds the number of distinct patterns held before a
// pattern is flushed (a pragmatic reading of the budget as "entries" in
// terms an LRU naturally bounds — see DESIGN.md).
type PatternIndex struct {
	db      *leveldb.DB
	delims  Delimiters
	encoder *zstd.Encoder
	decoder *zstd.Decoder

	mu           sync.Mutex
	cache        *simplelru.LRU
	lastFlushErr error
}

type bucketRecord struct {
	id   string
	line string
}

// NewPatternIndex opens (or creates) the bucket store at path.
func NewPatternIndex(path string, delims Delimiters, cacheBudget int) (*PatternIndex, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("yago: opening pattern index at %s: %w", path, err)
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("yago: creating zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("yago: creating zstd decoder: %w", err)
	}

	pi := &PatternIndex{db: db, delims: delims, encoder: enc, decoder: dec}

	if cacheBudget <= 0 {
		cacheBudget = 1
	}
	cache, err := simplelru.NewLRU(cacheBudget, pi.onEvict)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("yago: creating pattern cache: %w", err)
	}
	pi.cache = cache
	return pi, nil
}

// onEvict flushes a pattern's pending records to disk when the cache
// evicts it to make room for a new pattern. simplelru invokes this
// synchronously from within cache.Add/cache.Remove, which every caller
// (Put, GetBucket, Flush) only ever calls while already holding pi.mu, so
// onEvict must use the already-locked flush path rather than re-locking.
func (pi *PatternIndex) onEvict(key, value interface{}) {
	pattern := key.(string)
	records := value.([]bucketRecord)
	// Flush errors surface on the next explicit Flush or Close call via
	// lastFlushErr; eviction itself cannot return an error to its caller.
	if err := pi.flushPatternLocked(pattern, records); err != nil {
		pi.lastFlushErr = err
	}
}

// Put appends (tripleID, line) to pattern's pending bucket.
func (pi *PatternIndex) Put(pattern, tripleID, line string) {
	pi.mu.Lock()
	defer pi.mu.Unlock()
	var pending []bucketRecord
	if v, ok := pi.cache.Get(pattern); ok {
		pending = v.([]bucketRecord)
	}
	pending = append(pending, bucketRecord{id: tripleID, line: line})
	pi.cache.Add(pattern, pending)
}

// GetBucket returns the pattern's triple_id → original-line mapping.
// Missing key signals no such bucket via ok=false, not an error.
func (pi *PatternIndex) GetBucket(pattern string) (map[string]string, bool, error) {
	pi.mu.Lock()
	if _, ok := pi.cache.Get(pattern); ok {
		// Remove triggers onEvict synchronously, which flushes pattern's
		// pending records under this same lock; do not flush it again here.
		pi.cache.Remove(pattern)
	}
	err := pi.lastFlushErr
	pi.lastFlushErr = nil
	pi.mu.Unlock()
	if err != nil {
		return nil, false, err
	}

	val, err := pi.db.Get([]byte(pattern), nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("yago: reading bucket %q: %w", pattern, err)
	}
	decoded, err := pi.decoder.DecodeAll(val, nil)
	if err != nil {
		return nil, false, fmt.Errorf("yago: decompressing bucket %q: %w", pattern, err)
	}
	return parseBucket(string(decoded), pi.delims), true, nil
}

func parseBucket(raw string, delims Delimiters) map[string]string {
	out := map[string]string{}
	if raw == "" {
		return out
	}
	for _, rec := range strings.Split(raw, string([]byte{delims.BucketLine})) {
		parts := strings.SplitN(rec, string([]byte{delims.BucketID}), 2)
		if len(parts) != 2 {
			continue
		}
		out[parts[0]] = parts[1]
	}
	return out
}

// flushPatternLocked reads the existing compressed bucket (if any),
// appends records, recompresses, and writes back in one batch. Caller
// must hold pi.mu.
func (pi *PatternIndex) flushPatternLocked(pattern string, records []bucketRecord) error {
	if len(records) == 0 {
		return nil
	}
	var body strings.Builder
	existing, err := pi.db.Get([]byte(pattern), nil)
	switch err {
	case nil:
		decoded, derr := pi.decoder.DecodeAll(existing, nil)
		if derr != nil {
			return fmt.Errorf("yago: decompressing bucket %q: %w", pattern, derr)
		}
		body.Write(decoded)
	case leveldb.ErrNotFound:
	default:
		return fmt.Errorf("yago: reading bucket %q: %w", pattern, err)
	}

	for _, r := range records {
		if body.Len() > 0 {
			body.WriteByte(pi.delims.BucketLine)
		}
		body.WriteString(r.id)
		body.WriteByte(pi.delims.BucketID)
		body.WriteString(r.line)
	}

	compressed := pi.encoder.EncodeAll([]byte(body.String()), nil)
	batch := new(leveldb.Batch)
	batch.Put([]byte(pattern), compressed)
	if err := pi.db.Write(batch, nil); err != nil {
		return fmt.Errorf("yago: writing bucket %q: %w", pattern, err)
	}
	return nil
}

// Flush drains every pending pattern to disk. Each Remove triggers
// onEvict synchronously under the lock held here, which does the actual
// flush; Flush itself never calls flushPatternLocked directly, or every
// pattern would be written twice.
func (pi *PatternIndex) Flush() error {
	pi.mu.Lock()
	defer pi.mu.Unlock()
	for _, k := range pi.cache.Keys() {
		pi.cache.Remove(k)
	}
	err := pi.lastFlushErr
	pi.lastFlushErr = nil
	return err
}

// Close flushes remaining pending patterns and releases the store.
func (pi *PatternIndex) Close() error {
	if err := pi.Flush(); err != nil {
		pi.db.Close()
		return err
	}
	return pi.db.Close()
}
