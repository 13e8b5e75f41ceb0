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
	"path/filepath"
	"testing"
)

func TestPatternIndexPutGetBucketPendingCache(t *testing.T) {
	pi, err := NewPatternIndex(filepath.Join(t.TempDir(), "patterns"), DefaultDelimiters(), 64)
	if err != nil {
		t.Fatalf("NewPatternIndex() error = %v", err)
	}
	defer pi.Close()

	pi.Put("subj_verb\xfe_NN\xfe_VB", "T1", "subj_verb\xf5dog\xfeNN\xf5bark\xfeVB\xf53")
	pi.Put("subj_verb\xfe_NN\xfe_VB", "T2", "subj_verb\xf5cat\xfeNN\xf5bark\xfeVB\xf55")

	bucket, ok, err := pi.GetBucket("subj_verb\xfe_NN\xfe_VB")
	if err != nil {
		t.Fatalf("GetBucket() error = %v", err)
	}
	if !ok {
		t.Fatal("GetBucket() ok = false, want true")
	}
	if len(bucket) != 2 || bucket["T1"] == "" || bucket["T2"] == "" {
		t.Errorf("GetBucket() = %v, want entries for T1 and T2", bucket)
	}
}

func TestPatternIndexMissingPattern(t *testing.T) {
	pi, err := NewPatternIndex(filepath.Join(t.TempDir(), "patterns"), DefaultDelimiters(), 64)
	if err != nil {
		t.Fatalf("NewPatternIndex() error = %v", err)
	}
	defer pi.Close()

	_, ok, err := pi.GetBucket("no_such_pattern")
	if err != nil {
		t.Fatalf("GetBucket() error = %v", err)
	}
	if ok {
		t.Error("GetBucket() ok = true for a pattern never Put, want false")
	}
}

// TestPatternIndexEvictionFlushesAndPersists covers a single-slot cache:
// Put-ing a second pattern evicts the first, which must then survive a
// Close/reopen cycle.
func TestPatternIndexEvictionFlushesAndPersists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "patterns")
	pi, err := NewPatternIndex(dir, DefaultDelimiters(), 1)
	if err != nil {
		t.Fatalf("NewPatternIndex() error = %v", err)
	}

	pi.Put("pattern_a", "T1", "line-a")
	pi.Put("pattern_b", "T2", "line-b")

	if err := pi.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewPatternIndex(dir, DefaultDelimiters(), 1)
	if err != nil {
		t.Fatalf("reopen NewPatternIndex() error = %v", err)
	}
	defer reopened.Close()

	bucket, ok, err := reopened.GetBucket("pattern_a")
	if err != nil {
		t.Fatalf("GetBucket(pattern_a) error = %v", err)
	}
	if !ok || bucket["T1"] != "line-a" {
		t.Errorf("GetBucket(pattern_a) = %v, %v, want {T1: line-a}, true", bucket, ok)
	}

	bucket, ok, err = reopened.GetBucket("pattern_b")
	if err != nil {
		t.Fatalf("GetBucket(pattern_b) error = %v", err)
	}
	if !ok || bucket["T2"] != "line-b" {
		t.Errorf("GetBucket(pattern_b) = %v, %v, want {T2: line-b}, true", bucket, ok)
	}
}

func TestPatternIndexAppendsAcrossFlushes(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "patterns")
	pi, err := NewPatternIndex(dir, DefaultDelimiters(), 64)
	if err != nil {
		t.Fatalf("NewPatternIndex() error = %v", err)
	}

	pi.Put("pattern_a", "T1", "line-a")
	if err := pi.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	pi.Put("pattern_a", "T2", "line-b")
	if err := pi.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewPatternIndex(dir, DefaultDelimiters(), 64)
	if err != nil {
		t.Fatalf("reopen NewPatternIndex() error = %v", err)
	}
	defer reopened.Close()

	bucket, ok, err := reopened.GetBucket("pattern_a")
	if err != nil {
		t.Fatalf("GetBucket() error = %v", err)
	}
	if !ok || len(bucket) != 2 || bucket["T1"] != "line-a" || bucket["T2"] != "line-b" {
		t.Errorf("GetBucket() = %v, %v, want both T1 and T2 records accumulated across flushes", bucket, ok)
	}
}
