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
	"reflect"
	"testing"
)

// TestFindOverlapsScenarioS6 reproduces spec.md's S6: two triples sharing
// node A (plus a distinct B/C each) at their single NN slot overlap on
// {A}, yielding the pair (T1, T2).
func TestFindOverlapsScenarioS6(t *testing.T) {
	f := NewOverlapFinder(DefaultOptions())
	triples := []BucketTriple{
		{ID: "T1", Slots: [][]Node{{"A", "B"}}},
		{ID: "T2", Slots: [][]Node{{"A", "C"}}},
	}

	got := f.FindOverlaps(triples)
	want := [][]string{{"T1", "T2"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindOverlaps() = %v, want %v", got, want)
	}
}

func TestFindOverlapsNoSharedNode(t *testing.T) {
	f := NewOverlapFinder(DefaultOptions())
	triples := []BucketTriple{
		{ID: "T1", Slots: [][]Node{{"A"}}},
		{ID: "T2", Slots: [][]Node{{"B"}}},
	}
	if got := f.FindOverlaps(triples); len(got) != 0 {
		t.Errorf("FindOverlaps() = %v, want empty", got)
	}
}

// TestFindOverlapsRequiresEveryNNSlot checks that a triple pair sharing a
// node at one NN slot but not another is not reported as overlapping.
func TestFindOverlapsRequiresEveryNNSlot(t *testing.T) {
	f := NewOverlapFinder(DefaultOptions())
	triples := []BucketTriple{
		{ID: "T1", Slots: [][]Node{{"A"}, {"X"}}},
		{ID: "T2", Slots: [][]Node{{"A"}, {"Y"}}},
	}
	if got := f.FindOverlaps(triples); len(got) != 0 {
		t.Errorf("FindOverlaps() = %v, want empty (slot 1 has no overlap)", got)
	}
}

// TestFindOverlapsIdempotent covers invariant 8: repeated calls on the
// same bucket return the same result, even once the size gate forces the
// random-sampling fallback.
func TestFindOverlapsIdempotent(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxSets = 2
	f := NewOverlapFinder(opts)

	var triples []BucketTriple
	for i := 0; i < 5; i++ {
		id := string(rune('A' + i))
		triples = append(triples, BucketTriple{ID: id, Slots: [][]Node{{"shared"}}})
	}

	first := f.FindOverlaps(triples)
	second := f.FindOverlaps(triples)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("FindOverlaps() not idempotent: %v != %v", first, second)
	}
}
