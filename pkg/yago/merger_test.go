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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func dogTriple(t *testing.T, nodes []ScoredNode, freq int) Triple {
	t.Helper()
	tr, err := NewTriple("subj_verb", []*Argument{
		{Term: "dog", Pos: "NN", Nodes: nodes},
		{Term: "bark", Pos: "VB"},
	}, freq)
	if err != nil {
		t.Fatalf("NewTriple() error = %v", err)
	}
	return tr
}

// TestMergeScenarioS6 reproduces spec.md's S6: two triples overlapping on
// node A at their single NN slot merge to a triple with just A and the
// summed frequency.
func TestMergeScenarioS6(t *testing.T) {
	t1 := dogTriple(t, []ScoredNode{{Node: "A", Score: 0.5}, {Node: "B", Score: 0.5}}, 3)
	t2 := dogTriple(t, []ScoredNode{{Node: "A", Score: 0.5}, {Node: "C", Score: 0.5}}, 5)

	merged := Merger{}.Combine([]Triple{t1, t2})

	if merged.Frequency != 8 {
		t.Errorf("Frequency = %d, want 8", merged.Frequency)
	}
	if got := merged.Arguments[0].Nodes; len(got) != 1 || got[0].Node != "A" || got[0].Score != 1.0 {
		t.Errorf("Arguments[0].Nodes = %v, want [{A 1.0}]", got)
	}
}

// TestMergeCommutativeAndAssociative covers invariant 6: reordering
// triple-ids inside the overlap group yields the same merged triple
// modulo the set-valued term/node fields (which are already sorted by
// Combine), with frequency summed regardless of order.
func TestMergeCommutativeAndAssociative(t *testing.T) {
	t1 := dogTriple(t, []ScoredNode{{Node: "A", Score: 1}}, 3)
	t2 := dogTriple(t, []ScoredNode{{Node: "A", Score: 1}, {Node: "B", Score: 1}}, 5)
	t3 := dogTriple(t, []ScoredNode{{Node: "A", Score: 1}, {Node: "C", Score: 1}}, 2)

	orderA := Merger{}.Combine([]Triple{t1, t2, t3})
	orderB := Merger{}.Combine([]Triple{t3, t1, t2})
	orderC := Merger{}.Combine([]Triple{t2, t3, t1})

	if diff := cmp.Diff(orderA, orderB); diff != "" {
		t.Errorf("Combine() not order-independent (A vs B):\n%s", diff)
	}
	if diff := cmp.Diff(orderA, orderC); diff != "" {
		t.Errorf("Combine() not order-independent (A vs C):\n%s", diff)
	}
	if orderA.Frequency != 10 {
		t.Errorf("Frequency = %d, want 10", orderA.Frequency)
	}
}

func TestUnionTermsDedupsAndSorts(t *testing.T) {
	got := unionTerms("b||a", "a||c")
	want := "a||b||c"
	if got != want {
		t.Errorf("unionTerms() = %q, want %q", got, want)
	}
}

func TestIntersectScoredNormalizesToOne(t *testing.T) {
	got := intersectScored(
		[]ScoredNode{{Node: "A", Score: 0.9}, {Node: "B", Score: 0.1}},
		[]ScoredNode{{Node: "A", Score: 0.4}, {Node: "C", Score: 0.6}},
	)
	want := []ScoredNode{{Node: "A", Score: 1.0}}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("intersectScored() = %v, want %v", got, want)
	}
}

// TestIntersectScoredMultiNodeEachGetsFullScore covers an intersection
// with more than one surviving node: every node gets 1.0, not 1/k.
func TestIntersectScoredMultiNodeEachGetsFullScore(t *testing.T) {
	got := intersectScored(
		[]ScoredNode{{Node: "A", Score: 0.7}, {Node: "B", Score: 0.3}},
		[]ScoredNode{{Node: "A", Score: 0.2}, {Node: "B", Score: 0.8}},
	)
	want := []ScoredNode{{Node: "A", Score: 1.0}, {Node: "B", Score: 1.0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("intersectScored() mismatch (-want +got):\n%s", diff)
	}
}

func TestIntersectScoredEmptyIntersectionAllowed(t *testing.T) {
	got := intersectScored(
		[]ScoredNode{{Node: "A", Score: 1}},
		[]ScoredNode{{Node: "B", Score: 1}},
	)
	if len(got) != 0 {
		t.Errorf("intersectScored() = %v, want empty", got)
	}
}

func TestMergeWithOriginalKeepsHigherFrequency(t *testing.T) {
	low := dogTriple(t, []ScoredNode{{Node: "A", Score: 1}}, 2)
	high := dogTriple(t, []ScoredNode{{Node: "A", Score: 1}}, 9)

	got := MergeWithOriginal([]Triple{low}, []Triple{high})
	if len(got) != 1 || got[0].Frequency != 9 {
		t.Errorf("MergeWithOriginal() = %v, want a single triple with frequency 9", got)
	}
}
