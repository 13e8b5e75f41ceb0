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
	"math/rand"
	"sort"
	"strings"

	"github.com/mpvl/unique"
)

// BucketTriple is one triple of a pattern bucket, reduced to what
// OverlapFinder needs: its id and, per NN slot, the candidate node ids
// attached to that slot. All triples passed to FindOverlaps together
// must share a pattern and therefore the same number of NN slots.
type BucketTriple struct {
	ID    string
	Slots [][]Node
}

// OverlapFinder enumerates, within one pattern bucket, the sets of
// triple-ids that simultaneously overlap in every NN slot (spec.md §4.2).
type OverlapFinder struct {
	Options Options
}

// NewOverlapFinder builds an OverlapFinder using opts.
func NewOverlapFinder(opts Options) *OverlapFinder {
	return &OverlapFinder{Options: opts}
}

// FindOverlaps returns the sorted set of triple-id tuples that overlap at
// every NN slot of triples. Idempotent: repeated calls on the same bucket
// return the same result (spec.md §8 invariant 8) because sampling uses a
// fixed seed rather than a time-varying source.
func (f *OverlapFinder) FindOverlaps(triples []BucketTriple) [][]string {
	if len(triples) == 0 {
		return nil
	}
	nSlots := len(triples[0].Slots)
	if nSlots == 0 {
		return nil
	}

	perSlot := make([]map[string]bool, nSlots)
	for slot := 0; slot < nSlots; slot++ {
		perSlot[slot] = f.overlapsAtSlot(triples, slot)
	}

	result := perSlot[0]
	for _, s := range perSlot[1:] {
		for k := range result {
			if !s[k] {
				delete(result, k)
			}
		}
	}

	out := make([][]string, 0, len(result))
	for k := range result {
		out = append(out, strings.Split(k, "\x00"))
	}
	sort.Slice(out, func(i, j int) bool { return strings.Join(out[i], ",") < strings.Join(out[j], ",") })
	return out
}

// overlapsAtSlot implements the per-NN-slot algorithm: build the
// triple→nodes and node→triples indexes, enumerate candidate overlaps
// (restricted to MaxComb-sized, down-to-pairs combinations of triples,
// size-gated at MaxSets), and for each non-empty node-set intersection
// resolve back to the triple-ids that share it.
func (f *OverlapFinder) overlapsAtSlot(triples []BucketTriple, slot int) map[string]bool {
	tripleNodes := map[string][]Node{}
	nodeTriples := map[Node][]string{}
	var ids []string

	for _, t := range triples {
		if slot >= len(t.Slots) || len(t.Slots[slot]) == 0 {
			continue
		}
		nodes := t.Slots[slot]
		tripleNodes[t.ID] = nodes
		ids = append(ids, t.ID)
		for _, n := range nodes {
			nodeTriples[n] = append(nodeTriples[n], t.ID)
		}
	}
	sort.Strings(ids)

	result := map[string]bool{}
	seenNodeSets := map[string]bool{}

	for _, combo := range f.candidateCombos(ids) {
		inter := intersectNodeLists(combo, tripleNodes)
		if len(inter) == 0 {
			continue
		}
		key := nodeSetKey(inter)
		if seenNodeSets[key] {
			continue
		}
		seenNodeSets[key] = true

		var tids []string
		for i, n := range inter {
			ts := nodeTriples[n]
			if i == 0 {
				tids = append([]string{}, ts...)
			} else {
				tids = intersectStrings(tids, ts)
			}
		}
		if len(tids) < 2 {
			continue
		}
		sort.Strings(tids)
		result[strings.Join(tids, "\x00")] = true
	}
	return result
}

// candidateCombos enumerates combinations of triple ids at sizes from
// min(len(ids), MaxComb) down to 2 (spec.md §4.2, §9: MaxComb reproduced
// as 2 so this is, by default, just pairs). When len(ids) exceeds
// MaxSets, falls back to Passes random samples of MaxSets ids each,
// unioning the sampled combinations — seeded deterministically so the
// result is idempotent.
func (f *OverlapFinder) candidateCombos(ids []string) [][]string {
	n := len(ids)
	if n < 2 {
		return nil
	}
	top := f.Options.MaxComb
	if top > n {
		top = n
	}
	if top < 2 {
		return nil
	}

	if n <= f.Options.MaxSets {
		var out [][]string
		for size := top; size >= 2; size-- {
			out = append(out, combinations(ids, size)...)
		}
		return out
	}

	rng := rand.New(rand.NewSource(1))
	seen := map[string]bool{}
	var out [][]string
	sampleSize := f.Options.MaxSets
	if sampleSize > n {
		sampleSize = n
	}
	for pass := 0; pass < f.Options.Passes; pass++ {
		perm := rng.Perm(n)[:sampleSize]
		sample := make([]string, sampleSize)
		for i, idx := range perm {
			sample[i] = ids[idx]
		}
		sort.Strings(sample)
		for size := top; size >= 2; size-- {
			for _, combo := range combinations(sample, size) {
				key := strings.Join(combo, "\x00")
				if !seen[key] {
					seen[key] = true
					out = append(out, combo)
				}
			}
		}
	}
	return out
}

// intersectNodeLists intersects the node sets attached to each triple id
// in combo.
func intersectNodeLists(combo []string, tripleNodes map[string][]Node) []Node {
	if len(combo) == 0 {
		return nil
	}
	inter := append([]Node{}, tripleNodes[combo[0]]...)
	for _, id := range combo[1:] {
		set := nodeSet(tripleNodes[id])
		filtered := inter[:0]
		for _, n := range inter {
			if set[n] {
				filtered = append(filtered, n)
			}
		}
		inter = filtered
	}
	n := unique.Sort(nodeSlice(inter))
	return inter[:n]
}

func nodeSetKey(nodes []Node) string {
	strs := make([]string, len(nodes))
	for i, n := range nodes {
		strs[i] = string(n)
	}
	return strings.Join(strs, "\x00")
}

func intersectStrings(a, b []string) []string {
	set := make(map[string]bool, len(b))
	for _, s := range b {
		set[s] = true
	}
	var out []string
	for _, s := range a {
		if set[s] {
			out = append(out, s)
		}
	}
	return out
}
