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
	"sort"
	"strings"

	"github.com/mpvl/unique"
)

// Merger combines the triples named by an overlap group into one (spec.md
// §4.2 Merger).
type Merger struct{}

// Combine copies triples[0] as the accumulator and folds each remaining
// triple into it: for NN argument slots where both sides are present, the
// term sets are unioned and the node sets intersected (ignoring score);
// frequency is summed. Non-NN slots, and slots where either side is
// absent or not NN, are carried over from the accumulator unchanged.
func (Merger) Combine(triples []Triple) Triple {
	if len(triples) == 0 {
		return Triple{}
	}
	acc := copyTriple(triples[0])
	for _, t := range triples[1:] {
		acc = combineTwo(acc, t)
	}
	return acc
}

func copyTriple(t Triple) Triple {
	out := t
	out.Arguments = make([]*Argument, len(t.Arguments))
	for i, a := range t.Arguments {
		if a == nil {
			continue
		}
		cp := *a
		cp.Nodes = append([]ScoredNode{}, a.Nodes...)
		out.Arguments[i] = &cp
	}
	return out
}

func combineTwo(a, b Triple) Triple {
	out := Triple{RelType: a.RelType, Frequency: a.Frequency + b.Frequency}
	out.Arguments = make([]*Argument, len(a.Arguments))
	for i, ai := range a.Arguments {
		var bi *Argument
		if i < len(b.Arguments) {
			bi = b.Arguments[i]
		}
		if ai.IsNN() && bi.IsNN() {
			out.Arguments[i] = &Argument{
				Term:  unionTerms(ai.Term, bi.Term),
				Pos:   ai.Pos,
				Nodes: intersectScored(ai.Nodes, bi.Nodes),
			}
			continue
		}
		out.Arguments[i] = ai
	}
	return out
}

// unionTerms unions the "||"-split term tokens of two argument terms.
func unionTerms(a, b string) string {
	seen := map[string]bool{}
	var out []string
	for _, t := range strings.Split(a, "||") {
		if t != "" && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, t := range strings.Split(b, "||") {
		if t != "" && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return strings.Join(out, "||")
}

// intersectScored intersects two node sets ignoring score, then gives
// every surviving node a score of 1.0 (spec.md §4.2: "scores are
// normalized to 1.0 before intersecting"). An empty
// intersection is allowed and returned as an empty, non-nil slice.
func intersectScored(a, b []ScoredNode) []ScoredNode {
	bSet := make(map[Node]bool, len(b))
	for _, sn := range b {
		bSet[sn.Node] = true
	}
	var nodes []Node
	for _, sn := range a {
		if bSet[sn.Node] {
			nodes = append(nodes, sn.Node)
		}
	}
	n := unique.Sort(nodeSlice(nodes))
	nodes = nodes[:n]

	out := make([]ScoredNode, len(nodes))
	for i, nd := range nodes {
		out[i] = ScoredNode{Node: nd, Score: 1.0}
	}
	return out
}

// MergeWithOriginal deduplicates merged and original triples by
// (rel_type, arg terms) key, keeping whichever copy has the higher
// frequency (spec.md §6: "merge with original"). This is distinct from
// Combine, which merges the triples of a single overlap group.
func MergeWithOriginal(merged, original []Triple) []Triple {
	best := map[string]Triple{}
	var order []string
	add := func(t Triple) {
		key := tripleKey(t)
		if existing, ok := best[key]; !ok || t.Frequency > existing.Frequency {
			if !ok {
				order = append(order, key)
			}
			best[key] = t
		}
	}
	for _, t := range merged {
		add(t)
	}
	for _, t := range original {
		add(t)
	}

	out := make([]Triple, 0, len(order))
	for _, k := range order {
		out = append(out, best[k])
	}
	return out
}

func tripleKey(t Triple) string {
	parts := make([]string, 0, len(t.Arguments)+1)
	parts = append(parts, t.RelType)
	for _, a := range t.Arguments {
		if a == nil {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, a.Term)
	}
	return strings.Join(parts, "\x1f")
}
