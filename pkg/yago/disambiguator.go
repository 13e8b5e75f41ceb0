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
)

// classScoreAward is the fixed bonus a class-derived weight gets over a
// plain 1/|classes| share, in §4.1.4's binning step.
const classScoreAward = 0.1

// MinClassDisambiguator is the per-mention solver: it turns a bag of NN
// lemmas into a ranked, normalized set of candidate knowledge-graph nodes.
type MinClassDisambiguator struct {
	Store   *KnowledgeStore
	Options Options
}

// NewMinClassDisambiguator builds a solver over store using opts.
func NewMinClassDisambiguator(store *KnowledgeStore, opts Options) *MinClassDisambiguator {
	return &MinClassDisambiguator{Store: store, Options: opts}
}

// Disambiguate is the public operation (spec.md §4.1): given lemmas,
// returns the top-scoring class nodes (ties included), scores summing to
// 1 across the returned set, or nil.
func (d *MinClassDisambiguator) Disambiguate(lemmas []string) []ScoredNode {
	if len(lemmas) == 0 {
		return nil
	}

	found := d.collectCandidates(lemmas)

	if len(found) == 1 && len(found[0].Lemmas) == 1 && d.Options.Names[found[0].Lemmas[0]] {
		return []ScoredNode{{Node: PersonNode, Score: 1.0}}
	}
	if len(found) == 0 {
		for _, l := range lemmas {
			if d.Options.Names[l] {
				return []ScoredNode{{Node: PersonNode, Score: 1.0}}
			}
		}
		return nil
	}

	return d.binAndScore(found)
}

// collectCandidates implements §4.1.1: enumerate combination sizes from
// len(lemmas) down to 1, trying each combination against the stores and
// removing consumed lemmas from the active set.
func (d *MinClassDisambiguator) collectCandidates(lemmas []string) []NodeSet {
	active := make(map[string]bool, len(lemmas))
	for _, l := range lemmas {
		active[l] = true
	}

	var found []NodeSet
	for size := len(lemmas); size >= 1; size-- {
		activeSlice := activeLemmaSlice(active)
		if size > len(activeSlice) {
			continue
		}
		for _, combo := range combinations(activeSlice, size) {
			ns, ok := d.candidateForCombo(combo)
			if !ok || ns.IsEmptyForScoring(d.Store.Types) {
				continue
			}
			found = append(found, ns)
			for _, l := range combo {
				delete(active, l)
			}
		}
	}
	return found
}

// candidateForCombo tries the stores for one lemma combination, per
// §4.1.1 steps 2 and §4.1.2 for the single-lemma LCA fallback.
func (d *MinClassDisambiguator) candidateForCombo(combo []string) (NodeSet, bool) {
	if len(combo) > 1 {
		for _, perm := range permutations(combo) {
			if ns, ok := d.Store.ClassDict.Get(strings.Join(perm, " ")); ok && !ns.IsEmptyForScoring(d.Store.Types) {
				return ns, true
			}
		}
		return d.Store.ClassSearch.Search(combo)
	}

	term := combo[0]
	if ns, ok := d.Store.ClassDict.Get(term); ok && !ns.IsEmptyForScoring(d.Store.Types) {
		return ns, true
	}
	if !d.Options.TryLCA {
		return NodeSet{}, false
	}
	ns, ok := d.Store.ClassSearch.Search(combo)
	if !ok {
		return NodeSet{}, false
	}
	return d.applyLCA(ns), true
}

// binAndScore implements §4.1.4: bins the collected NodeSets, lets each
// bin vote for the classes other bins reach by one-level generalization,
// and returns the classes tied at the maximum normalized score.
//
// The maximum-normalized score from the full vote determines set
// membership; the returned scores are then re-normalized to sum to 1
// across just the returned (tied) set, per §4.1's result contract and the
// invariant in spec.md §8.1 — the two ways §4.1.4's formula and §4.1's
// "ties included, summing to 1" framing can disagree are resolved in
// favor of the latter (see DESIGN.md).
func (d *MinClassDisambiguator) binAndScore(found []NodeSet) []ScoredNode {
	type bin struct {
		classes      []Node
		instClasses  []Node
		classSet     map[Node]bool
		instClassSet map[Node]bool
	}

	bins := make([]bin, len(found))
	for i, ns := range found {
		classes := ns.Classes()
		instClasses := ns.Generalize(d.Store.Types, d.Store.Taxonomy, 1).Nodes
		bins[i] = bin{
			classes:      classes,
			instClasses:  instClasses,
			classSet:     nodeSet(classes),
			instClassSet: nodeSet(instClasses),
		}
	}

	total := map[Node]float64{}
	for i, b := range bins {
		allClasses := unionSorted(b.classes, b.instClasses)
		weighted := map[Node]float64{}
		for _, cl := range allClasses {
			if b.classSet[cl] {
				weighted[cl] = 1.0/float64(len(b.classes)) + classScoreAward
			}
			if b.instClassSet[cl] {
				weighted[cl] = 1.0 / float64(len(b.instClasses))
			}
			for j, other := range bins {
				if j != i && other.instClassSet[cl] {
					weighted[cl]++
				}
			}
		}
		for cl, w := range weighted {
			total[cl] += w
		}
	}

	if len(total) == 0 {
		return nil
	}

	var sum float64
	for _, w := range total {
		sum += w
	}
	if sum == 0 {
		return nil
	}

	maxScore := 0.0
	for cl := range total {
		total[cl] /= sum
		if total[cl] > maxScore {
			maxScore = total[cl]
		}
	}

	var selected []Node
	for cl, score := range total {
		if score == maxScore {
			selected = append(selected, cl)
		}
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i] < selected[j] })

	share := 1.0 / float64(len(selected))
	out := make([]ScoredNode, len(selected))
	for i, cl := range selected {
		out[i] = ScoredNode{Node: cl, Score: share}
	}
	return out
}

type dagNode struct {
	children  map[Node]int
	leafCount int
}

// applyLCA implements §4.1.2: if ns already has classes it is returned
// unchanged; otherwise its instances are generalized at Options.Depth
// levels, an upward DAG is built from the resulting classes' transitive
// parent chains, and the "second quintile from the top" by leaf count is
// returned as the representative class set.
func (d *MinClassDisambiguator) applyLCA(ns NodeSet) NodeSet {
	if ns.ClassCount() > 0 {
		return ns
	}

	allClasses := ns.Generalize(d.Store.Types, d.Store.Taxonomy, d.Options.Depth).Nodes
	if len(allClasses) == 0 {
		return NodeSet{Lemmas: ns.Lemmas}
	}

	tree := map[Node]*dagNode{}
	for _, cl := range allClasses {
		tree[cl] = &dagNode{children: map[Node]int{}, leafCount: 1}
	}
	for _, cl := range allClasses {
		child := cl
		for {
			parent, ok := d.Store.Taxonomy.Parent(child)
			if !ok {
				break
			}
			childLeaves := tree[child].leafCount
			pnode, exists := tree[parent]
			if !exists {
				pnode = &dagNode{children: map[Node]int{}, leafCount: 0}
				tree[parent] = pnode
			}
			if prev, had := pnode.children[child]; had {
				pnode.leafCount = pnode.leafCount - prev + childLeaves
			} else {
				pnode.leafCount += childLeaves
			}
			pnode.children[child] = childLeaves
			child = parent
		}
	}

	if len(tree) <= 1 {
		return NodeSet{Lemmas: ns.Lemmas}
	}

	representatives := selectQuintile(tree)
	if representatives == nil {
		return NodeSet{Lemmas: ns.Lemmas}
	}
	return NewNodeSet(ns.Lemmas, representatives)
}

// nodeCount pairs a DAG node with its accumulated leaf count, sorted
// descending by count (ties broken alphabetically) ahead of quintile
// selection.
type nodeCount struct {
	node  Node
	count int
}

// selectQuintile implements the "second quintile from the top" leaf-count
// heuristic: tree's nodes are sorted descending by leaf count and the
// slice from n/5 up to (n/5)*2+1 is returned as the representative set.
// Returns nil if the thresholds collapse to an empty slice.
func selectQuintile(tree map[Node]*dagNode) []Node {
	sorted := make([]nodeCount, 0, len(tree))
	for n, dn := range tree {
		sorted = append(sorted, nodeCount{node: n, count: dn.leafCount})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].node < sorted[j].node
	})

	n := len(sorted)
	bottomThr := n / 5
	if bottomThr == 0 {
		bottomThr = 1
	}
	topThr := (n/5)*2 + 1
	if topThr > n {
		topThr = n
	}
	if bottomThr >= topThr {
		return nil
	}

	representatives := make([]Node, 0, topThr-bottomThr)
	for _, c := range sorted[bottomThr:topThr] {
		representatives = append(representatives, c.node)
	}
	return representatives
}

func activeLemmaSlice(active map[string]bool) []string {
	out := make([]string, 0, len(active))
	for l := range active {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

func nodeSet(nodes []Node) map[Node]bool {
	m := make(map[Node]bool, len(nodes))
	for _, n := range nodes {
		m[n] = true
	}
	return m
}

func unionSorted(a, b []Node) []Node {
	seen := make(map[Node]bool, len(a)+len(b))
	var out []Node
	for _, n := range a {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	for _, n := range b {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
