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
	"github.com/mpvl/unique"
)

// NodeSet is the value type the disambiguator passes around: the ordered
// list of lemmas that produced it, and the duplicate-free, sorted set of
// candidate nodes found for them.
type NodeSet struct {
	Lemmas []string
	Nodes  []Node
}

// nodeSlice adapts []Node to sort.Interface for unique.Sort.
type nodeSlice []Node

func (s nodeSlice) Len() int           { return len(s) }
func (s nodeSlice) Less(i, j int) bool { return s[i] < s[j] }
func (s nodeSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// NewNodeSet builds a NodeSet from lemmas and a raw node list, sorting and
// deduplicating the nodes and filtering OwlThing. This is the single choke
// point where raw store results become a NodeSet; callers never re-filter
// downstream.
func NewNodeSet(lemmas []string, nodes []Node) NodeSet {
	filtered := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n != OwlThing {
			filtered = append(filtered, n)
		}
	}
	n := unique.Sort(nodeSlice(filtered))
	return NodeSet{Lemmas: lemmas, Nodes: filtered[:n]}
}

// Size returns the number of candidate nodes.
func (ns NodeSet) Size() int {
	return len(ns.Nodes)
}

// Classes returns the class nodes in ns.
func (ns NodeSet) Classes() []Node {
	var out []Node
	for _, n := range ns.Nodes {
		if IsClass(n) {
			out = append(out, n)
		}
	}
	return out
}

// Instances returns the instance nodes in ns.
func (ns NodeSet) Instances() []Node {
	var out []Node
	for _, n := range ns.Nodes {
		if IsInstance(n) {
			out = append(out, n)
		}
	}
	return out
}

// ClassCount returns the number of class nodes in ns.
func (ns NodeSet) ClassCount() int {
	return len(ns.Classes())
}

// InstanceCount returns the number of instance nodes in ns.
func (ns NodeSet) InstanceCount() int {
	return len(ns.Instances())
}

// IsEmptyForScoring reports whether ns carries no usable information: no
// nodes at all, or only instances whose type lists are all empty in types.
func (ns NodeSet) IsEmptyForScoring(types Types) bool {
	if len(ns.Nodes) == 0 {
		return true
	}
	if ns.ClassCount() > 0 {
		return false
	}
	for _, inst := range ns.Instances() {
		if len(types.TypesOf(inst)) > 0 {
			return false
		}
	}
	return true
}

// Generalize walks up from ns's instances toward classes, as described in
// §4.1.3: seed with each instance's direct types, then climb parents via
// taxonomy until levels class-levels have been crossed or the frontier
// empties. If levels==1 and no class is found in the seed, levels is
// bumped to 2. The returned NodeSet's Nodes are restricted to the class
// nodes accumulated along the way; Lemmas is carried over from ns.
func (ns NodeSet) Generalize(types Types, taxonomy Taxonomy, levels int) NodeSet {
	frontier := make(map[Node]bool)
	for _, inst := range ns.Instances() {
		for _, t := range types.TypesOf(inst) {
			frontier[t] = true
		}
	}

	if levels == 1 {
		hasClass := false
		for n := range frontier {
			if IsClass(n) {
				hasClass = true
				break
			}
		}
		if !hasClass {
			levels = 2
		}
	}

	accumulated := make(map[Node]bool)
	for n := range frontier {
		accumulated[n] = true
	}

	for level := 1; level < levels && len(frontier) > 0; level++ {
		next := make(map[Node]bool)
		for n := range frontier {
			p, ok := taxonomy.Parent(n)
			if !ok {
				continue
			}
			if !accumulated[p] {
				next[p] = true
			}
		}
		for n := range next {
			accumulated[n] = true
		}
		frontier = next
	}

	var classes []Node
	for n := range accumulated {
		if IsClass(n) {
			classes = append(classes, n)
		}
	}
	return NewNodeSet(ns.Lemmas, classes)
}
