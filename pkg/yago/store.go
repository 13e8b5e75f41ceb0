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

// ClassDict is the label-to-nodes store: exact-match lookup of a
// (possibly multi-word) label against the class dictionary, keyed
// case-lowered.
type ClassDict interface {
	// Get returns the NodeSet recorded under label, and whether the
	// label was present at all. A missing label is not an error.
	Get(label string) (NodeSet, bool)
}

// ClassSearch is the word-to-nodes store: per-lemma lookup of node lists,
// intersected across all of the given lemmas.
type ClassSearch interface {
	// Search intersects the node lists found for each of lemmas. It
	// returns false if any lemma is missing or the intersection is
	// empty.
	Search(lemmas []string) (NodeSet, bool)
}

// Taxonomy is the child-to-parent(s) store. Storage holds possibly many
// parents per node; Parent returns only the first listed, deterministic on
// storage order (spec open question, reproduced as specified — see
// DESIGN.md).
type Taxonomy interface {
	// Parent returns n's first recorded parent, and whether n has one.
	Parent(n Node) (Node, bool)
}

// Types is the instance-to-types store: the classes directly above an
// instance.
type Types interface {
	// TypesOf returns the classes directly above instance. A miss
	// yields a nil slice, never an error.
	TypesOf(instance Node) []Node
}

// KnowledgeStore is the read-only facade over the four sub-stores. The
// core opens one at process start, holds it for the run, and releases it
// at the end; NodeSets it hands out are transient values, not tied to the
// store's lifetime.
type KnowledgeStore struct {
	ClassDict   ClassDict
	ClassSearch ClassSearch
	Taxonomy    Taxonomy
	Types       Types
}
