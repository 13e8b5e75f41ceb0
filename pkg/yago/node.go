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

// Package yago implements the noun-mention disambiguator: a solver that
// maps bags of NN lemmas onto candidate nodes in a YAGO/WordNet/Wikipedia
// knowledge graph, plus the pattern-bucketed merging engine that fuses
// independently disambiguated triples sharing a syntactic pattern.
package yago

import "strings"

// Node is an opaque knowledge-graph node identifier: a WordNet synset, a
// YAGO class, a Wikipedia category, or an instance. Nodes are plain
// strings; kind is derived by prefix inspection rather than carried as a
// tagged field, matching how the upstream stores hand them to us.
type Node string

// NodeKind classifies a Node by its prefix.
type NodeKind int

const (
	// KindInstance is the default: anything not recognized as a class.
	KindInstance NodeKind = iota
	// KindWordNetClass is a WordNet synset, prefix "<wordnet_".
	KindWordNetClass
	// KindYagoClass is an OWL thing, YAGO class or Wikipedia category,
	// prefixes "owl:", "<yago" or "<wikicategory".
	KindYagoClass
)

const (
	wordNetPrefix    = "<wordnet_"
	owlPrefix        = "owl:"
	yagoPrefix       = "<yago"
	wikicategoryPref = "<wikicategory"
)

// OwlThing is filtered out of every NodeSet at construction; it carries no
// disambiguating information and is never a useful candidate.
const OwlThing Node = "owl:Thing"

// PersonNode is the WordNet person-class fallback returned when the
// names-set heuristic fires (§4.1.5).
const PersonNode Node = "<wordnet_person_100007846>"

// Kind classifies n by prefix. It is a pure function, not a cached field:
// nodes carry no state beyond their string value.
func Kind(n Node) NodeKind {
	s := string(n)
	switch {
	case strings.HasPrefix(s, wordNetPrefix):
		return KindWordNetClass
	case strings.HasPrefix(s, owlPrefix), strings.HasPrefix(s, yagoPrefix), strings.HasPrefix(s, wikicategoryPref):
		return KindYagoClass
	default:
		return KindInstance
	}
}

// IsClass reports whether n is a class node (not an instance).
func IsClass(n Node) bool {
	return Kind(n) != KindInstance
}

// IsInstance reports whether n is an instance node.
func IsInstance(n Node) bool {
	return Kind(n) == KindInstance
}
