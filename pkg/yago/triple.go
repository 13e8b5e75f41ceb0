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

import "fmt"

// RelTypes is the enumerated, validated vocabulary of syntactic relation
// types a Triple may carry. Construction rejects anything outside this
// set.
var RelTypes = map[string]bool{
	"subj_verb": true,
	"verb_obj":  true,
	"verb_prep": true,
	"amod":      true,
	"nn":        true,
	"poss":      true,
	"appos":     true,
	"conj_and":  true,
	"prep_of":   true,
	"prep_in":   true,
	"prep_for":  true,
	"prep_with": true,
}

// PosTags is the enumerated, validated vocabulary of part-of-speech tags a
// Triple argument may carry. Only tags beginning with "NN" are ever
// disambiguated; the rest pass through as literal terms.
var PosTags = map[string]bool{
	"NN":   true,
	"NNS":  true,
	"NNP":  true,
	"NNPS": true,
	"VB":   true,
	"VBD":  true,
	"VBG":  true,
	"VBN":  true,
	"VBP":  true,
	"VBZ":  true,
	"JJ":   true,
	"JJR":  true,
	"JJS":  true,
	"RB":   true,
	"IN":   true,
	"DT":   true,
	"CD":   true,
}

// ScoredNode is a candidate node together with its normalized
// disambiguation score.
type ScoredNode struct {
	Node  Node
	Score float64
}

// Argument is one slot of a Triple. A nil *Argument means the slot is
// absent. Nodes is only ever populated for NN arguments, after
// disambiguation.
type Argument struct {
	Term  string
	Pos   string
	Nodes []ScoredNode
}

// IsNN reports whether a is an NN-tagged (disambiguable) argument.
func (a *Argument) IsNN() bool {
	return a != nil && len(a.Pos) >= 2 && a.Pos[:2] == "NN"
}

// Triple is a syntactic relation tuple: a relation type, a variable-length
// argument list (any entry may be absent), and a corpus frequency.
type Triple struct {
	RelType   string
	Arguments []*Argument
	Frequency int
}

// NewTriple validates relType and every present argument's POS tag against
// the enumerated vocabularies, constructing a Triple or failing.
func NewTriple(relType string, args []*Argument, freq int) (Triple, error) {
	if !RelTypes[relType] {
		return Triple{}, fmt.Errorf("yago: unknown relation type %q", relType)
	}
	for i, a := range args {
		if a == nil {
			continue
		}
		if !PosTags[a.Pos] {
			return Triple{}, fmt.Errorf("yago: argument %d: unknown part-of-speech tag %q", i, a.Pos)
		}
	}
	return Triple{RelType: relType, Arguments: args, Frequency: freq}, nil
}

// Pattern derives the triple's syntactic-pattern fingerprint: the relation
// type concatenated with, per argument, either the literal term
// (non-NN), "_NN" (NN), or "_*" (absent). A triple with zero NN slots has
// no pattern, signaled by ok=false.
func (t Triple) Pattern(delim byte) (string, bool) {
	pattern := t.RelType
	nnCount := 0
	for _, a := range t.Arguments {
		pattern += string([]byte{delim})
		switch {
		case a == nil:
			pattern += "_*"
		case a.IsNN():
			pattern += "_NN"
			nnCount++
		default:
			pattern += a.Term
		}
	}
	if nnCount == 0 {
		return "", false
	}
	return pattern, true
}

// NNSlots returns the indices into t.Arguments that are NN arguments.
func (t Triple) NNSlots() []int {
	var slots []int
	for i, a := range t.Arguments {
		if a.IsNN() {
			slots = append(slots, i)
		}
	}
	return slots
}
