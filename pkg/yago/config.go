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

// Delimiters collects the single-byte field separators used throughout
// the triple CSV format and the persistent stores. All are configurable
// per spec, but the defaults below match the upstream ingest tools and
// must not be changed independently of them.
type Delimiters struct {
	// Arg separates a triple's top-level fields (rel, args..., freq).
	Arg byte
	// Pos separates a term from its POS tag within an argument.
	Pos byte
	// TermNodes separates a term+POS pair from its attached node list.
	TermNodes byte
	// NodeNode separates successive (node, score) pairs.
	NodeNode byte
	// NodeScore separates a node from its score within a pair.
	NodeScore byte
	// Array separates elements of a delimiter-joined store value.
	Array byte
	// BucketID separates a triple_id from its line within a bucket
	// record.
	BucketID byte
	// BucketLine separates successive bucket records.
	BucketLine byte
}

// DefaultDelimiters returns the documented default byte values (spec.md
// §6): POSDEL=0xFE, TNDEL=0xFD, NNDEL=0xFC, NSDEL=0xFB, DEL=0xF5,
// store-array=0xF4, bucket id/line=0xF3/0xF2.
func DefaultDelimiters() Delimiters {
	return Delimiters{
		Arg:        0xF5,
		Pos:        0xFE,
		TermNodes:  0xFD,
		NodeNode:   0xFC,
		NodeScore:  0xFB,
		Array:      0xF4,
		BucketID:   0xF3,
		BucketLine: 0xF2,
	}
}

// Options bundles every tunable knob the disambiguator, PatternIndex and
// OverlapFinder read, mirroring the original's central settings module.
type Options struct {
	Delimiters Delimiters

	// Depth bounds taxonomy climbs during generalization.
	Depth int
	// TryLCA enables the LCA fallback for single-lemma misses.
	TryLCA bool

	// MaxComb restricts OverlapFinder's brute-force subset enumeration
	// to combination sizes up to this value (spec §9: reproduced as 2).
	MaxComb int
	// MaxSets gates the size of per-slot node-set enumeration before
	// falling back to random sampling.
	MaxSets int
	// Passes is the number of random samples drawn when MaxSets is
	// exceeded.
	Passes int

	// CacheBudget is the PatternIndex's in-memory write-behind entry
	// budget before a flush+compact cycle is triggered.
	CacheBudget int

	// Names is the externally provided set of surface forms treated as
	// person-name cues for the fallback rule.
	Names map[string]bool

	// AllowedRelations and AllowedLanguages filter which rows populate
	// the class-dict/class-search stores during ingest.
	AllowedRelations []string
	AllowedLanguages []string
}

// DefaultOptions returns the documented defaults (spec.md §5, §6).
func DefaultOptions() Options {
	return Options{
		Delimiters:       DefaultDelimiters(),
		Depth:            2,
		TryLCA:           false,
		MaxComb:          2,
		MaxSets:          3000,
		Passes:           5,
		CacheBudget:      4096 * 256,
		Names:            map[string]bool{},
		AllowedRelations: []string{"preferred meaning of", "redirected from"},
		AllowedLanguages: []string{"en"},
	}
}

// Store directory names, load-bearing constants produced by the ingest
// tools (out of scope here, see spec.md §1) that leveldbstore.go must
// agree with byte-for-byte.
const (
	ClassDictDir   = "yago_class_dict"
	ClassSearchDir = "yago_class_search"
	TaxonomyDir    = "yago_taxonomy"
	TypesDir       = "yago_types"
)
