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

// TestParseSerializeRoundTrip covers invariant 7: parse(serialize(triple))
// == triple for a well-formed Triple with mixed argument kinds (absent,
// non-NN, NN-with-scored-nodes).
func TestParseSerializeRoundTrip(t *testing.T) {
	delims := DefaultDelimiters()
	tr, err := NewTriple("nn", []*Argument{
		nil,
		{Term: "big", Pos: "JJ"},
		{
			Term: "dog",
			Pos:  "NN",
			Nodes: []ScoredNode{
				{Node: "<wordnet_dog_102084071>", Score: 0.5},
				{Node: "<wordnet_dog_102084072>", Score: 0.5},
			},
		},
	}, 7)
	if err != nil {
		t.Fatalf("NewTriple() error = %v", err)
	}

	line := tr.Serialize(delims)
	got, err := ParseTriple(line, delims)
	if err != nil {
		t.Fatalf("ParseTriple(%q) error = %v", line, err)
	}
	if diff := cmp.Diff(tr, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSerializeRoundTripNoNodes(t *testing.T) {
	delims := DefaultDelimiters()
	tr, err := NewTriple("amod", []*Argument{
		{Term: "red", Pos: "JJ"},
		{Term: "house", Pos: "NN"},
	}, 1)
	if err != nil {
		t.Fatalf("NewTriple() error = %v", err)
	}

	line := tr.Serialize(delims)
	got, err := ParseTriple(line, delims)
	if err != nil {
		t.Fatalf("ParseTriple(%q) error = %v", line, err)
	}
	if diff := cmp.Diff(tr, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTripleRejectsMalformedLine(t *testing.T) {
	if _, err := ParseTriple("nn", DefaultDelimiters()); err == nil {
		t.Error("ParseTriple() on a line with no argument fields: want error, got nil")
	}
}

func TestParseTripleRejectsBadFrequency(t *testing.T) {
	delims := DefaultDelimiters()
	line := "nn" + string([]byte{delims.Arg}) + "dog" + string([]byte{delims.Pos}) + "NN" + string([]byte{delims.Arg}) + "not-a-number"
	if _, err := ParseTriple(line, delims); err == nil {
		t.Error("ParseTriple() with non-numeric frequency: want error, got nil")
	}
}

func TestFilterLetterLemmas(t *testing.T) {
	got := FilterLetterLemmas([]string{"dog", "123", "new-york", "", "Paris"})
	want := []string{"dog", "Paris"}
	if len(got) != len(want) {
		t.Fatalf("FilterLetterLemmas() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FilterLetterLemmas()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
