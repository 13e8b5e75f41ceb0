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
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const (
	emptyTerm1 = "<NONE>"
	emptyTerm2 = "None-<NONE-POS>"
	ignoreTerm = "<->"
)

// ParseTriple decodes one line of the triple CSV format (spec.md §6) using
// delims. A well-formed line round-trips through Serialize.
func ParseTriple(line string, delims Delimiters) (Triple, error) {
	row := strings.Split(line, string([]byte{delims.Arg}))
	if len(row) < 2 {
		return Triple{}, fmt.Errorf("yago: malformed triple line: %q", line)
	}
	relType := row[0]
	freq, err := strconv.Atoi(row[len(row)-1])
	if err != nil {
		return Triple{}, fmt.Errorf("yago: malformed frequency in %q: %w", line, err)
	}

	var args []*Argument
	for _, field := range row[1 : len(row)-1] {
		if field == emptyTerm1 || field == emptyTerm2 {
			args = append(args, nil)
			continue
		}
		if field == ignoreTerm {
			continue
		}
		arg, err := parseArgument(field, delims)
		if err != nil {
			return Triple{}, err
		}
		args = append(args, arg)
	}

	return NewTriple(relType, args, freq)
}

func parseArgument(field string, delims Delimiters) (*Argument, error) {
	parts := strings.Split(field, string([]byte{delims.Pos}))
	if len(parts) < 2 {
		return nil, fmt.Errorf("yago: malformed argument %q", field)
	}
	term := strings.Join(parts[:len(parts)-1], string([]byte{delims.Pos}))
	posAndNodes := parts[len(parts)-1]

	if !strings.HasPrefix(posAndNodes, "NN") {
		return &Argument{Term: term, Pos: posAndNodes}, nil
	}

	posNodeParts := strings.SplitN(posAndNodes, string([]byte{delims.TermNodes}), 2)
	pos := posNodeParts[0]
	arg := &Argument{Term: term, Pos: pos}
	if len(posNodeParts) == 2 && posNodeParts[1] != "" {
		for _, pair := range strings.Split(posNodeParts[1], string([]byte{delims.NodeNode})) {
			nodeScore := strings.SplitN(pair, string([]byte{delims.NodeScore}), 2)
			if len(nodeScore) != 2 {
				return nil, fmt.Errorf("yago: malformed node/score pair %q", pair)
			}
			score, err := strconv.ParseFloat(nodeScore[1], 64)
			if err != nil {
				return nil, fmt.Errorf("yago: malformed score in %q: %w", pair, err)
			}
			arg.Nodes = append(arg.Nodes, ScoredNode{Node: Node(nodeScore[0]), Score: score})
		}
	}
	return arg, nil
}

// Serialize encodes t into the triple CSV format using delims.
func (t Triple) Serialize(delims Delimiters) string {
	var b strings.Builder
	b.WriteString(t.RelType)
	for _, a := range t.Arguments {
		b.WriteByte(delims.Arg)
		if a == nil {
			b.WriteString(emptyTerm1)
			continue
		}
		b.WriteString(a.Term)
		b.WriteByte(delims.Pos)
		b.WriteString(a.Pos)
		if a.IsNN() && len(a.Nodes) > 0 {
			b.WriteByte(delims.TermNodes)
			for i, sn := range a.Nodes {
				if i > 0 {
					b.WriteByte(delims.NodeNode)
				}
				b.WriteString(string(sn.Node))
				b.WriteByte(delims.NodeScore)
				b.WriteString(strconv.FormatFloat(sn.Score, 'g', -1, 64))
			}
		}
	}
	b.WriteByte(delims.Arg)
	b.WriteString(strconv.Itoa(t.Frequency))
	return b.String()
}

// FilterLetterLemmas drops lemmas containing any non-letter rune. The
// disambiguator itself assumes this filter has already been applied
// upstream (spec.md §4.1); this is the CLI-layer helper that applies it
// before lemmas ever reach Disambiguate.
func FilterLetterLemmas(lemmas []string) []string {
	out := make([]string, 0, len(lemmas))
	for _, l := range lemmas {
		if isLettersOnly(l) {
			out = append(out, l)
		}
	}
	return out
}

func isLettersOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
