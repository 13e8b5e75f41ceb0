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

// Program yagoinspect looks a single label or node id up against an open
// KnowledgeStore and prints what it resolves to.
//
// Usage: yagoinspect --store DIR --format FORMAT TERM
//
// FORMAT, which defaults to "dict", selects which sub-store TERM is
// looked up against. Use "yagoinspect --help" for the list.
//
// THIS PROGRAM IS A DEVELOPMENT TOOL.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pborman/getopt"

	"github.com/metaphorx/wikiref/pkg/yago"
)

// Each format must register a lookup with register. The function f is
// called once with the open store and the command-line term.
type lookup struct {
	name string
	f    func(io.Writer, *yago.KnowledgeStore, string)
	help string
}

var lookups = map[string]*lookup{}

func register(l *lookup) {
	lookups[l.name] = l
}

func init() {
	register(&lookup{
		name: "dict",
		help: "look TERM up in the class dictionary",
		f: func(w io.Writer, s *yago.KnowledgeStore, term string) {
			ns, ok := s.ClassDict.Get(term)
			if !ok {
				fmt.Fprintf(w, "%s: not found in class dictionary\n", term)
				return
			}
			printNodes(w, ns.Nodes)
		},
	})
	register(&lookup{
		name: "search",
		help: "intersect TERM's space-separated words in the class search index",
		f: func(w io.Writer, s *yago.KnowledgeStore, term string) {
			ns, ok := s.ClassSearch.Search(strings.Fields(term))
			if !ok {
				fmt.Fprintf(w, "%s: no intersection in class search index\n", term)
				return
			}
			printNodes(w, ns.Nodes)
		},
	})
	register(&lookup{
		name: "parents",
		help: "walk TERM's transitive parent chain in the taxonomy",
		f: func(w io.Writer, s *yago.KnowledgeStore, term string) {
			node := yago.Node(term)
			for depth := 0; depth < 64; depth++ {
				fmt.Fprintln(w, node)
				parent, ok := s.Taxonomy.Parent(node)
				if !ok {
					return
				}
				node = parent
			}
		},
	})
	register(&lookup{
		name: "types",
		help: "print TERM's direct types from the instance-to-types store",
		f: func(w io.Writer, s *yago.KnowledgeStore, term string) {
			printNodes(w, s.Types.TypesOf(yago.Node(term)))
		},
	})
}

func printNodes(w io.Writer, nodes []yago.Node) {
	if len(nodes) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}
	for _, n := range nodes {
		fmt.Fprintln(w, n)
	}
}

var stop = os.Exit

func exitIfError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop(1)
	}
}

func main() {
	var format, storeDir string
	var help bool

	formats := make([]string, 0, len(lookups))
	for k := range lookups {
		formats = append(formats, k)
	}
	sort.Strings(formats)

	getopt.StringVarLong(&format, "format", 0, "lookup to run: "+strings.Join(formats, ", "), "FORMAT")
	getopt.StringVarLong(&storeDir, "store", 0, "root directory of the four KnowledgeStore sub-stores", "DIR")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("TERM")

	if err := getopt.Getopt(func(o getopt.Option) bool { return true }); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	if help {
		getopt.CommandLine.PrintUsage(os.Stderr)
		fmt.Fprintf(os.Stderr, "\nFormats:\n")
		for _, fn := range formats {
			fmt.Fprintf(os.Stderr, "    %s - %s\n", fn, lookups[fn].help)
		}
		stop(0)
	}

	if format == "" {
		format = "dict"
	}
	l, ok := lookups[format]
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: invalid format. Choices are %s\n", format, strings.Join(formats, ", "))
		stop(1)
	}
	if storeDir == "" {
		fmt.Fprintln(os.Stderr, "--store is required")
		stop(1)
	}

	terms := getopt.Args()
	if len(terms) != 1 {
		getopt.PrintUsage(os.Stderr)
		stop(1)
	}

	store, closeStore, err := yago.OpenKnowledgeStore(storeDir, yago.DefaultDelimiters())
	exitIfError(err)
	defer closeStore()

	l.f(os.Stdout, store, terms[0])
}
