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

// Program wikiref disambiguates noun mentions in syntactic relation
// triples against a YAGO/WordNet/Wikipedia knowledge graph, and merges
// the resulting per-mention candidate sets back into a clean triple
// stream.
//
// Usage: wikiref [command] [flags]
//
// Run "wikiref --help" for the list of subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/metaphorx/wikiref/cmd/wikiref/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
