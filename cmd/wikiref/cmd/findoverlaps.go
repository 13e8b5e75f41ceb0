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

package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/metaphorx/wikiref/pkg/yago"
)

var (
	overlapsManifest string
	overlapsOutput   string
	overlapsBuckets  string
)

var findOverlapsCmd = &cobra.Command{
	Use:   "find-overlaps",
	Short: "Find triple-id tuples that overlap at every NN slot within each pattern bucket",
	Long: `find-overlaps reads the bin manifest produced by prepare-merge,
loads each named bucket from the pattern store, and writes one overlap
record per overlapping triple-id tuple found (§4.2). Corresponds to
run_find_overlaps.py.`,
	RunE: runFindOverlaps,
}

func init() {
	findOverlapsCmd.Flags().StringVar(&overlapsManifest, "manifest", "-", "bin manifest, or - for stdin")
	findOverlapsCmd.Flags().StringVar(&overlapsOutput, "output", "-", "overlap records output, or - for stdout")
	findOverlapsCmd.Flags().StringVar(&overlapsBuckets, "buckets", "", "pattern bucket store directory (required)")
	rootCmd.AddCommand(findOverlapsCmd)
}

func runFindOverlaps(cmd *cobra.Command, args []string) error {
	if overlapsBuckets == "" {
		return fmt.Errorf("wikiref: --buckets is required")
	}

	in, closeIn, err := openReader(overlapsManifest)
	if err != nil {
		return err
	}
	defer closeIn()
	out, closeOut, err := openWriter(overlapsOutput)
	if err != nil {
		return err
	}
	defer closeOut()

	opts := optionsFromViper()
	delims := yago.DefaultDelimiters()
	pi, err := yago.NewPatternIndex(overlapsBuckets, delims, opts.CacheBudget)
	if err != nil {
		return err
	}
	defer pi.Close()

	finder := yago.NewOverlapFinder(opts)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		pattern := strings.SplitN(line, "\t", 2)[0]
		bucket, ok, err := pi.GetBucket(pattern)
		if err != nil {
			return fmt.Errorf("wikiref: reading bucket %q: %w", pattern, err)
		}
		if !ok {
			continue
		}

		triples, err := bucketTriples(bucket, delims)
		if err != nil {
			logger.Warn("skipping bucket with malformed triples", "pattern", pattern, "error", err)
			continue
		}

		for _, tuple := range finder.FindOverlaps(triples) {
			if _, err := fmt.Fprintf(out, "%s\t%s\n", pattern, strings.Join(tuple, ",")); err != nil {
				return fmt.Errorf("wikiref: writing overlap record: %w", err)
			}
		}
	}
	return scanner.Err()
}

// bucketTriples parses every (id, line) pair in bucket and reduces each
// to a BucketTriple: one []Node per NN slot, taken from the
// disambiguated candidate nodes already attached by "disambiguate".
func bucketTriples(bucket map[string]string, delims yago.Delimiters) ([]yago.BucketTriple, error) {
	var out []yago.BucketTriple
	for id, line := range bucket {
		tr, err := yago.ParseTriple(line, delims)
		if err != nil {
			return nil, err
		}
		slots := make([][]yago.Node, 0, len(tr.NNSlots()))
		for _, idx := range tr.NNSlots() {
			arg := tr.Arguments[idx]
			nodes := make([]yago.Node, len(arg.Nodes))
			for i, sn := range arg.Nodes {
				nodes[i] = sn.Node
			}
			slots = append(slots, nodes)
		}
		out = append(out, yago.BucketTriple{ID: id, Slots: slots})
	}
	return out, nil
}
