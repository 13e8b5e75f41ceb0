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
	mergeOverlapsRecords string
	mergeOverlapsOutput  string
	mergeOverlapsBuckets string
)

var mergeOverlapsCmd = &cobra.Command{
	Use:   "merge-overlaps",
	Short: "Merge each overlapping triple-id tuple into one combined triple",
	Long: `merge-overlaps reads the overlap records produced by
find-overlaps, reconstitutes each tuple's original triples from the
pattern bucket store, and writes the triple produced by combining them
(§4.2 Merger). Corresponds to run_merge_overlaps.py.`,
	RunE: runMergeOverlaps,
}

func init() {
	mergeOverlapsCmd.Flags().StringVar(&mergeOverlapsRecords, "records", "-", "overlap records, or - for stdin")
	mergeOverlapsCmd.Flags().StringVar(&mergeOverlapsOutput, "output", "-", "merged triple stream output, or - for stdout")
	mergeOverlapsCmd.Flags().StringVar(&mergeOverlapsBuckets, "buckets", "", "pattern bucket store directory (required)")
	rootCmd.AddCommand(mergeOverlapsCmd)
}

func runMergeOverlaps(cmd *cobra.Command, args []string) error {
	if mergeOverlapsBuckets == "" {
		return fmt.Errorf("wikiref: --buckets is required")
	}

	in, closeIn, err := openReader(mergeOverlapsRecords)
	if err != nil {
		return err
	}
	defer closeIn()
	out, closeOut, err := openWriter(mergeOverlapsOutput)
	if err != nil {
		return err
	}
	defer closeOut()

	opts := optionsFromViper()
	delims := yago.DefaultDelimiters()
	pi, err := yago.NewPatternIndex(mergeOverlapsBuckets, delims, opts.CacheBudget)
	if err != nil {
		return err
	}
	defer pi.Close()

	merger := yago.Merger{}
	bucketCache := map[string]map[string]string{}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 2)
		if len(fields) != 2 {
			logger.Warn("skipping malformed overlap record", "line", line)
			continue
		}
		pattern, ids := fields[0], strings.Split(fields[1], ",")

		bucket, ok := bucketCache[pattern]
		if !ok {
			var err error
			bucket, ok, err = pi.GetBucket(pattern)
			if err != nil {
				return fmt.Errorf("wikiref: reading bucket %q: %w", pattern, err)
			}
			if !ok {
				continue
			}
			bucketCache[pattern] = bucket
		}

		triples := make([]yago.Triple, 0, len(ids))
		for _, id := range ids {
			raw, ok := bucket[id]
			if !ok {
				continue
			}
			tr, err := yago.ParseTriple(raw, delims)
			if err != nil {
				logger.Warn("skipping malformed triple in overlap tuple", "id", id, "error", err)
				continue
			}
			triples = append(triples, tr)
		}
		if len(triples) == 0 {
			continue
		}

		merged := merger.Combine(triples)
		if _, err := fmt.Fprintln(out, merged.Serialize(delims)); err != nil {
			return fmt.Errorf("wikiref: writing merged triple: %w", err)
		}
	}
	return scanner.Err()
}
