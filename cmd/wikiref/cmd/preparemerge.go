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
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/metaphorx/wikiref/pkg/yago"
)

var (
	prepareInput   string
	prepareOutput  string
	prepareBuckets string
)

var prepareMergeCmd = &cobra.Command{
	Use:   "prepare-merge",
	Short: "Bucket annotated triples by syntactic pattern for overlap detection",
	Long: `prepare-merge reads an annotated triple stream, writes each
triple into the pattern bucket store keyed by its syntactic pattern
(§4.2), and emits a bin manifest listing every pattern and its bucket
size. Corresponds to run_prepare_merging_data.py.`,
	RunE: runPrepareMerge,
}

func init() {
	prepareMergeCmd.Flags().StringVar(&prepareInput, "input", "-", "annotated triple stream, or - for stdin")
	prepareMergeCmd.Flags().StringVar(&prepareOutput, "output", "-", "bin manifest output, or - for stdout")
	prepareMergeCmd.Flags().StringVar(&prepareBuckets, "buckets", "", "pattern bucket store directory (required)")
	rootCmd.AddCommand(prepareMergeCmd)
}

func runPrepareMerge(cmd *cobra.Command, args []string) error {
	if prepareBuckets == "" {
		return fmt.Errorf("wikiref: --buckets is required")
	}

	in, closeIn, err := openReader(prepareInput)
	if err != nil {
		return err
	}
	defer closeIn()
	out, closeOut, err := openWriter(prepareOutput)
	if err != nil {
		return err
	}
	defer closeOut()

	opts := optionsFromViper()
	delims := yago.DefaultDelimiters()
	pi, err := yago.NewPatternIndex(prepareBuckets, delims, opts.CacheBudget)
	if err != nil {
		return err
	}

	counts := map[string]int{}
	stats := &yago.Stats{}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	n := 0
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		stats.IncRead()
		tr, err := yago.ParseTriple(line, delims)
		if err != nil {
			stats.IncSkipped()
			logger.Warn("skipping malformed triple", "error", err)
			continue
		}
		pattern, ok := tr.Pattern(delims.Pos)
		if !ok {
			continue
		}
		n++
		id := "t" + strconv.Itoa(n)
		pi.Put(pattern, id, line)
		counts[pattern]++
	}
	if err := scanner.Err(); err != nil {
		pi.Close()
		return fmt.Errorf("wikiref: reading input: %w", err)
	}
	if err := pi.Close(); err != nil {
		return fmt.Errorf("wikiref: flushing pattern store: %w", err)
	}

	patterns := make([]string, 0, len(counts))
	for p := range counts {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)
	for _, p := range patterns {
		if _, err := fmt.Fprintf(out, "%s\t%d\n", p, counts[p]); err != nil {
			return fmt.Errorf("wikiref: writing manifest: %w", err)
		}
	}
	stats.LogSummary(logger)
	return nil
}
