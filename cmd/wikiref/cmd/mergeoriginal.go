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

	"github.com/spf13/cobra"

	"github.com/metaphorx/wikiref/pkg/yago"
)

var (
	mergeOriginalMerged string
	mergeOriginalSource string
	mergeOriginalOutput string
)

var mergeOriginalCmd = &cobra.Command{
	Use:   "merge-original",
	Short: "Reconcile the merged stream against the original corpus by triple key",
	Long: `merge-original reads the merge-overlaps output and the
original, unmerged triple stream, and deduplicates by (rel_type, arg
terms) key, keeping whichever copy has the higher frequency (spec.md
§6). Corresponds to run_merge_with_original.py.`,
	RunE: runMergeOriginal,
}

func init() {
	mergeOriginalCmd.Flags().StringVar(&mergeOriginalMerged, "merged", "", "merge-overlaps output stream (required)")
	mergeOriginalCmd.Flags().StringVar(&mergeOriginalSource, "original", "", "original triple stream (required)")
	mergeOriginalCmd.Flags().StringVar(&mergeOriginalOutput, "output", "-", "reconciled stream output, or - for stdout")
	rootCmd.AddCommand(mergeOriginalCmd)
}

func runMergeOriginal(cmd *cobra.Command, args []string) error {
	if mergeOriginalMerged == "" || mergeOriginalSource == "" {
		return fmt.Errorf("wikiref: --merged and --original are both required")
	}

	delims := yago.DefaultDelimiters()
	merged, err := readTriples(mergeOriginalMerged, delims)
	if err != nil {
		return err
	}
	original, err := readTriples(mergeOriginalSource, delims)
	if err != nil {
		return err
	}

	out, closeOut, err := openWriter(mergeOriginalOutput)
	if err != nil {
		return err
	}
	defer closeOut()

	for _, tr := range yago.MergeWithOriginal(merged, original) {
		if _, err := fmt.Fprintln(out, tr.Serialize(delims)); err != nil {
			return fmt.Errorf("wikiref: writing output: %w", err)
		}
	}
	return nil
}

func readTriples(path string, delims yago.Delimiters) ([]yago.Triple, error) {
	f, closeF, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer closeF()

	var out []yago.Triple
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		tr, err := yago.ParseTriple(line, delims)
		if err != nil {
			logger.Warn("skipping malformed triple", "path", path, "error", err)
			continue
		}
		out = append(out, tr)
	}
	return out, scanner.Err()
}
