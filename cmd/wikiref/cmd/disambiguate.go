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
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/metaphorx/wikiref/pkg/yago"
)

var (
	disambiguateInput  string
	disambiguateOutput string
)

var disambiguateCmd = &cobra.Command{
	Use:   "disambiguate",
	Short: "Annotate each triple's NN arguments with candidate knowledge-graph nodes",
	Long: `disambiguate reads a triple-per-line stream, resolves each NN
argument's surface form to candidate nodes via the min-class solver, and
writes the annotated stream. Corresponds to run_disambiguate_nouns.py.`,
	RunE: runDisambiguate,
}

func init() {
	disambiguateCmd.Flags().StringVar(&disambiguateInput, "input", "-", "input file, or - for stdin")
	disambiguateCmd.Flags().StringVar(&disambiguateOutput, "output", "-", "output file, or - for stdout")
	rootCmd.AddCommand(disambiguateCmd)
}

func runDisambiguate(cmd *cobra.Command, args []string) error {
	store, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	in, closeIn, err := openReader(disambiguateInput)
	if err != nil {
		return err
	}
	defer closeIn()
	out, closeOut, err := openWriter(disambiguateOutput)
	if err != nil {
		return err
	}
	defer closeOut()

	opts := optionsFromViper()
	delims := yago.DefaultDelimiters()
	disambig := yago.NewMinClassDisambiguator(store, opts)

	var lines []string
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("wikiref: reading input: %w", err)
	}

	stats := &yago.Stats{}
	results := make([]string, len(lines))

	g := new(errgroup.Group)
	n := workerCount()
	if n > len(lines) {
		n = len(lines)
	}
	if n < 1 {
		n = 1
	}
	chunk := (len(lines) + n - 1) / n
	if chunk == 0 {
		chunk = 1
	}
	for w := 0; w < n; w++ {
		start, end := w*chunk, (w+1)*chunk
		if start >= len(lines) {
			break
		}
		if end > len(lines) {
			end = len(lines)
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				results[i] = annotateLine(lines[i], disambig, delims, stats)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, r := range results {
		if _, err := fmt.Fprintln(out, r); err != nil {
			return fmt.Errorf("wikiref: writing output: %w", err)
		}
	}
	stats.LogSummary(logger)
	return nil
}

// annotateLine parses one triple line, resolves every NN argument's
// lemmas and re-serializes it. A malformed line is skipped (and counted)
// rather than aborting the whole run.
func annotateLine(line string, disambig *yago.MinClassDisambiguator, delims yago.Delimiters, stats *yago.Stats) string {
	stats.IncRead()
	tr, err := yago.ParseTriple(line, delims)
	if err != nil {
		stats.IncSkipped()
		logger.Warn("skipping malformed triple", "error", err)
		return line
	}

	annotated := false
	for _, a := range tr.Arguments {
		if !a.IsNN() {
			continue
		}
		lemmas := yago.FilterLetterLemmas(strings.Fields(a.Term))
		if len(lemmas) == 0 {
			continue
		}
		scored := disambig.Disambiguate(lemmas)
		if len(scored) == 0 {
			stats.IncStoreMiss()
			continue
		}
		a.Nodes = scored
		annotated = true
	}
	if annotated {
		stats.IncAnnotated()
	}
	return tr.Serialize(delims)
}

func openReader(path string) (io.Reader, func() error, error) {
	if path == "-" || path == "" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("wikiref: opening %s: %w", path, err)
	}
	return f, f.Close, nil
}

func openWriter(path string) (io.Writer, func() error, error) {
	if path == "-" || path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("wikiref: creating %s: %w", path, err)
	}
	return f, f.Close, nil
}
