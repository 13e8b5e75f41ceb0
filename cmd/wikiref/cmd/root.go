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

// Package cmd implements the wikiref command-line pipeline: one
// subcommand per stage of the original disambiguate→prepare-merge→
// find-overlaps→merge-overlaps→merge-original pipeline.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/metaphorx/wikiref/pkg/yago"
)

var (
	cfgFile  string
	storeDir string
	logLevel string

	runID  string
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "wikiref",
	Short: "Disambiguate noun mentions in syntactic relation triples",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the selected subcommand. Errors are already logged; the
// caller just needs the exit status.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./wikiref.yaml)")
	rootCmd.PersistentFlags().StringVar(&storeDir, "store", "", "root directory of the four KnowledgeStore sub-stores")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Int("depth", 2, "taxonomy climb depth for generalization (§4.1.3)")
	rootCmd.PersistentFlags().Bool("try-lca", false, "enable the LCA fallback for single-lemma misses")
	rootCmd.PersistentFlags().Int("max-comb", 2, "max combination size for overlap enumeration")
	rootCmd.PersistentFlags().Int("max-sets", 3000, "size gate before falling back to random sampling")
	rootCmd.PersistentFlags().Int("passes", 5, "number of random samples once max-sets is exceeded")
	rootCmd.PersistentFlags().Int("cache-budget", 4096*256, "PatternIndex write-behind LRU capacity")
	rootCmd.PersistentFlags().Int("workers", 1, "worker count for the disambiguate subcommand's input shard fan-out")

	for _, name := range []string{"store", "depth", "try-lca", "max-comb", "max-sets", "passes", "cache-budget", "workers"} {
		viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("wikiref")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("wikiref")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return fmt.Errorf("wikiref: reading config: %w", err)
		}
	}

	runID = uuid.New().String()
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(logLevel)})).
		With("run_id", runID)
	return nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// optionsFromViper builds a yago.Options from the bound flags/config/env
// layers, starting from the documented defaults.
func optionsFromViper() yago.Options {
	opts := yago.DefaultOptions()
	if v := viper.GetInt("depth"); v > 0 {
		opts.Depth = v
	}
	opts.TryLCA = viper.GetBool("try-lca")
	if v := viper.GetInt("max-comb"); v > 0 {
		opts.MaxComb = v
	}
	if v := viper.GetInt("max-sets"); v > 0 {
		opts.MaxSets = v
	}
	if v := viper.GetInt("passes"); v > 0 {
		opts.Passes = v
	}
	if v := viper.GetInt("cache-budget"); v > 0 {
		opts.CacheBudget = v
	}
	return opts
}

func openStore() (*yago.KnowledgeStore, func() error, error) {
	dir := viper.GetString("store")
	if dir == "" {
		return nil, nil, fmt.Errorf("wikiref: --store is required")
	}
	return yago.OpenKnowledgeStore(dir, yago.DefaultDelimiters())
}

func workerCount() int {
	n := viper.GetInt("workers")
	if n < 1 {
		return 1
	}
	return n
}
