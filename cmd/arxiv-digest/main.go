// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-digest CLI. The CLI is a thin
// shell around the pipeline in internal/digest; it validates flags, assembles
// the configuration, and renders the result set.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the arxiv-digest CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-digest",
	Short: "Search arXiv and summarize the results",
	Long: `arxiv-digest queries the arXiv search API for a topic, produces a short
summary of every paper abstract, and folds the per-paper summaries into a
single overview of the whole result set.

The digest subcommand runs the pipeline end to end; results are printed as a
table or JSON, and can be exported to a YAML file.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arxiv-digest.yaml or ~/.config/arxiv-digest/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxiv-digest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxiv-digest"))
		}
	}

	viper.SetDefault("fetch.timeout", "30s")
	viper.SetDefault("fetch.request_interval", "3s")
	viper.SetDefault("summarize.backend", "extractive")
	viper.SetDefault("summarize.min_summary_tokens", 30)
	viper.SetDefault("summarize.max_summary_tokens", 140)

	viper.SetEnvPrefix("ARXIV_DIGEST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
