// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-digest/internal/digest"
	"github.com/pdiddy/arxiv-digest/internal/fetch"
	"github.com/pdiddy/arxiv-digest/internal/secrets"
	"github.com/pdiddy/arxiv-digest/internal/summarize"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// secretsDir holds optional credential files (see internal/secrets).
const secretsDir = ".secrets"

var digestCmd = &cobra.Command{
	Use:   "digest [term]",
	Short: "Fetch, summarize, and digest arXiv results for a topic",
	Long: `Digest queries arXiv for papers matching a free-text topic, summarizes each
abstract, and produces an overview summary across all results. Results keep
the relevance order returned by arXiv.`,
	Args: cobra.ExactArgs(1),
	RunE: runDigest,
}

func init() {
	digestCmd.Flags().Int("max-results", 10, "maximum number of results to fetch (1-50)")
	digestCmd.Flags().Bool("json", false, "print the result set as JSON instead of a table")
	digestCmd.Flags().String("output", "", "also write the result set to a YAML file")
	digestCmd.Flags().String("backend", "", "summarizer backend: extractive or inference")
	digestCmd.Flags().String("model", "", "pretrained model identifier for the inference backend")

	rootCmd.AddCommand(digestCmd)
}

func runDigest(cmd *cobra.Command, args []string) error {
	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults < 1 || maxResults > 50 {
		return fmt.Errorf("--max-results must be between 1 and 50, got %d", maxResults)
	}

	cfg := pipelineConfig(cmd)

	fetcher := fetch.New(cfg.Fetch)
	engine := summarize.NewEngine(cfg.Summarize)
	pipeline := digest.New(fetcher, engine, cfg.Summarize)

	rs, err := pipeline.Run(context.Background(), digest.Request{Term: args[0], MaxResults: maxResults}, os.Stderr)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("output"); path != "" {
		if err := writeResultSet(path, rs); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote result set to %s\n", path)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rs)
	}

	formatTable(rs, os.Stdout)
	return nil
}

// pipelineConfig assembles the pipeline configuration from viper, flag
// overrides, and the optional secrets directory.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	cfg := types.PipelineConfig{
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("fetch.timeout"),
				UserAgent: viper.GetString("fetch.user_agent"),
			},
			RequestInterval: viper.GetDuration("fetch.request_interval"),
		},
		Summarize: types.SummarizeConfig{
			Backend:          types.SummarizerBackend(viper.GetString("summarize.backend")),
			Model:            viper.GetString("summarize.model"),
			Endpoint:         viper.GetString("summarize.endpoint"),
			APIKey:           viper.GetString("summarize.api_key"),
			Timeout:          viper.GetDuration("summarize.timeout"),
			MinSummaryTokens: viper.GetInt("summarize.min_summary_tokens"),
			MaxSummaryTokens: viper.GetInt("summarize.max_summary_tokens"),
		},
	}

	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = "arxiv-digest/" + version
	}
	if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
		cfg.Summarize.Backend = types.SummarizerBackend(backend)
	}
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		cfg.Summarize.Model = model
	}
	if cfg.Summarize.APIKey == "" {
		if token, ok := secrets.Read(secretsDir, "inference-api-token"); ok {
			cfg.Summarize.APIKey = token
		}
	}
	return cfg
}

// formatTable writes the records and the overview as a human-readable table.
func formatTable(rs *types.ResultSet, w io.Writer) {
	if len(rs.Records) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-13s  %-48s  %-22s  %s\n", "Rank", "ID", "Title", "Authors", "Summary")
	fmt.Fprintln(w, strings.Repeat("-", 150))

	for i, r := range rs.Records {
		fmt.Fprintf(w, "%-4d  %-13s  %-48s  %-22s  %s\n",
			i+1,
			runewidth.Truncate(r.ID, 13, "..."),
			runewidth.Truncate(r.Title, 48, "..."),
			runewidth.Truncate(formatAuthors(r.Authors), 22, "..."),
			runewidth.Truncate(r.Summary, 56, "..."))
	}

	fmt.Fprintf(w, "\n%d results for %q\n", len(rs.Records), rs.Term)
	if rs.OverviewSummary != "" {
		fmt.Fprintf(w, "\nOverview:\n%s\n", rs.OverviewSummary)
	}
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return authors[0]
	default:
		return authors[0] + " et al."
	}
}

// writeResultSet marshals the result set to a YAML file.
func writeResultSet(path string, rs *types.ResultSet) error {
	data, err := yaml.Marshal(rs)
	if err != nil {
		return fmt.Errorf("marshaling result set: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
