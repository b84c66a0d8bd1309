// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package digest drives the retrieval-to-summary pipeline: fetch arXiv
// results for a search term, parse them into records, summarize each
// abstract, then fold the per-record summaries into a single overview.
package digest

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/arxiv-digest/internal/feed"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const (
	defaultMinSummaryTokens = 30
	defaultMaxSummaryTokens = 140
)

// Fetcher retrieves the raw Atom response for a search term.
type Fetcher interface {
	Fetch(ctx context.Context, term string, maxResults int) (string, error)
}

// Summarizer produces a summary of text bounded by minTokens and maxTokens.
type Summarizer interface {
	Summarize(ctx context.Context, text string, minTokens, maxTokens int) (string, error)
}

// Request holds the caller-supplied search parameters.
type Request struct {
	Term       string
	MaxResults int
}

// Validate reports whether the request can be executed.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Term) == "" {
		return fmt.Errorf("search term is empty")
	}
	if r.MaxResults < 1 {
		return fmt.Errorf("max results must be at least 1, got %d", r.MaxResults)
	}
	return nil
}

// Pipeline sequences the fetch, parse, and summarize stages. It holds no
// state between runs; the shared model instance lives inside the Summarizer.
type Pipeline struct {
	fetcher    Fetcher
	summarizer Summarizer
	minTokens  int
	maxTokens  int
}

// New builds a Pipeline using cfg's summary length bounds.
func New(f Fetcher, s Summarizer, cfg types.SummarizeConfig) *Pipeline {
	minTokens := cfg.MinSummaryTokens
	if minTokens <= 0 {
		minTokens = defaultMinSummaryTokens
	}
	maxTokens := cfg.MaxSummaryTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxSummaryTokens
	}
	return &Pipeline{fetcher: f, summarizer: s, minTokens: minTokens, maxTokens: maxTokens}
}

// Run executes one search end to end and returns the completed result set.
// Records keep the document order of the arXiv response, per-record summaries
// are computed strictly sequentially in that order, and the overview is
// computed only after every record summary exists. Any stage failure aborts
// the run unchanged in kind; no partial result set is returned. Progress
// lines are written to w.
func (p *Pipeline) Run(ctx context.Context, req Request, w io.Writer) (*types.ResultSet, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	fmt.Fprintf(w, "fetching up to %d results for %q\n", req.MaxResults, req.Term)
	raw, err := p.fetcher.Fetch(ctx, req.Term, req.MaxResults)
	if err != nil {
		return nil, err
	}

	records, err := feed.Parse(raw)
	if err != nil {
		return nil, err
	}

	for i := range records {
		fmt.Fprintf(w, "summarizing %d/%d: %s\n", i+1, len(records), records[i].ID)
		summary, err := p.summarizer.Summarize(ctx, records[i].Abstract, p.minTokens, p.maxTokens)
		if err != nil {
			return nil, fmt.Errorf("summarizing record %d (%s): %w", i+1, records[i].ID, err)
		}
		records[i].Summary = summary
	}

	overview := ""
	if joined := joinSummaries(records); joined != "" {
		fmt.Fprintln(w, "summarizing overview")
		overview, err = p.summarizer.Summarize(ctx, joined, p.minTokens, p.maxTokens)
		if err != nil {
			return nil, fmt.Errorf("summarizing overview: %w", err)
		}
	}

	return &types.ResultSet{
		Term:            req.Term,
		Records:         records,
		OverviewSummary: overview,
	}, nil
}

// joinSummaries concatenates non-empty record summaries in record order.
func joinSummaries(records []types.PaperRecord) string {
	var parts []string
	for _, r := range records {
		if r.Summary != "" {
			parts = append(parts, r.Summary)
		}
	}
	return strings.Join(parts, "\n")
}
