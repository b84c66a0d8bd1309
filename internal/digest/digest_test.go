// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// --- fakes ---

// scriptedFetcher returns a fixed body or error and counts calls.
type scriptedFetcher struct {
	body  string
	err   error
	calls int
}

func (f *scriptedFetcher) Fetch(_ context.Context, _ string, _ int) (string, error) {
	f.calls++
	return f.body, f.err
}

// recordingSummarizer echoes a marked version of its input and records the
// order of calls. Like the real engine, it passes empty input through.
type recordingSummarizer struct {
	inputs  []string
	failOn  int // 1-based call number to fail on; 0 never fails
	failErr error
}

func (s *recordingSummarizer) Summarize(_ context.Context, text string, _, _ int) (string, error) {
	s.inputs = append(s.inputs, text)
	if s.failOn > 0 && len(s.inputs) == s.failOn {
		return "", s.failErr
	}
	if text == "" {
		return "", nil
	}
	return "sum(" + text + ")", nil
}

func atomFeed(entries ...string) string {
	return `<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom">` +
		strings.Join(entries, "") + `</feed>`
}

func atomEntry(id, title, summary string) string {
	return fmt.Sprintf(
		`<entry><id>http://arxiv.org/abs/%sv1</id><title>%s</title><summary>%s</summary></entry>`,
		id, title, summary)
}

var threeEntryFeed = atomFeed(
	atomEntry("2301.00001", "Paper One", "first abstract about transformers"),
	atomEntry("2301.00002", "Paper Two", "second abstract about attention"),
	atomEntry("2301.00003", "Paper Three", "third abstract about scaling"),
)

func testPipeline(f Fetcher, s Summarizer) *Pipeline {
	return New(f, s, types.SummarizeConfig{MinSummaryTokens: 30, MaxSummaryTokens: 140})
}

// --- Request ---

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"valid", Request{Term: "quantum computing", MaxResults: 3}, false},
		{"empty term", Request{Term: "", MaxResults: 3}, true},
		{"whitespace term", Request{Term: "  \t", MaxResults: 3}, true},
		{"zero max results", Request{Term: "quantum", MaxResults: 0}, true},
		{"negative max results", Request{Term: "quantum", MaxResults: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// --- Run ---

func TestRunSummarizesEachRecordInOrder(t *testing.T) {
	fetcher := &scriptedFetcher{body: threeEntryFeed}
	summarizer := &recordingSummarizer{}
	p := testPipeline(fetcher, summarizer)

	rs, err := p.Run(context.Background(), Request{Term: "transformers", MaxResults: 3}, io.Discard)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(rs.Records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(rs.Records))
	}
	for i, r := range rs.Records {
		want := "sum(" + r.Abstract + ")"
		if r.Summary != want {
			t.Errorf("records[%d].Summary = %q, want summary of its own abstract", i, r.Summary)
		}
	}
	if rs.Records[0].ID != "2301.00001" || rs.Records[2].ID != "2301.00003" {
		t.Errorf("records out of document order: %v", []string{rs.Records[0].ID, rs.Records[1].ID, rs.Records[2].ID})
	}
	if rs.Term != "transformers" {
		t.Errorf("Term = %q, want the request term echoed", rs.Term)
	}
}

func TestRunOverviewComputedLast(t *testing.T) {
	fetcher := &scriptedFetcher{body: threeEntryFeed}
	summarizer := &recordingSummarizer{}
	p := testPipeline(fetcher, summarizer)

	rs, err := p.Run(context.Background(), Request{Term: "attention", MaxResults: 3}, io.Discard)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Three per-record calls in document order, then exactly one overview call.
	if len(summarizer.inputs) != 4 {
		t.Fatalf("summarizer saw %d calls, want 4", len(summarizer.inputs))
	}
	wantJoin := strings.Join([]string{
		"sum(first abstract about transformers)",
		"sum(second abstract about attention)",
		"sum(third abstract about scaling)",
	}, "\n")
	if summarizer.inputs[3] != wantJoin {
		t.Errorf("overview input = %q, want the joined per-record summaries in order", summarizer.inputs[3])
	}
	if rs.OverviewSummary != "sum("+wantJoin+")" {
		t.Errorf("OverviewSummary = %q, want summary of the join text", rs.OverviewSummary)
	}
}

func TestRunZeroResults(t *testing.T) {
	fetcher := &scriptedFetcher{body: atomFeed()}
	summarizer := &recordingSummarizer{}
	p := testPipeline(fetcher, summarizer)

	rs, err := p.Run(context.Background(), Request{Term: "zzz_no_such_topic_zzz", MaxResults: 5}, io.Discard)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(rs.Records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(rs.Records))
	}
	if rs.OverviewSummary != "" {
		t.Errorf("OverviewSummary = %q, want empty string", rs.OverviewSummary)
	}
	if len(summarizer.inputs) != 0 {
		t.Errorf("summarizer saw %d calls, want 0 for an empty result set", len(summarizer.inputs))
	}
}

func TestRunEmptyAbstractsSkipOverview(t *testing.T) {
	// Entries exist but none has an abstract: per-record summaries are empty,
	// the join text is empty, and the overview call must be skipped.
	feed := atomFeed(
		`<entry><id>http://arxiv.org/abs/2301.00001v1</id><title>No Abstract</title></entry>`,
	)
	fetcher := &scriptedFetcher{body: feed}
	summarizer := &recordingSummarizer{}
	p := testPipeline(fetcher, summarizer)

	rs, err := p.Run(context.Background(), Request{Term: "quantum", MaxResults: 1}, io.Discard)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if rs.Records[0].Summary != "" {
		t.Errorf("records[0].Summary = %q, want empty for an empty abstract", rs.Records[0].Summary)
	}
	if rs.OverviewSummary != "" {
		t.Errorf("OverviewSummary = %q, want empty (join text was empty)", rs.OverviewSummary)
	}
	// One per-record call, no overview call.
	if len(summarizer.inputs) != 1 {
		t.Errorf("summarizer saw %d calls, want 1", len(summarizer.inputs))
	}
}

func TestRunFetchErrorAbortsWithoutPartialResult(t *testing.T) {
	fetchErr := fmt.Errorf("arXiv API request: %w: connection timed out", types.ErrNetwork)
	fetcher := &scriptedFetcher{err: fetchErr}
	summarizer := &recordingSummarizer{}
	p := testPipeline(fetcher, summarizer)

	rs, err := p.Run(context.Background(), Request{Term: "quantum", MaxResults: 3}, io.Discard)
	if err == nil {
		t.Fatal("Run: expected error, got nil")
	}
	if !errors.Is(err, types.ErrNetwork) {
		t.Errorf("error %v, want ErrNetwork kind preserved", err)
	}
	if rs != nil {
		t.Errorf("rs = %+v, want nil (no partial result set)", rs)
	}
	if len(summarizer.inputs) != 0 {
		t.Errorf("summarizer saw %d calls after fetch failure, want 0", len(summarizer.inputs))
	}
}

func TestRunMalformedResponseAborts(t *testing.T) {
	fetcher := &scriptedFetcher{body: "definitely not xml"}
	p := testPipeline(fetcher, &recordingSummarizer{})

	rs, err := p.Run(context.Background(), Request{Term: "quantum", MaxResults: 3}, io.Discard)
	if err == nil {
		t.Fatal("Run: expected error, got nil")
	}
	if !errors.Is(err, types.ErrMalformedResponse) {
		t.Errorf("error %v, want ErrMalformedResponse kind", err)
	}
	if rs != nil {
		t.Errorf("rs = %+v, want nil", rs)
	}
}

func TestRunSummarizerErrorAborts(t *testing.T) {
	fetcher := &scriptedFetcher{body: threeEntryFeed}
	summarizer := &recordingSummarizer{
		failOn:  2,
		failErr: fmt.Errorf("generation: %w", types.ErrSummarization),
	}
	p := testPipeline(fetcher, summarizer)

	rs, err := p.Run(context.Background(), Request{Term: "quantum", MaxResults: 3}, io.Discard)
	if err == nil {
		t.Fatal("Run: expected error, got nil")
	}
	if !errors.Is(err, types.ErrSummarization) {
		t.Errorf("error %v, want ErrSummarization kind preserved", err)
	}
	if rs != nil {
		t.Errorf("rs = %+v, want nil (no partial result set)", rs)
	}
	// The failure happened on record 2; record 3 must never be attempted.
	if len(summarizer.inputs) != 2 {
		t.Errorf("summarizer saw %d calls, want 2", len(summarizer.inputs))
	}
}

func TestRunInvalidRequest(t *testing.T) {
	fetcher := &scriptedFetcher{body: threeEntryFeed}
	p := testPipeline(fetcher, &recordingSummarizer{})

	if _, err := p.Run(context.Background(), Request{Term: "", MaxResults: 3}, io.Discard); err == nil {
		t.Error("Run: expected error for empty term, got nil")
	}
	if fetcher.calls != 0 {
		t.Errorf("fetcher called %d times for invalid request, want 0", fetcher.calls)
	}
}

func TestRunIdempotent(t *testing.T) {
	fetcher := &scriptedFetcher{body: threeEntryFeed}
	p := testPipeline(fetcher, &recordingSummarizer{})

	first, err := p.Run(context.Background(), Request{Term: "quantum", MaxResults: 3}, io.Discard)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	second, err := p.Run(context.Background(), Request{Term: "quantum", MaxResults: 3}, io.Discard)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if first.OverviewSummary != second.OverviewSummary {
		t.Errorf("overview differs between identical runs")
	}
	for i := range first.Records {
		if first.Records[i].ID != second.Records[i].ID || first.Records[i].Summary != second.Records[i].Summary {
			t.Errorf("records[%d] differ between identical runs", i)
		}
	}
}
