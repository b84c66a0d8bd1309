// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the arxiv-digest pipeline:
// paper records, the result set returned to callers, stage configurations,
// and the error kinds stages report.
package types

import "time"

// PaperRecord is one arXiv entry in the order the API returned it. Every
// field is always present; fields the source omitted are empty, never absent,
// so downstream stages never see an undefined value.
type PaperRecord struct {
	// ID is the short arXiv identifier (e.g. "2301.07041"), or the raw
	// entry id when no arXiv identifier could be extracted.
	ID string `json:"id" yaml:"id"`

	// Title is the paper title with whitespace normalized to single spaces.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract with whitespace normalized. Empty when
	// the source entry carried no summary element.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Published is the publication timestamp, zero when missing or unparseable.
	Published time.Time `json:"published" yaml:"published"`

	// Link is the entry's alternate link, typically the abstract page URL.
	Link string `json:"link" yaml:"link"`

	// Summary is the generated summary of Abstract. Filled exactly once by
	// the pipeline; empty until then.
	Summary string `json:"summary" yaml:"summary"`
}

// ResultSet is the terminal output of one pipeline run. It is immutable once
// returned; callers consume it read-only.
type ResultSet struct {
	// Term echoes the search term the run was started with.
	Term string `json:"term" yaml:"term"`

	// Records holds the summarized papers in the document order of the
	// arXiv response.
	Records []PaperRecord `json:"records" yaml:"records"`

	// OverviewSummary is the summary of all record summaries concatenated,
	// empty when there were no records to summarize.
	OverviewSummary string `json:"overview_summary" yaml:"overview_summary"`
}
