// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed decodes arXiv Atom responses into ordered paper records.
package feed

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Atom feed XML structures. Every relevant element is matched against the
// Atom namespace explicitly rather than by bare local name; a well-formed
// document in another namespace decodes to zero entries.
type atomFeed struct {
	Entries []atomEntry `xml:"http://www.w3.org/2005/Atom entry"`
}

type atomEntry struct {
	ID        string       `xml:"http://www.w3.org/2005/Atom id"`
	Title     string       `xml:"http://www.w3.org/2005/Atom title"`
	Summary   string       `xml:"http://www.w3.org/2005/Atom summary"`
	Published string       `xml:"http://www.w3.org/2005/Atom published"`
	Links     []atomLink   `xml:"http://www.w3.org/2005/Atom link"`
	Authors   []atomAuthor `xml:"http://www.w3.org/2005/Atom author"`
}

type atomLink struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
}

type atomAuthor struct {
	Name string `xml:"http://www.w3.org/2005/Atom name"`
}

// Parse decodes a raw Atom payload into paper records in document order,
// which is the relevance order of the arXiv API. A feed with zero entries
// yields an empty slice, not an error. Titles and abstracts missing from an
// entry come back as empty strings.
func Parse(raw string) ([]types.PaperRecord, error) {
	var f atomFeed
	if err := xml.Unmarshal([]byte(raw), &f); err != nil {
		return nil, fmt.Errorf("decoding Atom feed: %w: %w", types.ErrMalformedResponse, err)
	}

	records := make([]types.PaperRecord, 0, len(f.Entries))
	for _, entry := range f.Entries {
		r := types.PaperRecord{
			ID:       entryID(entry.ID),
			Title:    normalizeSpace(entry.Title),
			Abstract: normalizeSpace(entry.Summary),
			Link:     alternateLink(entry.Links),
		}

		for _, a := range entry.Authors {
			if name := strings.TrimSpace(a.Name); name != "" {
				r.Authors = append(r.Authors, name)
			}
		}

		if t, parseErr := time.Parse(time.RFC3339, strings.TrimSpace(entry.Published)); parseErr == nil {
			r.Published = t
		}

		records = append(records, r)
	}
	return records, nil
}

// normalizeSpace collapses runs of whitespace, including the hard newlines
// arXiv embeds in titles and abstracts, into single spaces and trims the ends.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// entryID pulls the short arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041"). When the URL has
// no /abs/ segment the trimmed value is kept as-is.
func entryID(idURL string) string {
	idURL = strings.TrimSpace(idURL)

	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return idURL
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}

// alternateLink returns the href of the rel="alternate" link, falling back to
// the first link when none is marked alternate.
func alternateLink(links []atomLink) string {
	for _, l := range links {
		if l.Rel == "alternate" {
			return l.Href
		}
	}
	if len(links) > 0 {
		return links[0].Href
	}
	return ""
}
