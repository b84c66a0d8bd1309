// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves raw Atom responses from the arXiv search API.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/arxiv-digest/internal/httputil"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// SetAPIBaseForTest substitutes the arXiv endpoint and returns a function
// that restores it. Test helper for packages that exercise the full pipeline.
func SetAPIBaseForTest(base string) (restore func()) {
	old := arxivAPIBase
	arxivAPIBase = base
	return func() { arxivAPIBase = old }
}

const defaultTimeout = 30 * time.Second

// Client issues search queries against the arXiv API. Each Fetch is a single
// attempt: failures surface immediately to the caller, which decides whether
// to retry.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// New builds a Client from cfg. A positive RequestInterval installs a rate
// limiter that spaces consecutive fetches.
func New(cfg types.FetchConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var limiter *rate.Limiter
	if cfg.RequestInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.RequestInterval), 1)
	}

	return &Client{
		http:      &http.Client{Timeout: timeout},
		limiter:   limiter,
		userAgent: cfg.UserAgent,
	}
}

// Fetch performs one GET against the arXiv API and returns the response body
// as text. The term is URL-encoded under the all: field prefix; maxResults is
// passed through verbatim as the max_results parameter.
func (c *Client) Fetch(ctx context.Context, term string, maxResults int) (string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", fmt.Errorf("empty search term")
	}
	if maxResults < 1 {
		return "", fmt.Errorf("max results must be at least 1, got %d", maxResults)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	params := url.Values{}
	params.Set("search_query", "all:"+term)
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, arxivAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	body, err := httputil.Do(c.http, req)
	if err != nil {
		return "", fmt.Errorf("arXiv API request: %w: %w", types.ErrNetwork, err)
	}
	return string(body), nil
}
