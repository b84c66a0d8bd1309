// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Pipeline error kinds. Stages wrap these with fmt.Errorf so callers of the
// pipeline can distinguish failures with errors.Is without parsing messages.
var (
	// ErrNetwork covers fetch failures: connectivity, timeout, or a non-2xx
	// HTTP status from the arXiv API.
	ErrNetwork = errors.New("network failure")

	// ErrMalformedResponse means the response body could not be decoded as
	// Atom XML at all. A well-formed feed with zero entries is not malformed.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrModelUnavailable means the summarization model could not be
	// constructed or loaded.
	ErrModelUnavailable = errors.New("summarization model unavailable")

	// ErrSummarization means generation failed on valid input.
	ErrSummarization = errors.New("summarization failed")
)
