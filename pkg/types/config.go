package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the arXiv fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// RequestInterval is the minimum spacing between consecutive arXiv
	// requests (default 3s, per arXiv API usage guidance). Spacing only:
	// a failed request is never re-issued.
	RequestInterval time.Duration `json:"request_interval" yaml:"request_interval"`
}

// SummarizerBackend identifies the summarization model implementation.
type SummarizerBackend string

const (
	// BackendExtractive is the in-process deterministic sentence-extraction model.
	BackendExtractive SummarizerBackend = "extractive"

	// BackendInference calls a hosted inference endpoint for a named
	// pretrained summarization model.
	BackendInference SummarizerBackend = "inference"
)

// SummarizeConfig holds settings for the summarization stage.
type SummarizeConfig struct {
	// Backend selects the model implementation: extractive (default) or inference.
	Backend SummarizerBackend `json:"backend" yaml:"backend"`

	// Model is the pretrained model identifier used by the inference
	// backend (default "sshleifer/distilbart-cnn-12-6").
	Model string `json:"model" yaml:"model"`

	// Endpoint is the base URL of the hosted inference service. Required
	// for the inference backend, ignored by the extractive one.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	// APIKey is the optional bearer token for the hosted inference service.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Timeout is the HTTP request timeout for inference calls.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MinSummaryTokens and MaxSummaryTokens bound generated summary length
	// in tokens (defaults 30 and 140). Input at or below the minimum is
	// passed through without summarization.
	MinSummaryTokens int `json:"min_summary_tokens" yaml:"min_summary_tokens"`
	MaxSummaryTokens int `json:"max_summary_tokens" yaml:"max_summary_tokens"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Fetch     FetchConfig     `json:"fetch" yaml:"fetch"`
	Summarize SummarizeConfig `json:"summarize" yaml:"summarize"`
}
