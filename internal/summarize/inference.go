// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-digest/internal/httputil"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// defaultInferenceModel is the pretrained summarization model requested when
// the configuration names none.
const defaultInferenceModel = "sshleifer/distilbart-cnn-12-6"

const defaultInferenceTimeout = 60 * time.Second

// inferenceModel calls a hosted inference service for a named pretrained
// summarization model. The wire format follows the Hugging Face Inference
// API: POST {endpoint}/models/{model} with inputs and length parameters,
// answered by a list of summary_text objects.
type inferenceModel struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
}

// inferenceRequest is the request body for one summarization call.
type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

// inferenceParameters bounds the generated length in the model's tokens.
// Sampling is disabled so repeated runs produce identical output.
type inferenceParameters struct {
	MinLength int  `json:"min_length"`
	MaxLength int  `json:"max_length"`
	DoSample  bool `json:"do_sample"`
}

// inferenceResult is one element of the service's response list.
type inferenceResult struct {
	SummaryText string `json:"summary_text"`
}

func newInferenceModel(cfg types.SummarizeConfig) (*inferenceModel, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("inference backend requires an endpoint")
	}

	model := cfg.Model
	if model == "" {
		model = defaultInferenceModel
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultInferenceTimeout
	}

	return &inferenceModel{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		model:    model,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

func (m *inferenceModel) Name() string { return "inference" }

// Summarize posts text to the hosted model. HTTP 503 means the service has
// not finished loading the model's weights and is reported as a model
// availability failure rather than a generation failure.
func (m *inferenceModel) Summarize(ctx context.Context, text string, minTokens, maxTokens int) (string, error) {
	reqBody := inferenceRequest{
		Inputs: text,
		Parameters: inferenceParameters{
			MinLength: minTokens,
			MaxLength: maxTokens,
			DoSample:  false,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := m.endpoint + "/models/" + m.model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if m.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.apiKey)
	}

	respBody, err := httputil.Do(m.client, req)
	if err != nil {
		if httputil.StatusCode(err) == http.StatusServiceUnavailable {
			return "", fmt.Errorf("model %s is still loading: %w: %w", m.model, types.ErrModelUnavailable, err)
		}
		return "", fmt.Errorf("inference request: %w", err)
	}

	var results []inferenceResult
	if err := json.Unmarshal(respBody, &results); err != nil {
		return "", fmt.Errorf("decoding inference response: %w", err)
	}
	if len(results) == 0 || strings.TrimSpace(results[0].SummaryText) == "" {
		return "", fmt.Errorf("inference service returned no summary")
	}
	return strings.TrimSpace(results[0].SummaryText), nil
}
