// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize produces short bounded summaries of paper abstracts.
//
// The package wraps a single process-wide summarization model behind Engine.
// The model is expensive to construct, so construction is deferred to the
// first call that actually needs it and the instance is reused for the
// process lifetime. Models hold no per-call mutable state after load.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Model generates a summary of text bounded by minTokens and maxTokens,
// where a token is a word segment containing a letter or digit. Each backend
// (extractive, inference) implements this interface per the Strategy pattern.
type Model interface {
	Name() string
	Summarize(ctx context.Context, text string, minTokens, maxTokens int) (string, error)
}

// Engine owns the shared model instance. Construction happens at most once
// per process, on the first summarize call whose input is long enough to need
// the model; the outcome, instance or load error, is latched for the process
// lifetime, so concurrent first callers cannot trigger a second construction.
type Engine struct {
	once    sync.Once
	model   Model
	loadErr error

	// load builds the model. Kept as a field so tests can substitute a
	// counting fake.
	load func() (Model, error)
}

// NewEngine returns an Engine that lazily constructs the backend named in cfg.
func NewEngine(cfg types.SummarizeConfig) *Engine {
	return &Engine{load: func() (Model, error) { return newModel(cfg) }}
}

// newModel constructs the configured backend. An empty backend name selects
// the extractive model.
func newModel(cfg types.SummarizeConfig) (Model, error) {
	switch cfg.Backend {
	case types.BackendExtractive, "":
		return newExtractiveModel(), nil
	case types.BackendInference:
		return newInferenceModel(cfg)
	default:
		return nil, fmt.Errorf("unknown summarizer backend %q", cfg.Backend)
	}
}

// Summarize returns a summary of text between minTokens and maxTokens long.
// Input that is empty or at most minTokens long is returned unchanged after
// whitespace normalization, without touching the model.
func (e *Engine) Summarize(ctx context.Context, text string, minTokens, maxTokens int) (string, error) {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" || countTokens(text) <= minTokens {
		return text, nil
	}

	e.once.Do(func() { e.model, e.loadErr = e.load() })
	if e.loadErr != nil {
		return "", fmt.Errorf("loading summarization model: %w: %w", types.ErrModelUnavailable, e.loadErr)
	}

	out, err := e.model.Summarize(ctx, text, minTokens, maxTokens)
	if err != nil {
		// A backend may report the model itself as gone (e.g. the hosted
		// service is still loading weights); keep that kind intact.
		if errors.Is(err, types.ErrModelUnavailable) {
			return "", err
		}
		return "", fmt.Errorf("%s backend: %w: %w", e.model.Name(), types.ErrSummarization, err)
	}
	return out, nil
}

// countTokens counts word segments containing at least one letter or digit.
func countTokens(s string) int {
	n := 0
	tokens := words.FromString(s)
	for tokens.Next() {
		if isWordToken(tokens.Value()) {
			n++
		}
	}
	return n
}

// isWordToken reports whether a segment is a word rather than whitespace or
// punctuation.
func isWordToken(tok string) bool {
	for _, r := range tok {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// truncateTokens cuts s after max word tokens. Word segments partition the
// input, so re-joining them preserves the original text up to the cut.
func truncateTokens(s string, max int) string {
	if max <= 0 || countTokens(s) <= max {
		return s
	}

	var b strings.Builder
	n := 0
	tokens := words.FromString(s)
	for tokens.Next() {
		tok := tokens.Value()
		if isWordToken(tok) {
			n++
			if n > max {
				break
			}
		}
		b.WriteString(tok)
	}
	return strings.TrimSpace(b.String())
}
