// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/clipperhouse/uax29/v2/sentences"
	"github.com/clipperhouse/uax29/v2/words"
)

// stopwordList holds common English words excluded from frequency scoring.
var stopwordList = strings.Fields(`
	a about above after again all am an and any are as at be because been
	before being below between both but by can could did do does doing down
	during each few for from further had has have having he her here hers him
	his how i if in into is it its itself just me more most my no nor not of
	off on once only or other our ours out over own same she should so some
	such than that the their theirs them then there these they this those
	through to too under until up very was we were what when where which while
	who whom why will with would you your yours`)

// extractiveModel produces deterministic summaries by scoring sentences
// against document word frequencies and emitting the best ones in original
// order. There are no weights to load; construction only builds the stopword
// set. The model is stateless per call.
type extractiveModel struct {
	stopwords map[string]struct{}
}

func newExtractiveModel() *extractiveModel {
	stop := make(map[string]struct{}, len(stopwordList))
	for _, w := range stopwordList {
		stop[w] = struct{}{}
	}
	return &extractiveModel{stopwords: stop}
}

func (m *extractiveModel) Name() string { return "extractive" }

// Summarize selects the highest-scoring sentences until the token budget is
// spent, keeps selecting while below minTokens, and emits the selection in
// document order, hard-truncated at maxTokens. Ties break toward earlier
// sentences, so identical input always produces identical output.
func (m *extractiveModel) Summarize(_ context.Context, text string, minTokens, maxTokens int) (string, error) {
	sents := splitSentences(text)
	if len(sents) == 0 {
		return "", fmt.Errorf("no sentences in input")
	}

	freq := m.wordFrequencies(text)

	type scoredSentence struct {
		idx    int
		score  float64
		tokens int
	}
	ranked := make([]scoredSentence, 0, len(sents))
	for i, s := range sents {
		score, n := m.scoreSentence(s, freq)
		ranked = append(ranked, scoredSentence{idx: i, score: score, tokens: n})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	selected := make(map[int]bool, len(ranked))
	total := 0
	for _, s := range ranked {
		if s.tokens == 0 {
			continue
		}
		// Below the minimum, take the next best sentence regardless of
		// overshoot; the final truncation enforces the hard maximum.
		if total >= minTokens && total+s.tokens > maxTokens {
			continue
		}
		selected[s.idx] = true
		total += s.tokens
		if total >= maxTokens {
			break
		}
	}
	if len(selected) == 0 {
		selected[ranked[0].idx] = true
	}

	var parts []string
	for i, s := range sents {
		if selected[i] {
			parts = append(parts, strings.TrimSpace(s))
		}
	}
	return truncateTokens(strings.Join(parts, " "), maxTokens), nil
}

// wordFrequencies counts lowercased non-stopword word tokens across the text.
func (m *extractiveModel) wordFrequencies(text string) map[string]int {
	freq := make(map[string]int)
	tokens := words.FromString(text)
	for tokens.Next() {
		tok := tokens.Value()
		if !isWordToken(tok) {
			continue
		}
		w := strings.ToLower(tok)
		if _, stop := m.stopwords[w]; stop {
			continue
		}
		freq[w]++
	}
	return freq
}

// scoreSentence returns the sentence's mean word frequency and its word
// token count. Normalizing by length keeps long sentences from winning on
// volume alone.
func (m *extractiveModel) scoreSentence(sentence string, freq map[string]int) (float64, int) {
	sum := 0
	n := 0
	tokens := words.FromString(sentence)
	for tokens.Next() {
		tok := tokens.Value()
		if !isWordToken(tok) {
			continue
		}
		n++
		sum += freq[strings.ToLower(tok)]
	}
	if n == 0 {
		return 0, 0
	}
	return float64(sum) / float64(n), n
}

// splitSentences segments text into trimmed non-empty sentences.
func splitSentences(text string) []string {
	var out []string
	segs := sentences.FromString(text)
	for segs.Next() {
		if s := strings.TrimSpace(segs.Value()); s != "" {
			out = append(out, s)
		}
	}
	return out
}
