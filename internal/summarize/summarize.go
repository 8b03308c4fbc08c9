// Package summarize produces a summary, a one-line TLDR, and a confidence
// score for an article. Two strategies exist: a local extractive one and a
// Gemini-backed generative one. Both honor the same contract: a degraded but
// well-formed Result on internal failure, never a panic, and a confidence
// value inside [0,1].
package summarize

import "context"

type Result struct {
	Summary    string
	TLDR       string
	Confidence float64
}

type Summarizer interface {
	Summarize(ctx context.Context, title, snippet, url string, maxSentences int) (Result, error)
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
