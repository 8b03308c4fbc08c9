package summarize

import (
	"context"
	"strings"
)

const (
	extractiveConfidence = 0.85
	degradedConfidence   = 0.4
)

// Extractive picks the first well-formed sentences of the snippet. No model,
// no network; it also serves as the fallback path for the generative strategy.
type Extractive struct{}

func NewExtractive() *Extractive {
	return &Extractive{}
}

func (e *Extractive) Summarize(_ context.Context, title, snippet, _ string, maxSentences int) (Result, error) {
	if maxSentences <= 0 {
		maxSentences = 2
	}

	content := strings.TrimSpace(snippet)
	if content == "" {
		content = strings.TrimSpace(title)
	}
	if content == "" {
		return Result{Summary: "News article", TLDR: "News article", Confidence: degradedConfidence}, nil
	}

	sentences := splitSentences(content)
	var picked []string
	for _, s := range sentences {
		if len(s) < 25 {
			continue
		}
		picked = append(picked, s)
		if len(picked) >= maxSentences {
			break
		}
	}

	if len(picked) == 0 {
		// Nothing sentence-shaped: degrade to a truncated snippet.
		return Result{
			Summary:    truncate(content, 250),
			TLDR:       truncate(firstSentence(content), 120),
			Confidence: degradedConfidence,
		}, nil
	}

	summary := strings.Join(picked, ". ") + "."
	return Result{
		Summary:    summary,
		TLDR:       truncate(picked[0], 120) + ".",
		Confidence: extractiveConfidence,
	}, nil
}

func splitSentences(text string) []string {
	parts := strings.Split(text, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstSentence(text string) string {
	if idx := strings.Index(text, "."); idx > 0 {
		return strings.TrimSpace(text[:idx])
	}
	return strings.TrimSpace(text)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
