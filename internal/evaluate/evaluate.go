// Package evaluate scores summary quality heuristically. It stands in for an
// LLM-as-a-judge pass: good enough to spot empty or threadbare summaries in
// regression runs without spending model calls.
package evaluate

import (
	"context"
	"fmt"
	"strings"

	"newsbrief/internal/brief"
	"newsbrief/internal/memory"
)

// JudgeSummary returns a quality score in [0,1] based on the length ratio of
// summary to source snippet.
func JudgeSummary(summary, snippet string) float64 {
	if strings.TrimSpace(summary) == "" {
		return 0
	}

	summaryWords := len(strings.Fields(summary))
	snippetWords := len(strings.Fields(snippet))
	if snippetWords < 6 {
		snippetWords = 6
	}

	score := float64(summaryWords) / float64(snippetWords)
	if score > 1 {
		score = 1
	}
	if score < 0.2 {
		score = 0.2
	}
	return score
}

// Report summarizes an evaluation pass over one briefing.
type Report struct {
	ItemCount    int
	AverageScore float64
}

// JudgeBriefing scores every item of a briefing.
func JudgeBriefing(b *brief.Briefing) Report {
	if b == nil || len(b.Items) == 0 {
		return Report{}
	}

	var total float64
	for _, it := range b.Items {
		total += JudgeSummary(it.Summary, it.Snippet)
	}
	return Report{
		ItemCount:    len(b.Items),
		AverageScore: total / float64(len(b.Items)),
	}
}

// LastBriefingInfo describes what the memory store remembers about the last
// delivered briefing for a user.
func LastBriefingInfo(ctx context.Context, store memory.Store, userID string) (string, error) {
	doc, err := store.Load(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(doc.LastBriefing.Items) == 0 {
		return "no briefing recorded yet", nil
	}
	return fmt.Sprintf("last briefing: %d items at %s",
		len(doc.LastBriefing.Items), doc.LastBriefing.TS.Format("2006-01-02 15:04:05")), nil
}
