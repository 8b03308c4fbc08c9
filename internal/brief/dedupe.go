package brief

import (
	"math"

	"newsbrief/internal/feed"
	"newsbrief/internal/metrics"
)

// candidate pairs a raw article with its fingerprint for the dedup stages.
type candidate struct {
	article     feed.Article
	fingerprint string
}

// dedupe drops candidates without a computable fingerprint and repeated
// fingerprints within the pool. First occurrence wins.
func dedupe(pool []feed.Article) []candidate {
	seen := make(map[string]struct{}, len(pool))
	out := make([]candidate, 0, len(pool))

	for _, a := range pool {
		fp := Fingerprint(a.Title, a.URL)
		if fp == "" {
			continue
		}
		if _, dup := seen[fp]; dup {
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}
		seen[fp] = struct{}{}
		out = append(out, candidate{article: a, fingerprint: fp})
	}
	return out
}

// excludeHistory removes candidates delivered in the previous briefing. If
// that starves the pool below the minimum yield, the exclusion is discarded
// entirely: a repeat item beats an empty briefing.
func excludeHistory(pool []candidate, history []string, topN int) []candidate {
	if len(history) == 0 {
		return pool
	}

	old := make(map[string]struct{}, len(history))
	for _, fp := range history {
		old[fp] = struct{}{}
	}

	fresh := make([]candidate, 0, len(pool))
	for _, c := range pool {
		if _, seen := old[c.fingerprint]; seen {
			continue
		}
		fresh = append(fresh, c)
	}

	if len(fresh) < minYield(topN) {
		return pool
	}
	return fresh
}

// minYield is the safety-valve threshold: filters that would leave fewer than
// ceil(0.6*topN) items get reverted.
func minYield(topN int) int {
	threshold := int(math.Ceil(0.6 * float64(topN)))
	if threshold < 1 {
		return 1
	}
	return threshold
}
