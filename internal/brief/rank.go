package brief

import "sort"

// filterByCategories keeps only items in the requested categories, unless
// that would starve the briefing below the minimum yield. Misclassification
// is expected from heuristic categorizers; a few off-category items beat a
// near-empty result.
func filterByCategories(items []Item, requested []string, topN int) []Item {
	if len(requested) == 0 {
		return items
	}

	want := make(map[string]struct{}, len(requested))
	for _, c := range requested {
		want[c] = struct{}{}
	}

	filtered := make([]Item, 0, len(items))
	for _, it := range items {
		if _, ok := want[it.Category]; ok {
			filtered = append(filtered, it)
		}
	}

	if len(filtered) >= minYield(topN) {
		return filtered
	}
	return items
}

// rank stable-sorts items: preference-matching categories first, then by
// confidence descending. Ties keep their pre-sort relative order.
func rank(items []Item, preferred []string) {
	prefs := make(map[string]struct{}, len(preferred))
	for _, c := range preferred {
		prefs[c] = struct{}{}
	}

	sort.SliceStable(items, func(i, j int) bool {
		_, iPref := prefs[items[i].Category]
		_, jPref := prefs[items[j].Category]
		if iPref != jPref {
			return iPref
		}
		return items[i].Confidence > items[j].Confidence
	})
}

// trim bounds the briefing to topN items. Never pads.
func trim(items []Item, topN int) []Item {
	if len(items) > topN {
		return items[:topN]
	}
	return items
}
