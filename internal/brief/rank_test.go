package brief

import "testing"

func TestFilterByCategories_AppliesWhenEnoughRemain(t *testing.T) {
	items := []Item{
		{Title: "t1", Category: "tech"},
		{Title: "t2", Category: "tech"},
		{Title: "t3", Category: "tech"},
		{Title: "w1", Category: "world"},
	}

	out := filterByCategories(items, []string{"tech"}, 4)
	if len(out) != 3 {
		t.Fatalf("expected 3 tech items, got %d", len(out))
	}
	for _, it := range out {
		if it.Category != "tech" {
			t.Errorf("off-category item survived the filter: %q", it.Category)
		}
	}
}

func TestFilterByCategories_SafetyValve(t *testing.T) {
	// Filtering would leave 2 items but topN=10 demands at least 6; the
	// unfiltered list must win.
	items := make([]Item, 0, 8)
	for i := 0; i < 6; i++ {
		items = append(items, Item{Category: "world"})
	}
	items = append(items, Item{Category: "tech"}, Item{Category: "tech"})

	out := filterByCategories(items, []string{"tech"}, 10)
	if len(out) != len(items) {
		t.Fatalf("safety valve should keep the unfiltered list: got %d, want %d", len(out), len(items))
	}
}

func TestFilterByCategories_NoRequestNoChange(t *testing.T) {
	items := []Item{{Category: "tech"}, {Category: "world"}}
	out := filterByCategories(items, nil, 5)
	if len(out) != 2 {
		t.Fatalf("no requested categories should mean no filtering")
	}
}

func TestRank_PreferredCategoriesFirst(t *testing.T) {
	items := []Item{
		{Title: "tech-hi", Category: "tech", Confidence: 0.95},
		{Title: "sports-lo", Category: "sports", Confidence: 0.4},
		{Title: "tech-mid", Category: "tech", Confidence: 0.9},
		{Title: "sports-hi", Category: "sports", Confidence: 0.5},
	}

	rank(items, []string{"sports"})

	want := []string{"sports-hi", "sports-lo", "tech-hi", "tech-mid"}
	for i, title := range want {
		if items[i].Title != title {
			t.Errorf("position %d: got %q, want %q", i, items[i].Title, title)
		}
	}
}

func TestRank_ConfidenceDescendingWithoutPrefs(t *testing.T) {
	items := []Item{
		{Title: "c", Confidence: 0.3},
		{Title: "a", Confidence: 0.9},
		{Title: "b", Confidence: 0.6},
	}
	rank(items, nil)
	want := []string{"a", "b", "c"}
	for i, title := range want {
		if items[i].Title != title {
			t.Errorf("position %d: got %q, want %q", i, items[i].Title, title)
		}
	}
}

func TestRank_StableOnTies(t *testing.T) {
	items := []Item{
		{Title: "first", Category: "tech", Confidence: 0.7},
		{Title: "second", Category: "tech", Confidence: 0.7},
		{Title: "third", Category: "tech", Confidence: 0.7},
	}
	rank(items, nil)
	want := []string{"first", "second", "third"}
	for i, title := range want {
		if items[i].Title != title {
			t.Errorf("tie order not preserved at %d: got %q, want %q", i, items[i].Title, title)
		}
	}
}

func TestTrim_Exactness(t *testing.T) {
	for _, c := range []struct {
		pool, topN, want int
	}{
		{8, 5, 5},
		{3, 5, 3},
		{0, 5, 0},
		{5, 5, 5},
	} {
		items := make([]Item, c.pool)
		got := trim(items, c.topN)
		if len(got) != c.want {
			t.Errorf("trim(pool=%d, topN=%d) = %d items, want %d", c.pool, c.topN, len(got), c.want)
		}
	}
}
