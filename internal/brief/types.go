package brief

import "time"

// Item is an enriched article: the raw candidate plus its resolved category,
// summary, TLDR, confidence and fingerprint. Immutable once enriched except
// for list position during ranking.
type Item struct {
	Title       string  `json:"title"`
	Snippet     string  `json:"snippet"`
	URL         string  `json:"url"`
	Published   string  `json:"published,omitempty"`
	Image       string  `json:"image,omitempty"`
	Category    string  `json:"category"`
	Summary     string  `json:"summary"`
	TLDR        string  `json:"tldr"`
	Confidence  float64 `json:"confidence"`
	Fingerprint string  `json:"fingerprint"`
}

// Briefing is the bounded, ordered output of one pipeline run.
type Briefing struct {
	GeneratedAt        time.Time `json:"generated_at"`
	Items              []Item    `json:"items"`
	UserID             string    `json:"user_id"`
	SelectedCategories []string  `json:"selected_categories"`
}
