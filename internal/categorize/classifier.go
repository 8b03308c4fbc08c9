// Package categorize resolves a category label for an article from its title
// and snippet. The label set is fixed; an article that matches no keyword rule
// is resolved through a tie-break strategy rather than left uncategorized,
// since a wrong label costs less downstream than a missing one.
package categorize

import (
	"math/rand"
	"regexp"
	"strings"
)

// Labels is the fixed set of categories the classifier may return.
var Labels = []string{
	"tech",
	"business",
	"world",
	"sports",
	"science",
	"health",
	"entertainment",
	"india",
}

// Method reports how a label was resolved.
type Method int

const (
	Classified Method = iota // a keyword rule matched
	TieBroken                // no rule matched; the tie-break strategy decided
)

// TieBreaker picks a label when keyword classification is uncertain.
type TieBreaker interface {
	Pick(labels []string) string
}

// RandomTieBreaker picks uniformly at random, matching the behavior the
// heuristic classifier shipped with.
type RandomTieBreaker struct {
	rng *rand.Rand
}

func NewRandomTieBreaker(rng *rand.Rand) *RandomTieBreaker {
	return &RandomTieBreaker{rng: rng}
}

func (r *RandomTieBreaker) Pick(labels []string) string {
	if r.rng != nil {
		return labels[r.rng.Intn(len(labels))]
	}
	return labels[rand.Intn(len(labels))]
}

// FixedTieBreaker always returns the same label. Used by tests and by
// deployments that prefer a deterministic bucket for unmatched articles.
type FixedTieBreaker struct {
	Label string
}

func (f FixedTieBreaker) Pick([]string) string {
	return f.Label
}

type rule struct {
	label    string
	keywords []string
}

// Rules are checked in order; the first hit wins. "world" is last among the
// keyword rules because its geopolitics terms are the most generic.
var rules = []rule{
	{"business", []string{"market", "econom", "stock", "business", "trade", "invest"}},
	{"tech", []string{"ai", "tech", "sdk", "software", "developer", "chip", "semiconductor", "app", "startup"}},
	{"sports", []string{"football", "cricket", "tournament", "goal", "match", "penalt", "nba", "fifa", "olympic"}},
	{"health", []string{"health", "flu", "vaccin", "hospital", "covid", "disease", "medical"}},
	{"science", []string{"science", "research", "battery", "study", "quantum", "space", "experiment"}},
	{"entertainment", []string{"film", "movie", "concert", "celebr", "music", "series", "bollywood", "hollywood"}},
	{"india", []string{"india", "delhi", "mumbai", "bangalore", "karnataka", "modi", "parliament"}},
	{"world", []string{"war", "election", "government", "president", "minister", "united nations", "eu", "china", "russia"}},
}

// Classifier resolves labels by keyword heuristics with a tie-break fallback.
type Classifier struct {
	tieBreaker TieBreaker
}

func NewClassifier(tb TieBreaker) *Classifier {
	if tb == nil {
		tb = NewRandomTieBreaker(nil)
	}
	return &Classifier{tieBreaker: tb}
}

// Categorize always returns a member of Labels.
func (c *Classifier) Categorize(title, snippet string) string {
	label, _ := c.Resolve(title, snippet)
	return label
}

// Resolve returns the label and how it was decided.
func (c *Classifier) Resolve(title, snippet string) (string, Method) {
	text := strings.ToLower(title) + " " + strings.ToLower(snippet)

	for _, r := range rules {
		if containsAny(text, r.keywords) {
			return r.label, Classified
		}
	}
	return c.tieBreaker.Pick(Labels), TieBroken
}

// containsAny distinguishes phrases and short tokens so that e.g. "ai" does
// not match inside "said" or "eu" inside "neutral".
func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if k == "" {
			continue
		}

		// Phrases match as substrings.
		if strings.Contains(k, " ") {
			if strings.Contains(text, k) {
				return true
			}
			continue
		}

		// Short tokens require word boundaries.
		if len(k) <= 3 {
			re := regexp.MustCompile(`\b` + regexp.QuoteMeta(k) + `\b`)
			if re.MatchString(text) {
				return true
			}
			continue
		}

		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
