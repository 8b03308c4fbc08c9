// Package brief implements the aggregation-and-ranking pipeline: fetch
// candidates per category, dedupe them against the pool and the previous
// briefing, enrich each survivor with a category and a summary, filter and
// rank by stored preferences, and compose a bounded briefing.
package brief

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"newsbrief/internal/feed"
	"newsbrief/internal/logger"
	"newsbrief/internal/memory"
	"newsbrief/internal/metrics"
	"newsbrief/internal/summarize"
	"newsbrief/internal/trace"
)

// Fetcher is the source collaborator: category plus desired count in,
// articles out. It may return fewer items than asked, or none.
type Fetcher interface {
	Fetch(ctx context.Context, category string, n int) ([]feed.Article, error)
	SupportedCategories() []string
}

// Categorizer always returns a valid label, never an error.
type Categorizer interface {
	Categorize(title, snippet string) string
}

type Options struct {
	SampleCategories  int // categories sampled when none requested
	FetchConcurrency  int
	EnrichConcurrency int
	TraceDir          string // empty disables trace persistence
	Rand              *rand.Rand
}

type Generator struct {
	fetcher     Fetcher
	categorizer Categorizer
	summarizer  summarize.Summarizer
	store       memory.Store
	opts        Options
	fallback    *summarize.Extractive
	rng         *rand.Rand
}

func NewGenerator(fetcher Fetcher, categorizer Categorizer, summarizer summarize.Summarizer, store memory.Store, opts Options) *Generator {
	if opts.SampleCategories <= 0 {
		opts.SampleCategories = 5
	}
	if opts.FetchConcurrency <= 0 {
		opts.FetchConcurrency = 4
	}
	if opts.EnrichConcurrency <= 0 {
		opts.EnrichConcurrency = 4
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{
		fetcher:     fetcher,
		categorizer: categorizer,
		summarizer:  summarizer,
		store:       store,
		opts:        opts,
		fallback:    summarize.NewExtractive(),
		rng:         rng,
	}
}

// Generate runs the full pipeline for one user. Collaborator failures
// degrade individual units only; the sole fatal failures are an invalid
// topN and an unreadable or unwritable memory store.
func (g *Generator) Generate(ctx context.Context, userID string, topN int, categories []string) (*Briefing, error) {
	if topN <= 0 {
		return nil, fmt.Errorf("topN must be positive, got %d", topN)
	}

	start := time.Now()
	defer func() {
		metrics.Global.RecordPipelineTime(time.Since(start))
		metrics.Global.SetLastRun()
	}()

	// Memory is read once here and written once at the end. There is no safe
	// default for preferences, so a broken store fails the whole run.
	doc, err := g.store.Load(ctx, userID)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return nil, fmt.Errorf("failed to load user memory: %w", err)
	}

	tr := trace.New()
	cats := g.normalizeCategories(categories)

	// FETCH
	fetchStart := time.Now()
	collected := g.fetchAll(ctx, cats, topN)
	metrics.Global.AddArticlesCollected(len(collected))
	tr.AddStep("fetch", time.Since(fetchStart), "ok", map[string]any{"collected": len(collected)})
	logger.Info("fetch complete", "requested_categories", cats, "collected", len(collected))

	// DEDUPE + history exclusion with safety valve, then shuffle so fetch
	// order does not bias which items survive the final trim.
	pool := excludeHistory(dedupe(collected), doc.LastBriefing.Items, topN)
	g.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	// ENRICH
	items := g.enrich(ctx, tr, pool)

	// FILTER + RANK + TRIM
	items = filterByCategories(items, cats, topN)
	rank(items, doc.UserPrefs.Categories)
	final := trim(items, topN)

	briefing := &Briefing{
		GeneratedAt:        time.Now(),
		Items:              final,
		UserID:             userID,
		SelectedCategories: append([]string{}, cats...),
	}

	tr.AddStep("compose", time.Since(start), "ok", map[string]any{"final_count": len(final)})
	tracePath, terr := tr.End(g.opts.TraceDir)
	if terr != nil {
		logger.Warn("trace persistence failed", "error", terr)
	}

	// Persist the new fingerprint history, overwriting the previous value.
	// Concurrent runs for the same user race here last-writer-wins; that is
	// an accepted limitation of the whole-document memory contract.
	fps := make([]string, 0, len(final))
	for _, it := range final {
		if it.Fingerprint != "" {
			fps = append(fps, it.Fingerprint)
		}
	}
	doc.LastBriefing = memory.LastBriefing{Items: fps, TS: briefing.GeneratedAt}
	if err := g.store.Save(ctx, userID, doc); err != nil {
		metrics.Global.SetError(err.Error())
		return nil, fmt.Errorf("failed to save user memory: %w", err)
	}

	metrics.Global.IncrementBriefingsGenerated()
	logger.Info("briefing generated", "user_id", userID, "count", len(final), "trace", tracePath)
	return briefing, nil
}

// normalizeCategories lower-cases and trims the request and keeps only
// supported categories. An empty result means "no explicit filter".
func (g *Generator) normalizeCategories(categories []string) []string {
	if len(categories) == 0 {
		return nil
	}

	supported := make(map[string]struct{})
	for _, c := range g.fetcher.SupportedCategories() {
		supported[c] = struct{}{}
	}

	var cats []string
	for _, c := range categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if _, ok := supported[c]; ok {
			cats = append(cats, c)
		}
	}
	return cats
}

// fetchAll queries one category per worker and merges the results. Order is
// not significant; the deduplicator shuffles afterwards.
func (g *Generator) fetchAll(ctx context.Context, cats []string, topN int) []feed.Article {
	var queryCats []string
	var perCategory int

	if len(cats) > 0 {
		queryCats = cats
		perCategory = max(topN, 5)
	} else {
		supported := g.fetcher.SupportedCategories()
		if len(supported) > g.opts.SampleCategories {
			supported = supported[:g.opts.SampleCategories]
		}
		queryCats = supported
		perCategory = max(3, topN/2)
	}

	var (
		mu        sync.Mutex
		collected []feed.Article
		wg        sync.WaitGroup
	)
	sem := make(chan struct{}, g.opts.FetchConcurrency)

	for _, cat := range queryCats {
		wg.Add(1)
		go func(category string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			articles, err := g.fetcher.Fetch(ctx, category, perCategory)
			if err != nil {
				logger.Warn("category fetch failed", "category", category, "error", err)
				return
			}

			mu.Lock()
			defer mu.Unlock()
			for _, a := range articles {
				if a.Title == "" && a.URL == "" {
					continue
				}
				// Tag feed-sourced articles so enrichment can skip
				// re-classification.
				if a.Category == "" {
					a.Category = category
				}
				collected = append(collected, a)
			}
		}(cat)
	}
	wg.Wait()

	return collected
}

// enrich resolves category and summary for every candidate. The output has
// exactly one item per input: a collaborator failure degrades that item's
// summary instead of dropping it.
func (g *Generator) enrich(ctx context.Context, tr *trace.Trace, pool []candidate) []Item {
	items := make([]Item, len(pool))

	var wg sync.WaitGroup
	sem := make(chan struct{}, g.opts.EnrichConcurrency)

	for i, c := range pool {
		wg.Add(1)
		go func(idx int, cand candidate) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			items[idx] = g.enrichOne(ctx, tr, cand)
		}(i, c)
	}
	wg.Wait()

	return items
}

func (g *Generator) enrichOne(ctx context.Context, tr *trace.Trace, c candidate) Item {
	a := c.article

	snippet := a.Snippet
	if snippet == "" {
		snippet = a.Title
	}

	category := a.Category
	if category == "" {
		category = g.categorizer.Categorize(a.Title, snippet)
	}

	sumStart := time.Now()
	status := "ok"
	res, err := g.summarizer.Summarize(ctx, a.Title, snippet, a.URL, 2)
	if err != nil {
		// The summarizer contract says failures come back as degraded
		// results, but guard anyway: the item must stay in the pipeline.
		status = "degraded"
		metrics.Global.IncrementSummaryFallbacks()
		res, _ = g.fallback.Summarize(ctx, a.Title, snippet, a.URL, 2)
		if res.Confidence > 0.4 {
			res.Confidence = 0.4
		}
	}
	tr.AddStep("summarize_item", time.Since(sumStart), status, map[string]any{"title": truncateTitle(a.Title)})
	metrics.Global.IncrementItemsEnriched()

	return Item{
		Title:       a.Title,
		Snippet:     snippet,
		URL:         a.URL,
		Published:   a.Published,
		Image:       a.Image,
		Category:    category,
		Summary:     res.Summary,
		TLDR:        res.TLDR,
		Confidence:  res.Confidence,
		Fingerprint: c.fingerprint,
	}
}

func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) > 80 {
		return string(runes[:80])
	}
	return title
}
