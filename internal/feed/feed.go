// Package feed is the RSS source layer: it maps category keys to feed URLs,
// pulls and merges the feeds for one category, and returns clean article
// records. A failing feed contributes nothing; it never fails the fetch.
package feed

import (
	"context"
	"fmt"
	"html"
	"math/rand"
	"net/http"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"newsbrief/internal/logger"
)

// Article is a raw candidate before enrichment. Title and URL form its
// identity; a record with neither is dropped at merge time.
type Article struct {
	Title     string
	Snippet   string
	URL       string
	Published string
	Image     string
	Category  string
}

// Table is the YAML feeds config structure:
//
// categories:
//   tech:
//     - https://...
type Table struct {
	Categories map[string][]string `yaml:"categories"`
}

// LoadTable reads the category feed table from a YAML file.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var t Table
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&t); err != nil {
		return nil, err
	}
	if len(t.Categories) == 0 {
		return nil, fmt.Errorf("feeds config %s has no categories", path)
	}
	return &t, nil
}

type Fetcher struct {
	table  *Table
	parser *gofeed.Parser
}

func NewFetcher(table *Table, timeout time.Duration) *Fetcher {
	parser := gofeed.NewParser()
	if timeout > 0 {
		parser.Client = &http.Client{Timeout: timeout}
	}
	return &Fetcher{table: table, parser: parser}
}

// SupportedCategories returns the sorted category keys of the feed table.
func (f *Fetcher) SupportedCategories() []string {
	cats := make([]string, 0, len(f.table.Categories))
	for c := range f.table.Categories {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// Fetch merges all feeds of one category and returns up to n articles.
// Per-feed failures are logged and skipped. The merged set is deduped by
// url+title and shuffled so no single feed dominates the head of the list.
func (f *Fetcher) Fetch(ctx context.Context, category string, n int) ([]Article, error) {
	urls := f.lookupFeeds(category)
	if len(urls) == 0 {
		return nil, fmt.Errorf("no feeds configured for category %q", category)
	}

	var merged []Article
	seen := make(map[string]struct{})
	okFeeds := 0

	for _, url := range urls {
		parsed, err := f.parseFeed(ctx, url, n)
		if err != nil {
			logger.Warn("feed parse failed", "url", url, "error", err)
			continue
		}
		okFeeds++

		for _, a := range parsed {
			key := mergeKey(a)
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, a)
		}
	}

	logger.Debug("category fetched", "category", category, "feeds_ok", okFeeds, "feeds_total", len(urls), "articles", len(merged))

	rand.Shuffle(len(merged), func(i, j int) {
		merged[i], merged[j] = merged[j], merged[i]
	})

	if len(merged) > n {
		merged = merged[:n]
	}
	return merged, nil
}

// lookupFeeds is tolerant of singular/plural category spellings.
func (f *Fetcher) lookupFeeds(category string) []string {
	cat := strings.ToLower(strings.TrimSpace(category))
	if urls, ok := f.table.Categories[cat]; ok {
		return urls
	}
	if urls, ok := f.table.Categories[strings.TrimSuffix(cat, "s")]; ok {
		return urls
	}
	if urls, ok := f.table.Categories[cat+"s"]; ok {
		return urls
	}
	return nil
}

func (f *Fetcher) parseFeed(ctx context.Context, url string, n int) ([]Article, error) {
	parsed, err := f.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, err
	}

	// Scan deeper than n so rich feeds survive the merge dedupe.
	maxEntries := n * 3
	if maxEntries < 30 {
		maxEntries = 30
	}

	articles := make([]Article, 0, len(parsed.Items))
	for i, item := range parsed.Items {
		if i >= maxEntries {
			break
		}

		title := strings.TrimSpace(item.Title)
		link := item.Link
		if link == "" {
			link = item.GUID
		}
		if title == "" && link == "" {
			continue
		}

		published := item.Published
		if published == "" {
			published = item.Updated
		}

		articles = append(articles, Article{
			Title:     title,
			Snippet:   cleanSnippet(item.Description),
			URL:       link,
			Published: published,
			Image:     extractImage(item),
		})
	}
	return articles, nil
}

func mergeKey(a Article) string {
	url := a.URL
	if idx := strings.Index(url, "?"); idx >= 0 {
		url = url[:idx]
	}
	return strings.TrimSpace(strings.ToLower(url + "|" + a.Title))
}

var tagRe = regexp.MustCompile(`<[^>]+>`)

// cleanSnippet strips markup and collapses whitespace.
func cleanSnippet(htmlText string) string {
	if htmlText == "" {
		return ""
	}
	text := tagRe.ReplaceAllString(htmlText, " ")
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}

// extractImage tries the common RSS media fields, then falls back to the
// first <img> inside the description markup.
func extractImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}

	if media, ok := item.Extensions["media"]; ok {
		for _, field := range []string{"content", "thumbnail"} {
			for _, ext := range media[field] {
				if url := ext.Attrs["url"]; url != "" {
					return url
				}
			}
		}
	}

	for _, enc := range item.Enclosures {
		if strings.HasPrefix(enc.Type, "image") && enc.URL != "" {
			return enc.URL
		}
	}

	if item.Description != "" {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(item.Description))
		if err == nil {
			if src, ok := doc.Find("img").First().Attr("src"); ok {
				return src
			}
		}
	}
	return ""
}
