// Package scraper pulls readable article text out of a web page. The feed
// snippet is often a one-liner; the generative summarizer asks here for more
// material before calling the model.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

type Extractor struct {
	client *http.Client
}

func New(timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Extractor{
		client: &http.Client{Timeout: timeout},
	}
}

// Selectors tried in order; the walk stops once enough paragraphs are found.
var contentSelectors = []string{
	"article p",
	".article p",
	".article-body p",
	".content p",
	".post-content p",
	".entry-content p",
	"main p",
	"#content p",
	"p",
}

// FullText fetches url and returns the cleaned article body.
func (e *Extractor) FullText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("error building request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error loading page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error parsing HTML: %w", err)
	}

	content := extractParagraphs(doc)
	if content == "" {
		return "", fmt.Errorf("no readable content at %s", url)
	}
	return content, nil
}

func extractParagraphs(doc *goquery.Document) string {
	var paragraphs []string

	for _, selector := range contentSelectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > 20 && !isJunk(text) {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= 3 {
			break
		}
	}

	return limitLength(strings.Join(paragraphs, "\n\n"), 1800)
}

var junkIndicators = []string{
	"cookie", "gdpr", "advertisement", "subscribe", "newsletter",
	"read more", "click here", "follow us", "share this", "sign in",
}

func isJunk(line string) bool {
	lower := strings.ToLower(line)
	for _, indicator := range junkIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// limitLength trims to whole paragraphs under max bytes.
func limitLength(text string, max int) string {
	if len(text) <= max {
		return text
	}

	paragraphs := strings.Split(text, "\n\n")
	var kept []string
	total := 0
	for _, p := range paragraphs {
		if total+len(p) >= max {
			break
		}
		kept = append(kept, p)
		total += len(p) + 2
	}
	if len(kept) == 0 {
		return text[:max]
	}
	return strings.Join(kept, "\n\n")
}
