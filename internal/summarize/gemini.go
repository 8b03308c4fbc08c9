package summarize

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"newsbrief/internal/cache"
	"newsbrief/internal/logger"
	"newsbrief/internal/metrics"
	"newsbrief/internal/ratelimit"
	"newsbrief/internal/retry"
)

// TextFetcher supplies full article text when the feed snippet is too thin to
// summarize well. Optional; nil disables the lookup.
type TextFetcher interface {
	FullText(ctx context.Context, url string) (string, error)
}

// Gemini summarizes through the Gemini API. Any failure (budget exhausted,
// API error, unparseable response) degrades to the extractive strategy so the
// caller always receives a valid Result.
type Gemini struct {
	client   *genai.Client
	model    string
	budget   *ratelimit.Budget
	cache    *cache.Cache
	cacheTTL time.Duration
	fallback *Extractive
	fetcher  TextFetcher
	retryCfg retry.Config
}

type GeminiOptions struct {
	APIKey        string
	Model         string
	Budget        *ratelimit.Budget
	Cache         *cache.Cache
	CacheTTL      time.Duration
	Fetcher       TextFetcher
	RetryAttempts int
	RetryDelay    time.Duration
}

func NewGemini(ctx context.Context, opts GeminiOptions) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}
	attempts := opts.RetryAttempts
	if attempts <= 0 {
		attempts = 1
	}

	return &Gemini{
		client:   client,
		model:    model,
		budget:   opts.Budget,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		fallback: NewExtractive(),
		fetcher:  opts.Fetcher,
		retryCfg: retry.Config{MaxAttempts: attempts, Delay: opts.RetryDelay, Backoff: true},
	}, nil
}

func (g *Gemini) Close() {
	if g.client != nil {
		g.client.Close()
	}
}

func (g *Gemini) Summarize(ctx context.Context, title, snippet, url string, maxSentences int) (Result, error) {
	if maxSentences <= 0 {
		maxSentences = 2
	}

	key := cache.Key(title, snippet)
	if g.cache != nil {
		if v, ok := g.cache.Get(key); ok {
			if res, ok := v.(Result); ok {
				if g.budget != nil {
					g.budget.RecordCacheHit()
				}
				return res, nil
			}
		}
	}

	if g.budget != nil && !g.budget.Allow() {
		return g.degrade(ctx, title, snippet, url, maxSentences)
	}

	content := snippet
	if g.fetcher != nil && utf8.RuneCountInString(snippet) < 200 && url != "" {
		if full, err := g.fetcher.FullText(ctx, url); err == nil && len(full) > len(snippet) {
			content = full
		}
	}

	prompt := buildPrompt(title, content, maxSentences)

	var res Result
	err := retry.WithRetry(ctx, g.retryCfg, func() error {
		if g.budget != nil {
			if err := g.budget.Use(); err != nil {
				return err
			}
		}

		model := g.client.GenerativeModel(g.model)
		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return fmt.Errorf("failed to generate content: %w", err)
		}
		if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
			return fmt.Errorf("empty response from Gemini")
		}

		raw := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
		parsed, perr := parseResponse(raw)
		if perr != nil {
			return perr
		}
		res = parsed
		return nil
	})
	if err != nil {
		logger.Warn("gemini summarize failed, using extractive fallback", "error", err, "title", truncate(title, 80))
		metrics.Global.IncrementSummaryFallbacks()
		return g.degrade(ctx, title, snippet, url, maxSentences)
	}

	if g.cache != nil {
		g.cache.Set(key, res, g.cacheTTL)
	}
	return res, nil
}

// degrade runs the extractive strategy and caps its confidence so degraded
// items rank below clean generative summaries.
func (g *Gemini) degrade(ctx context.Context, title, snippet, url string, maxSentences int) (Result, error) {
	res, _ := g.fallback.Summarize(ctx, title, snippet, url, maxSentences)
	if res.Confidence > degradedConfidence {
		res.Confidence = degradedConfidence
	}
	return res, nil
}

func buildPrompt(title, content string, maxSentences int) string {
	// Sanitize and bound the prompt size, cutting on a sentence edge when possible.
	content = strings.ReplaceAll(content, "\r", "")
	content = strings.Join(strings.Fields(content), " ")
	maxChars := 6000
	if utf8.RuneCountInString(content) > maxChars {
		runes := []rune(content)
		trimmed := string(runes[:maxChars])
		if idx := strings.LastIndex(trimmed, ". "); idx > 1200 {
			trimmed = trimmed[:idx+1]
		}
		content = trimmed + "\n[TRUNCATED]"
	}

	return fmt.Sprintf(`Summarize this news article.

ARTICLE:
Title: %s
Content: %s

TASKS:
Write a summary of at most %d sentences.
Write a single-line TLDR.
Estimate your confidence in the summary as a number between 0 and 1.

Reply strictly in this format:

SUMMARY: <summary>
TLDR: <one line>
CONFIDENCE: <number>
`, title, content, maxSentences)
}

var labelPatterns = []struct {
	name  string
	regex *regexp.Regexp
}{
	{"summary", regexp.MustCompile(`(?i)^SUMMARY\s*: ?`)},
	{"tldr", regexp.MustCompile(`(?i)^(TLDR|TL;DR)\s*: ?`)},
	{"confidence", regexp.MustCompile(`(?i)^CONFIDENCE\s*: ?`)},
}

// parseResponse extracts the labeled sections. Models drift from strict
// templates, so continuation lines attach to the last seen label.
func parseResponse(response string) (Result, error) {
	sections := map[string]*strings.Builder{
		"summary":    {},
		"tldr":       {},
		"confidence": {},
	}

	current := ""
	for _, raw := range strings.Split(response, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		matched := false
		for _, lp := range labelPatterns {
			if lp.regex.MatchString(line) {
				current = lp.name
				rest := strings.TrimSpace(lp.regex.ReplaceAllString(line, ""))
				appendSection(sections[current], rest)
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		if current != "" {
			appendSection(sections[current], line)
		}
	}

	summary := strings.TrimSpace(sections["summary"].String())
	tldr := strings.TrimSpace(sections["tldr"].String())
	if summary == "" {
		return Result{}, fmt.Errorf("could not parse Gemini response: missing summary")
	}
	if tldr == "" {
		tldr = firstSentence(summary) + "."
	}

	confidence := 0.5
	if raw := strings.TrimSpace(sections["confidence"].String()); raw != "" {
		if v, err := strconv.ParseFloat(strings.Fields(raw)[0], 64); err == nil {
			confidence = clampConfidence(v)
		}
	}

	return Result{Summary: summary, TLDR: tldr, Confidence: confidence}, nil
}

func appendSection(b *strings.Builder, text string) {
	if text == "" {
		return
	}
	if b.Len() > 0 {
		b.WriteString(" ")
	}
	b.WriteString(text)
}
