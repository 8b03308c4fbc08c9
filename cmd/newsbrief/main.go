package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"newsbrief/internal/brief"
	"newsbrief/internal/cache"
	"newsbrief/internal/categorize"
	"newsbrief/internal/config"
	"newsbrief/internal/feed"
	"newsbrief/internal/logger"
	"newsbrief/internal/memory"
	"newsbrief/internal/ratelimit"
	"newsbrief/internal/scraper"
	"newsbrief/internal/summarize"
)

func main() {
	root := &cobra.Command{
		Use:           "newsbrief",
		Short:         "Aggregate, dedupe, summarize and rank news into a briefing",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newGenerateCommand())
	root.AddCommand(newPrefsCommand())
	root.AddCommand(newFeedbackCommand())
	root.AddCommand(newEvaluateCommand())
	root.AddCommand(newServeCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app bundles the wired collaborators behind the commands.
type app struct {
	cfg       *config.Config
	generator *brief.Generator
	store     memory.Store
	closeFns  []func()
}

func (a *app) Close() {
	for _, fn := range a.closeFns {
		fn()
	}
}

func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.EventLogPath)

	table, err := feed.LoadTable(cfg.FeedsConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load feeds config: %w", err)
	}
	fetcher := feed.NewFetcher(table, cfg.RequestTimeout)

	var store memory.Store
	var closeFns []func()
	if cfg.DatabaseURL != "" {
		pg, err := memory.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		store = pg
		closeFns = append(closeFns, func() { pg.Close() })
	} else {
		store = memory.NewFileStore(cfg.MemoryPath)
	}

	summarizer, closeSummarizer, err := buildSummarizer(cfg)
	if err != nil {
		return nil, err
	}
	if closeSummarizer != nil {
		closeFns = append(closeFns, closeSummarizer)
	}

	generator := brief.NewGenerator(
		fetcher,
		categorize.NewClassifier(nil),
		summarizer,
		store,
		brief.Options{
			SampleCategories:  cfg.SampleCategories,
			FetchConcurrency:  cfg.FetchConcurrency,
			EnrichConcurrency: cfg.EnrichConcurrency,
			TraceDir:          cfg.TraceDir,
		},
	)

	return &app{cfg: cfg, generator: generator, store: store, closeFns: closeFns}, nil
}

func buildSummarizer(cfg *config.Config) (summarize.Summarizer, func(), error) {
	if cfg.SummarizerMethod != "gemini" {
		return summarize.NewExtractive(), nil, nil
	}

	var fetcher summarize.TextFetcher
	if cfg.FetchFullText {
		fetcher = scraper.New(cfg.RequestTimeout)
	}

	gem, err := summarize.NewGemini(context.Background(), summarize.GeminiOptions{
		APIKey:        cfg.GeminiAPIKey,
		Budget:        ratelimit.NewBudget(cfg.MaxAIRequests),
		Cache:         cache.New(),
		CacheTTL:      cfg.SummaryCacheTTL,
		Fetcher:       fetcher,
		RetryAttempts: cfg.RetryAttempts,
		RetryDelay:    cfg.RetryDelay,
	})
	if err != nil {
		return nil, nil, err
	}
	return gem, gem.Close, nil
}
