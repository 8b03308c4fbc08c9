package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"newsbrief/internal/evaluate"
)

func newEvaluateCommand() *cobra.Command {
	var (
		num        int
		categories string
		userID     string
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Generate a briefing and score its summary quality",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if num <= 0 {
				num = app.cfg.DefaultTopN
			}

			var cats []string
			if categories != "" {
				for _, c := range strings.Split(categories, ",") {
					if c = strings.TrimSpace(c); c != "" {
						cats = append(cats, c)
					}
				}
			}

			ctx := context.Background()

			info, err := evaluate.LastBriefingInfo(ctx, app.store, userID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Before run:", info)

			briefing, err := app.generator.Generate(ctx, userID, num, cats)
			if err != nil {
				return err
			}

			report := evaluate.JudgeBriefing(briefing)
			fmt.Fprintf(cmd.OutOrStdout(), "Items: %d\nAverage summary score: %.2f\n",
				report.ItemCount, report.AverageScore)
			for _, it := range briefing.Items {
				fmt.Fprintf(cmd.OutOrStdout(), "  %.2f  [%s] %s\n",
					evaluate.JudgeSummary(it.Summary, it.Snippet), it.Category, it.Title)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&num, "num", 0, "number of items (default from DEFAULT_TOP_N)")
	cmd.Flags().StringVar(&categories, "categories", "", "comma-separated categories")
	cmd.Flags().StringVar(&userID, "user", "default", "user id")

	return cmd
}
