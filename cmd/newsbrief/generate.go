package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newGenerateCommand() *cobra.Command {
	var (
		num        int
		category   string
		categories string
		userID     string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a briefing and print it as JSON",
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
			} else if category != "" {
				cats = []string{strings.TrimSpace(category)}
			}

			briefing, err := app.generator.Generate(context.Background(), userID, num, cats)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(briefing, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().IntVar(&num, "num", 0, "number of items (default from DEFAULT_TOP_N)")
	cmd.Flags().StringVar(&category, "category", "", "single category (e.g. tech)")
	cmd.Flags().StringVar(&categories, "categories", "", "comma-separated categories (e.g. tech,business)")
	cmd.Flags().StringVar(&userID, "user", "default", "user id")

	return cmd
}
