package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"newsbrief/internal/memory"
)

func newFeedbackCommand() *cobra.Command {
	var (
		fingerprint string
		score       float64
		userID      string
	)

	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Record a score for a delivered briefing item",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if fingerprint == "" {
				return fmt.Errorf("--fingerprint is required")
			}

			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := memory.AddFeedback(context.Background(), app.store, userID, fingerprint, score); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Feedback recorded")
			return nil
		},
	}

	cmd.Flags().StringVar(&fingerprint, "fingerprint", "", "item fingerprint from a briefing")
	cmd.Flags().Float64Var(&score, "score", 1, "score, e.g. 1 for useful, -1 for not")
	cmd.Flags().StringVar(&userID, "user", "default", "user id")

	return cmd
}
