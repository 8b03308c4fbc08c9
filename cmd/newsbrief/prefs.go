package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"newsbrief/internal/memory"
)

func newPrefsCommand() *cobra.Command {
	var (
		category string
		userID   string
	)

	cmd := &cobra.Command{
		Use:       "prefs [show|add|remove]",
		Short:     "Manage stored category preferences",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"show", "add", "remove"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := context.Background()
			switch args[0] {
			case "show":
				doc, err := app.store.Load(ctx, userID)
				if err != nil {
					return err
				}
				out, err := json.MarshalIndent(doc.UserPrefs, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
			case "add":
				if category == "" {
					return fmt.Errorf("--category is required for add")
				}
				if _, err := memory.UpdatePreferences(ctx, app.store, userID, category, "", nil); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Added category:", category)
			case "remove":
				if category == "" {
					return fmt.Errorf("--category is required for remove")
				}
				if _, err := memory.UpdatePreferences(ctx, app.store, userID, "", category, nil); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Removed category:", category)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "category to add/remove")
	cmd.Flags().StringVar(&userID, "user", "default", "user id")

	return cmd
}
