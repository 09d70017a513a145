package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stefanpenner/tabfocus/pkg/streak"
)

func newFocusCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Show today's focus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			focus := a.store.Focus(cmd.Context())
			if a.jsonOut {
				return outputJSON(cmd.OutOrStdout(), map[string]string{"focus": focus})
			}
			if focus == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No focus set. Use: tabfocus focus set <text>")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), focus)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <text>",
		Short: "Set today's focus",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			focus, err := a.store.SetFocus(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if a.jsonOut {
				return outputJSON(cmd.OutOrStdout(), map[string]string{"focus": focus})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Focus set: %s\n", focus)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "done",
		Short: "Complete today's focus and count it toward the streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if a.store.Focus(ctx) == "" {
				return fmt.Errorf("no focus set for today")
			}
			rec := a.store.CompleteFocus(ctx)
			return printCompletion(cmd, a, rec)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear today's focus without completing it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.store.ClearFocus(cmd.Context())
			if a.jsonOut {
				return outputJSON(cmd.OutOrStdout(), map[string]string{"focus": ""})
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Focus cleared")
			return nil
		},
	})

	return cmd
}

func printCompletion(cmd *cobra.Command, a *app, rec streak.Record) error {
	if a.jsonOut {
		return outputJSON(cmd.OutOrStdout(), rec)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✦ Well done! Streak: %d day(s), longest %d\n", rec.Current, rec.Longest)
	return nil
}
