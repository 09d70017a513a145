package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTodoCmd(a *app) *cobra.Command {
	list := func(cmd *cobra.Command, args []string) error {
		todos := a.store.Todos(cmd.Context())
		if a.jsonOut {
			return outputJSON(cmd.OutOrStdout(), todos)
		}
		if len(todos) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No todos.")
			return nil
		}
		for _, t := range todos {
			status := "○"
			if t.Completed {
				status = "✓"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s\n", status, shortID(t.ID), t.Text)
		}
		return nil
	}

	cmd := &cobra.Command{
		Use:   "todo",
		Short: "List todos",
		Args:  cobra.NoArgs,
		RunE:  list,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <text>",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.store.AddTodo(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if a.jsonOut {
				return outputJSON(cmd.OutOrStdout(), t)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s  %s\n", shortID(t.ID), t.Text)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a todo's completed flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.store.ToggleTodo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.jsonOut {
				return outputJSON(cmd.OutOrStdout(), t)
			}
			state := "incomplete"
			if t.Completed {
				state = "complete"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", t.Text, state)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Remove a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.store.RemoveTodo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.jsonOut {
				return outputJSON(cmd.OutOrStdout(), t)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed: %s\n", t.Text)
			return nil
		},
	})

	return cmd
}

func newLinkCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "List quick links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			links := a.store.QuickLinks(cmd.Context())
			if a.jsonOut {
				return outputJSON(cmd.OutOrStdout(), links)
			}
			if len(links) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No quick links.")
				return nil
			}
			for _, l := range links {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", shortID(l.ID), l.Name, l.URL)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name> <url>",
		Short: "Add a quick link",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args[:len(args)-1], " ")
			l, err := a.store.AddQuickLink(cmd.Context(), name, args[len(args)-1])
			if err != nil {
				return err
			}
			if a.jsonOut {
				return outputJSON(cmd.OutOrStdout(), l)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s  %s  %s\n", shortID(l.ID), l.Name, l.URL)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Remove a quick link",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.store.RemoveQuickLink(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.jsonOut {
				return outputJSON(cmd.OutOrStdout(), l)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed: %s\n", l.Name)
			return nil
		},
	})

	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
