package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stefanpenner/tabfocus/pkg/report"
	"github.com/stefanpenner/tabfocus/pkg/streak"
)

type dayJSON struct {
	Date    string  `json:"date"`
	Count   int     `json:"count"`
	Height  float64 `json:"height"`
	IsToday bool    `json:"isToday,omitempty"`
}

func newStreakCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show the completion streak and the last seven days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rec := a.store.Streak().Load(ctx)
			week := streak.Render(rec, a.store.Dates().Today())
			out := cmd.OutOrStdout()

			if a.jsonOut {
				days := make([]dayJSON, len(week))
				for i, d := range week {
					days[i] = dayJSON{Date: d.Key, Count: d.Count, Height: d.Height, IsToday: d.IsToday}
				}
				return outputJSON(out, map[string]any{"streak": rec, "week": days})
			}

			fmt.Fprintf(out, "Current: %d  Longest: %d  Total: %d\n", rec.Current, rec.Longest, rec.TotalCompleted)
			if rec.LastCompleted != "" {
				fmt.Fprintf(out, "Last completed: %s\n", rec.LastCompleted)
			}
			fmt.Fprintln(out)
			for _, d := range week {
				marker := " "
				if d.IsToday {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s %s %d\n", marker, d.Key, report.Bar(d.Height, 20), d.Count)
			}
			return nil
		},
	}
}

func newDarkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "dark [on|off]",
		Short:     "Show or set dark mode",
		ValidArgs: []string{"on", "off"},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 1 {
				a.store.SetDarkMode(ctx, args[0] == "on")
			}
			on := a.store.DarkMode(ctx)
			if a.jsonOut {
				return outputJSON(cmd.OutOrStdout(), map[string]bool{"darkMode": on})
			}
			state := "off"
			if on {
				state = "on"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dark mode: %s\n", state)
			return nil
		},
	}
}
