package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stefanpenner/tabfocus/pkg/timer"
)

func newTimerCmd(a *app) *cobra.Command {
	status := func(cmd *cobra.Command, args []string) error {
		minutes := a.store.TimerMinutes(cmd.Context(), a.cfg.DefaultMinutes)
		if a.jsonOut {
			return outputJSON(cmd.OutOrStdout(), map[string]int{"minutes": minutes})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Timer: %d min (%s)\n", minutes, timer.FormatClock(minutes*60))
		return nil
	}

	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Show the saved timer duration",
		Args:  cobra.NoArgs,
		RunE:  status,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the saved timer duration",
		Args:  cobra.NoArgs,
		RunE:  status,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <minutes>",
		Short: "Save the timer duration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := parseMinutes(args[0])
			if err != nil {
				return err
			}
			a.store.SaveTimerMinutes(cmd.Context(), minutes)
			return status(cmd, nil)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "run [minutes]",
		Short: "Count down in the foreground; finishing counts toward the streak",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes := a.store.TimerMinutes(cmd.Context(), a.cfg.DefaultMinutes)
			if len(args) == 1 {
				var err error
				if minutes, err = parseMinutes(args[0]); err != nil {
					return err
				}
			}
			return runCountdown(cmd, a, minutes)
		},
	})

	return cmd
}

func parseMinutes(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < timer.MinMinutes || n > timer.MaxMinutes {
		return 0, fmt.Errorf("minutes must be a whole number from %d to %d, got %q", timer.MinMinutes, timer.MaxMinutes, s)
	}
	return n, nil
}

// runCountdown blocks until the timer expires or the command is interrupted.
func runCountdown(cmd *cobra.Command, a *app, minutes int) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	done := make(chan struct{})

	tm := timer.New(
		timer.WithClock(a.clock),
		timer.WithDefaultMinutes(a.cfg.DefaultMinutes),
		timer.WithMinutes(minutes),
		timer.WithLogger(a.log),
		timer.WithOnTick(func(s timer.Snapshot) {
			if !a.jsonOut {
				fmt.Fprintf(out, "\r%s ", timer.FormatClock(s.Remaining))
			}
		}),
		timer.WithOnComplete(func() { close(done) }),
	)
	defer tm.Close()

	snap := tm.Start()
	if !a.jsonOut {
		fmt.Fprintf(out, "%s ", timer.FormatClock(snap.Remaining))
	}
	a.log.Info("countdown started", "minutes", minutes)

	select {
	case <-done:
	case <-ctx.Done():
		snap := tm.Pause()
		a.log.Info("countdown interrupted", "remaining", snap.Remaining)
		if a.jsonOut {
			return outputJSON(out, snap)
		}
		fmt.Fprintf(out, "\nStopped with %s left\n", timer.FormatClock(snap.Remaining))
		return nil
	}

	rec := a.store.Streak().Complete(ctx)
	if !a.jsonOut {
		fmt.Fprintln(out)
	}
	return printCompletion(cmd, a, rec)
}
