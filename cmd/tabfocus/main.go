package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/stefanpenner/tabfocus/pkg/config"
	"github.com/stefanpenner/tabfocus/pkg/datekey"
	"github.com/stefanpenner/tabfocus/pkg/kv"
	"github.com/stefanpenner/tabfocus/pkg/store"
	"github.com/stefanpenner/tabfocus/pkg/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root, a := newRootCmd()
	err := root.ExecuteContext(ctx)
	a.close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds everything a command needs once the data dir is resolved.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	clock   clockwork.Clock
	store   *store.Store
	jsonOut bool

	closers []func() error
}

func (a *app) open(dirFlag string) error {
	dir := config.ResolveDataDir(dirFlag)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	log, logFile, err := config.NewLogger(cfg)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, logFile.Close)

	kvStore, closeKV, err := kv.Open(cfg.DBPath(), cfg.FallbackDir(), log)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, closeKV)

	if a.clock == nil {
		a.clock = clockwork.NewRealClock()
	}
	s := store.NewStore(dir, kvStore, datekey.NewSource(a.clock), log)
	s.FocusMaxLength = cfg.FocusMaxLength

	a.cfg, a.log, a.store = cfg, log, s
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
	a.closers = nil
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	var dir string

	root := &cobra.Command{
		Use:   "tabfocus",
		Short: "A daily focus dashboard for the terminal",
		Long: `tabfocus keeps one focus for the day, a pomodoro timer, a completion
streak, todos and quick links.

Run without arguments for the interactive dashboard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(dir)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(cmd.Context(), a.store, a.cfg, a.clock, a.log)
		},
	}
	root.PersistentFlags().StringVar(&dir, "dir", "", "data directory (default $TABFOCUS_DIR or the per-OS location)")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "print JSON instead of text")

	root.AddCommand(
		newFocusCmd(a),
		newTimerCmd(a),
		newStreakCmd(a),
		newDarkCmd(a),
		newTodoCmd(a),
		newLinkCmd(a),
		newBackgroundCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newSummaryCmd(a),
	)
	return root, a
}

// JSON helpers

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
